package policy

import (
	"fmt"
	"strings"

	dm "git.home.luguber.info/inful/policygen/internal/docmodel"
)

const (
	placeholderWebsiteName    = "[Website Name]"
	placeholderCompanyName    = "[Company Name]"
	placeholderCompanyEmail   = "[Company Email]"
	placeholderCompanyCountry = "[Company Country]"
	placeholderContactURL     = "[Your Contact Page URL]"
)

// section is what one renderer sees: the shared catalog, the settings, the
// ordinal the numberer assigned and the effective date of the document.
type section struct {
	catalog   *Catalog
	settings  *Settings
	ordinal   int
	effective Date
}

type renderFunc func(section) []dm.Block

var renderers = map[SectionID]renderFunc{
	SectionIntroduction:   renderIntroduction,
	SectionDataCollection: renderDataCollection,
	SectionCookies:        renderCookies,
	SectionThirdParty:     renderThirdParty,
	SectionRights:         renderRights,
	SectionRetention:      renderRetention,
	SectionChildren:       renderChildren,
	SectionContact:        renderContact,
	SectionChanges:        renderChanges,
}

func (s section) heading(title string) dm.Block {
	if s.ordinal > 0 {
		title = fmt.Sprintf("%d. %s", s.ordinal, title)
	}
	return dm.Heading(2, dm.Text(title))
}

func para(text string) dm.Block { return dm.Paragraph(dm.Text(text)) }

func orPlaceholder(value, placeholder string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return placeholder
}

func websiteURL(s *Settings) string { return strings.TrimSpace(s.WebsiteURL) }

// DocumentTitle returns the title heading text of the policy for s.
func DocumentTitle(s *Settings) string {
	return "Privacy Policy for " + orPlaceholder(s.WebsiteName, placeholderWebsiteName)
}

// ContactURL returns the contact page address derived from the website URL,
// or a placeholder when no URL is known.
func ContactURL(s *Settings) string {
	u := websiteURL(s)
	if u == "" {
		return placeholderContactURL
	}
	return strings.TrimRight(u, "/") + "/contact"
}

func renderIntroduction(s section) []dm.Block {
	company := orPlaceholder(s.settings.CompanyName, placeholderCompanyName)
	var at, paren string
	if u := websiteURL(s.settings); u != "" {
		at = " at " + u
		paren = " (" + u + ")"
	}
	return []dm.Block{
		dm.Heading(1, dm.Text(DocumentTitle(s.settings))),
		s.heading("Introduction"),
		para("At " + company + ", we respect your privacy and are committed to protecting your personal data. " +
			"This Privacy Policy explains how we collect, use, and safeguard your information when you visit our website" + at + "."),
		para("This privacy policy applies to all information collected through our website" + paren +
			", and/or any related services, sales, marketing or events (we refer to them collectively in this privacy policy as the \"Services\")."),
		para("Please read this privacy policy carefully as it will help you make informed decisions about sharing your personal information with us."),
	}
}

func renderDataCollection(s section) []dm.Block {
	blocks := []dm.Block{
		s.heading("Data We Collect"),
		para("We collect personal information that you voluntarily provide to us when you " +
			s.catalog.CollectionContext(s.settings.WebsiteType) +
			"register on our website, subscribe to our newsletter, or otherwise contact us."),
		dm.Heading(3, dm.Text("Personal information you disclose to us")),
		para("The personal information we collect depends on the context of your interactions with us and the Services, " +
			"the choices you make, and the products and features you use. The personal information we collect can include the following:"),
	}
	if len(s.settings.DataCollected) > 0 {
		items := make([]dm.Item, 0, len(s.settings.DataCollected))
		for _, d := range s.settings.DataCollected {
			items = append(items, dm.Item{dm.Bold(Label(d)), dm.Text(": " + s.catalog.DataExplanation(d))})
		}
		blocks = append(blocks, dm.BulletList(items...))
	}
	return append(blocks,
		dm.Heading(3, dm.Text("Information automatically collected")),
		para("When you visit our website, we automatically collect certain information about your device, including information about "+
			"your web browser, IP address, time zone, and some of the cookies that are installed on your device. Additionally, as you "+
			"browse the site, we collect information about the individual web pages that you view, what websites or search terms "+
			"referred you to our site, and information about how you interact with the site."),
	)
}

func renderCookies(s section) []dm.Block {
	types := s.settings.EffectiveCookieTypes()
	items := make([]dm.Item, 0, len(types))
	for _, t := range types {
		items = append(items, dm.Item{dm.Bold(Label(t) + " cookies"), dm.Text(": " + s.catalog.CookieExplanation(t))})
	}
	return []dm.Block{
		s.heading("Cookies and Tracking Technologies"),
		para("We use cookies and similar tracking technologies to track activity on our website and hold certain information. " +
			"Cookies are files with small amount of data which may include an anonymous unique identifier."),
		dm.Heading(3, dm.Text("Types of cookies we use:")),
		dm.BulletList(items...),
		dm.Heading(3, dm.Text("How to manage cookies")),
		para("Most web browsers allow you to control cookies through their settings preferences. However, if you limit the ability " +
			"of websites to set cookies, you may worsen your overall user experience, since it will no longer be personalized to you. " +
			"It may also stop you from saving customized settings like login information."),
	}
}

func renderThirdParty(s section) []dm.Block {
	blocks := []dm.Block{
		s.heading("Third-Party Services"),
		para("We use third-party services on our website that may collect information about you. These services include:"),
	}
	for _, g := range s.settings.ThirdPartyGroups() {
		blocks = append(blocks,
			dm.Heading(3, dm.Text(Label(g.Category)+" Services")),
			para(s.catalog.ThirdPartyDescription(g.Category)+" The services we use include: "+strings.Join(g.Services, ", ")),
		)
	}
	if other := s.settings.OtherServices(); other != "" {
		blocks = append(blocks, dm.Heading(3, dm.Text("Other Services")), para(other))
	}
	return append(blocks,
		para("These third-party service providers have their own privacy policies addressing how they use your information. "+
			"We encourage you to read their privacy policies to understand how they collect, use, and share your personal information."),
	)
}

func rightsList(rights []Right) dm.Block {
	items := make([]dm.Item, 0, len(rights))
	for _, r := range rights {
		items = append(items, dm.Item{dm.Bold(r.Name), dm.Text(" - " + r.Description)})
	}
	return dm.BulletList(items...)
}

func renderRights(s section) []dm.Block {
	blocks := []dm.Block{s.heading("Your Rights")}
	if s.settings.GDPRCompliance {
		blocks = append(blocks,
			dm.Heading(3, dm.Text("GDPR Data Protection Rights")),
			para("If you are located in the European Union, you have the following rights under the GDPR:"),
			rightsList(s.catalog.GDPRRights()),
			para("To exercise any of these rights, please contact us."),
		)
	}
	if s.settings.CCPACompliance {
		blocks = append(blocks,
			dm.Heading(3, dm.Text("CCPA Privacy Rights (California Residents)")),
			para("If you are a California resident, you have the following rights under the CCPA:"),
			rightsList(s.catalog.CCPARights()),
			para("To exercise any of these rights, please contact us."),
		)
	}
	return blocks
}

func renderRetention(s section) []dm.Block {
	return []dm.Block{
		s.heading("Data Retention"),
		para("We will retain your personal information for as long as necessary to fulfill the purposes outlined in this privacy policy, " +
			"unless a longer retention period is required or permitted by law. We determine the appropriate retention period based on " +
			"the amount, nature, and sensitivity of the personal data, the potential risk of harm from unauthorized use or disclosure, " +
			"and applicable legal requirements."),
		para("For users in the European Economic Area, we will keep your information for a period of " +
			s.catalog.RetentionPhrase(s.settings.DataRetentionPeriod) +
			" after your last interaction with us, unless a longer retention period is required by law."),
	}
}

func renderChildren(s section) []dm.Block {
	return []dm.Block{
		s.heading("Children's Privacy"),
		para("Our website is not intended for children under 13 years of age. We do not knowingly collect personal information from " +
			"children under 13. If you are a parent or guardian and you are aware that your child has provided us with personal " +
			"information, please contact us. If we discover that a child under 13 has provided us with personal information, we will " +
			"immediately delete this information from our servers."),
		para("In compliance with the Children's Online Privacy Protection Act (COPPA), we take additional steps to protect the privacy " +
			"of children under 13. If we learn that we have collected the personal information of a child under 13 without verifiable " +
			"parental consent, we will take steps to delete that information as quickly as possible."),
	}
}

func renderContact(s section) []dm.Block {
	st := s.settings
	return []dm.Block{
		s.heading("Contact Us"),
		para("If you have any questions about this Privacy Policy, please contact us:"),
		dm.BulletList(
			dm.Item{dm.Text("By email: " + orPlaceholder(st.CompanyEmail, placeholderCompanyEmail))},
			dm.Item{dm.Text("By visiting this page on our website: " + ContactURL(st))},
			dm.Item{dm.Text("By mail: " + orPlaceholder(st.CompanyName, placeholderCompanyName) + ", " +
				orPlaceholder(st.CompanyCountry, placeholderCompanyCountry))},
		),
	}
}

func renderChanges(s section) []dm.Block {
	return []dm.Block{
		s.heading("Changes to This Privacy Policy"),
		para("We may update our Privacy Policy from time to time. We will notify you of any changes by posting the new Privacy Policy on this page."),
		para("You are advised to review this Privacy Policy periodically for any changes. Changes to this Privacy Policy are effective when they are posted on this page."),
		dm.Paragraph(dm.Bold("Effective Date: " + s.effective.Display())),
	}
}
