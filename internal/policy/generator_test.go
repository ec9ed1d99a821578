package policy

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dm "git.home.luguber.info/inful/policygen/internal/docmodel"
	"git.home.luguber.info/inful/policygen/internal/markdown"
)

func TestGenerateMinimalPolicy(t *testing.T) {
	doc, markup := generate(t, baseSettings())

	assert.Equal(t, "Privacy Policy for Acme Shop", doc.Title)
	assert.Equal(t, []string{"introduction", "data_collection", "retention", "contact", "changes"}, doc.SectionIDs())
	assert.Equal(t, []string{
		"1. Introduction",
		"2. Data We Collect",
		"3. Data Retention",
		"4. Contact Us",
		"Changes to This Privacy Policy",
	}, headings(doc, 2))

	assert.True(t, strings.HasPrefix(markup, "# Privacy Policy for Acme Shop\n\n## 1. Introduction\n\n"))
	assert.NotContains(t, markup, "Cookies and Tracking")
	assert.NotContains(t, markup, "Third-Party Services")
	assert.NotContains(t, markup, "Your Rights")
	assert.NotContains(t, markup, "Children's Privacy")
	assert.True(t, strings.HasSuffix(markup, "**Effective Date: March 14, 2026**\n"))
}

func TestGenerateCookiesShiftNumbering(t *testing.T) {
	s := baseSettings()
	s.UseCookies = true
	s.CookieTypes = []CookieType{CookieEssential}

	doc, _ := generate(t, s)

	assert.Equal(t, []string{
		"1. Introduction",
		"2. Data We Collect",
		"3. Cookies and Tracking Technologies",
		"4. Data Retention",
		"5. Contact Us",
		"Changes to This Privacy Policy",
	}, headings(doc, 2))

	cookies := sectionMarkup(t, doc, SectionCookies)
	assert.Contains(t, cookies, "- **Essential cookies**: These cookies are necessary for the website to function properly")
	assert.Equal(t, 1, countBullets(cookies))
	assert.Contains(t, cookies, "### How to manage cookies")
}

func TestGenerateBothRightsBlocksInOrder(t *testing.T) {
	s := baseSettings()
	s.GDPRCompliance = true
	s.CCPACompliance = true

	doc, _ := generate(t, s)
	rights, ok := doc.Section(string(SectionRights))
	require.True(t, ok)
	assert.Equal(t, 3, rights.Ordinal)

	var headingCount int
	var lists []dm.Block
	for _, b := range rights.Blocks {
		switch {
		case b.Kind == dm.BlockHeading && b.Level == 2:
			headingCount++
		case b.Kind == dm.BlockBulletList:
			lists = append(lists, b)
		}
	}
	assert.Equal(t, 1, headingCount)
	require.Len(t, lists, 2)
	assert.Len(t, lists[0].Items, 6)
	assert.Len(t, lists[1].Items, 4)

	markup := sectionMarkup(t, doc, SectionRights)
	gdpr := strings.Index(markup, "### GDPR Data Protection Rights")
	ccpa := strings.Index(markup, "### CCPA Privacy Rights (California Residents)")
	require.NotEqual(t, -1, gdpr)
	require.NotEqual(t, -1, ccpa)
	assert.Less(t, gdpr, ccpa)
	assert.Contains(t, markup, "- **Right to access** - You have the right to request copies of your personal data.")
	assert.Contains(t, markup, "- **Right to non-discrimination** - We will not discriminate")
	for _, list := range lists {
		for _, item := range list.Items {
			require.Len(t, item, 2)
			assert.Equal(t, dm.InlineBold, item[0].Kind)
		}
	}
	assert.Equal(t, 2, strings.Count(markup, "To exercise any of these rights, please contact us."))
}

func TestGenerateSkipsEmptyThirdPartyCategories(t *testing.T) {
	s := baseSettings()
	s.ThirdPartyServices = map[ThirdPartyCategory][]string{
		ThirdPartyAnalytics: {"Google Analytics"},
		ThirdPartyPayment:   {},
	}

	doc, _ := generate(t, s)
	markup := sectionMarkup(t, doc, SectionThirdParty)

	assert.Equal(t, []string{"Analytics Services"}, headings(&dm.Document{Sections: []dm.Section{mustSection(t, doc, SectionThirdParty)}}, 3))
	assert.Contains(t, markup, "The services we use include: Google Analytics")
	assert.NotContains(t, markup, "Payment")
	assert.NotContains(t, markup, "### Other Services")
}

func mustSection(t *testing.T, doc *dm.Document, id SectionID) dm.Section {
	t.Helper()
	sec, ok := doc.Section(string(id))
	require.True(t, ok)
	return sec
}

func TestThirdPartyFollowsFixedCategoryOrder(t *testing.T) {
	s := baseSettings()
	s.ThirdPartyServices = map[ThirdPartyCategory][]string{
		ThirdPartyEmailMarketing: {"Mailchimp"},
		ThirdPartyHosting:        {"AWS", "Netlify"},
		ThirdPartyAnalytics:      {"Plausible"},
		ThirdPartyOther:          {"Intercom"},
	}
	s.OtherThirdPartyServices = "  A bespoke CRM  "

	for range 20 {
		doc, _ := generate(t, s)
		sec := mustSection(t, doc, SectionThirdParty)
		assert.Equal(t, []string{
			"Analytics Services",
			"Hosting Services",
			"Email Marketing Services",
			"Other Services",
			"Other Services",
		}, headings(&dm.Document{Sections: []dm.Section{sec}}, 3))
	}

	doc, _ := generate(t, s)
	markup := sectionMarkup(t, doc, SectionThirdParty)
	assert.Contains(t, markup, "The services we use include: AWS, Netlify")
	assert.Contains(t, markup, fallbackThirdParty+" The services we use include: Intercom")
	assert.Contains(t, markup, "### Other Services\n\nA bespoke CRM\n\n")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(markup), "share your personal information."))
}

func TestOtherServicesAloneEnableThirdPartySection(t *testing.T) {
	s := baseSettings()
	s.OtherThirdPartyServices = "Zendesk"

	doc, _ := generate(t, s)
	assert.Equal(t, 3, mustSection(t, doc, SectionThirdParty).Ordinal)
}

func TestIntroductionWithoutURL(t *testing.T) {
	s := baseSettings()
	s.WebsiteURL = "   "

	doc, _ := generate(t, s)
	intro := sectionMarkup(t, doc, SectionIntroduction)
	assert.Contains(t, intro, "when you visit our website.")
	assert.Contains(t, intro, "collected through our website, and/or any related services")
	assert.NotContains(t, intro, " at ")

	contact := sectionMarkup(t, doc, SectionContact)
	assert.Contains(t, contact, "- By visiting this page on our website: [Your Contact Page URL]")
}

func TestIntroductionWithURL(t *testing.T) {
	doc, _ := generate(t, baseSettings())
	intro := sectionMarkup(t, doc, SectionIntroduction)

	assert.Contains(t, intro, "At Acme Ltd, we respect your privacy")
	assert.Contains(t, intro, "when you visit our website at https://acme.example.")
	assert.Contains(t, intro, "through our website (https://acme.example), and/or")
}

func TestContactSection(t *testing.T) {
	s := baseSettings()
	s.WebsiteURL = "https://acme.example/"

	doc, _ := generate(t, s)
	contact := sectionMarkup(t, doc, SectionContact)

	assert.Contains(t, contact, "- By email: privacy@acme.example\n")
	assert.Contains(t, contact, "- By visiting this page on our website: https://acme.example/contact\n")
	assert.Contains(t, contact, "- By mail: Acme Ltd, Norway\n")
}

func TestMissingStringsBecomePlaceholders(t *testing.T) {
	doc, markup := generate(t, Settings{})

	assert.Equal(t, "Privacy Policy for [Website Name]", doc.Title)
	assert.Contains(t, markup, "At [Company Name], we respect")
	assert.Contains(t, markup, "- By email: [Company Email]")
	assert.Contains(t, markup, "- By mail: [Company Name], [Company Country]")
	assert.Equal(t, 0, countBullets(sectionMarkup(t, doc, SectionDataCollection)))
}

func TestDataCollectionOpeningVariesByWebsiteType(t *testing.T) {
	tests := []struct {
		websiteType WebsiteType
		clause      string
	}{
		{WebsiteECommerce, "when you make a purchase, register on our website"},
		{WebsiteSaaS, "when you use our services, register on our website"},
		{WebsiteBlog, "when you comment on our content, register on our website"},
		{WebsiteSocialMedia, "when you create an account, register on our website"},
		{WebsitePortfolio, "when you register on our website"},
		{WebsiteNews, "when you register on our website"},
		{WebsiteType("unknown"), "when you register on our website"},
	}
	for _, tt := range tests {
		t.Run(string(tt.websiteType), func(t *testing.T) {
			s := baseSettings()
			s.WebsiteType = tt.websiteType
			doc, _ := generate(t, s)
			assert.Contains(t, sectionMarkup(t, doc, SectionDataCollection), tt.clause)
		})
	}
}

func TestDataCollectedBulletsKeepOrderAndDuplicates(t *testing.T) {
	s := baseSettings()
	s.DataCollected = []DataCategory{DataSocialMediaProfiles, DataEmail, DataEmail, DataCategory("shoe_size")}

	doc, _ := generate(t, s)
	markup := sectionMarkup(t, doc, SectionDataCollection)

	assert.Contains(t, markup,
		"- **Social Media Profiles**: Information from your social media profiles when you connect them to our services\n"+
			"- **Email**: Your email address\n"+
			"- **Email**: Your email address\n"+
			"- **Shoe Size**: Information you provide to us\n")
	assert.Contains(t, markup, "### Information automatically collected")
}

func TestRetentionPhrase(t *testing.T) {
	tests := []struct {
		period RetentionPeriod
		want   string
	}{
		{Retention30Days, "a period of 30 days after"},
		{Retention180Days, "a period of 6 months after"},
		{RetentionIndefinite, "a period of indefinitely or until you request deletion after"},
		{RetentionPeriod("10_years"), "a period of 10 years after"},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			s := baseSettings()
			s.DataRetentionPeriod = tt.period
			doc, _ := generate(t, s)
			assert.Contains(t, sectionMarkup(t, doc, SectionRetention), tt.want)
		})
	}
}

func TestChildrenSection(t *testing.T) {
	s := baseSettings()
	s.ChildrenPolicy = true
	s.GDPRCompliance = true

	doc, _ := generate(t, s)
	children := mustSection(t, doc, SectionChildren)
	assert.Equal(t, 5, children.Ordinal)
	assert.Len(t, children.Blocks, 3)
	assert.Contains(t, sectionMarkup(t, doc, SectionChildren), "Children's Online Privacy Protection Act (COPPA)")
	assert.Equal(t, 6, mustSection(t, doc, SectionContact).Ordinal)
}

func TestEffectiveDate(t *testing.T) {
	s := baseSettings()
	d := NewDate(2025, time.January, 5)
	s.EffectiveDate = &d

	_, markup := generate(t, s)
	assert.Contains(t, markup, "**Effective Date: January 5, 2025**")

	s.EffectiveDate = &Date{}
	_, markup = generate(t, s)
	assert.Contains(t, markup, "**Effective Date: March 14, 2026**")
}

func TestGenerateIsDeterministic(t *testing.T) {
	s := baseSettings()
	s.UseCookies = true
	s.CookieTypes = []CookieType{CookieAnalytics, CookieEssential}
	s.ThirdPartyServices = map[ThirdPartyCategory][]string{
		ThirdPartyPayment:   {"Stripe"},
		ThirdPartyAnalytics: {"Hotjar"},
		ThirdPartySocial:    {"Facebook Login"},
	}
	s.GDPRCompliance = true

	_, first := generate(t, s)
	for range 25 {
		_, again := generate(t, s)
		require.Equal(t, first, again)
	}
}

func TestGenerateDoesNotModifySettings(t *testing.T) {
	s := baseSettings()
	s.UseCookies = false
	s.CookieTypes = []CookieType{CookieAdvertising}
	s.ThirdPartyServices = map[ThirdPartyCategory][]string{ThirdPartyHosting: {"AWS"}}

	before := baseSettings()
	before.CookieTypes = []CookieType{CookieAdvertising}
	before.ThirdPartyServices = map[ThirdPartyCategory][]string{ThirdPartyHosting: {"AWS"}}

	doc, _ := generate(t, s)
	assert.False(t, doc.SectionIDs()[2] == string(SectionCookies))
	assert.Equal(t, before, s)
}

func TestCookieTypesIgnoredWithoutConsentGate(t *testing.T) {
	s := baseSettings()
	s.CookieTypes = []CookieType{CookieEssential}

	doc, _ := generate(t, s)
	_, ok := doc.Section(string(SectionCookies))
	assert.False(t, ok)

	s.UseCookies = true
	s.CookieTypes = nil
	doc, _ = generate(t, s)
	_, ok = doc.Section(string(SectionCookies))
	assert.False(t, ok)
}

func TestEveryEnumeratedTokenRenders(t *testing.T) {
	s := baseSettings()
	s.DataCollected = DataCategories
	s.UseCookies = true
	s.CookieTypes = CookieTypes
	s.ThirdPartyServices = map[ThirdPartyCategory][]string{}
	for _, c := range ThirdPartyCategories {
		s.ThirdPartyServices[c] = []string{"Service " + Label(c)}
	}

	for _, wt := range WebsiteTypes {
		for _, rp := range RetentionPeriods {
			s.WebsiteType = wt
			s.DataRetentionPeriod = rp
			doc, markup := generate(t, s)

			require.Len(t, doc.Sections, 7)
			assert.Equal(t, len(DataCategories), countBullets(sectionMarkup(t, doc, SectionDataCollection)))
			assert.Equal(t, len(CookieTypes), countBullets(sectionMarkup(t, doc, SectionCookies)))
			assert.NotContains(t, markup, fallbackDataExplanation)
			assert.NotContains(t, markup, fallbackCookieExplanation)
			assert.NotContains(t, markup, "_")
		}
	}
}

func TestUnknownTokensFallBack(t *testing.T) {
	s := baseSettings()
	s.DataCollected = []DataCategory{"biometrics"}
	s.UseCookies = true
	s.CookieTypes = []CookieType{"session_replay"}

	doc, _ := generate(t, s)
	assert.Contains(t, sectionMarkup(t, doc, SectionDataCollection), "- **Biometrics**: Information you provide to us")
	assert.Contains(t, sectionMarkup(t, doc, SectionCookies), "- **Session Replay cookies**: Cookies used on our website for various purposes.")
}

func TestFreeTextCannotInjectStructure(t *testing.T) {
	s := baseSettings()
	s.WebsiteName = "Acme\n# Second Title ##"
	s.CompanyName = "Acme Ltd\n\n## 2. Fake Section"
	s.CompanyCountry = "Norway\n- injected bullet"
	s.UseCookies = true
	s.ThirdPartyServices = map[ThirdPartyCategory][]string{
		ThirdPartyAnalytics: {"Tracker\r\n## 7. Hidden", "*bold*"},
	}
	s.OtherThirdPartyServices = "Foo\n\n## 9. Bogus\n\n1. listed"
	s.GDPRCompliance = true
	s.ChildrenPolicy = true

	doc, markup := generate(t, s)
	found := markdown.ExtractHeadings([]byte(markup))

	var titles, sections []string
	for _, h := range found {
		switch h.Level {
		case 1:
			titles = append(titles, h.Text)
		case 2:
			sections = append(sections, h.Text)
		}
	}
	assert.Equal(t, []string{"Privacy Policy for Acme # Second Title ##"}, titles)
	require.Len(t, sections, len(doc.Sections))
	for i, title := range sections[:len(sections)-1] {
		assert.True(t, strings.HasPrefix(title, strconv.Itoa(i+1)+". "), "section %d is %q", i+1, title)
	}
	assert.Equal(t, "Changes to This Privacy Policy", sections[len(sections)-1])

	assert.Equal(t, 3, countBullets(sectionMarkup(t, doc, SectionContact)))
	assert.Contains(t, markup, "Foo ## 9. Bogus 1. listed")
	assert.Contains(t, markup, `\*bold\*`)
}
