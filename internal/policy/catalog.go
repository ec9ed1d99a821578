package policy

import (
	"slices"
	"strings"
	"sync"
)

// Catalog holds the read-only phrase tables sections are rendered from.
// A Catalog is built once and never modified, so one value can serve any
// number of concurrent generations.
type Catalog struct {
	collectionContexts map[WebsiteType]string
	dataExplanations   map[DataCategory]string
	cookieExplanations map[CookieType]string
	retentionPhrases   map[RetentionPeriod]string
	thirdParty         map[ThirdPartyCategory]string
	serviceOptions     map[ThirdPartyCategory][]string
	gdprRights         []Right
	ccpaRights         []Right
}

// Right is one entry of a rights list.
type Right struct {
	Name        string
	Description string
}

const (
	fallbackDataExplanation   = "Information you provide to us"
	fallbackCookieExplanation = "Cookies used on our website for various purposes."
	fallbackThirdParty        = "We use additional third-party services to support the operation of our website."
)

// DefaultCatalog returns the shared catalog of English phrases.
var DefaultCatalog = sync.OnceValue(newCatalog)

type phrase[K ~string] struct {
	key  K
	text string
}

func table[K ~string](entries []phrase[K]) map[K]string {
	m := make(map[K]string, len(entries))
	for _, e := range entries {
		m[e.key] = e.text
	}
	return m
}

func newCatalog() *Catalog {
	return &Catalog{
		collectionContexts: table([]phrase[WebsiteType]{
			{WebsiteECommerce, "make a purchase, "},
			{WebsiteSaaS, "use our services, "},
			{WebsiteBlog, "comment on our content, "},
			{WebsiteSocialMedia, "create an account, "},
		}),
		dataExplanations: table([]phrase[DataCategory]{
			{DataName, "Your first and last name"},
			{DataEmail, "Your email address"},
			{DataPhone, "Your phone number"},
			{DataAddress, "Your mailing or billing address"},
			{DataPaymentInfo, "Your payment information (including credit card numbers, billing address, and other payment details)"},
			{DataIPAddress, "Your IP address"},
			{DataCookies, "Information stored in cookies on your device"},
			{DataLocation, "Your geographic location"},
			{DataDeviceInfo, "Information about your device, browser type, and operating system"},
			{DataBrowsingBehavior, "Information about how you browse our website, including pages visited and time spent"},
			{DataPurchaseHistory, "Information about your past purchases"},
			{DataSocialMediaProfiles, "Information from your social media profiles when you connect them to our services"},
			{DataOther, "Additional information you choose to share with us"},
		}),
		cookieExplanations: table([]phrase[CookieType]{
			{CookieEssential, "These cookies are necessary for the website to function properly and cannot be switched off in our systems. They are usually only set in response to actions made by you which amount to a request for services, such as logging in or filling in forms."},
			{CookieFunctionality, "These cookies enable the website to provide enhanced functionality and personalization. They may be set by us or by third-party providers whose services we have added to our pages."},
			{CookieAnalytics, "These cookies allow us to count visits and traffic sources so we can measure and improve the performance of our site. They help us to know which pages are the most and least popular and see how visitors move around the site."},
			{CookieAdvertising, "These cookies may be set through our site by our advertising partners. They may be used by those companies to build a profile of your interests and show you relevant advertisements on other sites."},
			{CookieThirdParty, "These cookies are set by third-party services that appear on our pages. They may be used for a variety of purposes including advertising, analytics, and social media integration."},
			{CookieOther, "Additional cookie types used for specific functionality on our website."},
		}),
		retentionPhrases: table([]phrase[RetentionPeriod]{
			{Retention30Days, "30 days"},
			{Retention90Days, "90 days"},
			{Retention180Days, "6 months"},
			{Retention1Year, "1 year"},
			{Retention2Years, "2 years"},
			{Retention5Years, "5 years"},
			{RetentionIndefinite, "indefinitely or until you request deletion"},
		}),
		thirdParty: table([]phrase[ThirdPartyCategory]{
			{ThirdPartyAnalytics, "We use analytics services to understand how visitors interact with our website. These services may collect information such as how often users visit the site, what pages they visit, and what other sites they used prior to coming to our site."},
			{ThirdPartyAdvertising, "We work with advertising partners to deliver relevant advertisements to you. These services may collect information about your visits to our website and other websites to provide you with advertising based on your browsing activities and interests."},
			{ThirdPartyPayment, "We use payment processors to handle transactions securely on our website. These services collect payment information such as credit card details to process purchases."},
			{ThirdPartySocial, "We integrate social media features that allow you to share content or log in using your social media credentials. These services may track your activities on our website."},
			{ThirdPartyHosting, "Our website is hosted on servers provided by third-party services that maintain the infrastructure needed to keep our site available."},
			{ThirdPartyEmailMarketing, "We use email marketing services to send newsletters and other communications to users who have signed up for them."},
		}),
		serviceOptions: map[ThirdPartyCategory][]string{
			ThirdPartyAnalytics:      {"Google Analytics", "Hotjar", "Facebook Pixel", "Mixpanel", "Amplitude", "Plausible"},
			ThirdPartyAdvertising:    {"Google Ads", "Facebook Ads", "Twitter Ads", "LinkedIn Ads", "Bing Ads"},
			ThirdPartyPayment:        {"Stripe", "PayPal", "Square", "Apple Pay", "Google Pay", "Amazon Pay"},
			ThirdPartySocial:         {"Facebook Login", "Google Login", "Twitter Sharing", "LinkedIn Sharing", "Instagram Integration"},
			ThirdPartyHosting:        {"AWS", "Google Cloud", "Microsoft Azure", "Netlify", "Vercel", "Heroku"},
			ThirdPartyEmailMarketing: {"Mailchimp", "SendGrid", "Constant Contact", "ConvertKit", "Hubspot"},
			ThirdPartyOther:          {},
		},
		gdprRights: []Right{
			{"Right to access", "You have the right to request copies of your personal data."},
			{"Right to rectification", "You have the right to request that we correct any information you believe is inaccurate or complete information you believe is incomplete."},
			{"Right to erasure", "You have the right to request that we erase your personal data, under certain conditions."},
			{"Right to restrict processing", "You have the right to request that we restrict the processing of your personal data, under certain conditions."},
			{"Right to object to processing", "You have the right to object to our processing of your personal data, under certain conditions."},
			{"Right to data portability", "You have the right to request that we transfer the data that we have collected to another organization, or directly to you, under certain conditions."},
		},
		ccpaRights: []Right{
			{"Right to know", "You have the right to request that we disclose information to you about our collection and use of your personal information over the past 12 months."},
			{"Right to delete", "You have the right to request that we delete any of your personal information that we collected from you and retained, subject to certain exceptions."},
			{"Right to opt-out of sales", "If we sell your personal information, you have the right to opt out of the sale of your information."},
			{"Right to non-discrimination", "We will not discriminate against you for exercising any of your CCPA rights."},
		},
	}
}

// CollectionContext returns the website-type specific clause of the data
// collection opening sentence, including its trailing ", ". Types without a
// specific clause yield "".
func (c *Catalog) CollectionContext(t WebsiteType) string {
	return c.collectionContexts[t]
}

func (c *Catalog) DataExplanation(d DataCategory) string {
	if text, ok := c.dataExplanations[d]; ok {
		return text
	}
	return fallbackDataExplanation
}

func (c *Catalog) CookieExplanation(t CookieType) string {
	if text, ok := c.cookieExplanations[t]; ok {
		return text
	}
	return fallbackCookieExplanation
}

// RetentionPhrase returns the human form of a retention period. Unknown
// periods are shown with underscores replaced by spaces.
func (c *Catalog) RetentionPhrase(p RetentionPeriod) string {
	if text, ok := c.retentionPhrases[p]; ok {
		return text
	}
	return strings.ReplaceAll(string(p), "_", " ")
}

func (c *Catalog) ThirdPartyDescription(t ThirdPartyCategory) string {
	if text, ok := c.thirdParty[t]; ok {
		return text
	}
	return fallbackThirdParty
}

// ServiceOptions returns a copy of the suggested service names per category.
func (c *Catalog) ServiceOptions() map[ThirdPartyCategory][]string {
	out := make(map[ThirdPartyCategory][]string, len(c.serviceOptions))
	for k, v := range c.serviceOptions {
		out[k] = slices.Clone(v)
	}
	return out
}

func (c *Catalog) GDPRRights() []Right { return slices.Clone(c.gdprRights) }
func (c *Catalog) CCPARights() []Right { return slices.Clone(c.ccpaRights) }

