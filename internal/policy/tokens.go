package policy

import "slices"

// WebsiteType classifies the site a policy is written for.
type WebsiteType string

const (
	WebsiteECommerce   WebsiteType = "e-commerce"
	WebsiteBlog        WebsiteType = "blog"
	WebsitePortfolio   WebsiteType = "portfolio"
	WebsiteSaaS        WebsiteType = "saas"
	WebsiteSocialMedia WebsiteType = "social_media"
	WebsiteNews        WebsiteType = "news"
	WebsiteForum       WebsiteType = "forum"
	WebsiteEducational WebsiteType = "educational"
	WebsiteOther       WebsiteType = "other"
)

// WebsiteTypes lists every recognized website type in display order.
var WebsiteTypes = []WebsiteType{
	WebsiteECommerce, WebsiteBlog, WebsitePortfolio, WebsiteSaaS, WebsiteSocialMedia,
	WebsiteNews, WebsiteForum, WebsiteEducational, WebsiteOther,
}

// DataCategory is a kind of personal data the site collects.
type DataCategory string

const (
	DataName                DataCategory = "name"
	DataEmail               DataCategory = "email"
	DataPhone               DataCategory = "phone"
	DataAddress             DataCategory = "address"
	DataPaymentInfo         DataCategory = "payment_info"
	DataIPAddress           DataCategory = "ip_address"
	DataCookies             DataCategory = "cookies"
	DataLocation            DataCategory = "location"
	DataDeviceInfo          DataCategory = "device_info"
	DataBrowsingBehavior    DataCategory = "browsing_behavior"
	DataPurchaseHistory     DataCategory = "purchase_history"
	DataSocialMediaProfiles DataCategory = "social_media_profiles"
	DataOther               DataCategory = "other"
)

// DataCategories lists every recognized data category in display order.
var DataCategories = []DataCategory{
	DataName, DataEmail, DataPhone, DataAddress, DataPaymentInfo, DataIPAddress, DataCookies,
	DataLocation, DataDeviceInfo, DataBrowsingBehavior, DataPurchaseHistory,
	DataSocialMediaProfiles, DataOther,
}

// RetentionPeriod is how long personal data is kept after the last interaction.
type RetentionPeriod string

const (
	Retention30Days     RetentionPeriod = "30_days"
	Retention90Days     RetentionPeriod = "90_days"
	Retention180Days    RetentionPeriod = "180_days"
	Retention1Year      RetentionPeriod = "1_year"
	Retention2Years     RetentionPeriod = "2_years"
	Retention5Years     RetentionPeriod = "5_years"
	RetentionIndefinite RetentionPeriod = "indefinite"
)

// RetentionPeriods lists every recognized retention period, shortest first.
var RetentionPeriods = []RetentionPeriod{
	Retention30Days, Retention90Days, Retention180Days, Retention1Year,
	Retention2Years, Retention5Years, RetentionIndefinite,
}

// CookieType is a purpose the site sets cookies for.
type CookieType string

const (
	CookieEssential     CookieType = "essential"
	CookieFunctionality CookieType = "functionality"
	CookieAnalytics     CookieType = "analytics"
	CookieAdvertising   CookieType = "advertising"
	CookieThirdParty    CookieType = "third_party"
	CookieOther         CookieType = "other"
)

// CookieTypes lists every recognized cookie type in display order.
var CookieTypes = []CookieType{
	CookieEssential, CookieFunctionality, CookieAnalytics, CookieAdvertising,
	CookieThirdParty, CookieOther,
}

// ThirdPartyCategory groups the external services a site integrates.
type ThirdPartyCategory string

const (
	ThirdPartyAnalytics      ThirdPartyCategory = "analytics"
	ThirdPartyAdvertising    ThirdPartyCategory = "advertising"
	ThirdPartyPayment        ThirdPartyCategory = "payment"
	ThirdPartySocial         ThirdPartyCategory = "social"
	ThirdPartyHosting        ThirdPartyCategory = "hosting"
	ThirdPartyEmailMarketing ThirdPartyCategory = "email_marketing"
	ThirdPartyOther          ThirdPartyCategory = "other"
)

// ThirdPartyCategories is the fixed order the third-party section is
// rendered in. It never depends on map iteration.
var ThirdPartyCategories = []ThirdPartyCategory{
	ThirdPartyAnalytics, ThirdPartyAdvertising, ThirdPartyPayment, ThirdPartySocial,
	ThirdPartyHosting, ThirdPartyEmailMarketing, ThirdPartyOther,
}

func (t WebsiteType) Valid() bool        { return slices.Contains(WebsiteTypes, t) }
func (t DataCategory) Valid() bool       { return slices.Contains(DataCategories, t) }
func (t RetentionPeriod) Valid() bool    { return slices.Contains(RetentionPeriods, t) }
func (t CookieType) Valid() bool         { return slices.Contains(CookieTypes, t) }
func (t ThirdPartyCategory) Valid() bool { return slices.Contains(ThirdPartyCategories, t) }

// Strings converts a token list to plain strings.
func Strings[T ~string](tokens []T) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = string(t)
	}
	return out
}
