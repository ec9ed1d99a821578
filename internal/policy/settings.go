package policy

import "strings"

// Settings is the questionnaire answers a policy is generated from. The
// generator only reads it; nothing in this package mutates a Settings value
// or the slices and maps it references.
type Settings struct {
	WebsiteName             string                          `json:"websiteName" yaml:"websiteName"`
	WebsiteURL              string                          `json:"websiteUrl" yaml:"websiteUrl"`
	WebsiteType             WebsiteType                     `json:"websiteType" yaml:"websiteType"`
	CompanyName             string                          `json:"companyName" yaml:"companyName"`
	CompanyEmail            string                          `json:"companyEmail" yaml:"companyEmail"`
	CompanyCountry          string                          `json:"companyCountry" yaml:"companyCountry"`
	DataCollected           []DataCategory                  `json:"dataCollected" yaml:"dataCollected"`
	DataRetentionPeriod     RetentionPeriod                 `json:"dataRetentionPeriod" yaml:"dataRetentionPeriod"`
	UseCookies              bool                            `json:"useCookies" yaml:"useCookies"`
	CookieTypes             []CookieType                    `json:"cookieTypes,omitempty" yaml:"cookieTypes,omitempty"`
	ThirdPartyServices      map[ThirdPartyCategory][]string `json:"thirdPartyServices,omitempty" yaml:"thirdPartyServices,omitempty"`
	OtherThirdPartyServices string                          `json:"otherThirdPartyServices,omitempty" yaml:"otherThirdPartyServices,omitempty"`
	GDPRCompliance          bool                            `json:"gdprCompliance" yaml:"gdprCompliance"`
	CCPACompliance          bool                            `json:"ccpaCompliance" yaml:"ccpaCompliance"`
	ChildrenPolicy          bool                            `json:"childrenPolicy" yaml:"childrenPolicy"`
	EffectiveDate           *Date                           `json:"effectiveDate,omitempty" yaml:"effectiveDate,omitempty"`
}

// EffectiveCookieTypes returns the cookie types to describe. UseCookies gates
// the list: when it is false the cookie types are treated as empty.
func (s *Settings) EffectiveCookieTypes() []CookieType {
	if !s.UseCookies {
		return nil
	}
	return s.CookieTypes
}

// UsesCookies reports whether the cookies section applies.
func (s *Settings) UsesCookies() bool { return len(s.EffectiveCookieTypes()) > 0 }

// ThirdPartyGroups returns the non-empty service lists in fixed category
// order. Keys outside the known category set are ignored.
func (s *Settings) ThirdPartyGroups() []ThirdPartyGroup {
	var groups []ThirdPartyGroup
	for _, category := range ThirdPartyCategories {
		if services := s.ThirdPartyServices[category]; len(services) > 0 {
			groups = append(groups, ThirdPartyGroup{Category: category, Services: services})
		}
	}
	return groups
}

// OtherServices returns the free-text services, trimmed.
func (s *Settings) OtherServices() string { return strings.TrimSpace(s.OtherThirdPartyServices) }

// HasThirdPartyServices reports whether the third-party section applies.
func (s *Settings) HasThirdPartyServices() bool {
	return len(s.ThirdPartyGroups()) > 0 || s.OtherServices() != ""
}

// HasRights reports whether the rights section applies.
func (s *Settings) HasRights() bool { return s.GDPRCompliance || s.CCPACompliance }

// ThirdPartyGroup is one category of integrated services.
type ThirdPartyGroup struct {
	Category ThirdPartyCategory
	Services []string
}
