package validation

import (
	"strings"

	"git.home.luguber.info/inful/policygen/internal/policy"
)

// PolicyRequest is the wire form of a generation request, as posted by the
// questionnaire or read from a settings file. Format is only used by
// downloads.
type PolicyRequest struct {
	WebsiteName             string              `json:"websiteName" yaml:"websiteName" validate:"required,max=255"`
	WebsiteURL              *string             `json:"websiteUrl" yaml:"websiteUrl" validate:"required,max=255"`
	WebsiteType             string              `json:"websiteType" yaml:"websiteType" validate:"required,website_type"`
	CompanyName             string              `json:"companyName" yaml:"companyName" validate:"required,max=255"`
	CompanyEmail            string              `json:"companyEmail" yaml:"companyEmail" validate:"required,email,max=255"`
	CompanyCountry          string              `json:"companyCountry" yaml:"companyCountry" validate:"required,max=100"`
	DataCollected           []string            `json:"dataCollected" yaml:"dataCollected" validate:"required,min=1,dive,data_category"`
	DataRetentionPeriod     string              `json:"dataRetentionPeriod" yaml:"dataRetentionPeriod" validate:"required,retention_period"`
	UseCookies              bool                `json:"useCookies" yaml:"useCookies"`
	CookieTypes             []string            `json:"cookieTypes,omitempty" yaml:"cookieTypes,omitempty" validate:"omitempty,dive,cookie_type"`
	ThirdPartyServices      map[string][]string `json:"thirdPartyServices,omitempty" yaml:"thirdPartyServices,omitempty" validate:"omitempty,dive,keys,third_party_category,endkeys"`
	OtherThirdPartyServices string              `json:"otherThirdPartyServices,omitempty" yaml:"otherThirdPartyServices,omitempty"`
	GDPRCompliance          bool                `json:"gdprCompliance" yaml:"gdprCompliance"`
	CCPACompliance          bool                `json:"ccpaCompliance" yaml:"ccpaCompliance"`
	ChildrenPolicy          bool                `json:"childrenPolicy" yaml:"childrenPolicy"`
	EffectiveDate           string              `json:"effectiveDate,omitempty" yaml:"effectiveDate,omitempty" validate:"omitempty,policy_date"`
	Format                  string              `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,output_format"`
}

// Settings converts a validated request into generator input. Unparseable
// dates are dropped, so callers must validate first.
func (r *PolicyRequest) Settings() policy.Settings {
	s := policy.Settings{
		WebsiteName:             r.WebsiteName,
		WebsiteType:             policy.WebsiteType(r.WebsiteType),
		CompanyName:             r.CompanyName,
		CompanyEmail:            r.CompanyEmail,
		CompanyCountry:          r.CompanyCountry,
		DataCollected:           tokens[policy.DataCategory](r.DataCollected),
		DataRetentionPeriod:     policy.RetentionPeriod(r.DataRetentionPeriod),
		UseCookies:              r.UseCookies,
		CookieTypes:             tokens[policy.CookieType](r.CookieTypes),
		OtherThirdPartyServices: r.OtherThirdPartyServices,
		GDPRCompliance:          r.GDPRCompliance,
		CCPACompliance:          r.CCPACompliance,
		ChildrenPolicy:          r.ChildrenPolicy,
	}
	if r.WebsiteURL != nil {
		s.WebsiteURL = *r.WebsiteURL
	}
	if len(r.ThirdPartyServices) > 0 {
		s.ThirdPartyServices = make(map[policy.ThirdPartyCategory][]string, len(r.ThirdPartyServices))
		for k, v := range r.ThirdPartyServices {
			s.ThirdPartyServices[policy.ThirdPartyCategory(k)] = append([]string(nil), v...)
		}
	}
	if strings.TrimSpace(r.EffectiveDate) != "" {
		if d, err := policy.ParseDate(r.EffectiveDate); err == nil {
			s.EffectiveDate = &d
		}
	}
	return s
}

func tokens[T ~string](in []string) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = T(v)
	}
	return out
}
