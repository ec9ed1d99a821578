package service

import (
	"git.home.luguber.info/inful/policygen/internal/policy"
	"git.home.luguber.info/inful/policygen/internal/render"
)

// Choice is one selectable token with its display label.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FormOptions describes the closed choice sets of the questionnaire.
type FormOptions struct {
	WebsiteTypes         []Choice            `json:"websiteTypes"`
	DataCategories       []Choice            `json:"dataCategories"`
	RetentionPeriods     []Choice            `json:"retentionPeriods"`
	CookieTypes          []Choice            `json:"cookieTypes"`
	ThirdPartyCategories []Choice            `json:"thirdPartyCategories"`
	ThirdPartyServices   map[string][]string `json:"thirdPartyServices"`
	Formats              []string            `json:"formats"`
}

func choices[T ~string](tokens []T) []Choice {
	out := make([]Choice, len(tokens))
	for i, t := range tokens {
		out[i] = Choice{Value: string(t), Label: policy.Label(t)}
	}
	return out
}

// FormOptions returns the token sets and the suggested services per
// third-party category.
func (s *PolicyService) FormOptions() FormOptions {
	services := make(map[string][]string)
	for k, v := range s.generator.Catalog().ServiceOptions() {
		services[string(k)] = v
	}
	return FormOptions{
		WebsiteTypes:         choices(policy.WebsiteTypes),
		DataCategories:       choices(policy.DataCategories),
		RetentionPeriods:     choices(policy.RetentionPeriods),
		CookieTypes:          choices(policy.CookieTypes),
		ThirdPartyCategories: choices(policy.ThirdPartyCategories),
		ThirdPartyServices:   services,
		Formats:              policy.Strings(render.Formats),
	}
}
