package validation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
	"git.home.luguber.info/inful/policygen/internal/policy"
)

const validBody = `{
	"websiteName": "Acme",
	"websiteUrl": "https://acme.example",
	"websiteType": "e-commerce",
	"companyName": "Acme Ltd",
	"companyEmail": "privacy@acme.example",
	"companyCountry": "Norway",
	"dataCollected": ["name", "email"],
	"dataRetentionPeriod": "1_year",
	"useCookies": true,
	"cookieTypes": ["essential"],
	"thirdPartyServices": {"analytics": ["Google Analytics"], "payment": []},
	"gdprCompliance": true,
	"effectiveDate": "2026-01-15"
}`

func decode(t *testing.T, body string) *PolicyRequest {
	t.Helper()
	var req PolicyRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func TestValidateAcceptsValidRequest(t *testing.T) {
	req := decode(t, validBody)
	require.NoError(t, New().Validate(req))

	s := req.Settings()
	assert.Equal(t, policy.WebsiteECommerce, s.WebsiteType)
	assert.Equal(t, []policy.DataCategory{policy.DataName, policy.DataEmail}, s.DataCollected)
	assert.Equal(t, []string{"Google Analytics"}, s.ThirdPartyServices[policy.ThirdPartyAnalytics])
	require.NotNil(t, s.EffectiveDate)
	assert.Equal(t, policy.NewDate(2026, time.January, 15), *s.EffectiveDate)
}

func TestValidateAllowsEmptyURL(t *testing.T) {
	req := decode(t, validBody)
	empty := ""
	req.WebsiteURL = &empty
	assert.NoError(t, New().Validate(req))

	req.WebsiteURL = nil
	err := New().Validate(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Required at "websiteUrl"`)
}

func TestValidateReportsEveryViolation(t *testing.T) {
	req := decode(t, validBody)
	req.CompanyName = ""
	req.CompanyEmail = "not-an-email"
	req.WebsiteType = "casino"
	req.DataCollected = []string{"name", "dna"}
	req.CookieTypes = []string{"crumbs"}
	req.ThirdPartyServices = map[string][]string{"telemetry": {"X"}}
	req.EffectiveDate = "15/01/2026"
	req.Format = "pdf"

	err := New().Validate(req)
	require.Error(t, err)

	c, ok := errors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, errors.CategoryValidation, c.Category())

	msg := c.Message()
	assert.Regexp(t, `^Validation error: `, msg)
	for _, want := range []string{
		`Required at "companyName"`,
		`Invalid email at "companyEmail"`,
		`Invalid enum value. Expected 'e-commerce' | 'blog'`,
		`received 'casino' at "websiteType"`,
		`received 'dna' at "dataCollected[1]"`,
		`received 'crumbs' at "cookieTypes[0]"`,
		`received 'telemetry' at "thirdPartyServices[telemetry]"`,
		`Invalid date, expected YYYY-MM-DD at "effectiveDate"`,
		`received 'pdf' at "format"`,
	} {
		assert.Contains(t, msg, want)
	}

	fields, ok := c.Context().Get("fields")
	require.True(t, ok)
	assert.Len(t, fields, 9)
}

func TestValidateDataCollectedNeedsAnEntry(t *testing.T) {
	req := decode(t, validBody)
	req.DataCollected = []string{}
	err := New().Validate(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Array must contain at least 1 element(s) at "dataCollected"`)

	req.DataCollected = nil
	err = New().Validate(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Required at "dataCollected"`)
}

func TestValidateNil(t *testing.T) {
	err := New().Validate(nil)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestSettingsCopiesInput(t *testing.T) {
	req := decode(t, validBody)
	s := req.Settings()
	s.ThirdPartyServices[policy.ThirdPartyAnalytics][0] = "changed"
	assert.Equal(t, "Google Analytics", req.ThirdPartyServices["analytics"][0])
}
