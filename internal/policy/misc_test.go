package policy

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDownloadFilename(t *testing.T) {
	tests := []struct {
		name, ext, want string
	}{
		{"My Shop", ".html", "my-shop-privacy-policy.html"},
		{"  Acme   Web\tStore ", ".txt", "acme-web-store-privacy-policy.txt"},
		{`Bad "Name"/Path\x`, ".md", "bad-namepathx-privacy-policy.md"},
		{`Foo/Bar "X"`, ".html", "foobar-x-privacy-policy.html"},
		{`a \ b / c`, ".txt", "a-b-c-privacy-policy.txt"},
		{`"/\"`, ".md", "privacy-policy.md"},
		{`" Quoted / "`, ".md", "quoted-privacy-policy.md"},
		{"", ".html", "privacy-policy.html"},
		{"   ", ".md", "privacy-policy.md"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DownloadFilename(tt.name, tt.ext), tt.name)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-12-01")
	require.NoError(t, err)
	assert.Equal(t, "December 1, 2025", d.Display())
	assert.Equal(t, "2025-12-01", d.String())

	d, err = ParseDate("2025-12-01T23:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.December, 1), d)

	_, err = ParseDate("01/12/2025")
	assert.Error(t, err)
}

func TestSettingsDecoding(t *testing.T) {
	const doc = `
websiteName: Acme
websiteUrl: https://acme.example
websiteType: saas
dataCollected: [name, ip_address]
dataRetentionPeriod: 2_years
useCookies: true
cookieTypes: [analytics]
thirdPartyServices:
  analytics: [Plausible]
effectiveDate: "2025-06-30"
`
	var s Settings
	require.NoError(t, yaml.Unmarshal([]byte(doc), &s))
	assert.Equal(t, WebsiteSaaS, s.WebsiteType)
	assert.Equal(t, []DataCategory{DataName, DataIPAddress}, s.DataCollected)
	assert.Equal(t, []string{"Plausible"}, s.ThirdPartyServices[ThirdPartyAnalytics])
	require.NotNil(t, s.EffectiveDate)
	assert.Equal(t, "June 30, 2025", s.EffectiveDate.Display())

	var fromJSON Settings
	require.NoError(t, json.Unmarshal([]byte(`{"websiteName":"Acme","effectiveDate":"2025-06-30T10:00:00Z","gdprCompliance":true}`), &fromJSON))
	assert.True(t, fromJSON.GDPRCompliance)
	assert.Equal(t, NewDate(2025, time.June, 30), *fromJSON.EffectiveDate)

	err := json.Unmarshal([]byte(`{"effectiveDate":"yesterday"}`), &fromJSON)
	assert.Error(t, err)
}
