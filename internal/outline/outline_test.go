package outline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/policygen/internal/policy"
	"git.home.luguber.info/inful/policygen/internal/render"
)

var now = time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

func renderPolicy(t *testing.T, f render.Format) *render.Artifact {
	t.Helper()
	s := policy.Settings{
		WebsiteName:         "Acme",
		WebsiteURL:          "https://acme.example",
		WebsiteType:         policy.WebsiteSaaS,
		CompanyName:         "Acme Ltd",
		CompanyEmail:        "privacy@acme.example",
		CompanyCountry:      "Norway",
		DataCollected:       []policy.DataCategory{policy.DataName},
		DataRetentionPeriod: policy.Retention1Year,
		UseCookies:          true,
		CookieTypes:         []policy.CookieType{policy.CookieEssential},
		CCPACompliance:      true,
	}
	doc := policy.NewGenerator(nil).Generate(s, now)
	art, err := render.New(render.Options{MarkdownHeader: true, ProductName: "PolicyGen"}).
		Render(doc, render.Meta{WebsiteName: s.WebsiteName, EffectiveDate: "2026-03-14"}, f)
	require.NoError(t, err)
	return art
}

func assertContiguous(t *testing.T, r *Report) {
	t.Helper()
	next := 1
	for _, e := range r.Sections() {
		if e.Ordinal == 0 {
			continue
		}
		assert.Equal(t, next, e.Ordinal, e.Title)
		next++
	}
	assert.Greater(t, next, 1)
}

func TestFromMarkdownGeneratedPolicy(t *testing.T) {
	art := renderPolicy(t, render.FormatMarkdown)

	r, err := FromMarkdown(art.Body)
	require.NoError(t, err)
	assert.True(t, r.OK(), "%v", r.Issues)
	assert.Equal(t, "Privacy Policy for Acme", r.Title)
	assert.Equal(t, "Introduction", r.Sections()[0].Title)
	assertContiguous(t, r)

	require.NotNil(t, r.Verified)
	assert.True(t, *r.Verified)
	assert.Equal(t, art.Fingerprint, r.Declared)
}

func TestFromMarkdownPlainText(t *testing.T) {
	r, err := FromMarkdown(renderPolicy(t, render.FormatText).Body)
	require.NoError(t, err)
	assert.True(t, r.OK())
	assert.Nil(t, r.Verified)
	assertContiguous(t, r)
}

func TestFromMarkdownDetectsTampering(t *testing.T) {
	art := renderPolicy(t, render.FormatMarkdown)
	tampered := bytes.Replace(art.Body, []byte("Acme Ltd"), []byte("Other Ltd"), 1)

	r, err := FromMarkdown(tampered)
	require.NoError(t, err)
	require.NotNil(t, r.Verified)
	assert.False(t, *r.Verified)
	require.Len(t, r.Issues, 1)
	assert.Equal(t, IssueFingerprintMismatch, r.Issues[0].Kind)
}

func TestFromHTMLGeneratedPolicy(t *testing.T) {
	art := renderPolicy(t, render.FormatHTML)

	r, err := FromHTML(bytes.NewReader(art.Body))
	require.NoError(t, err)
	assert.True(t, r.OK(), "%v", r.Issues)
	assert.Equal(t, "Privacy Policy for Acme", r.Title)
	assert.Equal(t, art.Fingerprint, r.Declared)
	assert.Nil(t, r.Verified)
	assertContiguous(t, r)

	md, err := FromMarkdown(renderPolicy(t, render.FormatMarkdown).Body)
	require.NoError(t, err)
	assert.Equal(t, md.Entries, r.Entries)
}

func TestNumberingIssues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds []IssueKind
	}{
		{"contiguous", "# T\n\n## 1. A\n\n## 2. B\n\n## Changes\n", nil},
		{"gap", "# T\n\n## 1. A\n\n## 3. B\n", []IssueKind{IssueGap}},
		{"repeat", "# T\n\n## 1. A\n\n## 2. B\n\n## 2. C\n", []IssueKind{IssueRepeat}},
		{"starts late", "# T\n\n## 2. A\n", []IssueKind{IssueGap}},
		{"no title", "## 1. A\n", []IssueKind{IssueTitle}},
		{"two titles", "# T\n\n# U\n\n## 1. A\n", []IssueKind{IssueTitle}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := FromMarkdown([]byte(tt.input))
			require.NoError(t, err)
			var kinds []IssueKind
			for _, is := range r.Issues {
				kinds = append(kinds, is.Kind)
			}
			assert.Equal(t, tt.kinds, kinds)
		})
	}
}

func TestSplitOrdinal(t *testing.T) {
	n, title := splitOrdinal("12. Contact Us")
	assert.Equal(t, 12, n)
	assert.Equal(t, "Contact Us", title)

	n, title = splitOrdinal("Changes to This Privacy Policy")
	assert.Zero(t, n)
	assert.Equal(t, "Changes to This Privacy Policy", title)
}

func TestFromMarkdownUnclosedHeader(t *testing.T) {
	_, err := FromMarkdown([]byte("---\ntitle: x\n# body\n"))
	require.Error(t, err)
}

func TestFromFileDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "acme-privacy-policy.html")
	mdPath := filepath.Join(dir, "acme-privacy-policy.md")
	require.NoError(t, os.WriteFile(htmlPath, renderPolicy(t, render.FormatHTML).Body, 0o600))
	require.NoError(t, os.WriteFile(mdPath, renderPolicy(t, render.FormatMarkdown).Body, 0o600))

	h, err := FromFile(htmlPath)
	require.NoError(t, err)
	m, err := FromFile(mdPath)
	require.NoError(t, err)
	assert.Equal(t, h.Title, m.Title)
	assert.NotNil(t, m.Verified)

	_, err = FromFile(filepath.Join(dir, "missing.md"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to read policy file"))
}
