package policy

import (
	"strings"
	"testing"
	"time"

	dm "git.home.luguber.info/inful/policygen/internal/docmodel"
)

var fixedNow = time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)

func baseSettings() Settings {
	return Settings{
		WebsiteName:         "Acme Shop",
		WebsiteURL:          "https://acme.example",
		WebsiteType:         WebsiteECommerce,
		CompanyName:         "Acme Ltd",
		CompanyEmail:        "privacy@acme.example",
		CompanyCountry:      "Norway",
		DataCollected:       []DataCategory{DataName, DataEmail},
		DataRetentionPeriod: Retention1Year,
	}
}

func generate(t *testing.T, s Settings) (*dm.Document, string) {
	t.Helper()
	doc := NewGenerator(nil).Generate(s, fixedNow)
	return doc, dm.Markup(doc)
}

func sectionMarkup(t *testing.T, doc *dm.Document, id SectionID) string {
	t.Helper()
	sec, ok := doc.Section(string(id))
	if !ok {
		t.Fatalf("section %s not present", id)
	}
	return dm.Markup(&dm.Document{Sections: []dm.Section{sec}})
}

func headings(doc *dm.Document, level int) []string {
	var out []string
	for _, sec := range doc.Sections {
		for _, b := range sec.Blocks {
			if b.Kind == dm.BlockHeading && b.Level == level {
				out = append(out, dm.PlainText(b.Inlines))
			}
		}
	}
	return out
}

func countBullets(markup string) int {
	n := 0
	for _, line := range strings.Split(markup, "\n") {
		if strings.HasPrefix(line, "- ") {
			n++
		}
	}
	return n
}
