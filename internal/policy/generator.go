package policy

import (
	"time"

	dm "git.home.luguber.info/inful/policygen/internal/docmodel"
)

// Generator renders policy documents from a shared Catalog.
type Generator struct {
	catalog *Catalog
}

// NewGenerator returns a generator using c, or the default catalog when c is nil.
func NewGenerator(c *Catalog) *Generator {
	if c == nil {
		c = DefaultCatalog()
	}
	return &Generator{catalog: c}
}

// Catalog returns the phrase tables the generator renders from.
func (g *Generator) Catalog() *Catalog { return g.catalog }

// EffectiveDate returns the settings' effective date, or the day of now when
// none is set.
func EffectiveDate(s *Settings, now time.Time) Date {
	if s.EffectiveDate != nil && !s.EffectiveDate.IsZero() {
		return *s.EffectiveDate
	}
	return DateOf(now)
}

// Generate assembles the policy for s. now is only consulted when s has no
// effective date. Generate never fails and never modifies s.
func (g *Generator) Generate(s Settings, now time.Time) *dm.Document {
	plan := NewPlan(&s)
	effective := EffectiveDate(&s, now)

	doc := &dm.Document{Title: DocumentTitle(&s)}
	for _, id := range plan.PresentIDs() {
		ordinal := plan.Ordinal(id)
		blocks := renderers[id](section{
			catalog:   g.catalog,
			settings:  &s,
			ordinal:   ordinal,
			effective: effective,
		})
		doc.Sections = append(doc.Sections, dm.Section{
			ID:      string(id),
			Ordinal: ordinal,
			Blocks:  blocks,
		})
	}
	return doc
}
