package policy

// SectionID names a section of the policy.
type SectionID string

const (
	SectionIntroduction   SectionID = "introduction"
	SectionDataCollection SectionID = "data_collection"
	SectionCookies        SectionID = "cookies"
	SectionThirdParty     SectionID = "third_party"
	SectionRights         SectionID = "rights"
	SectionRetention      SectionID = "retention"
	SectionChildren       SectionID = "children"
	SectionContact        SectionID = "contact"
	SectionChanges        SectionID = "changes"
)

// CanonicalOrder is the order sections appear in when present. The changes
// section is always last and never numbered.
var CanonicalOrder = []SectionID{
	SectionIntroduction,
	SectionDataCollection,
	SectionCookies,
	SectionThirdParty,
	SectionRights,
	SectionRetention,
	SectionChildren,
	SectionContact,
	SectionChanges,
}

// Numbered reports whether the section carries an ordinal in its heading.
func (id SectionID) Numbered() bool { return id != SectionChanges }

// PlanEntry is one candidate section. Ordinal is zero when the section is
// absent or unnumbered.
type PlanEntry struct {
	ID      SectionID
	Present bool
	Ordinal int
}

// Plan is the selected and numbered section list of one generation, in
// canonical order. It contains every candidate, present or not.
type Plan []PlanEntry

// Select evaluates the section gates against s. The result is in canonical
// order and has no ordinals assigned.
func Select(s *Settings) []PlanEntry {
	gates := map[SectionID]bool{
		SectionIntroduction:   true,
		SectionDataCollection: true,
		SectionCookies:        s.UsesCookies(),
		SectionThirdParty:     s.HasThirdPartyServices(),
		SectionRights:         s.HasRights(),
		SectionRetention:      true,
		SectionChildren:       s.ChildrenPolicy,
		SectionContact:        true,
		SectionChanges:        true,
	}
	entries := make([]PlanEntry, 0, len(CanonicalOrder))
	for _, id := range CanonicalOrder {
		entries = append(entries, PlanEntry{ID: id, Present: gates[id]})
	}
	return entries
}

// Number assigns ordinals 1..N to the present, numbered entries in the order
// given. The input is not modified.
func Number(entries []PlanEntry) Plan {
	plan := make(Plan, len(entries))
	next := 1
	for i, e := range entries {
		e.Ordinal = 0
		if e.Present && e.ID.Numbered() {
			e.Ordinal = next
			next++
		}
		plan[i] = e
	}
	return plan
}

// NewPlan selects and numbers the sections for s.
func NewPlan(s *Settings) Plan { return Number(Select(s)) }

// Ordinal returns the ordinal of id, or zero when it is absent or unnumbered.
func (p Plan) Ordinal(id SectionID) int {
	for _, e := range p {
		if e.ID == id {
			return e.Ordinal
		}
	}
	return 0
}

// PresentIDs returns the ids of the present sections in document order.
func (p Plan) PresentIDs() []SectionID {
	var ids []SectionID
	for _, e := range p {
		if e.Present {
			ids = append(ids, e.ID)
		}
	}
	return ids
}
