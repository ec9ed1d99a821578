// Package outline reads the heading structure back out of a produced policy
// and checks its section numbering.
package outline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// IssueKind classifies a finding.
type IssueKind string

const (
	IssueGap                 IssueKind = "gap"
	IssueRepeat              IssueKind = "repeat"
	IssueTitle               IssueKind = "title"
	IssueFingerprintMismatch IssueKind = "fingerprint_mismatch"
)

// Issue is one problem found in an outline.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Message string    `json:"message"`
}

// Entry is a heading of the policy. Ordinal is zero for unnumbered headings.
type Entry struct {
	Level   int    `json:"level"`
	Title   string `json:"title"`
	Ordinal int    `json:"ordinal,omitempty"`
}

// Report is the outline of one file.
type Report struct {
	Title    string  `json:"title"`
	Entries  []Entry `json:"entries"`
	Issues   []Issue `json:"issues,omitempty"`
	Declared string  `json:"fingerprint,omitempty"`
	// Verified is set when the declared fingerprint could be recomputed.
	Verified *bool `json:"verified,omitempty"`
}

// OK reports whether no issues were found.
func (r *Report) OK() bool { return len(r.Issues) == 0 }

// Sections returns the level-2 entries.
func (r *Report) Sections() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Level == 2 {
			out = append(out, e)
		}
	}
	return out
}

var numberedTitle = regexp.MustCompile(`^(\d+)\.\s+(.*)$`)

// splitOrdinal separates a leading "N. " from a heading title.
func splitOrdinal(title string) (int, string) {
	m := numberedTitle.FindStringSubmatch(strings.TrimSpace(title))
	if m == nil {
		return 0, strings.TrimSpace(title)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, strings.TrimSpace(title)
	}
	return n, m[2]
}

type heading struct {
	level int
	text  string
}

// build assembles a report from raw headings in document order.
func build(headings []heading) *Report {
	r := &Report{Entries: make([]Entry, 0, len(headings))}
	titles := 0
	for _, h := range headings {
		if h.level == 1 {
			titles++
			if titles == 1 {
				r.Title = strings.TrimSpace(h.text)
			}
			continue
		}
		e := Entry{Level: h.level, Title: strings.TrimSpace(h.text)}
		if h.level == 2 {
			e.Ordinal, e.Title = splitOrdinal(h.text)
		}
		r.Entries = append(r.Entries, e)
	}

	switch {
	case titles == 0:
		r.Issues = append(r.Issues, Issue{Kind: IssueTitle, Message: "document has no title heading"})
	case titles > 1:
		r.Issues = append(r.Issues, Issue{Kind: IssueTitle, Message: fmt.Sprintf("document has %d title headings", titles)})
	}
	r.Issues = append(r.Issues, checkNumbering(r.Entries)...)
	return r
}

// checkNumbering verifies numbered sections run 1..n without gaps or repeats.
func checkNumbering(entries []Entry) []Issue {
	var issues []Issue
	expected := 1
	for _, e := range entries {
		if e.Level != 2 || e.Ordinal == 0 {
			continue
		}
		switch {
		case e.Ordinal > expected:
			issues = append(issues, Issue{
				Kind:    IssueGap,
				Message: fmt.Sprintf("section %q is numbered %d, expected %d", e.Title, e.Ordinal, expected),
			})
		case e.Ordinal < expected:
			issues = append(issues, Issue{
				Kind:    IssueRepeat,
				Message: fmt.Sprintf("section %q repeats number %d", e.Title, e.Ordinal),
			})
			continue
		}
		expected = e.Ordinal + 1
	}
	return issues
}
