package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
	"git.home.luguber.info/inful/policygen/internal/outline"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	File string `arg:"" help:"Generated policy (.md, .txt or .html)" type:"path"`
	JSON bool   `help:"Print the report as JSON"`
}

func (c *CheckCmd) Run(g *Global, _ *CLI) error {
	report, err := outline.FromFile(c.File)
	if err != nil {
		return err
	}
	if c.JSON {
		enc := json.NewEncoder(g.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "encode report").Build()
		}
	} else {
		printReport(g.Stdout, report)
	}
	if !report.OK() {
		return errors.ValidationError(fmt.Sprintf("outline check found %d issue(s)", len(report.Issues))).
			WithContext("file", c.File).Build()
	}
	return nil
}

func printReport(w io.Writer, r *outline.Report) {
	_, _ = fmt.Fprintf(w, "Title: %s\n", r.Title)
	for _, e := range r.Entries {
		indent := strings.Repeat("  ", max(e.Level-1, 1))
		if e.Ordinal > 0 {
			_, _ = fmt.Fprintf(w, "%s%d. %s\n", indent, e.Ordinal, e.Title)
		} else {
			_, _ = fmt.Fprintf(w, "%s%s\n", indent, e.Title)
		}
	}
	if r.Declared != "" {
		state := "unverified"
		if r.Verified != nil && *r.Verified {
			state = "verified"
		} else if r.Verified != nil {
			state = "mismatch"
		}
		_, _ = fmt.Fprintf(w, "Fingerprint: %s (%s)\n", r.Declared, state)
	}
	if r.OK() {
		_, _ = fmt.Fprintln(w, "No issues found")
		return
	}
	_, _ = fmt.Fprintln(w, "Issues:")
	for _, issue := range r.Issues {
		_, _ = fmt.Fprintf(w, "  - [%s] %s\n", issue.Kind, issue.Message)
	}
}
