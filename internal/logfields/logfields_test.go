package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name string
		key  string
		attr slog.Attr
	}{
		{"Method", KeyMethod, Method("POST")},
		{"Path", KeyPath, Path("/api/generate-policy")},
		{"RequestID", KeyRequestID, RequestID("rid")},
		{"Format", KeyFormat, Format("html")},
		{"Section", KeySection, Section("cookies")},
		{"Website", KeyWebsite, Website("Acme")},
		{"Fingerprint", KeyFingerprint, Fingerprint("abc")},
		{"GenerationID", KeyGeneration, GenerationID("g1")},
	}
	for _, c := range cases {
		if c.attr.Key != c.key {
			t.Errorf("%s: key = %q, want %q", c.name, c.attr.Key, c.key)
		}
	}
}

func TestValueHelpers(t *testing.T) {
	if got := Status(404).Value.Int64(); got != 404 {
		t.Errorf("Status value = %d", got)
	}
	if got := Ordinal(3).Value.Int64(); got != 3 {
		t.Errorf("Ordinal value = %d", got)
	}
	if got := Duration(1500 * time.Microsecond).Value.Float64(); got != 1.5 {
		t.Errorf("Duration value = %v, want 1.5", got)
	}
	if got := Error(nil).Value.String(); got != "" {
		t.Errorf("Error(nil) = %q", got)
	}
	if got := Error(errors.New("boom")).Value.String(); got != "boom" {
		t.Errorf("Error value = %q", got)
	}
}
