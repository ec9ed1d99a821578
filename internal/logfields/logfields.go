// Package logfields holds the canonical structured-log keys so that every
// package spells request, document and section attributes the same way.
package logfields

import (
	"log/slog"
	"time"
)

const (
	KeyMethod      = "method"
	KeyPath        = "path"
	KeyStatus      = "status"
	KeyUserAgent   = "user_agent"
	KeyRemoteAddr  = "remote_addr"
	KeyRequestID   = "request_id"
	KeyFormat      = "format"
	KeySection     = "section"
	KeyOrdinal     = "ordinal"
	KeySections    = "sections"
	KeyWebsite     = "website"
	KeyFingerprint = "fingerprint"
	KeyFile        = "file"
	KeyGeneration  = "generation_id"
	KeyDurationMS  = "duration_ms"
	KeyError       = "error"
)

func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func UserAgent(ua string) slog.Attr    { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(a string) slog.Attr    { return slog.String(KeyRemoteAddr, a) }
func RequestID(id string) slog.Attr    { return slog.String(KeyRequestID, id) }
func Format(f string) slog.Attr        { return slog.String(KeyFormat, f) }
func Section(s string) slog.Attr       { return slog.String(KeySection, s) }
func Ordinal(n int) slog.Attr          { return slog.Int(KeyOrdinal, n) }
func Sections(n int) slog.Attr         { return slog.Int(KeySections, n) }
func Website(name string) slog.Attr    { return slog.String(KeyWebsite, name) }
func Fingerprint(fp string) slog.Attr  { return slog.String(KeyFingerprint, fp) }
func File(path string) slog.Attr       { return slog.String(KeyFile, path) }
func GenerationID(id string) slog.Attr { return slog.String(KeyGeneration, id) }

// Duration reports d in fractional milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
