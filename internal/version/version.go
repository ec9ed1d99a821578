package version

// Version is set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/policygen/internal/version.Version=v1.0.0".
var Version = "unknown"

// Build metadata, also set through ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns a one-line version banner.
func String() string {
	return Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}
