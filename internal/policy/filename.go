package policy

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	unsafeFileChars = strings.NewReplacer(`"`, "", `\`, "", "/", "")
)

// DownloadFilename derives the attachment name for a rendered policy, e.g.
// "My Shop" and ".html" give "my-shop-privacy-policy.html".
func DownloadFilename(websiteName, ext string) string {
	base := strings.TrimSpace(unsafeFileChars.Replace(strings.ToLower(websiteName)))
	base = whitespaceRun.ReplaceAllString(base, "-")
	if base == "" {
		return "privacy-policy" + ext
	}
	return base + "-privacy-policy" + ext
}
