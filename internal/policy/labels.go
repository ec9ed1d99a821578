package policy

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label turns a token into a display label: underscores become spaces and
// every word is title-cased, so "payment_info" becomes "Payment Info".
func Label[T ~string](token T) string {
	// A Caser carries state and must not be shared between goroutines.
	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(string(token), "_", " "))
}
