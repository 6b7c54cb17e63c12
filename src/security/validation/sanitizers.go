package validation

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var strictHTMLPolicy = bluemonday.StrictPolicy()

// SanitizeText strips markup and unprintable characters from a free-text
// value and trims it. The policy escapes entities, so they are unescaped
// again: "R&D" must stay "R&D" to match the training categories.
func SanitizeText(s string) string {
	cleaned := strictHTMLPolicy.Sanitize(StripUnprintable(s))
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// SanitizeCurrencyCode trims and upper-cases a currency code.
func SanitizeCurrencyCode(s string) string {
	return strings.ToUpper(SanitizeText(s))
}

// SanitizeForFormulaInjection prepends a single quote if the string starts
// with a formula character, so spreadsheet software treats it as text.
func SanitizeForFormulaInjection(s string) string {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > 0 {
		switch trimmed[0] {
		case '=', '+', '-', '@', '\t', '\r':
			return "'" + s
		}
	}
	return s
}

// StripUnprintable removes non-printable characters except tab, newline and
// carriage return.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
}
