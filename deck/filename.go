package deck

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Filename derives a download filename from a presentation title.
// The title is NFKC-normalized, then reduced to letters, digits,
// spaces, hyphens and underscores; spaces become underscores.
func Filename(title string) string {
	normalized := norm.NFKC.String(title)

	var b strings.Builder
	for _, r := range normalized {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		case r == '-' || r == '_':
			b.WriteRune(r)
		}
	}

	name := b.String()
	if name == "" {
		name = "presentation"
	}
	return name + ".pptx"
}
