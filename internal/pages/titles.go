package pages

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	saleBadge = "Скидка!"
	currency  = "₽"
)

// CatalogCardTitle extracts the product name from the rendered text of a
// catalog card. Cards on sale start with the sale badge; a first line
// holding a price means the card has no name.
func CatalogCardTitle(text string) string {
	lines := cardLines(text)
	if len(lines) == 0 {
		return ""
	}
	first := lines[0]
	switch {
	case strings.Contains(first, currency):
		return ""
	case first == saleBadge && len(lines) > 1:
		return lines[1]
	default:
		return first
	}
}

// RelatedCardTitle extracts the product name from a related product card:
// the first line when the second is the price, the second line otherwise.
func RelatedCardTitle(text string) string {
	lines := cardLines(text)
	switch {
	case len(lines) == 0:
		return ""
	case len(lines) == 1:
		return lines[0]
	case strings.Contains(lines[1], currency):
		return lines[0]
	default:
		return lines[1]
	}
}

// Capitalize upper-cases the first letter of s and lower-cases the rest.
// Section titles are upper-cased by the site stylesheet; this maps them
// back to product names.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func cardLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
