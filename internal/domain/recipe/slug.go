package recipe

import "strings"

// turkishASCII maps Turkish-specific letters to their ASCII neighbours so
// slugs stay URL safe. Both cases are listed because transliteration runs
// before lowercasing: ToLower would turn İ into a dotted i with a combining
// mark instead of plain ASCII i.
var turkishASCII = map[rune]rune{
	'ç': 'c', 'ğ': 'g', 'ı': 'i', 'ö': 'o', 'ş': 's', 'ü': 'u',
	'Ç': 'c', 'Ğ': 'g', 'İ': 'i', 'Ö': 'o', 'Ş': 's', 'Ü': 'u',
}

// Slugify derives a URL-safe identifier from a recipe title: Turkish letters
// are transliterated to ASCII, everything is lowercased, runs of
// non-alphanumerics collapse to a single hyphen and leading/trailing hyphens
// are trimmed. The result contains only [a-z0-9] and single hyphens, and
// Slugify is idempotent: Slugify(Slugify(t)) == Slugify(t).
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastHyphen := true // swallow leading separators
	for _, r := range title {
		if mapped, ok := turkishASCII[r]; ok {
			r = mapped
		}
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}
