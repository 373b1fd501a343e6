package slug

import (
	"regexp"
	"strings"
)

var nonAlnumRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a lowercase, hyphen-separated key from the given name.
// Used both for subject slugs and as the canonical identity key for professor
// names, so that "J.  Doe", "j doe", and "J Doe" collapse to the same entry.
//
// Examples:
//   - "Computer Science"  → "computer-science"
//   - "J. Doe"            → "j-doe"
//   - "  Marie  Curie  "  → "marie-curie"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	// Fold the accented characters that show up in real professor rosters.
	replacer := strings.NewReplacer(
		"à", "a", "á", "a", "â", "a", "ä", "a",
		"è", "e", "é", "e", "ê", "e", "ë", "e",
		"ì", "i", "í", "i", "î", "i", "ï", "i",
		"ò", "o", "ó", "o", "ô", "o", "ö", "o",
		"ù", "u", "ú", "u", "û", "u", "ü", "u",
		"ñ", "n", "ç", "c",
	)
	s = replacer.Replace(s)

	s = nonAlnumRegexp.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}

	return s
}
