package domain

import (
	"sort"

	"github.com/victorverma3/ktpdatabase/pkg/slug"
)

// Professor is identified by display name. Professors are created implicitly
// the first time a review names them under a subject; they are never deleted.
type Professor struct {
	Name string `json:"name"`
}

// ProfessorKey returns the canonical identity key for a professor display
// name. Reviews naming "J. Doe" and "j doe" collapse onto the same key, which
// keeps the directory from fragmenting on typos and case differences.
func ProfessorKey(name string) string {
	return slug.Generate(name)
}

// DedupeProfessors collapses a list of professor names onto canonical keys and
// returns one Professor per key, sorted by name for stable presentation. The
// first spelling seen for a key wins.
func DedupeProfessors(names []string) []Professor {
	seen := make(map[string]string, len(names))
	for _, name := range names {
		key := ProfessorKey(name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; !ok {
			seen[key] = name
		}
	}

	professors := make([]Professor, 0, len(seen))
	for _, name := range seen {
		professors = append(professors, Professor{Name: name})
	}
	sort.Slice(professors, func(i, j int) bool { return professors[i].Name < professors[j].Name })
	return professors
}
