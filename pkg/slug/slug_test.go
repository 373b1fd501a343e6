package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Computer Science", "computer-science"},
		{"J. Doe", "j-doe"},
		{"j doe", "j-doe"},
		{"  Marie  Curie  ", "marie-curie"},
		{"O'Brien", "o-brien"},
		{"García", "garcia"},
		{"Müller", "muller"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.input))
		})
	}
}

func TestGenerate_CollapsesVariants(t *testing.T) {
	// Different spellings of the same professor must share one key.
	variants := []string{"J. Doe", "J  Doe", "j doe", "J-DOE"}
	for _, v := range variants {
		assert.Equal(t, "j-doe", Generate(v), "variant %q", v)
	}
}
