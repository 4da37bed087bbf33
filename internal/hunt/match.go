package hunt

import (
	"strings"

	"golang.org/x/text/cases"
)

// normalize trims surrounding whitespace and case-folds. Passcodes, challenge
// answers and riddle answers all go through it.
func normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Matches reports whether input equals want under case folding.
func Matches(input, want string) bool {
	return normalize(input) == normalize(want)
}
