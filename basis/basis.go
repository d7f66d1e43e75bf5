// Package basis handles measurement-basis labels, the dictionary of local
// rotation unitaries, and loading of target wavefunctions recorded per basis.
package basis

import (
	"fmt"
	"strings"
	"unicode"
)

// Trivial is the computational-basis symbol; sites measured in it need no
// rotation.
const Trivial = "Z"

// Normalize strips all whitespace from raw basis labels. Labels are
// otherwise free-form token strings.
func Normalize(raw []string) []string {
	out := make([]string, len(raw))
	for i, label := range raw {
		out[i] = strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, label)
	}
	return out
}

// Validate checks that a label names one basis per site.
func Validate(label string, numVisible int) error {
	if len(label) != numVisible {
		return fmt.Errorf("basis %q names %d sites, model has %d", label, len(label), numVisible)
	}
	return nil
}

// NonTrivialSites returns the positions whose symbol differs from the
// computational basis. Symbols are compared by content, never by identity.
func NonTrivialSites(label string) []int {
	var sites []int
	for j := 0; j < len(label); j++ {
		if string(label[j]) != Trivial {
			sites = append(sites, j)
		}
	}
	return sites
}

// IsTrivial reports whether every site of the label is computational.
func IsTrivial(label string) bool {
	return len(NonTrivialSites(label)) == 0
}
