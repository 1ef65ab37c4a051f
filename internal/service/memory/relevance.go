package memory

import (
	"strings"

	"github.com/sandevgo/memobot/internal/core"
)

// MaxRelevant caps the number of memories FindRelevant returns.
const MaxRelevant = 3

// Tokenize lower-cases s and splits it on single spaces. Runs of spaces
// produce empty tokens; those are kept and match anything in TokensOverlap.
func Tokenize(s string) []string {
	return strings.Split(strings.ToLower(s), " ")
}

// TokensOverlap reports whether some query token and some memory token are
// substrings of one another, in either direction.
func TokensOverlap(queryTokens, memoryTokens []string) bool {
	for _, q := range queryTokens {
		for _, m := range memoryTokens {
			if strings.Contains(m, q) || strings.Contains(q, m) {
				return true
			}
		}
	}
	return false
}

// FindRelevant returns up to MaxRelevant memories that share vocabulary with
// query, in storage order. There is no scoring: a memory either matches or not.
func FindRelevant(query string, memories []core.Memory) []core.Memory {
	if len(memories) == 0 {
		return nil
	}

	queryTokens := Tokenize(query)
	relevant := make([]core.Memory, 0, MaxRelevant)
	for _, m := range memories {
		if !TokensOverlap(queryTokens, Tokenize(m.Text)) {
			continue
		}
		relevant = append(relevant, m)
		if len(relevant) == MaxRelevant {
			break
		}
	}
	return relevant
}
