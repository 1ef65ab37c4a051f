package memory

import (
	"slices"
	"strings"

	"github.com/sandevgo/memobot/internal/core"
)

const DefaultSearchLimit = 5

// Search is the strict counterpart of FindRelevant: a memory matches only if
// it contains one of the query's words verbatim (case-insensitive). It returns
// at most limit memories and the total number that matched.
func Search(query string, memories []core.Memory, limit int) ([]core.Memory, int) {
	queryWords := strings.Fields(strings.ToLower(query))
	if len(queryWords) == 0 {
		return nil, 0
	}

	var found []core.Memory
	total := 0
	for _, m := range memories {
		memoryWords := strings.Fields(strings.ToLower(m.Text))
		if !slices.ContainsFunc(queryWords, func(w string) bool {
			return slices.Contains(memoryWords, w)
		}) {
			continue
		}
		total++
		if len(found) < limit {
			found = append(found, m)
		}
	}
	return found, total
}
