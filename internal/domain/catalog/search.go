package catalog

import (
	"sort"
	"strings"

	"github.com/GriffinCanCode/PocketOS/internal/shared/types"
	"github.com/agnivade/levenshtein"
)

// Search returns apps whose display name matches query, best first.
// Substring matches rank ahead of fuzzy ones; typos within a third of the
// query length still match. limit <= 0 means no limit.
func (c *Catalog) Search(query string, limit int) []types.AppSummary {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []types.AppSummary{}
	}

	maxDist := len([]rune(q)) / 3
	if maxDist < 1 {
		maxDist = 1
	}

	type hit struct {
		score int
		order int
	}
	hits := make(map[int]hit)

	for i, d := range c.apps {
		name := strings.ToLower(d.DisplayName)
		if pos := strings.Index(name, q); pos >= 0 {
			hits[i] = hit{score: pos, order: i}
			continue
		}

		best := levenshtein.ComputeDistance(q, name)
		for _, word := range strings.Fields(name) {
			if dist := levenshtein.ComputeDistance(q, word); dist < best {
				best = dist
			}
		}
		if best <= maxDist {
			// Fuzzy hits always rank after substring hits
			hits[i] = hit{score: 1000 + best, order: i}
		}
	}

	ranked := make([]hit, 0, len(hits))
	for _, h := range hits {
		ranked = append(ranked, h)
	}
	sort.Slice(ranked, func(a, b int) bool {
		if ranked[a].score != ranked[b].score {
			return ranked[a].score < ranked[b].score
		}
		return ranked[a].order < ranked[b].order
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]types.AppSummary, 0, len(ranked))
	for _, h := range ranked {
		out = append(out, c.apps[h.order].AppSummary())
	}
	return out
}
