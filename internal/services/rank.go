package services

import (
	"sort"

	"kicksranker/internal/domain"
)

// Rank orders opportunities and keeps the first n. The input is not modified.
//
// RankByType puts collaborations ahead of every other type; RankByPriority
// orders by configured pattern priority. Both break ties on price increase,
// highest first, and otherwise keep input order.
func Rank(opps []domain.Opportunity, mode domain.RankMode, n int) []domain.Opportunity {
	out := make([]domain.Opportunity, len(opps))
	copy(out, opps)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if mode == domain.RankByPriority {
			if a.Priority != b.Priority {
				return a.Priority < b.Priority
			}
		} else {
			ac, bc := a.PatternType == domain.Collab, b.PatternType == domain.Collab
			if ac != bc {
				return ac
			}
		}
		return a.PriceIncrease > b.PriceIncrease
	})

	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
