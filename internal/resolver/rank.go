package resolver

import (
	"sort"

	"github.com/barhop/barhop/internal/domain"
)

// minCandidatePool bounds the candidate set handed to threshold filtering
// and, when that fails, to the oracle. The pool is never smaller than the
// requested limit.
const minCandidatePool = 40

// CandidatePool returns the effective candidate pool size for a limit.
func CandidatePool(limit int) int {
	if limit > minCandidatePool {
		return limit
	}
	return minCandidatePool
}

// SortByVolumeDesc returns a copy of markets sorted by descending reported
// volume. The sort is stable: equal volumes keep their original relative
// order so repeated runs over the same catalog produce identical output.
func SortByVolumeDesc(markets []domain.Market) []domain.Market {
	out := make([]domain.Market, len(markets))
	copy(out, markets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VolumeOrZero() > out[j].VolumeOrZero()
	})
	return out
}

// TopByVolume selects the k highest-volume markets while preserving their
// original catalog order in the returned slice.
func TopByVolume(markets []domain.Market, k int) []domain.Market {
	if k >= len(markets) {
		out := make([]domain.Market, len(markets))
		copy(out, markets)
		return out
	}

	idx := make([]int, len(markets))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return markets[idx[a]].VolumeOrZero() > markets[idx[b]].VolumeOrZero()
	})
	keep := idx[:k]
	sort.Ints(keep)

	out := make([]domain.Market, 0, k)
	for _, i := range keep {
		out = append(out, markets[i])
	}
	return out
}

// FilterConfident scores each candidate against the query and, when at least
// one clears MatchThreshold, returns the above-threshold candidates sorted by
// descending score with catalog order preserved among ties. Returns nil when
// no candidate is confident, signalling the caller to fall back.
func FilterConfident(query string, candidates []domain.Market) []domain.Market {
	return filterAbove(query, candidates, MatchThreshold)
}

func filterAbove(query string, candidates []domain.Market, threshold float64) []domain.Market {
	scores := make([]float64, len(candidates))
	best := 0.0
	for i, m := range candidates {
		scores[i] = Score(query, m.SearchText())
		if scores[i] > best {
			best = scores[i]
		}
	}
	if best <= threshold {
		return nil
	}

	idx := make([]int, len(candidates))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	out := make([]domain.Market, 0, len(candidates))
	for _, i := range idx {
		if scores[i] > threshold {
			out = append(out, candidates[i])
		}
	}
	return out
}

// Truncate caps markets at limit without copying.
func Truncate(markets []domain.Market, limit int) []domain.Market {
	if limit < len(markets) {
		return markets[:limit]
	}
	return markets
}
