package core

import (
	"math"
	"sort"
)

// DefaultMaxRecommendations caps the action view.
const DefaultMaxRecommendations = 25

// Recommendation is one pattern proposed for the permanent allow list.
type Recommendation struct {
	Pattern      string   `json:"pattern"`
	Approved     int      `json:"approved"`
	Denied       int      `json:"denied"`
	Risk         Risk     `json:"risk"`
	FlowImpact   float64  `json:"flow_impact"`
	Level        int      `json:"level"`
	Category     Category `json:"category"`
	ChainedCount int      `json:"chained_count"`
}

// RankOptions controls candidate selection.
type RankOptions struct {
	// MaxDepth, when non-nil, excludes patterns with level > *MaxDepth.
	// The verb-gap level (-1) always passes a configured depth.
	MaxDepth *int
	// Limit caps the ranked output; <= 0 uses DefaultMaxRecommendations.
	Limit int
}

// Rank selects, scores, and orders allow-list candidates: low risk, not
// already covered, passing the active filter, within the configured depth.
// FlowImpact is the percentage of all invocations the pattern alone would
// have silently approved. Highest impact first.
func Rank(acc *Accumulator, filter *Filter, opts RankOptions) []Recommendation {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultMaxRecommendations
	}

	var recs []Recommendation
	for _, pattern := range acc.SortedPatterns() {
		st := acc.Stats[pattern]
		if st.AlreadyAllowed || st.Risk != RiskLow {
			continue
		}
		if filter != nil && !filter.MatchesPattern(pattern, acc.Examples[pattern]) {
			continue
		}
		if opts.MaxDepth != nil && st.Level > *opts.MaxDepth {
			continue
		}

		impact := 0.0
		if acc.Total > 0 {
			impact = round1(float64(st.Approved) / float64(acc.Total) * 100)
		}
		recs = append(recs, Recommendation{
			Pattern:      pattern,
			Approved:     st.Approved,
			Denied:       st.Denied,
			Risk:         st.Risk,
			FlowImpact:   impact,
			Level:        st.Level,
			Category:     ClassifyTool(pattern),
			ChainedCount: acc.ChainCounts[pattern],
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].FlowImpact > recs[j].FlowImpact
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
