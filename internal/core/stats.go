package core

import "sort"

// DefaultMaxExamples caps how many raw commands are kept per pattern.
const DefaultMaxExamples = 5

// PatternStats holds the per-pattern counters accumulated across all
// invocations whose extraction produced that pattern. A single invocation
// contributes to every level of its pattern series, so approved+denied
// across patterns exceeds the invocation count.
type PatternStats struct {
	Pattern        string `json:"pattern"`
	Approved       int    `json:"approved"`
	Denied         int    `json:"denied"`
	Level          int    `json:"level"`
	Destructive    bool   `json:"destructive"`
	AlreadyAllowed bool   `json:"already_allowed"`
	Risk           Risk   `json:"risk"`
}

// Accumulator folds invocations into per-pattern counters, example
// commands, and chained-command counts. It is built in a single pass and
// never mutated after Annotate.
type Accumulator struct {
	Stats       map[string]*PatternStats
	Examples    map[string][]string
	ChainCounts map[string]int
	Total       int

	maxExamples int
}

// Accumulate runs the single aggregation pass over the invocation snapshot.
// maxExamples <= 0 uses DefaultMaxExamples.
func Accumulate(invocations []Invocation, maxExamples int) *Accumulator {
	if maxExamples <= 0 {
		maxExamples = DefaultMaxExamples
	}
	acc := &Accumulator{
		Stats:       make(map[string]*PatternStats),
		Examples:    make(map[string][]string),
		ChainCounts: make(map[string]int),
		Total:       len(invocations),
		maxExamples: maxExamples,
	}

	for _, inv := range invocations {
		patterns := ExtractPatterns(inv.ToolName, inv.Command)
		chained := inv.ToolName == ShellTool && HasChainOperator(inv.Command)

		for _, p := range patterns {
			st, ok := acc.Stats[p.Pattern]
			if !ok {
				st = &PatternStats{Pattern: p.Pattern, Level: p.Level}
				acc.Stats[p.Pattern] = st
			}
			switch inv.Outcome {
			case OutcomeApproved:
				st.Approved++
			case OutcomeDenied:
				st.Denied++
			}
			if len(acc.Examples[p.Pattern]) < acc.maxExamples {
				acc.Examples[p.Pattern] = append(acc.Examples[p.Pattern], inv.Command)
			}
			if chained {
				acc.ChainCounts[p.Pattern]++
			}
		}
	}

	return acc
}

// Annotate marks each pattern destructive and/or already-allowed, then
// scores its risk tier. destructive may be nil, in which case the built-in
// detector is used directly.
func (acc *Accumulator) Annotate(effectiveAllow []string, destructive func(string) bool) {
	if destructive == nil {
		destructive = IsDestructive
	}
	for pattern, st := range acc.Stats {
		if inner, ok := InnerCommand(pattern); ok {
			st.Destructive = destructive(inner)
		}
		st.AlreadyAllowed = IsAllowed(pattern, effectiveAllow)
		st.Risk = ScoreRisk(st.Approved, st.Denied, st.Destructive)
	}
}

// SortedPatterns returns the pattern strings in lexical order, for
// deterministic iteration over the accumulation maps.
func (acc *Accumulator) SortedPatterns() []string {
	patterns := make([]string, 0, len(acc.Stats))
	for p := range acc.Stats {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)
	return patterns
}
