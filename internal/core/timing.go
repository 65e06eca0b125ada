package core

import (
	"fmt"
	"sort"
	"time"
)

// DefaultAFKThreshold is the inter-arrival gap beyond which the operator is
// presumed away and a new active window begins.
const DefaultAFKThreshold = 300 * time.Second

// PromptIntervals computes the seconds between consecutive interactive
// prompts during active work, under a given allow list.
//
// Invocations without a timestamp are excluded. The remainder are sorted
// chronologically and partitioned into active windows wherever the gap to
// the previous invocation exceeds the AFK threshold. Within each window the
// gaps between consecutive prompted invocations are pooled across all
// windows. An invocation counts as prompted iff none of its extracted
// patterns is covered by the allow list.
func PromptIntervals(invocations []Invocation, allowList []string, afk time.Duration) []float64 {
	if afk <= 0 {
		afk = DefaultAFKThreshold
	}

	type timedCall struct {
		ts       time.Time
		prompted bool
	}
	var calls []timedCall
	for _, inv := range invocations {
		if !inv.Timed() {
			continue
		}
		prompted := !AnyAllowed(ExtractPatterns(inv.ToolName, inv.Command), allowList)
		calls = append(calls, timedCall{ts: inv.Timestamp, prompted: prompted})
	}
	if len(calls) == 0 {
		return nil
	}
	sort.Slice(calls, func(i, j int) bool { return calls[i].ts.Before(calls[j].ts) })

	var intervals []float64
	var lastPrompt time.Time
	havePrompt := false

	for i, call := range calls {
		if i > 0 && call.ts.Sub(calls[i-1].ts) > afk {
			// New window: prompt gaps never span an AFK break.
			havePrompt = false
		}
		if !call.prompted {
			continue
		}
		if havePrompt {
			intervals = append(intervals, call.ts.Sub(lastPrompt).Seconds())
		}
		lastPrompt = call.ts
		havePrompt = true
	}

	return intervals
}

// Median returns the median of the values: the mean of the two central
// values for an even count, 0 for an empty pool.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// FormatInterval renders a duration in seconds using the most readable
// unit: seconds below a minute, minutes below an hour, else hours.
func FormatInterval(seconds float64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%.1f sec", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.1f min", seconds/60)
	default:
		return fmt.Sprintf("%.1f hr", seconds/3600)
	}
}
