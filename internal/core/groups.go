package core

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// twoWordCLIs are commands whose first subcommand is part of the human
// mental model ("gh pr", "docker compose"), so level-1 patterns group under
// the two-token key. Table-driven: adding a CLI is a data change.
var twoWordCLIs = map[string]struct{}{
	"gh": {}, "docker": {}, "kubectl": {}, "npm": {}, "cargo": {},
}

// GroupEntry is one pattern enriched for human review.
type GroupEntry struct {
	PatternStats
	Examples     []string `json:"examples"`
	ChainedCount int      `json:"chained_count"`
}

// Group is a review bucket keyed by top-level command.
type Group struct {
	Key     string
	Entries []GroupEntry
}

// Volume is the total decision count across the group's patterns.
func (g Group) Volume() int {
	total := 0
	for _, e := range g.Entries {
		total += e.Approved + e.Denied
	}
	return total
}

// Groups is an ordered collection of review buckets, highest volume first.
// It marshals as a JSON object so the result document reads as a map of
// group key to pattern list while preserving display order.
type Groups []Group

// MarshalJSON renders the groups as an ordered JSON object.
func (gs Groups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range gs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(g.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		entries, err := json.Marshal(g.Entries)
		if err != nil {
			return nil, err
		}
		buf.Write(entries)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// BuildGroups buckets every pattern passing the filter into review groups,
// sorted by total decision volume descending. The grouping feeds review
// tooling only; recommendation selection is independent of it.
func BuildGroups(acc *Accumulator, filter *Filter) Groups {
	buckets := make(map[string][]GroupEntry)

	for _, pattern := range acc.SortedPatterns() {
		st := acc.Stats[pattern]
		examples := acc.Examples[pattern]
		if filter != nil && !filter.MatchesPattern(pattern, examples) {
			continue
		}
		key := groupKey(pattern, st.Level)
		buckets[key] = append(buckets[key], GroupEntry{
			PatternStats: *st,
			Examples:     examples,
			ChainedCount: acc.ChainCounts[pattern],
		})
	}

	groups := make(Groups, 0, len(buckets))
	for key, entries := range buckets {
		groups = append(groups, Group{Key: key, Entries: entries})
	}
	sort.Slice(groups, func(i, j int) bool {
		vi, vj := groups[i].Volume(), groups[j].Volume()
		if vi != vj {
			return vi > vj
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

func groupKey(pattern string, level int) string {
	inner, ok := InnerCommand(pattern)
	if !ok {
		return pattern
	}
	fields := strings.Fields(inner)
	if len(fields) == 0 {
		return pattern
	}
	if _, ok := twoWordCLIs[fields[0]]; ok && level == 1 && len(fields) >= 2 {
		return fields[0] + " " + fields[1]
	}
	return fields[0]
}
