package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxRawCommands caps the direct-inspection view attached to
// filtered reports.
const DefaultMaxRawCommands = 20

// Options tunes one analysis run. The zero value gives the defaults.
type Options struct {
	// Include restricts shell patterns and raw commands to those whose
	// command starts with this prefix.
	Include string
	// Expr restricts patterns to those with an example command matching
	// this expression (regexp, substring fallback).
	Expr string
	// MaxDepth, when non-nil, excludes deeper patterns from recommendations.
	MaxDepth *int
	// MaxRecommendations caps the action view; <= 0 means the default 25.
	MaxRecommendations int
	// MaxExamples caps example commands kept per pattern; <= 0 means 5.
	MaxExamples int
	// MaxRawCommands caps the filtered inspection view; <= 0 means 20.
	MaxRawCommands int
	// AFKThreshold partitions active windows; <= 0 means 5 minutes.
	AFKThreshold time.Duration
	// Sessions is the number of transcripts the invocations came from,
	// carried through to the report.
	Sessions int
	// Destructive overrides the destructiveness predicate. Nil uses the
	// built-in detector.
	Destructive func(string) bool
}

// RawCommand is one shell command surfaced for direct operator inspection
// when a filter is active.
type RawCommand struct {
	Command string  `json:"command"`
	Outcome Outcome `json:"outcome"`
}

// Report is the single result document of an analysis run. All fields are
// derived from the invocation snapshot; nothing in here persists.
type Report struct {
	RunID       string    `json:"run_id,omitempty"`
	GeneratedAt time.Time `json:"generated_at,omitempty"`

	Sessions    int `json:"sessions"`
	TotalCalls  int `json:"total_calls"`
	AutoAllowed int `json:"auto_allowed"`
	Prompted    int `json:"prompted"`
	Denied      int `json:"denied"`

	PromptIntervalSeconds    float64 `json:"prompt_interval_seconds"`
	ProjectedIntervalSeconds float64 `json:"projected_interval_seconds"`
	PromptIntervalMinutes    float64 `json:"prompt_interval_minutes"`
	ProjectedIntervalMinutes float64 `json:"projected_interval_minutes"`
	PromptIntervalDisplay    string  `json:"prompt_interval_display"`
	ProjectedIntervalDisplay string  `json:"projected_interval_display"`

	Groups           Groups           `json:"groups"`
	Recommendations  []Recommendation `json:"recommendations"`
	CurrentAllowList []string         `json:"current_allow_list"`

	// RawCommands is only populated when a filter is active.
	RawCommands []RawCommand `json:"raw_commands,omitempty"`
}

// Empty reports whether the run had no usable input.
func (r *Report) Empty() bool {
	return r.TotalCalls == 0
}

// Analyze runs the full pipeline over an immutable invocation snapshot and
// the persisted allow rules. It never mutates the allow list.
func Analyze(invocations []Invocation, allowRules []string, opts Options) *Report {
	if len(invocations) == 0 {
		return &Report{}
	}

	effectiveAllow := EffectiveAllowList(allowRules)
	filter := NewFilter(opts.Include, opts.Expr)

	acc := Accumulate(invocations, opts.MaxExamples)
	acc.Annotate(effectiveAllow, opts.Destructive)

	report := &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Sessions:    opts.Sessions,
		TotalCalls:  acc.Total,
	}

	// Outcome counters. An invocation is auto-allowed when any of its
	// patterns is covered; a denial still counts as a prompt.
	for _, inv := range invocations {
		patterns := ExtractPatterns(inv.ToolName, inv.Command)
		switch {
		case AnyAllowed(patterns, effectiveAllow):
			report.AutoAllowed++
		case inv.Outcome == OutcomeDenied:
			report.Denied++
			report.Prompted++
		default:
			report.Prompted++
		}
	}

	report.Groups = BuildGroups(acc, filter)
	report.Recommendations = Rank(acc, filter, RankOptions{
		MaxDepth: opts.MaxDepth,
		Limit:    opts.MaxRecommendations,
	})
	report.CurrentAllowList = allowRules

	// Timing: baseline cadence, then cadence with every recommendation
	// adopted. The delta is the headline flow improvement.
	baseline := Median(PromptIntervals(invocations, effectiveAllow, opts.AFKThreshold))
	projectedAllow := append(append([]string{}, effectiveAllow...), recommendationPatterns(report.Recommendations)...)
	projected := Median(PromptIntervals(invocations, projectedAllow, opts.AFKThreshold))

	report.PromptIntervalSeconds = round1(baseline)
	report.ProjectedIntervalSeconds = round1(projected)
	report.PromptIntervalMinutes = round1(baseline / 60)
	report.ProjectedIntervalMinutes = round1(projected / 60)
	report.PromptIntervalDisplay = FormatInterval(baseline)
	report.ProjectedIntervalDisplay = FormatInterval(projected)

	if filter.Active() {
		report.RawCommands = collectRawCommands(invocations, filter, opts.MaxRawCommands)
	}

	return report
}

func recommendationPatterns(recs []Recommendation) []string {
	patterns := make([]string, len(recs))
	for i, r := range recs {
		patterns[i] = r.Pattern
	}
	return patterns
}

func collectRawCommands(invocations []Invocation, filter *Filter, limit int) []RawCommand {
	if limit <= 0 {
		limit = DefaultMaxRawCommands
	}
	var out []RawCommand
	for _, inv := range invocations {
		if inv.ToolName != ShellTool {
			continue
		}
		if !filter.MatchesRawCommand(inv.Command) {
			continue
		}
		out = append(out, RawCommand{Command: inv.Command, Outcome: inv.Outcome})
		if len(out) >= limit {
			break
		}
	}
	return out
}

// quickSkipCategories are never surfaced by the session-start tip; they
// need deliberate review, not a one-line nudge.
var quickSkipCategories = map[Category]struct{}{
	CategoryClaudeInternal: {},
	CategoryFileWrite:      {},
	CategoryBrowserAction:  {},
	CategoryExternalMutate: {},
	CategoryGitRemote:      {},
}

// QuickTip is the single top recommendation for a session-start hook.
type QuickTip struct {
	Recommendation        string  `json:"recommendation"`
	Approved              int     `json:"approved"`
	Denied                int     `json:"denied"`
	Risk                  Risk    `json:"risk"`
	FlowImpact            float64 `json:"flow_impact"`
	PromptIntervalDisplay string  `json:"prompt_interval_display"`
	Message               string  `json:"message"`
}

// QuickRecommendation picks the first recommendation outside the skip
// categories, or nil when the report offers nothing suitable.
func QuickRecommendation(report *Report) *QuickTip {
	if report == nil || len(report.Recommendations) == 0 {
		return nil
	}
	for _, rec := range report.Recommendations {
		if _, skip := quickSkipCategories[rec.Category]; skip {
			continue
		}
		return &QuickTip{
			Recommendation:        rec.Pattern,
			Approved:              rec.Approved,
			Denied:                rec.Denied,
			Risk:                  rec.Risk,
			FlowImpact:            rec.FlowImpact,
			PromptIntervalDisplay: report.PromptIntervalDisplay,
			Message: fmt.Sprintf(
				"Autoflow tip: you're prompted every %s. Allowing `%s` (%dx approved, 0 denied) would help. Run `autoflow analyze` for the full picture.",
				report.PromptIntervalDisplay, rec.Pattern, rec.Approved),
		}
	}
	return nil
}
