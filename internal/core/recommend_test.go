package core

import (
	"fmt"
	"testing"
)

func rankFixture(t *testing.T, allowRules []string) *Accumulator {
	t.Helper()
	invocations := append(
		repeat(approvedShell("git status"), 6),
		deniedShell("git push origin main"),
	)
	acc := Accumulate(invocations, 0)
	acc.Annotate(EffectiveAllowList(allowRules), nil)
	return acc
}

func TestRank_SelectsLowRiskOnly(t *testing.T) {
	acc := rankFixture(t, nil)

	recs := Rank(acc, NewFilter("", ""), RankOptions{})

	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1: %+v", len(recs), recs)
	}
	rec := recs[0]
	if rec.Pattern != "Bash(git status *)" {
		t.Errorf("pattern = %q, want Bash(git status *)", rec.Pattern)
	}
	if rec.Approved != 6 || rec.Denied != 0 {
		t.Errorf("counters = %d/%d, want 6/0", rec.Approved, rec.Denied)
	}
	if rec.Risk != RiskLow {
		t.Errorf("risk = %q, want low", rec.Risk)
	}
	if rec.Category != CategoryGitSafe {
		t.Errorf("category = %q, want git_safe", rec.Category)
	}
	// 6 of 7 invocations, rounded to one decimal.
	if rec.FlowImpact != 85.7 {
		t.Errorf("flow impact = %v, want 85.7", rec.FlowImpact)
	}
}

func TestRank_SkipsAlreadyAllowed(t *testing.T) {
	acc := rankFixture(t, []string{"Bash(git status *)"})

	recs := Rank(acc, NewFilter("", ""), RankOptions{})
	for _, r := range recs {
		if r.Pattern == "Bash(git status *)" {
			t.Error("already-allowed pattern should not be recommended")
		}
	}
}

func TestRank_MaxDepth(t *testing.T) {
	acc := rankFixture(t, nil)

	depth := 0
	recs := Rank(acc, NewFilter("", ""), RankOptions{MaxDepth: &depth})
	for _, r := range recs {
		if r.Level > 0 {
			t.Errorf("pattern %q at level %d exceeds max depth 0", r.Pattern, r.Level)
		}
	}
}

func TestRank_LimitAndOrdering(t *testing.T) {
	// 30 distinct non-shell tools, each with a different approval volume so
	// the ranking order is unambiguous.
	var invocations []Invocation
	for i := 0; i < 30; i++ {
		inv := Invocation{ToolName: fmt.Sprintf("Custom%02d", i), Outcome: OutcomeApproved}
		invocations = append(invocations, repeat(inv, 5+i)...)
	}
	acc := Accumulate(invocations, 0)
	acc.Annotate(EffectiveAllowList(nil), nil)

	recs := Rank(acc, NewFilter("", ""), RankOptions{})

	if len(recs) != DefaultMaxRecommendations {
		t.Fatalf("got %d recommendations, want %d", len(recs), DefaultMaxRecommendations)
	}
	for i := 1; i < len(recs); i++ {
		if recs[i-1].FlowImpact < recs[i].FlowImpact {
			t.Fatalf("recommendations not ordered by impact: %v before %v",
				recs[i-1].FlowImpact, recs[i].FlowImpact)
		}
	}
	// The lowest-volume tools fall off the end.
	if recs[0].Pattern != "Custom29" {
		t.Errorf("top recommendation = %q, want Custom29", recs[0].Pattern)
	}
}

func TestRank_FilterApplies(t *testing.T) {
	acc := rankFixture(t, nil)

	recs := Rank(acc, NewFilter("npm", ""), RankOptions{})
	if len(recs) != 0 {
		t.Errorf("npm filter over git history should yield nothing, got %+v", recs)
	}
}
