package core

import "testing"

func approvedShell(command string) Invocation {
	return Invocation{ToolName: ShellTool, Command: command, Outcome: OutcomeApproved}
}

func deniedShell(command string) Invocation {
	return Invocation{ToolName: ShellTool, Command: command, Outcome: OutcomeDenied}
}

func repeat(inv Invocation, n int) []Invocation {
	out := make([]Invocation, n)
	for i := range out {
		out[i] = inv
	}
	return out
}

func TestAccumulate_CountersSpanLevels(t *testing.T) {
	invocations := append(repeat(approvedShell("git status"), 6), deniedShell("git push origin main"))

	acc := Accumulate(invocations, 0)

	if acc.Total != 7 {
		t.Fatalf("Total = %d, want 7", acc.Total)
	}

	// The level-0 pattern sees every git invocation, including the denial.
	root := acc.Stats["Bash(git *)"]
	if root == nil {
		t.Fatal("missing Bash(git *) stats")
	}
	if root.Approved != 6 || root.Denied != 1 {
		t.Errorf("Bash(git *) = %d approved, %d denied; want 6, 1", root.Approved, root.Denied)
	}

	status := acc.Stats["Bash(git status *)"]
	if status == nil || status.Approved != 6 || status.Denied != 0 {
		t.Errorf("Bash(git status *) = %+v, want 6 approved, 0 denied", status)
	}

	push := acc.Stats["Bash(git push *)"]
	if push == nil || push.Approved != 0 || push.Denied != 1 {
		t.Errorf("Bash(git push *) = %+v, want 0 approved, 1 denied", push)
	}
}

func TestAccumulate_ExamplesCapped(t *testing.T) {
	acc := Accumulate(repeat(approvedShell("git status"), 10), 3)

	if got := len(acc.Examples["Bash(git status *)"]); got != 3 {
		t.Errorf("kept %d examples, want 3", got)
	}
}

func TestAccumulate_ChainCounts(t *testing.T) {
	invocations := []Invocation{
		approvedShell("git add foo && git push"),
		approvedShell("git add foo"),
	}
	acc := Accumulate(invocations, 0)

	if got := acc.ChainCounts["Bash(git add *)"]; got != 1 {
		t.Errorf("ChainCounts[Bash(git add *)] = %d, want 1", got)
	}
}

func TestAnnotate(t *testing.T) {
	invocations := append(
		repeat(approvedShell("git status"), 6),
		repeat(approvedShell("git push origin main"), 6)...,
	)
	acc := Accumulate(invocations, 0)
	acc.Annotate(EffectiveAllowList([]string{"Bash(git status *)"}), nil)

	status := acc.Stats["Bash(git status *)"]
	if !status.AlreadyAllowed {
		t.Error("Bash(git status *) should be already allowed")
	}
	if status.Destructive {
		t.Error("git status should not be destructive")
	}

	push := acc.Stats["Bash(git push *)"]
	if push.AlreadyAllowed {
		t.Error("Bash(git push *) should not be already allowed")
	}
	if !push.Destructive {
		t.Error("git push should be destructive")
	}
	if push.Risk != RiskMedium {
		t.Errorf("destructive never-denied pattern risk = %q, want medium", push.Risk)
	}
	if status.Risk != RiskLow {
		t.Errorf("well-evidenced clean pattern risk = %q, want low", status.Risk)
	}
}

func TestAnnotate_CustomPredicate(t *testing.T) {
	acc := Accumulate(repeat(approvedShell("git status"), 6), 0)
	acc.Annotate(nil, func(string) bool { return true })

	if !acc.Stats["Bash(git status *)"].Destructive {
		t.Error("custom predicate should have marked the pattern destructive")
	}
}

func TestSortedPatterns_Deterministic(t *testing.T) {
	acc := Accumulate([]Invocation{
		approvedShell("ls -la"),
		approvedShell("git status"),
		{ToolName: "Read", Outcome: OutcomeApproved},
	}, 0)

	got := acc.SortedPatterns()
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("patterns not in lexical order: %v", got)
		}
	}
}
