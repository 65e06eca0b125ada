package core

import "strings"

// Destructive command detection is a conservative keyword-driven heuristic,
// not a security boundary. Over-flagging is acceptable; a missed destructive
// command is the failure mode being mitigated. Patterns that match here stay
// prompted even when the operator has never denied them.

var destructivePatterns = []string{
	"git push", "git push *",
	"git reset --hard", "git reset --hard *",
	"git rebase", "git rebase *",
	"git clean", "git clean *",
	"git branch -d", "git branch -d *",
	"git checkout .", "git restore .",
	"gh pr create", "gh pr create *",
	"gh pr merge", "gh pr merge *",
	"gh pr close", "gh pr close *",
	"gh issue create", "gh issue create *",
	"gh issue close", "gh issue close *",
	"rm", "rm *",
	"rm -rf", "rm -rf *",
	"rmdir", "rmdir *",
	"chmod", "chmod *",
	"chown", "chown *",
	"kill", "kill *",
	"killall", "killall *",
	"sudo", "sudo *",
	"docker rm", "docker rm *",
	"docker rmi", "docker rmi *",
	"kubectl delete", "kubectl delete *",
}

// Keywords that make any command destructive regardless of shape.
var destructiveKeywords = []string{
	"--force", "--hard", "delete", "drop", "destroy", "purge", "--no-verify",
}

// IsDestructive reports whether a command matches a known destructive
// pattern or contains a destructive keyword. Matching is case-insensitive:
// the command is lowercased and the pattern tables are lowercase (which is
// why the table carries "git branch -d" for the upstream -D form).
func IsDestructive(command string) bool {
	cmd := strings.ToLower(strings.TrimSpace(command))
	for _, pat := range destructivePatterns {
		if cmd == pat || GlobMatch(pat, cmd) {
			return true
		}
	}
	for _, kw := range destructiveKeywords {
		if strings.Contains(cmd, kw) {
			return true
		}
	}
	return false
}

// DestructivePatterns returns a copy of the destructive pattern table.
func DestructivePatterns() []string {
	out := make([]string, len(destructivePatterns))
	copy(out, destructivePatterns)
	return out
}

// DestructiveKeywords returns a copy of the keyword table.
func DestructiveKeywords() []string {
	out := make([]string, len(destructiveKeywords))
	copy(out, destructiveKeywords)
	return out
}

// AddDestructivePatterns extends the pattern table with config-supplied
// entries. Call during startup, before analysis begins.
func AddDestructivePatterns(patterns ...string) {
	for _, p := range patterns {
		destructivePatterns = append(destructivePatterns, strings.ToLower(p))
	}
}

// AddDestructiveKeywords extends the keyword table with config-supplied
// entries. Call during startup, before analysis begins.
func AddDestructiveKeywords(keywords ...string) {
	for _, kw := range keywords {
		destructiveKeywords = append(destructiveKeywords, strings.ToLower(kw))
	}
}
