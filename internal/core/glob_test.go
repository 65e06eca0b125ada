package core

import "testing"

func TestGlobMatch(t *testing.T) {
	tests := []struct {
		pattern string
		s       string
		want    bool
	}{
		// Star crosses spaces and slashes
		{"rm *", "rm -rf /tmp/build", true},
		{"Bash(git *)", "Bash(git status *)", true},
		{"Bash(git status*)", "Bash(git status *)", true},
		{"*", "anything at all", true},
		{"git push *", "git push origin main", true},
		{"git push *", "git pull origin main", false},

		// Star is not implicit
		{"rm", "rm -rf /tmp", false},
		{"rm", "rm", true},

		// Question mark and character classes
		{"a?c", "abc", true},
		{"a?c", "ac", false},
		{"[abc]at", "bat", true},
		{"[!a]at", "bat", true},
		{"[!a]at", "aat", false},

		// Unterminated class is a literal bracket
		{"a[", "a[", true},
		{"a[", "ab", false},

		// Regex metacharacters in the subject are literal
		{"Bash(git *)", "Bash(git", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.s, func(t *testing.T) {
			if got := GlobMatch(tt.pattern, tt.s); got != tt.want {
				t.Errorf("GlobMatch(%q, %q) = %v, want %v", tt.pattern, tt.s, got, tt.want)
			}
		})
	}
}
