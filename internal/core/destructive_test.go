package core

import "testing"

func TestIsDestructive(t *testing.T) {
	tests := []struct {
		command string
		want    bool
	}{
		{"rm -rf /tmp/build", true},
		{"rm", true},
		{"git push origin main", true},
		{"git reset --hard HEAD~1", true},
		{"git branch -D feature/x", true}, // lowercased to the -d form
		{"sudo systemctl restart nginx", true},
		{"kubectl delete pod web-0", true},
		{"terraform apply --force", true}, // keyword
		{"psql -c 'DROP TABLE users'", true},
		{"git commit --no-verify -m wip", true},
		{"Git Push origin main", true}, // case-insensitive

		{"git status", false},
		{"ls -la", false},
		{"npm install", false},
		{"echo hello", false},
		{"git commit -m 'remove dead code'", false},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			if got := IsDestructive(tt.command); got != tt.want {
				t.Errorf("IsDestructive(%q) = %v, want %v", tt.command, got, tt.want)
			}
		})
	}
}

func TestAddDestructivePatterns(t *testing.T) {
	if IsDestructive("zapzap everything") {
		t.Fatal("zapzap should not be destructive before extension")
	}
	AddDestructivePatterns("zapzap *")
	if !IsDestructive("zapzap everything") {
		t.Error("zapzap should be destructive after extension")
	}
}

func TestDestructiveTablesReturnCopies(t *testing.T) {
	patterns := DestructivePatterns()
	patterns[0] = "mutated"
	if DestructivePatterns()[0] == "mutated" {
		t.Error("DestructivePatterns leaked its backing array")
	}

	keywords := DestructiveKeywords()
	keywords[0] = "mutated"
	if DestructiveKeywords()[0] == "mutated" {
		t.Error("DestructiveKeywords leaked its backing array")
	}
}
