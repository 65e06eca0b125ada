package core

import (
	"fmt"
	"strings"
)

// ExtractedPattern is one candidate allow-rule produced from an invocation.
// Level 0 is the broadest form (bare command), higher levels are longer
// subcommand prefixes, and VerbLevel marks the wildcard-gapped verb form.
type ExtractedPattern struct {
	Level   int
	Pattern string
}

// VerbLevel tags the verb-gap pattern form, e.g. Bash(gcloud * list *).
// It is a sibling of the deepest prefix, not a depth below it.
const VerbLevel = -1

// cliVerbs are subcommand verbs recognized for the verb-gap form. A verb
// pattern is only emitted when the prefix has at least 3 tokens, so bare
// two-word commands never produce one.
var cliVerbs = map[string]struct{}{
	// read-only
	"list": {}, "describe": {}, "view": {}, "read": {}, "check": {},
	"diff": {}, "show": {}, "status": {}, "log": {}, "format": {},
	"inspect": {}, "info": {}, "get": {}, "search": {}, "find": {},
	"cat": {}, "ls": {}, "tree": {}, "history": {}, "blame": {},
	"watch": {}, "tail": {}, "top": {},
	// mutating (still tracked; the risk scorer decides safety)
	"create": {}, "delete": {}, "update": {}, "deploy": {}, "execute": {},
	"apply": {}, "remove": {}, "destroy": {}, "set": {}, "add": {},
	"push": {}, "pull": {}, "run": {}, "start": {}, "stop": {},
	"restart": {}, "build": {}, "submit": {}, "merge": {}, "close": {},
	"edit": {}, "write": {}, "install": {}, "uninstall": {}, "upgrade": {},
	"rollback": {}, "scale": {}, "attach": {},
}

// AddCLIVerbs extends the verb table with config-supplied entries. Call
// during startup, before analysis begins.
func AddCLIVerbs(verbs ...string) {
	for _, v := range verbs {
		cliVerbs[strings.ToLower(v)] = struct{}{}
	}
}

// shellOperators are tokens that terminate a subcommand prefix.
var shellOperators = map[string]struct{}{
	"&&": {}, "||": {}, ";": {}, "|": {},
}

// ExtractPatterns turns one invocation into its ordered candidate patterns.
//
// Non-shell tools yield exactly one level-0 pattern equal to the tool name.
// Shell commands yield Bash(<prefix> *) at every subcommand depth, stopping
// at the first flag, path, or shell operator token, plus at most one
// verb-gap pattern. The output is deterministic and free of duplicates.
func ExtractPatterns(toolName, command string) []ExtractedPattern {
	if toolName != ShellTool {
		return []ExtractedPattern{{Level: 0, Pattern: toolName}}
	}

	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return []ExtractedPattern{{Level: 0, Pattern: ShellTool}}
	}

	tokens := strings.Fields(trimmed)
	base := tokens[0]
	patterns := []ExtractedPattern{{Level: 0, Pattern: shellPattern(base)}}

	prefix := []string{base}
	for i, token := range tokens[1:] {
		if isPrefixTerminator(token) {
			break
		}
		prefix = append(prefix, token)
		patterns = append(patterns, ExtractedPattern{
			Level:   i + 1,
			Pattern: shellPattern(strings.Join(prefix, " ")),
		})
	}

	// Verb-gap form: Bash(base * verb *) matches the verb regardless of the
	// literal subcommand path in between.
	if len(prefix) >= 3 {
		verb := prefix[len(prefix)-1]
		if _, ok := cliVerbs[strings.ToLower(verb)]; ok {
			gap := fmt.Sprintf("%s(%s * %s *)", ShellTool, base, verb)
			if !containsPattern(patterns, gap) {
				patterns = append(patterns, ExtractedPattern{Level: VerbLevel, Pattern: gap})
			}
		}
	}

	return patterns
}

func isPrefixTerminator(token string) bool {
	if strings.HasPrefix(token, "-") || strings.HasPrefix(token, "/") || strings.HasPrefix(token, ".") {
		return true
	}
	_, ok := shellOperators[token]
	return ok
}

func shellPattern(prefix string) string {
	return fmt.Sprintf("%s(%s *)", ShellTool, prefix)
}

func containsPattern(patterns []ExtractedPattern, s string) bool {
	for _, p := range patterns {
		if p.Pattern == s {
			return true
		}
	}
	return false
}

// IsShellPattern reports whether the pattern is a shell-command template
// rather than a bare tool name.
func IsShellPattern(pattern string) bool {
	return strings.HasPrefix(pattern, ShellTool+"(") && strings.HasSuffix(pattern, ")")
}

// InnerCommand recovers the command prefix from a shell pattern, stripping
// the Bash(...) wrapping and the trailing wildcard. Non-shell patterns are
// returned unchanged with ok=false.
func InnerCommand(pattern string) (string, bool) {
	if !IsShellPattern(pattern) {
		return pattern, false
	}
	inner := pattern[len(ShellTool)+1 : len(pattern)-1]
	inner = strings.TrimSuffix(inner, " *")
	return inner, true
}
