package core

// builtinAutoTools are tools the agent runtime never prompts for. They are
// appended to the persisted allow list to form the effective allow list.
var builtinAutoTools = []string{
	// Read-only, no approval required
	"Read", "Glob", "Grep", "WebSearch",
	// Internal orchestration, never prompted
	"TaskCreate", "TaskUpdate", "TaskList", "TaskGet",
	"AskUserQuestion", "EnterPlanMode", "ExitPlanMode", "Skill",
}

// BuiltinAutoTools returns a copy of the built-in always-allowed tool names.
func BuiltinAutoTools() []string {
	out := make([]string, len(builtinAutoTools))
	copy(out, builtinAutoTools)
	return out
}

// AddBuiltinAutoTools extends the built-in allow set with config-supplied
// tool names. Call during startup, before analysis begins.
func AddBuiltinAutoTools(names ...string) {
	builtinAutoTools = append(builtinAutoTools, names...)
}

// EffectiveAllowList is the persisted allow list plus the built-in
// always-allowed tool names. Order is preserved: persisted rules first.
func EffectiveAllowList(rules []string) []string {
	out := make([]string, 0, len(rules)+len(builtinAutoTools))
	out = append(out, rules...)
	out = append(out, builtinAutoTools...)
	return out
}

// IsAllowed reports whether a pattern is already covered by the allow list:
// either a rule equals the pattern verbatim, or a rule interpreted as a
// glob matches it (e.g. Bash(git *) covers Bash(git status *)).
func IsAllowed(pattern string, allowList []string) bool {
	for _, rule := range allowList {
		if rule == pattern {
			return true
		}
		if GlobMatch(rule, pattern) {
			return true
		}
	}
	return false
}

// AnyAllowed reports whether any extracted pattern of an invocation is
// covered by the allow list, i.e. the invocation would not have prompted.
func AnyAllowed(patterns []ExtractedPattern, allowList []string) bool {
	for _, p := range patterns {
		if IsAllowed(p.Pattern, allowList) {
			return true
		}
	}
	return false
}
