package core

import (
	"regexp"
	"strings"
)

// Filter narrows analysis output to an operator's area of interest. Two
// independent, combinable criteria: an include prefix over shell commands
// (normalized to a trailing-wildcard glob) and a free-form expression
// matched against example commands (regexp, falling back to plain
// substring containment when the expression does not compile).
type Filter struct {
	includeGlob string
	expr        string
	exprRe      *regexp.Regexp
}

// NewFilter builds a filter from the raw --include and --expr arguments.
// Empty arguments deactivate the corresponding criterion.
func NewFilter(include, expr string) *Filter {
	f := &Filter{expr: expr}
	if include != "" {
		glob := include
		if !strings.HasSuffix(glob, "*") {
			glob += "*"
		}
		f.includeGlob = glob
	}
	if expr != "" {
		// Invalid expressions degrade to substring matching, never an error.
		f.exprRe, _ = regexp.Compile(expr)
	}
	return f
}

// Active reports whether any criterion is set.
func (f *Filter) Active() bool {
	return f.includeGlob != "" || f.expr != ""
}

// MatchesPattern reports whether a pattern passes both active criteria.
// The include glob applies to the pattern's inner command; non-shell
// patterns never match an active include. The expression matches when any
// example command for the pattern matches.
func (f *Filter) MatchesPattern(pattern string, examples []string) bool {
	return f.includeMatchesPattern(pattern) && f.exprMatchesAny(examples)
}

// MatchesRawCommand reports whether a raw command passes both active
// criteria, for the direct-inspection view.
func (f *Filter) MatchesRawCommand(command string) bool {
	if f.includeGlob != "" && !GlobMatch(f.includeGlob, strings.TrimSpace(command)) {
		return false
	}
	return f.exprMatches(command)
}

func (f *Filter) includeMatchesPattern(pattern string) bool {
	if f.includeGlob == "" {
		return true
	}
	inner, ok := InnerCommand(pattern)
	if !ok {
		return false
	}
	return GlobMatch(f.includeGlob, inner)
}

func (f *Filter) exprMatchesAny(examples []string) bool {
	if f.expr == "" {
		return true
	}
	for _, cmd := range examples {
		if f.exprMatches(cmd) {
			return true
		}
	}
	return false
}

func (f *Filter) exprMatches(command string) bool {
	if f.expr == "" {
		return true
	}
	if f.exprRe != nil {
		return f.exprRe.MatchString(command)
	}
	return strings.Contains(command, f.expr)
}
