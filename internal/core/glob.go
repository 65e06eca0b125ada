package core

import (
	"regexp"
	"strings"
	"sync"
)

// Glob matching for allow rules and destructive patterns. Semantics follow
// classic fnmatch: `*` matches any run of characters (including spaces and
// slashes), `?` matches one character, `[...]` matches a character class.
// stdlib path.Match is unsuitable here because its `*` never crosses `/`,
// and shell commands are full of paths.

var globCache sync.Map // pattern string -> *regexp.Regexp (nil on compile failure)

// GlobMatch reports whether s matches the glob pattern. An uncompilable
// pattern matches nothing.
func GlobMatch(pattern, s string) bool {
	re := compileGlob(pattern)
	if re == nil {
		return false
	}
	return re.MatchString(s)
}

func compileGlob(pattern string) *regexp.Regexp {
	if cached, ok := globCache.Load(pattern); ok {
		re, _ := cached.(*regexp.Regexp)
		return re
	}
	re, err := regexp.Compile(globToRegexp(pattern))
	if err != nil {
		re = nil
	}
	globCache.Store(pattern, re)
	return re
}

func globToRegexp(pattern string) string {
	var sb strings.Builder
	sb.WriteString(`\A`)
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '*':
			sb.WriteString(`.*`)
		case '?':
			sb.WriteString(`.`)
		case '[':
			end := i + 1
			if end < len(runes) && (runes[end] == '!' || runes[end] == '^') {
				end++
			}
			if end < len(runes) && runes[end] == ']' {
				end++
			}
			for end < len(runes) && runes[end] != ']' {
				end++
			}
			if end >= len(runes) {
				sb.WriteString(regexp.QuoteMeta("["))
				continue
			}
			class := string(runes[i+1 : end])
			if strings.HasPrefix(class, "!") {
				class = "^" + class[1:]
			}
			sb.WriteString("[" + class + "]")
			i = end
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString(`\z`)
	return sb.String()
}
