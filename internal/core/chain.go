package core

import (
	"regexp"
	"strings"

	shellwords "github.com/mattn/go-shellwords"
)

// chainOps matches the shell chaining operators that let one approved
// command smuggle in a second one: && || ;
// A single pipe is not counted; piping output is not a second command
// decision point in the same sense.
var chainOps = regexp.MustCompile(`\s*(?:&&|\|\||;)\s*`)

// HasChainOperator reports whether a raw command contains a shell chaining
// operator. A high chained count on a pattern is a signal that
// blanket-allowing it could silently approve a compound command with a
// riskier trailing action, e.g. Bash(git add *) matching
// "git add . && git push".
func HasChainOperator(command string) bool {
	return chainOps.MatchString(command)
}

// ChainSegments splits a compound command into its chained segments,
// respecting shell quoting: operators inside quotes do not split. Returns
// nil when the command is not compound or cannot be tokenized.
func ChainSegments(command string) []string {
	tokens, err := shellwords.Parse(command)
	if err != nil {
		return nil
	}

	var segments []string
	var current []string
	for _, tok := range tokens {
		switch tok {
		case "&&", "||", ";":
			if len(current) > 0 {
				segments = append(segments, strings.Join(current, " "))
				current = nil
			}
		default:
			current = append(current, tok)
		}
	}
	if len(segments) == 0 {
		return nil
	}
	if len(current) > 0 {
		segments = append(segments, strings.Join(current, " "))
	}
	return segments
}
