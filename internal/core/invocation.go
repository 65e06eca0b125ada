// Package core implements the permission analysis pipeline: pattern
// extraction, tool classification, risk scoring, grouping, filtering,
// recommendation ranking, and prompt-interval timing.
package core

import "time"

// Outcome is the recorded human decision for a tool invocation.
type Outcome string

const (
	// OutcomeApproved means the operator approved the invocation (or it
	// ran without a prompt).
	OutcomeApproved Outcome = "approved"
	// OutcomeDenied means the operator refused the invocation.
	OutcomeDenied Outcome = "denied"
)

// ShellTool is the tool name that executes shell commands. Only
// invocations of this tool carry a raw command string.
const ShellTool = "Bash"

// Invocation is a single tool call reconstructed from a transcript.
// Timestamp is the zero value when the transcript entry had no parseable
// timestamp; such invocations still count toward pattern statistics but
// are excluded from timing analysis.
type Invocation struct {
	ToolName  string    `json:"tool_name"`
	Command   string    `json:"command,omitempty"`
	Outcome   Outcome   `json:"outcome"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// Timed reports whether the invocation carries a usable timestamp.
func (inv Invocation) Timed() bool {
	return !inv.Timestamp.IsZero()
}
