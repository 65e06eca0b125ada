package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Dicklesworthstone/autoflow/internal/core"
)

// InvocationOption customizes a test invocation.
type InvocationOption func(*core.Invocation)

// WithOutcome sets the invocation outcome.
func WithOutcome(o core.Outcome) InvocationOption {
	return func(inv *core.Invocation) { inv.Outcome = o }
}

// WithTimestamp sets the invocation timestamp.
func WithTimestamp(ts time.Time) InvocationOption {
	return func(inv *core.Invocation) { inv.Timestamp = ts }
}

// ShellCall builds an approved shell invocation for the given command.
func ShellCall(command string, opts ...InvocationOption) core.Invocation {
	inv := core.Invocation{
		ToolName: core.ShellTool,
		Command:  command,
		Outcome:  core.OutcomeApproved,
	}
	for _, opt := range opts {
		opt(&inv)
	}
	return inv
}

// ToolCall builds an approved invocation of a non-shell tool.
func ToolCall(toolName string, opts ...InvocationOption) core.Invocation {
	inv := core.Invocation{
		ToolName: toolName,
		Outcome:  core.OutcomeApproved,
	}
	for _, opt := range opts {
		opt(&inv)
	}
	return inv
}

// Repeat returns n copies of an invocation.
func Repeat(inv core.Invocation, n int) []core.Invocation {
	out := make([]core.Invocation, n)
	for i := range out {
		out[i] = inv
	}
	return out
}

// TranscriptEvent is one JSONL line in a synthetic transcript.
type TranscriptEvent map[string]any

// ToolUseEvent builds an assistant tool_use line.
func ToolUseEvent(id, toolName, command, timestamp string) TranscriptEvent {
	input := map[string]any{}
	if command != "" {
		input["command"] = command
	}
	return TranscriptEvent{
		"type":      "assistant",
		"timestamp": timestamp,
		"message": map[string]any{
			"content": []map[string]any{
				{"type": "tool_use", "id": id, "name": toolName, "input": input},
			},
		},
	}
}

// ToolResultEvent builds a user tool_result line. When denied, the payload
// carries the operator refusal phrase the reader looks for.
func ToolResultEvent(toolUseID string, denied bool) TranscriptEvent {
	text := "ok"
	if denied {
		text = "The user doesn't want to proceed with this tool use."
	}
	return TranscriptEvent{
		"type": "user",
		"message": map[string]any{
			"content": []map[string]any{
				{"type": "tool_result", "tool_use_id": toolUseID, "content": text},
			},
		},
	}
}

// WriteTranscript writes events as a JSONL transcript file and returns its
// path. Cleanup rides on the surrounding t.TempDir.
func WriteTranscript(t *testing.T, dir, name string, events []TranscriptEvent) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	RequireNoError(t, err, "create transcript")
	defer f.Close()

	enc := json.NewEncoder(f)
	for i, ev := range events {
		if err := enc.Encode(ev); err != nil {
			t.Fatalf("encoding transcript event %d: %v", i, err)
		}
	}
	return path
}

// WriteSettings writes a settings.json document with the given allow rules
// and returns its path.
func WriteSettings(t *testing.T, dir string, allow []string) string {
	t.Helper()

	doc := map[string]any{
		"permissions": map[string]any{"allow": allow},
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	RequireNoError(t, err, "marshal settings")

	path := filepath.Join(dir, "settings.json")
	RequireNoError(t, os.WriteFile(path, append(data, '\n'), 0o644), "write settings")
	return path
}

// Stamp returns a RFC 3339 timestamp n seconds after a fixed base instant.
// Handy for building deterministic timing scenarios.
func Stamp(n int) string {
	base := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(n) * time.Second).Format(time.RFC3339)
}

// CallID formats a deterministic tool_use identifier.
func CallID(n int) string {
	return fmt.Sprintf("toolu_%04d", n)
}
