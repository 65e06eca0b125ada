// Package transcript locates agent session transcripts and reconstructs
// tool invocations from their JSONL event streams.
package transcript

import (
	"bufio"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Dicklesworthstone/autoflow/internal/core"
)

// refusalPhrase marks a tool result produced by an operator denial.
const refusalPhrase = "doesn't want to proceed"

// maxLineBytes bounds a single transcript line; tool results can carry
// entire file dumps.
const maxLineBytes = 8 * 1024 * 1024

// Reader loads invocations from JSONL transcripts under a root directory.
type Reader struct {
	root   string
	logger *log.Logger
}

// NewReader creates a Reader. A nil logger falls back to the default.
func NewReader(root string, logger *log.Logger) *Reader {
	if logger == nil {
		logger = log.Default().WithPrefix("transcript")
	}
	return &Reader{root: root, logger: logger}
}

// DefaultRoot is the conventional transcript location.
func DefaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".claude", "projects")
}

// Find returns transcript files modified within the last N days, newest
// first. A missing root is not an error: it means no data.
func (r *Reader) Find(days int) ([]string, error) {
	if _, err := os.Stat(r.root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	type candidate struct {
		path  string
		mtime time.Time
	}
	var found []candidate

	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			r.logger.Debug("skipping unreadable entry", "path", path, "err", err)
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".jsonl") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			return nil
		}
		found = append(found, candidate{path: path, mtime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(found, func(i, j int) bool { return found[i].mtime.After(found[j].mtime) })
	paths := make([]string, len(found))
	for i, c := range found {
		paths[i] = c.path
	}
	return paths, nil
}

// Load reads every transcript in the window and returns the combined
// invocation list plus the number of transcripts (sessions) read.
func (r *Reader) Load(days int) ([]core.Invocation, int, error) {
	paths, err := r.Find(days)
	if err != nil {
		return nil, 0, err
	}

	var all []core.Invocation
	for _, path := range paths {
		invs, err := ParseFile(path)
		if err != nil {
			r.logger.Debug("skipping unreadable transcript", "path", path, "err", err)
			continue
		}
		all = append(all, invs...)
	}
	return all, len(paths), nil
}

type entry struct {
	Type      string          `json:"type"`
	Timestamp string          `json:"timestamp"`
	Message   *message        `json:"message"`
	Content   json.RawMessage `json:"content"`
}

type message struct {
	Content json.RawMessage `json:"content"`
}

type contentBlock struct {
	Type      string          `json:"type"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Input     blockInput      `json:"input"`
	ToolUseID string          `json:"tool_use_id"`
	Content   json.RawMessage `json:"content"`
}

type blockInput struct {
	Command string `json:"command"`
}

type pendingCall struct {
	toolName  string
	command   string
	timestamp string
}

// ParseFile reconstructs invocations from one JSONL transcript. Each
// assistant tool_use block is matched to the user tool_result block sharing
// its identifier; the outcome is denied iff the result payload contains the
// operator refusal phrase. Malformed lines are skipped.
func ParseFile(path string) ([]core.Invocation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pending := make(map[string]pendingCall)
	var results []core.Invocation

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}

		content := e.Content
		if e.Message != nil && len(e.Message.Content) > 0 {
			content = e.Message.Content
		}
		var blocks []contentBlock
		if err := json.Unmarshal(content, &blocks); err != nil {
			// String content carries no tool events.
			continue
		}

		switch e.Type {
		case "assistant":
			for _, b := range blocks {
				if b.Type != "tool_use" {
					continue
				}
				pending[b.ID] = pendingCall{
					toolName:  b.Name,
					command:   b.Input.Command,
					timestamp: e.Timestamp,
				}
			}
		case "user":
			for _, b := range blocks {
				if b.Type != "tool_result" {
					continue
				}
				call, ok := pending[b.ToolUseID]
				if !ok {
					continue
				}
				outcome := core.OutcomeApproved
				if strings.Contains(resultText(b.Content), refusalPhrase) {
					outcome = core.OutcomeDenied
				}
				results = append(results, core.Invocation{
					ToolName:  call.toolName,
					Command:   call.command,
					Outcome:   outcome,
					Timestamp: parseTimestamp(call.timestamp),
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// resultText flattens a tool_result payload, which may be a bare string or
// a list of text blocks.
func resultText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var blocks []struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &blocks); err == nil {
		parts := make([]string, 0, len(blocks))
		for _, b := range blocks {
			parts = append(parts, b.Text)
		}
		return strings.Join(parts, " ")
	}
	return string(raw)
}

// parseTimestamp accepts RFC 3339 with or without fractional seconds.
// Anything unparseable yields the zero time; such invocations still count
// toward pattern statistics but not timing.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return ts
}
