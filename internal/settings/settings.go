// Package settings reads and writes the agent settings document that
// persists the permission allow list.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Store wraps one settings.json document. Reads treat a missing or
// malformed document as an empty rule set; writes preserve every other key
// in the document and the order of existing rules.
type Store struct {
	path string
}

// NewStore creates a Store for the given settings path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath is the conventional settings location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".claude", "settings.json")
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// AllowList returns the persisted permissions.allow rules, in order.
func (s *Store) AllowList() []string {
	doc := s.load()
	perms, ok := doc["permissions"].(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := perms["allow"].([]any)
	if !ok {
		return nil
	}
	rules := make([]string, 0, len(raw))
	for _, v := range raw {
		if rule, ok := v.(string); ok {
			rules = append(rules, rule)
		}
	}
	return rules
}

// ApplyResult reports the outcome of an apply operation. Failures are
// structured, not raised: the caller decides how to surface them.
type ApplyResult struct {
	Success      bool   `json:"success"`
	Pattern      string `json:"pattern,omitempty"`
	SettingsPath string `json:"settings_path,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Apply appends a rule to permissions.allow if not already present and
// writes the document back. Idempotent: applying an existing rule changes
// nothing. Existing rules are never removed or reordered.
func (s *Store) Apply(pattern string) ApplyResult {
	doc := s.load()

	perms, ok := doc["permissions"].(map[string]any)
	if !ok {
		perms = map[string]any{}
		doc["permissions"] = perms
	}
	allow, ok := perms["allow"].([]any)
	if !ok {
		allow = []any{}
	}

	present := false
	for _, v := range allow {
		if rule, ok := v.(string); ok && rule == pattern {
			present = true
			break
		}
	}
	if !present {
		allow = append(allow, pattern)
	}
	perms["allow"] = allow

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return ApplyResult{Success: false, Error: err.Error()}
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return ApplyResult{Success: false, Error: err.Error()}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return ApplyResult{Success: false, Error: err.Error()}
	}

	return ApplyResult{Success: true, Pattern: pattern, SettingsPath: s.path}
}

// load reads the document, returning an empty one on any read or parse
// failure.
func (s *Store) load() map[string]any {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]any{}
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
		return map[string]any{}
	}
	return doc
}
