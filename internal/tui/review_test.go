package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/autoflow/internal/core"
)

func testRecs() []core.Recommendation {
	return []core.Recommendation{
		{Pattern: "Bash(git status *)", Approved: 12, FlowImpact: 40.0, Category: core.CategoryGitSafe},
		{Pattern: "Bash(ls *)", Approved: 8, FlowImpact: 26.7, Category: core.CategoryReadonly},
	}
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestReview_CursorMovement(t *testing.T) {
	m := NewReview(testRecs(), func(string) error { return nil })

	updated, _ := m.Update(key("down"))
	m = updated.(Model)
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}

	// Cursor clamps at the bottom.
	updated, _ = m.Update(key("down"))
	m = updated.(Model)
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want clamp at 1", m.cursor)
	}

	updated, _ = m.Update(key("up"))
	m = updated.(Model)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestReview_ApplyMarksAndIsIdempotent(t *testing.T) {
	var calls []string
	m := NewReview(testRecs(), func(pattern string) error {
		calls = append(calls, pattern)
		return nil
	})

	updated, _ := m.Update(key("enter"))
	m = updated.(Model)
	updated, _ = m.Update(key("enter"))
	m = updated.(Model)

	if len(calls) != 1 || calls[0] != "Bash(git status *)" {
		t.Errorf("apply calls = %v, want one for git status", calls)
	}
	applied := m.Applied()
	if len(applied) != 1 || applied[0] != "Bash(git status *)" {
		t.Errorf("Applied() = %v", applied)
	}
}

func TestReview_ApplyErrorSurfaced(t *testing.T) {
	m := NewReview(testRecs(), func(string) error {
		return errors.New("settings file locked")
	})

	updated, _ := m.Update(key("a"))
	m = updated.(Model)

	if !m.isError || !strings.Contains(m.message, "settings file locked") {
		t.Errorf("message = %q (isError=%v), want the apply error", m.message, m.isError)
	}
	if len(m.Applied()) != 0 {
		t.Error("failed apply should not mark the recommendation")
	}
}

func TestReview_QuitKeys(t *testing.T) {
	m := NewReview(testRecs(), func(string) error { return nil })

	for _, k := range []string{"q", "esc"} {
		_, cmd := m.Update(key(k))
		if cmd == nil {
			t.Errorf("key %q should quit", k)
		}
	}
}

func TestReview_ViewEmptyState(t *testing.T) {
	m := NewReview(nil, func(string) error { return nil })
	if !strings.Contains(m.View(), "Nothing to review") {
		t.Error("empty review should render the empty-state message")
	}
}

func TestReview_ViewListsPatterns(t *testing.T) {
	m := NewReview(testRecs(), func(string) error { return nil })
	view := m.View()
	for _, rec := range testRecs() {
		if !strings.Contains(view, rec.Pattern) {
			t.Errorf("view missing pattern %q", rec.Pattern)
		}
	}
}
