// Package tui provides the interactive recommendation review panel.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/autoflow/internal/core"
)

// ApplyFunc persists one recommendation to the allow list.
type ApplyFunc func(pattern string) error

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	appliedStyle  = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	footerStyle   = lipgloss.NewStyle().Faint(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// Model is the Bubble Tea model for reviewing recommendations.
type Model struct {
	recs    []core.Recommendation
	applied map[int]bool
	apply   ApplyFunc

	cursor  int
	width   int
	height  int
	message string
	isError bool
}

// NewReview creates a review model over a ranked recommendation list.
func NewReview(recs []core.Recommendation, apply ApplyFunc) Model {
	return Model{
		recs:    recs,
		applied: make(map[int]bool),
		apply:   apply,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.recs)-1 {
				m.cursor++
			}
		case "enter", "a":
			m.applySelected()
		}
	}
	return m, nil
}

func (m *Model) applySelected() {
	if len(m.recs) == 0 {
		return
	}
	if m.applied[m.cursor] {
		m.message = "already applied"
		m.isError = false
		return
	}
	rec := m.recs[m.cursor]
	if err := m.apply(rec.Pattern); err != nil {
		m.message = err.Error()
		m.isError = true
		return
	}
	m.applied[m.cursor] = true
	m.message = fmt.Sprintf("added %s to the allow list", rec.Pattern)
	m.isError = false
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("autoflow review — safe patterns to allow"))
	sb.WriteString("\n\n")

	if len(m.recs) == 0 {
		sb.WriteString(footerStyle.Render("Nothing to review: no low-risk patterns found."))
		sb.WriteString("\n")
		return sb.String()
	}

	for i, rec := range m.recs {
		line := fmt.Sprintf("%s  %.1f%%  %dx approved  %s",
			rec.Pattern, rec.FlowImpact, rec.Approved, categoryStyle.Render(string(rec.Category)))
		if rec.ChainedCount > 0 {
			line += errStyle.Render(fmt.Sprintf("  %d chained", rec.ChainedCount))
		}
		switch {
		case m.applied[i]:
			line = appliedStyle.Render("✓ " + line)
		case i == m.cursor:
			line = cursorStyle.Render("> " + line)
		default:
			line = "  " + line
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if m.message != "" {
		if m.isError {
			sb.WriteString(errStyle.Render("✗ " + m.message))
		} else {
			sb.WriteString(okStyle.Render("✓ " + m.message))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(footerStyle.Render("↑/↓ move · enter apply · q quit"))
	sb.WriteString("\n")
	return sb.String()
}

// Applied returns the patterns applied during the session.
func (m Model) Applied() []string {
	var out []string
	for i, rec := range m.recs {
		if m.applied[i] {
			out = append(out, rec.Pattern)
		}
	}
	return out
}
