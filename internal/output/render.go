package output

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/autoflow/internal/core"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	lowStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mediumStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	highStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// riskLabel renders a colored risk tier.
func riskLabel(risk core.Risk) string {
	switch risk {
	case core.RiskLow:
		return lowStyle.Render(string(risk))
	case core.RiskMedium:
		return mediumStyle.Render(string(risk))
	case core.RiskHigh:
		return highStyle.Render(string(risk))
	default:
		return string(risk)
	}
}

// terminalWidth returns the usable display width, defaulting to 100 when
// stdout is not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 100
}

// RenderReport renders an analysis report for humans.
func RenderReport(report *core.Report) string {
	if report.Empty() {
		return dimStyle.Render("No transcript activity in the lookback window.") + "\n"
	}

	width := terminalWidth()
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("autoflow — permission flow analysis"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Sessions: %d   Tool calls: %d   Auto-allowed: %d   Prompted: %d   Denied: %d\n",
		report.Sessions, report.TotalCalls, report.AutoAllowed, report.Prompted, report.Denied)
	fmt.Fprintf(&sb, "Prompt interval: %s now → %s with all recommendations applied\n\n",
		report.PromptIntervalDisplay, report.ProjectedIntervalDisplay)

	sb.WriteString(sectionStyle.Render("Recommendations"))
	sb.WriteString("\n")
	if len(report.Recommendations) == 0 {
		sb.WriteString(dimStyle.Render("  nothing safe enough to recommend") + "\n")
	} else {
		tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  PATTERN\tIMPACT\tAPPROVED\tRISK\tCATEGORY\tCHAINED")
		for _, rec := range report.Recommendations {
			fmt.Fprintf(tw, "  %s\t%.1f%%\t%d\t%s\t%s\t%d\n",
				truncate(rec.Pattern, width/2), rec.FlowImpact, rec.Approved,
				riskLabel(rec.Risk), rec.Category, rec.ChainedCount)
		}
		tw.Flush()
	}
	sb.WriteString("\n")

	sb.WriteString(sectionStyle.Render("Patterns by command"))
	sb.WriteString("\n")
	for _, group := range report.Groups {
		fmt.Fprintf(&sb, "%s %s\n", titleStyle.Render(group.Key),
			dimStyle.Render(fmt.Sprintf("(%d decisions)", group.Volume())))
		for _, entry := range group.Entries {
			marker := " "
			if entry.AlreadyAllowed {
				marker = dimStyle.Render("✓")
			}
			fmt.Fprintf(&sb, "  %s %s  %s  %d approved / %d denied",
				marker, truncate(entry.Pattern, width/2), riskLabel(entry.Risk),
				entry.Approved, entry.Denied)
			if entry.Destructive {
				sb.WriteString("  " + highStyle.Render("destructive"))
			}
			if entry.ChainedCount > 0 {
				sb.WriteString("  " + mediumStyle.Render(fmt.Sprintf("%d chained", entry.ChainedCount)))
			}
			sb.WriteString("\n")
		}
	}

	if len(report.RawCommands) > 0 {
		sb.WriteString("\n")
		sb.WriteString(sectionStyle.Render("Matching commands"))
		sb.WriteString("\n")
		for _, rc := range report.RawCommands {
			fmt.Fprintf(&sb, "  [%s] %s\n", rc.Outcome, truncate(rc.Command, width-14))
		}
	}

	return sb.String()
}

// RenderQuickTip renders the single session-start recommendation.
func RenderQuickTip(tip *core.QuickTip) string {
	if tip == nil {
		return dimStyle.Render("No recommendation right now.") + "\n"
	}
	return tip.Message + "\n"
}

func truncate(s string, max int) string {
	if max < 8 {
		max = 8
	}
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
