package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/trade-analyzer/internal/types"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// SectionStyle for section headings.
	SectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	// LabelStyle for metric labels.
	LabelStyle = lipgloss.NewStyle().Faint(true)

	// GoodStyle, MarginalStyle and RevisionStyle color the verdict line.
	GoodStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	MarginalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	RevisionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

// RenderConsole returns the report styled for a terminal. The content is the
// same as RenderText; colors are dropped when the output is not a terminal.
func RenderConsole(analysis types.TradeAnalysis) string {
	var b strings.Builder

	rule := strings.Repeat("=", ruleWidth)

	b.WriteString(rule + "\n")
	b.WriteString(TitleStyle.Render(Title(analysis)) + "\n")
	b.WriteString(rule + "\n")
	b.WriteString(LabelStyle.Render("Analyzed at:") + " " + analysis.Timestamp.Format(timestampLayout) + "\n")

	if analysis.Source != "" {
		b.WriteString(LabelStyle.Render("Source:") + " " + analysis.Source + "\n")
	}

	for _, s := range sections(analysis.Report) {
		b.WriteString("\n" + SectionStyle.Render(s.title) + "\n")

		for _, line := range s.lines {
			b.WriteString("  " + LabelStyle.Render(line[0]+":") + " " + line[1] + "\n")
		}
	}

	b.WriteString("\n" + SectionStyle.Render("Verdict") + "\n")
	b.WriteString("  " + verdictStyle(analysis.Verdict).Render(VerdictMark(analysis.Verdict)+" "+analysis.Verdict.Description()) + "\n")
	b.WriteString(rule + "\n")

	return b.String()
}

func verdictStyle(verdict types.Verdict) lipgloss.Style {
	switch verdict {
	case types.VerdictGood:
		return GoodStyle
	case types.VerdictMarginal:
		return MarginalStyle
	default:
		return RevisionStyle
	}
}
