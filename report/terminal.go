package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ldsec/platedrift/drift"
)

// Theme styles the terminal summary.
type Theme struct {
	Title lipgloss.Style
	Key   lipgloss.Style
	Value lipgloss.Style
	Warn  lipgloss.Style
	Card  lipgloss.Style
}

// DefaultTheme returns the theme used by the CLI.
func DefaultTheme() Theme {
	return Theme{
		Title: lipgloss.NewStyle().Bold(true),
		Key:   lipgloss.NewStyle().Faint(true),
		Value: lipgloss.NewStyle(),
		Warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
	}
}

// RenderTerminal formats the summary as a bordered key/value card.
func RenderTerminal(s *drift.Summary, th Theme) string {
	rows := summaryRows(s)
	width := 0
	for _, r := range rows {
		width = max(width, len(r.key))
	}

	lines := []string{th.Title.Render("Plate drift least squares"), ""}
	for _, r := range rows {
		value := th.Value.Render(formatValue(r.value))
		if r.key == "lstsq_matches" && !s.LstsqMatches {
			value = th.Warn.Render("false")
		}
		lines = append(lines, th.Key.Render(r.key+strings.Repeat(" ", width-len(r.key)))+"  "+value)
	}

	d := s.Residuals
	lines = append(lines, "",
		th.Title.Render("Residuals (km)"),
		fmt.Sprintf("mean %.4g  sd %.4g  min %.4g  q1 %.4g  median %.4g  q3 %.4g  max %.4g",
			d.Mean, d.StdDev, d.Min, d.Q1, d.Median, d.Q3, d.Max),
	)
	return th.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case float64:
		return fmt.Sprintf("%.6g", v)
	default:
		return fmt.Sprint(v)
	}
}
