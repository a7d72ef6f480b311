package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"
)

var (
	addLineStyle  = lipgloss.NewStyle().Foreground(success)
	delLineStyle  = lipgloss.NewStyle().Foreground(danger)
	hunkLineStyle = lipgloss.NewStyle().Foreground(accent)
)

// RenderDiff returns a colored unified diff of before and after, or "" when
// they are equal.
func RenderDiff(path, before, after string) string {
	if before == after {
		return ""
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path,
		Context:  2,
	})
	if err != nil || text == "" {
		return ""
	}

	var b strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		body := strings.TrimRight(line, "\r\n")
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString("  " + dimStyle.Render(body) + "\n")
		case strings.HasPrefix(line, "@@"):
			b.WriteString("  " + hunkLineStyle.Render(body) + "\n")
		case strings.HasPrefix(line, "+"):
			b.WriteString("  " + addLineStyle.Render(body) + "\n")
		case strings.HasPrefix(line, "-"):
			b.WriteString("  " + delLineStyle.Render(body) + "\n")
		default:
			b.WriteString("  " + faintStyle.Render(body) + "\n")
		}
	}
	return b.String()
}
