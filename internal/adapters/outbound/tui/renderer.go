package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xcodeaudit/xcodeaudit/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(60)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	separatorLine = faintStyle.Render(strings.Repeat("─", 56))
)

// RenderBanner renders the header shown at the start of a full run.
func RenderBanner() string {
	title := headerStyle.Render("XCODE BUILD PHASE AUDITOR")
	subtitle := dimStyle.Render("Output paths for shell-script build phases")
	return boxStyle.Render(title+"\n"+subtitle) + "\n"
}

// RenderSection renders a stage heading.
func RenderSection(title string) string {
	return "\n" + sectionStyle.Render(title) + "\n" + separatorLine + "\n"
}

// RenderScan lists the issues found by a scan.
func RenderScan(res *domain.ScanResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("  %s Found project file: %s\n", passStyle.Render("✓"), fileStyle.Render(res.File.Path)))
	for _, is := range res.Issues {
		b.WriteString(fmt.Sprintf("  %s %s has no output paths\n", warnStyle.Render("!"), titleStyle.Render(quote(is.PhaseName))))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Found %s\n", countStyle(len(res.Issues)).Render(plural(len(res.Issues), "issue"))))
	return b.String()
}

// RenderFix summarizes a fix stage, including a diff of the patched text.
func RenderFix(res *domain.FixResult) string {
	var b strings.Builder

	if res.IssuesSeen == 0 {
		b.WriteString(fmt.Sprintf("  %s No issues found, project is already compliant\n", passStyle.Render("✓")))
		return b.String()
	}

	if res.BackupPath != "" {
		b.WriteString(fmt.Sprintf("  %s Backup created: %s\n", dimStyle.Render("•"), fileStyle.Render(res.BackupPath)))
	}
	for _, f := range res.Fixes {
		b.WriteString(fmt.Sprintf("  %s Added output path to %s  %s\n",
			passStyle.Render("✓"), titleStyle.Render(quote(f.PhaseName)), dimStyle.Render(f.OutputPath)))
	}
	for _, sk := range res.Skipped {
		b.WriteString(fmt.Sprintf("  %s Skipped %s  %s\n",
			warnStyle.Render("!"), titleStyle.Render(quote(sk.PhaseName)), dimStyle.Render(sk.Reason)))
	}

	if res.Written {
		b.WriteString(fmt.Sprintf("\n  Applied %s to %s\n", plural(len(res.Fixes), "fix"), fileStyle.Render(res.File.Path)))
		if d := RenderDiff(res.File.Path, res.Before, res.After); d != "" {
			b.WriteString("\n" + d)
		}
	}
	if res.HookPath != "" {
		b.WriteString(fmt.Sprintf("  %s Generated Podfile hook: %s\n", passStyle.Render("✓"), fileStyle.Render(res.HookPath)))
	}

	return b.String()
}

// RenderVerify renders the verification outcome.
func RenderVerify(res *domain.VerifyResult) string {
	if res.Passed() {
		return fmt.Sprintf("  %s All build phases have output paths\n", passStyle.Render("✓"))
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s Still have %s\n", failStyle.Render("✗"), plural(res.Verification.RemainingIssues, "issue")))
	for _, is := range res.Remaining {
		b.WriteString(fmt.Sprintf("    %s %s\n", failStyle.Render("●"), is.PhaseName))
	}
	return b.String()
}

// RenderReport renders the closing summary of a full run.
func RenderReport(r *domain.AuditReport, path string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("\n  Report saved: %s\n", fileStyle.Render(path)))
	status := passStyle
	if r.Status != domain.StatusCompleted {
		status = failStyle
	}
	b.WriteString(fmt.Sprintf("  %s  %s found, %s applied, verification %s\n",
		status.Render(strings.ToUpper(r.Status)),
		plural(len(r.IssuesFound), "issue"),
		plural(len(r.FixesApplied), "fix"),
		r.Verification.Status,
	))
	return b.String()
}

// RenderError renders a fatal error with a hint for known kinds.
func RenderError(err error) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %v\n", errorTagStyle.Render("error:"), err))

	var werr *domain.WriteError
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		b.WriteString(dimStyle.Render("  Run from the app root, or set project_dirs in .xcodeaudit.yaml") + "\n")
	case errors.As(err, &werr) && werr.Step != domain.StepBackup:
		b.WriteString(dimStyle.Render("  Earlier writes were kept; backups are in the backup directory") + "\n")
	}
	return b.String()
}

func countStyle(n int) lipgloss.Style {
	if n == 0 {
		return passStyle
	}
	return warnStyle
}

func quote(s string) string { return "'" + s + "'" }

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	if strings.HasSuffix(noun, "x") {
		return fmt.Sprintf("%d %ses", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
