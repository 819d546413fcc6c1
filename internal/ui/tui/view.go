package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	migrationv1 "github.com/imamik/noderefresh/api/v1"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

func plain(s string) string { return s }

var tableColumns = []string{"NAMESPACE", "NAME", "PHASE", "PROCESSED", "LAST MIGRATION", "MESSAGE"}

// RenderTable renders requests as an aligned table. When styled is false the
// output carries no escape sequences and is safe to pipe.
func RenderTable(items []migrationv1.NodeRefresh, now time.Time, styled bool) string {
	rows := make([][]string, 0, len(items))
	for i := range items {
		rows = append(rows, tableRow(&items[i], now))
	}

	widths := make([]int, len(tableColumns))
	for i, h := range tableColumns {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	header := plain
	if styled {
		header = sf(headerStyle)
	}

	var b strings.Builder
	writeRow(&b, tableColumns, widths, func(int) styleFunc { return header })
	for i, row := range rows {
		phase := items[i].Status.Phase
		writeRow(&b, row, widths, func(col int) styleFunc {
			if styled && col == 2 {
				_, style := phaseIcon(phase)
				return style
			}
			return plain
		})
	}
	return b.String()
}

func tableRow(nr *migrationv1.NodeRefresh, now time.Time) []string {
	phase := string(nr.Status.Phase)
	if phase == "" {
		phase = "Pending"
	}
	if nr.Spec.Paused {
		phase += " (paused)"
	}

	processed := "-"
	if nr.Status.NodesProcessed != nil {
		processed = fmt.Sprintf("%d", *nr.Status.NodesProcessed)
	}

	last := "-"
	if nr.Status.LastMigration != nil {
		last = formatDuration(now.Sub(nr.Status.LastMigration.Time)) + " ago"
	}

	return []string{nr.Namespace, nr.Name, phase, processed, last, nr.Status.Message}
}

func writeRow(b *strings.Builder, cells []string, widths []int, style func(int) styleFunc) {
	for i, cell := range cells {
		if i == len(cells)-1 {
			b.WriteString(style(i)(cell))
			break
		}
		pad := widths[i] - lipgloss.Width(cell)
		b.WriteString(style(i)(cell))
		b.WriteString(strings.Repeat(" ", pad+3))
	}
	b.WriteString("\n")
}

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)

	if len(m.Items) == 0 {
		b.WriteString(dimStyle.Render("  No NodeRefresh resources found"))
		b.WriteString("\n")
	} else {
		b.WriteString(RenderTable(m.Items, m.now(), true))
	}

	if m.FetchErr != "" {
		b.WriteString("\n")
		b.WriteString(failedStyle.Render(fmt.Sprintf("%s %s", crossMark, m.FetchErr)))
		b.WriteString("\n")
	}

	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	b.WriteString(titleStyle.Render(fmt.Sprintf("noderefresh: %s", m.Scope)))

	status := " "
	switch {
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.LastUpdate.IsZero():
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + warningStyle.Render("loading")
	default:
		status += dimStyle.Render(m.summary())
	}
	b.WriteString(status)
	b.WriteString("\n\n")
}

func renderFooter(b *strings.Builder, m Model) {
	parts := []string{fmt.Sprintf("watching %s", formatDuration(m.now().Sub(m.StartTime)))}
	if !m.LastUpdate.IsZero() {
		parts = append(parts, fmt.Sprintf("updated %s ago", formatDuration(m.now().Sub(m.LastUpdate))))
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("  %s  |  %s  |  q: quit", strings.Join(parts, "  |  "), currentSpinner(m.SpinnerFrame))))
	b.WriteString("\n")
}

// Helper functions

func phaseIcon(phase migrationv1.RefreshPhase) (string, styleFunc) {
	switch phase {
	case migrationv1.RefreshPhaseComplete, migrationv1.RefreshPhaseMonitoring:
		return checkMark, sf(readyStyle)
	case migrationv1.RefreshPhaseFailed:
		return crossMark, sf(failedStyle)
	case migrationv1.RefreshPhaseWaiting:
		return warnMark, sf(warningStyle)
	case migrationv1.RefreshPhaseMigrating:
		return pendMark, sf(activeStyle)
	default:
		return pendMark, sf(dimStyle)
	}
}

func currentSpinner(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	if d < 48*time.Hour {
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
	return fmt.Sprintf("%dd%dh", int(d.Hours())/24, int(d.Hours())%24)
}
