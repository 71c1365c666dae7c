package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"loopwalk.dev/internal/route"
)

var (
	terminalRoleStyles = map[Role]lipgloss.Style{
		RoleStart:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6")),
		RoleEnd:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
		RoleRest:         lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316")),
		RoleIntermediate: lipgloss.NewStyle().Foreground(lipgloss.Color("#15803D")),
	}

	timeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#22C55E")).
			Padding(0, 1)
)

// Terminal renders result as a coloured vertical timeline for a terminal.
func Terminal(result route.Result, loc *time.Location) string {
	rows := Timeline(result, loc)

	var b strings.Builder
	for i, row := range rows {
		style := terminalRoleStyles[row.Role]
		fmt.Fprintf(&b, "%s %s %s\n",
			timeStyle.Render(row.Arrival),
			style.Render("●"),
			style.Render(row.StationName))

		if row.Departure != "" {
			fmt.Fprintf(&b, "      │ %s\n",
				terminalRoleStyles[RoleRest].Render(fmt.Sprintf("rest %d min, leave %s", row.RestMinutes, row.Departure)))
		}
		if i < len(rows)-1 {
			fmt.Fprintf(&b, "      │ %s\n", timeStyle.Render(fmt.Sprintf("%.1f km", row.SegmentDistance)))
		}
	}

	summary := fmt.Sprintf("%.1f km  %s  %d rest stops",
		result.TotalDistance, FormatElapsed(result.Elapsed()), len(result.RestStops()))
	b.WriteString(summaryStyle.Render(summary))
	b.WriteString("\n")
	return b.String()
}

// FormatElapsed prints d as 1h05m or 12m.
func FormatElapsed(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
