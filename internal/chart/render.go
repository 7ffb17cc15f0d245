package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dtobolski/portfolio/internal/card"
)

const (
	defaultWidth = 60
	yearWidth    = 6
)

var (
	colorBar    = lipgloss.AdaptiveColor{Light: "#1F6FEB", Dark: "#58A6FF"}
	colorPeak   = lipgloss.AdaptiveColor{Light: "#BF8700", Dark: "#E3B341"}
	colorTrack  = lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#30363D"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#57606A", Dark: "#8B949E"}
	colorBorder = lipgloss.AdaptiveColor{Light: "#8C959F", Dark: "#484F58"}
)

// RenderText draws c as horizontal bars for a terminal of the given width.
// A nil renderer uses the lipgloss default.
func RenderText(c *Chart, width int, r *lipgloss.Renderer) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	if width <= 0 {
		width = defaultWidth
	}

	title := r.NewStyle().Bold(true)
	muted := r.NewStyle().Foreground(colorMuted)
	bar := r.NewStyle().Foreground(colorBar)
	peakBar := r.NewStyle().Foreground(colorPeak)
	track := r.NewStyle().Foreground(colorTrack)

	var sb strings.Builder
	sb.WriteString(title.Render(c.Title))
	sb.WriteString("\n")
	sb.WriteString(muted.Render(c.Subtitle))
	sb.WriteString("\n\n")

	if len(c.Points) == 0 {
		sb.WriteString(muted.Render("No yearly data"))
		sb.WriteString("\n")
		return box(r, sb.String())
	}

	decimals := c.Metric.Decimals
	valueWidth := 0
	for _, p := range c.Points {
		if n := len(card.FormatNumber(p.Value, decimals)); n > valueWidth {
			valueWidth = n
		}
	}

	// year, space, bar, space, value, peak marker
	barWidth := width - yearWidth - 1 - 1 - valueWidth - 2
	if barWidth < 1 {
		barWidth = 1
	}

	for _, p := range c.Points {
		filled := int(math.Round(float64(barWidth) * p.Percent / 100))
		if filled > barWidth {
			filled = barWidth
		}

		style := bar
		marker := "  "
		if p.Year == c.PeakYear {
			style = peakBar
			marker = " ▲"
		}

		fmt.Fprintf(&sb, "%-*s ", yearWidth, p.Year)
		sb.WriteString(style.Render(strings.Repeat("█", filled)))
		sb.WriteString(track.Render(strings.Repeat("░", barWidth-filled)))
		fmt.Fprintf(&sb, " %*s%s\n", valueWidth, card.FormatNumber(p.Value, decimals), marker)
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Total: %s · Peak: %s (%s)\n",
		card.FormatNumber(c.Total, decimals),
		c.PeakYear,
		card.FormatNumber(c.PeakValue, decimals))
	sb.WriteString(muted.Render(c.Metric.Explanation))
	return box(r, sb.String())
}

func box(r *lipgloss.Renderer, body string) string {
	return r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Render(body)
}
