// package ui renders styled terminal output for the CLI
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jsingh/trendtracker/internal/tasks"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// RenderSummary formats the end-of-run report for a pipeline result.
func RenderSummary(result *tasks.RunResult) string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Run complete"))
	b.WriteString("\n")

	for _, section := range result.Sections {
		b.WriteString(fmt.Sprintf("%s  scraped %d, kept %d",
			styles.ok.Render(section.Section), section.Scraped, section.Kept))
		if section.Dropped > 0 {
			b.WriteString(styles.warn.Render(fmt.Sprintf(", dropped %d", section.Dropped)))
		}
		b.WriteString(fmt.Sprintf(" → %s\n", section.OutputPath))
	}

	b.WriteString(styles.help.Render(fmt.Sprintf("run id %s", result.RunID)))
	b.WriteString("\n")
	return b.String()
}
