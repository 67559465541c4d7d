// Package views renders the browser header: the sort status line and
// the narrowing breadcrumb.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zetbrowse/zb/internal/sorter"
)

var sortLabels = []struct {
	mode  sorter.Mode
	label string
}{
	{sorter.ByModified, "[F1] Modified"},
	{sorter.ByCreated, "[F2] Created"},
	{sorter.BySize, "[F3] Size"},
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true)
	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0AF")).
			Padding(0, 1)
	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Padding(0, 1)
	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			SetString("│")
	breadcrumbStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94e2d5"))
)

// GetTitleForBrowser renders the two-line browser header. The active
// sort mode is highlighted; the breadcrumb line is omitted when the
// view is unnarrowed.
func GetTitleForBrowser(mode sorter.Mode, breadcrumb string) string {
	var sortStatus []string
	for _, entry := range sortLabels {
		if entry.mode == mode {
			sortStatus = append(sortStatus, activeStyle.Render(entry.label))
		} else {
			sortStatus = append(sortStatus, inactiveStyle.Render(entry.label))
		}
	}

	sortLine := fmt.Sprintf("%s %s",
		titleStyle.Render("Sort:"),
		strings.Join(sortStatus, dividerStyle.String()),
	)

	if breadcrumb == "" {
		return sortLine
	}

	return fmt.Sprintf("%s\n%s", sortLine, breadcrumbStyle.Render(breadcrumb))
}
