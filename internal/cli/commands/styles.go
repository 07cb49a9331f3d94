package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kutbudev/tagsync/internal/tags"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	createStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	updateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	deleteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func styleFor(a tags.Action) lipgloss.Style {
	switch a {
	case tags.ActionCreate:
		return createStyle
	case tags.ActionDelete:
		return deleteStyle
	default:
		return updateStyle
	}
}

// printPlan writes the operation log, one styled line per operation.
// Updates are hidden unless verbose, since every matched record gets one.
func printPlan(w io.Writer, plan *tags.Plan, verbose bool) {
	if len(plan.Operations) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("Nothing to do."))
		return
	}
	for _, op := range plan.Operations {
		if op.Action == tags.ActionUpdate && !verbose {
			continue
		}
		fmt.Fprintln(w, styleFor(op.Action).Render(op.String()))
	}
}

// renderSummary returns a boxed count of operations per target.
func renderSummary(plan *tags.Plan) string {
	s := plan.Summary()
	var lines []string
	lines = append(lines, titleStyle.Render("Plan"))
	for _, target := range []tags.Target{tags.TargetGroup, tags.TargetTag} {
		counts := s[target]
		lines = append(lines, fmt.Sprintf("%-9s %s  %s  %s",
			target,
			createStyle.Render(fmt.Sprintf("+%d", counts[tags.ActionCreate])),
			updateStyle.Render(fmt.Sprintf("~%d", counts[tags.ActionUpdate])),
			deleteStyle.Render(fmt.Sprintf("-%d", counts[tags.ActionDelete]))))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}
