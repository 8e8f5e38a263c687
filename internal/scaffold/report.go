package scaffold

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spark-tools/viewport/internal/project"
)

var warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

// Report prints collected warnings and the next steps for the new project.
func (c *Creator) Report(_ context.Context, pc project.Context) (project.Context, error) {
	fmt.Fprintln(c.Out)
	if len(pc.Warnings) > 0 {
		fmt.Fprintln(c.Out, warnStyle.Render("Warnings:"))
		for _, w := range pc.Warnings {
			fmt.Fprintf(c.Out, "  - %s\n", w)
		}
		fmt.Fprintln(c.Out)
	}

	fmt.Fprintln(c.Out, bannerStyle.Render("Next steps:"))
	fmt.Fprintf(c.Out, "  1. cd %s\n", pc.Key)
	for i, step := range pc.Template.Instructions {
		fmt.Fprintf(c.Out, "  %d. %s\n", i+2, step)
	}
	return pc, nil
}
