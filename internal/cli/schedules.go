package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/errors"
)

// scheduleSummary is one row of the schedules listing.
type scheduleSummary struct {
	Label       ecs.Label
	Systems     int
	Sets        int
	Orderings   int
	Ambiguities int
	Err         error
}

// schedulesCommand creates the schedules command.
func (c *CLI) schedulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schedules <manifest>",
		Short: "List the schedules of a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			app, err := runner.Load(args[0])
			if err != nil {
				return err
			}
			rows, err := summarize(app)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				printWarning("No schedules in %s", args[0])
				return nil
			}
			fmt.Fprintln(c.out, renderSummary(rows))
			return nil
		},
	}
}

// summarize builds every schedule and counts its parts. A schedule that
// fails to build is reported in its row rather than aborting the listing.
func summarize(app ecs.App) ([]scheduleSummary, error) {
	world := app.World()
	var rows []scheduleSummary
	err := world.WithSchedules(func(schedules ecs.Schedules) error {
		ignored := schedules.IgnoredAmbiguities()
		for _, label := range schedules.Labels() {
			s, ok := schedules.Get(label)
			if !ok {
				return errors.New(errors.ErrCodeInternal, "schedule %s is listed but cannot be looked up", label)
			}
			row := scheduleSummary{
				Label:     label,
				Systems:   len(s.Systems()),
				Orderings: len(s.Dependencies()),
			}
			for _, set := range s.Sets() {
				if !set.Anonymous {
					row.Sets++
				}
			}
			if err := s.EnsureBuilt(world, ignored); err != nil {
				row.Err = err
			} else {
				row.Ambiguities = len(s.Ambiguities())
			}
			rows = append(rows, row)
		}
		return nil
	})
	return rows, err
}

func renderSummary(rows []scheduleSummary) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	data := make([][]string, len(rows))
	for i, r := range rows {
		ambiguities := strconv.Itoa(r.Ambiguities)
		if r.Err != nil {
			ambiguities = "build failed: " + errors.UserMessage(r.Err)
		}
		data[i] = []string{
			string(r.Label),
			strconv.Itoa(r.Systems),
			strconv.Itoa(r.Sets),
			strconv.Itoa(r.Orderings),
			ambiguities,
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Schedule", "Systems", "Sets", "Orderings", "Ambiguities").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < len(rows) && rows[row].Err != nil && col == 4 {
				return base.Foreground(colorRed)
			}
			if col == 0 {
				return base.Foreground(colorCyan)
			}
			if col == 4 && row < len(rows) && rows[row].Ambiguities > 0 {
				return base.Foreground(colorYellow)
			}
			return base.Foreground(colorWhite)
		})

	return t.Render()
}
