package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/pipeline"
)

// scheduleOpts holds the schedule-graph flags.
type scheduleOpts struct {
	collapseSingleSets bool // inline sets that wrap one node
	hideAmbiguities    bool // omit ambiguity edges
	keepTransitive     bool // skip transitive reduction
	showConditions     bool // list run conditions under system names
	includeEmptySets   bool // keep sets without systems
}

// scheduleCommand creates the schedule command.
//
// Without a label it opens an interactive picker when stdin and stdout are
// terminals, and falls back to the Update schedule otherwise.
func (c *CLI) scheduleCommand() *cobra.Command {
	var (
		opts    scheduleOpts
		output  outputFlags
		filters filterFlags
	)

	cmd := &cobra.Command{
		Use:   "schedule <manifest> [label]",
		Short: "Render one schedule with its sets, ordering and ambiguities",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			// Fail on a bad --format before loading.
			if err := output.apply(&pipeline.Options{}); err != nil {
				return err
			}

			runner, err := c.newRunner(output.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			app, err := runner.Load(args[0])
			if err != nil {
				return err
			}

			label := pipeline.DefaultSchedule
			if len(args) == 2 {
				label = args[1]
			} else if interactive() {
				picked, err := pickSchedule(ctx, app)
				if err != nil {
					return err
				}
				if picked == "" {
					return nil
				}
				label = picked
			}

			p := pipeline.Options{
				Kind:               pipeline.KindSchedule,
				Schedule:           label,
				CollapseSingleSets: opts.collapseSingleSets,
				HideAmbiguities:    opts.hideAmbiguities,
				KeepTransitive:     opts.keepTransitive,
				ShowConditions:     opts.showConditions,
				IncludeEmptySets:   opts.includeEmptySets,
			}
			filters.apply(&p)
			if err := output.apply(&p); err != nil {
				return err
			}
			return c.renderApp(ctx, runner, app, p, output.output)
		},
	}

	output.register(cmd)
	filters.register(cmd)
	cmd.Flags().BoolVar(&opts.collapseSingleSets, "collapse-single-sets", false, "inline sets that contain a single system or set")
	cmd.Flags().BoolVar(&opts.hideAmbiguities, "hide-ambiguities", false, "do not draw ambiguity edges")
	cmd.Flags().BoolVar(&opts.keepTransitive, "keep-transitive", false, "keep ordering edges implied by other edges")
	cmd.Flags().BoolVar(&opts.showConditions, "show-conditions", false, "list run conditions under system names")
	cmd.Flags().BoolVar(&opts.includeEmptySets, "include-empty-sets", false, "draw sets that contain no system")

	return cmd
}

// scheduleLabels returns the app's schedule labels in registration order.
func scheduleLabels(app ecs.App) ([]ecs.Label, error) {
	var labels []ecs.Label
	err := app.World().WithSchedules(func(s ecs.Schedules) error {
		labels = s.Labels()
		return nil
	})
	return labels, err
}

// pickSchedule lets the user choose a schedule. An empty label means the
// picker was dismissed.
func pickSchedule(ctx context.Context, app ecs.App) (string, error) {
	labels, err := scheduleLabels(app)
	if err != nil {
		return "", err
	}
	switch len(labels) {
	case 0:
		return "", fmt.Errorf("manifest declares no schedules")
	case 1:
		return string(labels[0]), nil
	}

	model := NewScheduleListModel(labels)
	final, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return "", fmt.Errorf("schedule picker: %w", err)
	}
	if m, ok := final.(ScheduleListModel); ok && m.Selected != "" {
		return string(m.Selected), nil
	}
	return "", nil
}
