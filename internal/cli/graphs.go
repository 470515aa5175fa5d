package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/ecsdump/pkg/pipeline"
)

// dataCommand creates the data command.
func (c *CLI) dataCommand() *cobra.Command {
	var (
		output         outputFlags
		filters        filterFlags
		schedules      string
		includeEvents  bool
		hideSingleEdge bool
	)

	cmd := &cobra.Command{
		Use:   "data <manifest>",
		Short: "Render which systems read and write which components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Kind:           pipeline.KindData,
				Schedules:      splitList(schedules),
				IncludeEvents:  includeEvents,
				HideSingleEdge: hideSingleEdge,
			}
			filters.apply(&opts)
			return c.runGraph(cmd.Context(), args[0], opts, &output)
		},
	}

	output.register(cmd)
	filters.register(cmd)
	cmd.Flags().StringVar(&schedules, "schedules", "", "only include these schedules (comma-separated)")
	cmd.Flags().BoolVar(&includeEvents, "include-events", false, "also draw event queues")
	cmd.Flags().BoolVar(&hideSingleEdge, "hide-single-edge", false, "hide components only one system touches")

	return cmd
}

// eventsCommand creates the events command.
func (c *CLI) eventsCommand() *cobra.Command {
	var (
		output         outputFlags
		filters        filterFlags
		schedules      string
		hideSingleEdge bool
	)

	cmd := &cobra.Command{
		Use:   "events <manifest>",
		Short: "Render which systems send and receive which events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Kind:           pipeline.KindEvents,
				Schedules:      splitList(schedules),
				HideSingleEdge: hideSingleEdge,
			}
			filters.apply(&opts)
			return c.runGraph(cmd.Context(), args[0], opts, &output)
		},
	}

	output.register(cmd)
	filters.register(cmd)
	cmd.Flags().StringVar(&schedules, "schedules", "", "only include these schedules (comma-separated)")
	cmd.Flags().BoolVar(&hideSingleEdge, "hide-single-edge", false, "hide events only one system touches")

	return cmd
}

// renderGraphCommand creates the render-graph command.
func (c *CLI) renderGraphCommand() *cobra.Command {
	var (
		output        outputFlags
		showTypeNames bool
	)

	cmd := &cobra.Command{
		Use:   "render-graph <manifest>",
		Short: "Render the render sub-app's node graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Kind:          pipeline.KindRender,
				ShowTypeNames: showTypeNames,
			}
			return c.runGraph(cmd.Context(), args[0], opts, &output)
		},
	}

	output.register(cmd)
	cmd.Flags().BoolVar(&showTypeNames, "type-names", false, "show each node's type under its name")

	return cmd
}
