package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitz/taskflow/internal/grouping"
	"github.com/fitz/taskflow/internal/tui"
	"github.com/fitz/taskflow/internal/views"
)

const printWidth = 100

var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "Show the month grid",
	Long: `Show the month grid. --prev and --next step the remembered month, which
the board and the API pick up on their next start.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMonth(cmd); err != nil {
			exitWithError(err)
		}
	},
}

func runMonth(cmd *cobra.Command) error {
	prev, _ := cmd.Flags().GetBool("prev")
	next, _ := cmd.Flags().GetBool("next")
	if prev && next {
		return fmt.Errorf("--prev and --next are mutually exclusive")
	}

	rt, err := openRuntime(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	switch {
	case prev:
		rt.controller.PreviousMonth(cmd.Context())
	case next:
		rt.controller.NextMonth(cmd.Context())
	}
	return printLayout(cmd, rt.controller.Month(), func(l views.MonthLayout) string {
		return tui.RenderMonth(l, printWidth)
	})
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the week grid",
	Long:  `Show the Monday-first week containing --date (default today).`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runWeek(cmd); err != nil {
			exitWithError(err)
		}
	},
}

func runWeek(cmd *cobra.Command) error {
	date, _ := cmd.Flags().GetString("date")

	rt, err := openRuntime(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	if date != "" {
		if _, ok := rt.controller.ShowWeekOf(date); !ok {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
		}
	}
	return printLayout(cmd, rt.controller.Week(), func(l views.WeekLayout) string {
		return tui.RenderWeek(l, printWidth)
	})
}

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the timeline",
	Long: `Show the timeline. Bars are grouped into lanes by status or category and
may be filtered to one status.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTimeline(cmd); err != nil {
			exitWithError(err)
		}
	},
}

func runTimeline(cmd *cobra.Command) error {
	rawStatus, _ := cmd.Flags().GetString("status")
	rawLanes, _ := cmd.Flags().GetString("lanes")
	weeks, _ := cmd.Flags().GetInt("weeks")

	filter, ok := grouping.ParseStatusFilter(rawStatus)
	if !ok {
		return fmt.Errorf("invalid status: %s", rawStatus)
	}
	lanes, ok := views.ParseLaneKey(rawLanes)
	if !ok {
		return fmt.Errorf("invalid lanes: %s (valid: status, category)", rawLanes)
	}
	if weeks < 0 {
		return fmt.Errorf("invalid weeks: %d", weeks)
	}

	rt, err := openRuntime(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	opts := rt.controller.TimelineOptions()
	opts.Filter = filter
	opts.LaneBy = lanes
	if weeks > 0 {
		opts.Weeks = weeks
	}
	return printLayout(cmd, rt.controller.TimelineWith(opts), func(l views.TimelineLayout) string {
		return tui.RenderTimeline(l, printWidth)
	})
}

// printLayout prints l as JSON with --json, otherwise through render.
func printLayout[L any](cmd *cobra.Command, l L, render func(L) string) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(cmd.OutOrStdout(), l)
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), render(l))
	return err
}

func init() {
	rootCmd.AddCommand(monthCmd, weekCmd, timelineCmd)

	monthCmd.Flags().Bool("prev", false, "Step to the previous month")
	monthCmd.Flags().Bool("next", false, "Step to the next month")

	weekCmd.Flags().String("date", "", "Any date in the week to show (YYYY-MM-DD)")

	timelineCmd.Flags().String("status", "all", "Status filter: all, not started, in progress or done")
	timelineCmd.Flags().String("lanes", "status", "Lane grouping: status or category")
	timelineCmd.Flags().Int("weeks", 0, "Weeks to show (default TASKFLOW_TIMELINE_WEEKS)")

	for _, c := range []*cobra.Command{monthCmd, weekCmd, timelineCmd} {
		c.Flags().Bool("json", false, "Print the layout as JSON")
	}
}
