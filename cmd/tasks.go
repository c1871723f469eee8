package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fitz/taskflow/internal/app"
	"github.com/fitz/taskflow/internal/config"
	"github.com/fitz/taskflow/internal/grid"
	"github.com/fitz/taskflow/internal/grouping"
	"github.com/fitz/taskflow/internal/models"
	"github.com/fitz/taskflow/internal/views"
)

var addCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Create a task",
	Long: `Create a task. Missing dates default to today, except that a missing end
date follows a future start date. The category defaults to Uncategorized and
the status to "not started".

With the default memory store the task only lives for this invocation; set
TASKFLOW_STORE=neo4j to keep tasks.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAdd(cmd, args[0]); err != nil {
			exitWithError(err)
		}
	},
}

func runAdd(cmd *cobra.Command, title string) error {
	in, err := newTaskFromFlags(cmd, title)
	if err != nil {
		return err
	}

	rt, err := openRuntime(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	task, ok := rt.controller.CreateTask(cmd.Context(), in)
	if !ok {
		return fmt.Errorf("task not created: title must not be blank")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created task '%s'\n", task.Title)
	fmt.Fprintf(out, "  ID: %s\n", task.ID)
	fmt.Fprintf(out, "  Status: %s\n", task.Status)
	fmt.Fprintf(out, "  Span: %s\n", grid.FormatSpan(task.StartDate, task.EndDate))
	fmt.Fprintf(out, "  Category: %s\n", task.Category)
	if cfg.Store == config.StoreMemory {
		fmt.Fprintln(os.Stderr, "  Note: the memory store does not keep tasks after exit")
	}
	return nil
}

// newTaskFromFlags builds the create input from add's flags, rejecting
// malformed dates, times and statuses.
func newTaskFromFlags(cmd *cobra.Command, title string) (app.NewTask, error) {
	in := app.NewTask{Title: title}
	in.StartDate, _ = cmd.Flags().GetString("start")
	in.EndDate, _ = cmd.Flags().GetString("end")
	in.StartTime, _ = cmd.Flags().GetString("start-time")
	in.EndTime, _ = cmd.Flags().GetString("end-time")
	in.Category, _ = cmd.Flags().GetString("category")

	if raw, _ := cmd.Flags().GetString("status"); raw != "" {
		status, ok := models.ParseTaskStatus(raw)
		if !ok {
			return in, fmt.Errorf("invalid status: %s (valid: %v)", raw, models.ValidTaskStatuses)
		}
		in.Status = status
	}
	for _, f := range []struct{ flag, value string }{{"start", in.StartDate}, {"end", in.EndDate}} {
		if _, ok := grid.ParseDate(f.value); f.value != "" && !ok {
			return in, fmt.Errorf("invalid --%s date %q: expected YYYY-MM-DD", f.flag, f.value)
		}
	}
	for _, f := range []struct{ flag, value string }{{"start-time", in.StartTime}, {"end-time", in.EndTime}} {
		if _, _, ok := grid.ParseClock(f.value); f.value != "" && !ok {
			return in, fmt.Errorf("invalid --%s %q: expected HH:mm", f.flag, f.value)
		}
	}
	return in, nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks in creation order, optionally only those starting on --date.
With --by-date the tasks are grouped under their start dates, earliest first.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runList(cmd); err != nil {
			exitWithError(err)
		}
	},
}

func runList(cmd *cobra.Command) error {
	date, _ := cmd.Flags().GetString("date")
	asJSON, _ := cmd.Flags().GetBool("json")
	byDate, _ := cmd.Flags().GetBool("by-date")

	rt, err := openRuntime(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	if date != "" && !rt.controller.SelectDate(date) {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	tasks := rt.controller.TaskList()

	out := cmd.OutOrStdout()
	switch {
	case asJSON && byDate:
		return printJSON(out, grouping.GroupByDate(tasks, grouping.ByStartDate))
	case asJSON:
		return printJSON(out, tasks)
	}
	printTaskList(out, tasks, rt.controller.Palette(), byDate)
	return nil
}

// printTaskList writes tasks as text, under start date headings when byDate
// is set.
func printTaskList(w io.Writer, tasks []models.Task, palette *models.Palette, byDate bool) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks")
		return
	}
	if !byDate {
		printTasks(w, tasks, palette, "")
		return
	}
	for i, g := range grouping.GroupByDate(tasks, grouping.ByStartDate) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		heading := g.Date
		if heading == grouping.NoDate {
			heading = "No date"
		}
		fmt.Fprintf(w, "%s (%d)\n", heading, len(g.Tasks))
		printTasks(w, g.Tasks, palette, "  ")
	}
}

func printTasks(w io.Writer, tasks []models.Task, palette *models.Palette, indent string) {
	for i, item := range views.BuildTaskList(tasks, palette) {
		fmt.Fprintf(w, "%s[%s] %s  (%s)\n", indent, tasks[i].Status, tasks[i].Title, tasks[i].ID)
		fmt.Fprintf(w, "%s    %s\n", indent, item.DateLine)
		fmt.Fprintf(w, "%s    %s\n", indent, item.Tooltip)
	}
}

var cycleCmd = &cobra.Command{
	Use:   "cycle ID",
	Short: "Advance a task's status",
	Long:  `Advance a task through not started → in progress → done → not started.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCycle(cmd, args[0]); err != nil {
			exitWithError(err)
		}
	},
}

func runCycle(cmd *cobra.Command, id string) error {
	rt, err := openRuntime(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	before, ok := rt.controller.Task(id)
	if !ok {
		return fmt.Errorf("task not found: %s", id)
	}
	task, _ := rt.controller.CycleStatus(cmd.Context(), id)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ '%s': %s → %s\n", task.Title, before.Status, task.Status)
	return nil
}

// printJSON writes v to w as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.AddCommand(addCmd, listCmd, cycleCmd)

	addTaskFlags(addCmd)
	listFlags(listCmd)
}

func addTaskFlags(c *cobra.Command) {
	c.Flags().String("status", "", "Initial status: not started, in progress or done")
	c.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	c.Flags().String("end", "", "End date (YYYY-MM-DD)")
	c.Flags().String("start-time", "", "Start time (HH:mm)")
	c.Flags().String("end-time", "", "End time (HH:mm)")
	c.Flags().String("category", "", "Category (default Uncategorized)")
}

func listFlags(c *cobra.Command) {
	c.Flags().String("date", "", "Only tasks starting on this date (YYYY-MM-DD)")
	c.Flags().Bool("json", false, "Print JSON")
	c.Flags().Bool("by-date", false, "Group tasks under their start dates")
}
