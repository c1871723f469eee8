package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/fitz/taskflow/internal/grid"
	"github.com/fitz/taskflow/internal/views"
)

const (
	minCellWidth   = 8
	maxCellTasks   = 2
	laneLabelWidth = 14
)

// truncate shortens s to width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// pad right-pads s with spaces to width cells.
func pad(s string, width int) string {
	if n := ansi.StringWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func cellWidth(width int) int {
	return max(minCellWidth, width/7-1)
}

// RenderMonth draws the Sunday-first month grid.
func RenderMonth(l views.MonthLayout, width int) string {
	cw := cellWidth(width)
	var b strings.Builder

	b.WriteString(titleStyle.Render(l.Title))
	b.WriteString("\n")

	headers := make([]string, len(l.Weekdays))
	for i, h := range l.Weekdays {
		headers[i] = headerStyle.Render(pad(h, cw))
	}
	b.WriteString(strings.Join(headers, " "))
	b.WriteString("\n")

	cells := make([][]string, 0, l.LeadingBlanks+len(l.Cells))
	for range l.LeadingBlanks {
		cells = append(cells, blankCell(cw))
	}
	for _, c := range l.Cells {
		cells = append(cells, monthCell(c, cw))
	}
	for len(cells)%7 != 0 {
		cells = append(cells, blankCell(cw))
	}

	for row := 0; row < len(cells); row += 7 {
		week := make([]string, 7)
		for i, lines := range cells[row : row+7] {
			week[i] = strings.Join(lines, "\n")
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, interleave(week, " ")...))
		b.WriteString("\n")
	}
	return b.String()
}

func blankCell(width int) []string {
	lines := make([]string, maxCellTasks+1)
	for i := range lines {
		lines[i] = strings.Repeat(" ", width)
	}
	return lines
}

func monthCell(c views.DayCell, width int) []string {
	day := fmt.Sprintf("%2d", c.Day)
	switch {
	case c.IsToday:
		day = todayStyle.Render(day)
	case c.IsSelected:
		day = selectedStyle.Render(day)
	}
	if c.IsToday && c.IsSelected {
		day = selectedStyle.Render("[") + day + selectedStyle.Render("]")
	}

	lines := []string{pad(day, width)}
	for i, chip := range c.Tasks {
		if i == maxCellTasks-1 && len(c.Tasks) > maxCellTasks {
			lines = append(lines, dimStyle.Render(pad(fmt.Sprintf("+%d more", len(c.Tasks)-i), width)))
			break
		}
		lines = append(lines, chipStyle(chip).Render(pad(truncate(chip.Title, width), width)))
	}
	for len(lines) < maxCellTasks+1 {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return lines
}

func interleave(items []string, sep string) []string {
	out := make([]string, 0, len(items)*2)
	for i, s := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, s)
	}
	return out
}

// RenderWeek draws the Monday-first week with an all-day row and the
// timed blocks of each column in start order.
func RenderWeek(l views.WeekLayout, width int) string {
	cw := cellWidth(width)
	columns := make([]string, 7)

	for i, col := range l.Columns {
		var lines []string

		label := pad(col.Label, cw)
		switch {
		case col.IsToday:
			label = todayStyle.Render(label)
		case col.IsSelected:
			label = selectedStyle.Render(label)
		default:
			label = headerStyle.Render(label)
		}
		lines = append(lines, label)

		for _, chip := range l.AllDay[i] {
			lines = append(lines, chipStyle(chip).Render(pad(truncate("▪ "+chip.Title, cw), cw)))
		}
		lines = append(lines, dimStyle.Render(strings.Repeat("─", cw)))

		for _, block := range l.Blocks {
			if block.Column != i {
				continue
			}
			style := chipStyle(block.Task)
			lines = append(lines, style.Bold(true).Render(pad(truncate(block.TimeRange, cw), cw)))
			title := block.Task.Title
			if block.Span > 1 {
				title = fmt.Sprintf("%s (+%dd)", title, block.Span-1)
			}
			lines = append(lines, style.Render(pad(truncate(title, cw), cw)))
		}
		columns[i] = strings.Join(lines, "\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, interleave(columns, " ")...) + "\n"
}

// RenderTimeline draws one row per bar, one cell per day, clipped to width.
func RenderTimeline(l views.TimelineLayout, width int) string {
	days := min(len(l.Dates), max(7, width-laneLabelWidth-1))
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Timeline  %s  filter: %s  lanes: %s",
		timelineRange(l.Dates), l.Options.Filter, l.Options.LaneBy)))
	b.WriteString("\n")
	b.WriteString(pad("", laneLabelWidth+1))
	b.WriteString(dimStyle.Render(timelineRuler(l.Dates[:days], l.TodayIndex)))
	b.WriteString("\n")

	if len(l.Lanes) == 0 {
		b.WriteString(dimStyle.Render("No tasks"))
		b.WriteString("\n")
	}

	for _, lane := range l.Lanes {
		label := fmt.Sprintf("%s (%d)", lane.Key, lane.Count)
		b.WriteString(headerStyle.Render(pad(truncate(label, laneLabelWidth), laneLabelWidth)))
		if lane.Hidden > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf(" %d outside range", lane.Hidden)))
		}
		b.WriteString("\n")

		for _, bar := range lane.Bars {
			b.WriteString(pad("", laneLabelWidth+1))
			b.WriteString(timelineBar(bar, days))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func timelineRange(dates []string) string {
	if len(dates) == 0 {
		return ""
	}
	return dates[0] + " → " + dates[len(dates)-1]
}

// timelineRuler marks Mondays with "|" and today with "▼".
func timelineRuler(dates []string, today int) string {
	var b strings.Builder
	for i, s := range dates {
		d, _ := grid.ParseDate(s)
		switch {
		case i == today:
			b.WriteString("▼")
		case d.Weekday() == time.Monday:
			b.WriteString("|")
		default:
			b.WriteString("·")
		}
	}
	return b.String()
}

func timelineBar(bar views.Bar, days int) string {
	if bar.StartIndex >= days {
		return dimStyle.Render(strings.Repeat(" ", days-1) + "›")
	}
	span := min(bar.Span, days-bar.StartIndex)
	body := pad(truncate(bar.Task.Title, span), span)
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(bar.Task.Category.Color))
	return strings.Repeat(" ", bar.StartIndex) + style.Render(body) + " " + dimStyle.Render(bar.Tooltip)
}

// RenderTaskList draws the task list panel with the cursor row marked.
func RenderTaskList(items []views.TaskListItem, selectedDate string, cursor int, width int) string {
	var b strings.Builder

	heading := "Tasks"
	if selectedDate != "" {
		heading = "Tasks on " + selectedDate
	}
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n")

	if len(items) == 0 {
		b.WriteString(dimStyle.Render("No tasks"))
		b.WriteString("\n")
		return b.String()
	}

	for i, item := range items {
		marker := "  "
		if i == cursor {
			marker = cursorStyle.Render("> ")
		}
		title := chipStyle(item.Task).Render(truncate(item.Task.Title, max(10, width-6)))
		fmt.Fprintf(&b, "%s%s %s\n", marker, statusDot(item.Task.Status), title)
		b.WriteString("    ")
		b.WriteString(dimStyle.Render(truncate(item.DateLine, max(10, width-4))))
		b.WriteString("\n")
	}
	return b.String()
}
