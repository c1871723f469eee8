package tui

import (
	"strings"

	"github.com/fitz/taskflow/internal/app"
	"github.com/fitz/taskflow/internal/grid"
	"github.com/fitz/taskflow/internal/models"
)

// parseQuickAdd reads a one-line task description:
//
//	Write report @2024-06-10..2024-06-12 09:00-11:00 #Work !in_progress
//
// Tokens that fail to parse are kept as part of the title.
func parseQuickAdd(line string) app.NewTask {
	var in app.NewTask
	var title []string

	for _, tok := range strings.Fields(line) {
		switch {
		case strings.HasPrefix(tok, "#") && len(tok) > 1:
			in.Category = tok[1:]
		case strings.HasPrefix(tok, "!") && len(tok) > 1:
			status, ok := models.ParseTaskStatus(tok[1:])
			if !ok {
				title = append(title, tok)
				continue
			}
			in.Status = status
		case strings.HasPrefix(tok, "@") && len(tok) > 1:
			start, end, ok := parseDateRange(tok[1:])
			if !ok {
				title = append(title, tok)
				continue
			}
			in.StartDate, in.EndDate = start, end
		default:
			if start, end, ok := parseTimeRange(tok); ok {
				in.StartTime, in.EndTime = start, end
				continue
			}
			title = append(title, tok)
		}
	}

	in.Title = strings.Join(title, " ")
	return in
}

func parseDateRange(s string) (string, string, bool) {
	start, end, found := strings.Cut(s, "..")
	if !found {
		end = start
	}
	sd, ok := grid.ParseDate(start)
	if !ok {
		return "", "", false
	}
	ed, ok := grid.ParseDate(end)
	if !ok {
		return "", "", false
	}
	return grid.FormatDate(sd), grid.FormatDate(ed), true
}

func parseTimeRange(s string) (string, string, bool) {
	start, end, found := strings.Cut(s, "-")
	if !found {
		return "", "", false
	}
	if _, _, ok := grid.ParseClock(start); !ok {
		return "", "", false
	}
	if _, _, ok := grid.ParseClock(end); !ok {
		return "", "", false
	}
	return start, end, true
}
