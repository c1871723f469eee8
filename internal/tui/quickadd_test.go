package tui

import (
	"testing"

	"github.com/fitz/taskflow/internal/app"
	"github.com/fitz/taskflow/internal/models"
)

func TestParseQuickAdd(t *testing.T) {
	tests := []struct {
		line string
		want app.NewTask
	}{
		{
			line: "Write report",
			want: app.NewTask{Title: "Write report"},
		},
		{
			line: "Write report @2024-06-10..2024-06-12 09:00-11:00 #Work !in_progress",
			want: app.NewTask{
				Title:     "Write report",
				Status:    models.TaskStatusInProgress,
				StartDate: "2024-06-10",
				EndDate:   "2024-06-12",
				StartTime: "09:00",
				EndTime:   "11:00",
				Category:  "Work",
			},
		},
		{
			line: "Gym @2024-06-11 #Health",
			want: app.NewTask{Title: "Gym", StartDate: "2024-06-11", EndDate: "2024-06-11", Category: "Health"},
		},
		{
			line: "Call @someday !urgent 9am-10am",
			want: app.NewTask{Title: "Call @someday !urgent 9am-10am"},
		},
		{
			line: "#Work",
			want: app.NewTask{Category: "Work"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			if got := parseQuickAdd(tc.line); got != tc.want {
				t.Errorf("parseQuickAdd(%q) = %+v, want %+v", tc.line, got, tc.want)
			}
		})
	}
}
