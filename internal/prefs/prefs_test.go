package prefs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/fitz/taskflow/internal/models"
	"github.com/fitz/taskflow/internal/views"
)

var now = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.Local)

func TestLoadFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		want   Preferences
	}{
		{
			name:   "empty store",
			values: nil,
			want:   Preferences{View: models.ViewMonth, Month: views.MonthState{Year: 2024, Month: 5}},
		},
		{
			name:   "all stored",
			values: map[string]string{KeyActiveTab: "timeline", KeyMonth: "0", KeyYear: "2023"},
			want:   Preferences{View: models.ViewTimeline, Month: views.MonthState{Year: 2023, Month: 0}},
		},
		{
			name:   "unknown tab",
			values: map[string]string{KeyActiveTab: "agenda"},
			want:   Preferences{View: models.ViewMonth, Month: views.MonthState{Year: 2024, Month: 5}},
		},
		{
			name:   "non-numeric month and year",
			values: map[string]string{KeyMonth: "june", KeyYear: "next"},
			want:   Preferences{View: models.ViewMonth, Month: views.MonthState{Year: 2024, Month: 5}},
		},
		{
			name:   "month out of range",
			values: map[string]string{KeyActiveTab: "week", KeyMonth: "12", KeyYear: "2020"},
			want:   Preferences{View: models.ViewWeek, Month: views.MonthState{Year: 2020, Month: 5}},
		},
		{
			name:   "negative month",
			values: map[string]string{KeyMonth: "-1"},
			want:   Preferences{View: models.ViewMonth, Month: views.MonthState{Year: 2024, Month: 5}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Load(context.Background(), NewMemory(tc.values), now)
			if got != tc.want {
				t.Errorf("Load() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestLoadNilStore(t *testing.T) {
	got := Load(context.Background(), nil, now)
	if got.View != models.ViewMonth || got.Month != views.NewMonthState(now) {
		t.Errorf("unexpected %+v", got)
	}
}

// roundTrip checks a backend through the typed helpers.
func roundTrip(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, KeyActiveTab); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first write, got %v", err)
	}

	if err := SaveView(ctx, s, models.ViewWeek); err != nil {
		t.Fatalf("SaveView failed: %v", err)
	}
	if err := SaveMonth(ctx, s, views.MonthState{Year: 2025, Month: 11}); err != nil {
		t.Fatalf("SaveMonth failed: %v", err)
	}
	if err := SaveMonth(ctx, s, views.MonthState{Year: 2026, Month: 0}); err != nil {
		t.Fatalf("SaveMonth overwrite failed: %v", err)
	}

	got := Load(ctx, s, now)
	want := Preferences{View: models.ViewWeek, Month: views.MonthState{Year: 2026, Month: 0}}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	raw, err := s.Get(ctx, KeyYear)
	if err != nil || raw != "2026" {
		t.Errorf("Get(%s) = %q, %v", KeyYear, raw, err)
	}
}

func TestMemoryStore(t *testing.T) {
	roundTrip(t, NewMemory(nil))
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.env")
	roundTrip(t, NewFile(path))

	// A second handle sees the same values.
	reopened := NewFile(path)
	if v, err := reopened.Get(context.Background(), KeyActiveTab); err != nil || v != "week" {
		t.Errorf("reopened Get = %q, %v", v, err)
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	roundTrip(t, s)
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()
	if v, err := reopened.Get(context.Background(), KeyMonth); err != nil || v != "0" {
		t.Errorf("reopened Get = %q, %v", v, err)
	}
}

func TestSQLiteInMemory(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer s.Close()
	roundTrip(t, s)
}
