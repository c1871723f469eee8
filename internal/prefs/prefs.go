// Package prefs persists the small set of UI preferences: the active tab and
// the month grid's position.
package prefs

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/fitz/taskflow/internal/models"
	"github.com/fitz/taskflow/internal/views"
)

// Preference keys.
const (
	KeyActiveTab = "taskflow_activeTab"
	KeyMonth     = "taskflow_monthView_month"
	KeyYear      = "taskflow_monthView_year"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("preference not found")

// Setter is the write half of a Store.
type Setter interface {
	Set(ctx context.Context, key, value string) error
}

// Store is a string-valued key-value store.
type Store interface {
	Setter
	Get(ctx context.Context, key string) (string, error)
}

// Preferences is the typed form of the persisted layout.
type Preferences struct {
	View  models.View
	Month views.MonthState
}

// Load reads preferences from s. Missing or malformed values fall back to
// the month view and now's month and year; Load never fails.
func Load(ctx context.Context, s Store, now time.Time) Preferences {
	p := Preferences{
		View:  models.DefaultView,
		Month: views.NewMonthState(now),
	}
	if s == nil {
		return p
	}

	if v, err := s.Get(ctx, KeyActiveTab); err == nil && models.IsValidView(v) {
		p.View = models.View(v)
	}
	if v, ok := getInt(ctx, s, KeyMonth); ok && v >= 0 && v <= 11 {
		p.Month.Month = v
	}
	if v, ok := getInt(ctx, s, KeyYear); ok {
		p.Month.Year = v
	}
	return p
}

func getInt(ctx context.Context, s Store, key string) (int, bool) {
	v, err := s.Get(ctx, key)
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SaveView writes the active tab.
func SaveView(ctx context.Context, s Setter, view models.View) error {
	return s.Set(ctx, KeyActiveTab, string(view))
}

// SaveMonth writes the month grid position. The year is not written if the
// month write fails.
func SaveMonth(ctx context.Context, s Setter, state views.MonthState) error {
	if err := s.Set(ctx, KeyMonth, strconv.Itoa(state.Month)); err != nil {
		return err
	}
	return s.Set(ctx, KeyYear, strconv.Itoa(state.Year))
}

// Memory is a Store backed by a map.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns a Memory store holding values.
func NewMemory(values map[string]string) *Memory {
	m := &Memory{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set implements Store.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
