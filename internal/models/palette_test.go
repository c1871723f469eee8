package models

import "testing"

func TestPaletteStyle(t *testing.T) {
	p := DefaultPalette()

	tests := []struct {
		category string
		want     string
	}{
		{"Work", "Work"},
		{"Personal", "Personal"},
		{"Health", "Health"},
		{"Errands", DefaultCategory},
		{"", DefaultCategory},
		{"work", DefaultCategory}, // case sensitive
	}

	for _, tc := range tests {
		if got := p.Style(tc.category).Name; got != tc.want {
			t.Errorf("Style(%q).Name = %q, want %q", tc.category, got, tc.want)
		}
	}
}

func TestPaletteOverrideDefault(t *testing.T) {
	p := NewPalette(CategoryStyle{Name: DefaultCategory, Color: "1", Border: "2"})

	got := p.Style("anything")
	if got.Color != "1" || got.Border != "2" {
		t.Errorf("expected overridden default entry, got %+v", got)
	}
	if p.Len() != 0 {
		t.Errorf("default entry should not count as a named category, got %d", p.Len())
	}
}

func TestNilPaletteFallsBack(t *testing.T) {
	var p *Palette
	if got := p.Style("Work"); got != DefaultCategoryStyle {
		t.Errorf("nil palette returned %+v", got)
	}
}

func TestStatusColor(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range ValidTaskStatuses {
		seen[StatusColor(s)] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected distinct colors per status, got %v", seen)
	}
	if StatusColor("bogus") != StatusColor(TaskStatusNotStarted) {
		t.Error("unknown status should share the not-started color")
	}
}
