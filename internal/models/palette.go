package models

// CategoryStyle is the display treatment for one category.
// Colors are ANSI 256 codes so every renderer can use them directly.
type CategoryStyle struct {
	Name   string `json:"name" yaml:"name"`
	Color  string `json:"color" yaml:"color"`
	Border string `json:"border" yaml:"border"`
}

// Palette maps category names to styles and always holds a default entry.
type Palette struct {
	styles   map[string]CategoryStyle
	fallback CategoryStyle
}

// DefaultCategoryStyle is used for unknown and empty categories.
var DefaultCategoryStyle = CategoryStyle{Name: DefaultCategory, Color: "252", Border: "245"}

// NewPalette builds a palette from styles. A style named DefaultCategory
// replaces the fallback entry.
func NewPalette(styles ...CategoryStyle) *Palette {
	p := &Palette{
		styles:   make(map[string]CategoryStyle, len(styles)),
		fallback: DefaultCategoryStyle,
	}
	for _, s := range styles {
		p.Set(s)
	}
	return p
}

// DefaultPalette returns the built-in Work/Personal/Health palette.
func DefaultPalette() *Palette {
	return NewPalette(
		CategoryStyle{Name: "Work", Color: "153", Border: "33"},
		CategoryStyle{Name: "Personal", Color: "157", Border: "34"},
		CategoryStyle{Name: "Health", Color: "218", Border: "205"},
	)
}

// Set adds or replaces a category style.
func (p *Palette) Set(s CategoryStyle) {
	if s.Name == "" || s.Name == DefaultCategory {
		s.Name = DefaultCategory
		p.fallback = s
		return
	}
	p.styles[s.Name] = s
}

// Style returns the style for category, or the default entry.
func (p *Palette) Style(category string) CategoryStyle {
	if p == nil {
		return DefaultCategoryStyle
	}
	if s, ok := p.styles[category]; ok {
		return s
	}
	return p.fallback
}

// Len returns the number of named categories, excluding the default entry.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.styles)
}

// StatusColor returns the ANSI 256 color of a status dot.
func StatusColor(s TaskStatus) string {
	switch s {
	case TaskStatusDone:
		return "78"
	case TaskStatusInProgress:
		return "220"
	default:
		return "250"
	}
}
