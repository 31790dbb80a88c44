package state

import (
	"strings"

	"github.com/atomicstack/visa-lookup/internal/logging/events"
	"github.com/atomicstack/visa-lookup/internal/visa"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ChangeFunc reports a selection change to the owner of the selection. An
// empty value means "nothing selected".
type ChangeFunc func(value string)

// Combobox is a text field with a filtered dropdown of options. The text
// buffer belongs to the combobox; the selection belongs to the caller and is
// pushed in through SetSelected.
type Combobox struct {
	ID          string
	Placeholder string

	onChange ChangeFunc

	buffer string
	cursor int

	selected *visa.Option
	options  []*visa.Option
	filtered []visa.Option

	focused        bool
	highlight      int
	viewportOffset int
}

// NewCombobox constructs an empty, blurred combobox.
func NewCombobox(id, placeholder string, onChange ChangeFunc) *Combobox {
	if onChange == nil {
		onChange = func(string) {}
	}
	return &Combobox{ID: id, Placeholder: placeholder, onChange: onChange}
}

// Text returns the raw buffer.
func (c *Combobox) Text() string {
	return c.buffer
}

// Selected returns the externally owned selection, nil when unset.
func (c *Combobox) Selected() *visa.Option {
	return c.selected
}

// SetSelected synchronises the buffer with the caller's selection. The
// buffer only follows actual changes, so a deselect caused by typing keeps
// the typed text.
func (c *Combobox) SetSelected(opt *visa.Option) {
	if sameOption(c.selected, opt) {
		return
	}
	if opt == nil {
		c.selected = nil
		c.setBuffer("", 0)
		return
	}
	copied := *opt
	c.selected = &copied
	c.setBuffer(copied.Label, len([]rune(copied.Label)))
}

// SetOptions replaces the candidate list. Nil entries are gaps that are
// never shown.
func (c *Combobox) SetOptions(options []*visa.Option) {
	c.options = make([]*visa.Option, len(options))
	for i, opt := range options {
		if opt == nil {
			continue
		}
		copied := *opt
		c.options[i] = &copied
	}
	c.applyFilter()
}

// Options returns the candidate list including nil gaps.
func (c *Combobox) Options() []*visa.Option {
	return c.options
}

// Filtered returns the visible candidates for the current buffer.
func (c *Combobox) Filtered() []visa.Option {
	return c.filtered
}

func (c *Combobox) applyFilter() {
	c.filtered = FilterOptions(c.options, c.buffer)
	if len(c.filtered) == 0 {
		c.highlight = 0
		c.viewportOffset = 0
		return
	}
	if c.highlight >= len(c.filtered) {
		c.highlight = len(c.filtered) - 1
	}
	if c.highlight < 0 {
		c.highlight = 0
	}
	if c.viewportOffset > len(c.filtered)-1 {
		c.viewportOffset = 0
	}
}

// FilterOptions keeps the labelled options whose label contains query as a
// case-insensitive substring, in their original order.
func FilterOptions(options []*visa.Option, query string) []visa.Option {
	lower := strings.ToLower(query)
	filtered := make([]visa.Option, 0, len(options))
	for _, opt := range options {
		if opt == nil || opt.Label == "" {
			continue
		}
		if strings.Contains(strings.ToLower(opt.Label), lower) {
			filtered = append(filtered, *opt)
		}
	}
	return filtered
}

// Focus opens the dropdown.
func (c *Combobox) Focus() {
	c.focused = true
	c.EnsureHighlightVisible(0)
}

// Blur closes the dropdown.
func (c *Combobox) Blur() {
	c.focused = false
}

// Focused reports whether the field holds input focus.
func (c *Combobox) Focused() bool {
	return c.focused
}

// Open reports whether the dropdown is visible.
func (c *Combobox) Open() bool {
	return c.focused
}

// Tinted reports whether a non-empty selection exists.
func (c *Combobox) Tinted() bool {
	return c.selected != nil && c.selected.Value != ""
}

// IsSelected reports whether opt is the current selection.
func (c *Combobox) IsSelected(opt visa.Option) bool {
	return c.selected != nil && c.selected.Value == opt.Value
}

// Choose selects the filtered candidate at index. The buffer is left alone;
// it follows the caller's next SetSelected.
func (c *Combobox) Choose(index int) bool {
	if index < 0 || index >= len(c.filtered) {
		return false
	}
	value := c.filtered[index].Value
	events.Combobox.Choose(c.ID, value)
	c.onChange(value)
	return true
}

// ChooseHighlighted selects the highlighted candidate.
func (c *Combobox) ChooseHighlighted() bool {
	return c.Choose(c.highlight)
}

// Suggestion returns the closest label when the buffer matches nothing.
func (c *Combobox) Suggestion() string {
	query := strings.TrimSpace(c.buffer)
	if query == "" || len(c.filtered) > 0 {
		return ""
	}
	labels := make([]string, 0, len(c.options))
	for _, opt := range c.options {
		if opt == nil || opt.Label == "" {
			continue
		}
		labels = append(labels, opt.Label)
	}
	ranks := fuzzy.RankFindNormalizedFold(query, labels)
	if len(ranks) == 0 {
		return ""
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
			continue
		}
		if rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	return labels[best.OriginalIndex]
}

func sameOption(a, b *visa.Option) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
