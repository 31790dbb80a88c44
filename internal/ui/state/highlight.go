package state

import "github.com/atomicstack/visa-lookup/internal/logging/events"

// Highlight returns the index of the highlighted candidate.
func (c *Combobox) Highlight() int {
	return c.highlight
}

// ViewportOffset returns the first visible candidate index.
func (c *Combobox) ViewportOffset() int {
	return c.viewportOffset
}

// MoveHighlight moves the highlight by delta, clamping at both ends.
func (c *Combobox) MoveHighlight(delta int) bool {
	if len(c.filtered) == 0 {
		c.highlight = 0
		return false
	}
	old := c.highlight
	c.highlight += delta
	if c.highlight < 0 {
		c.highlight = 0
	}
	if c.highlight >= len(c.filtered) {
		c.highlight = len(c.filtered) - 1
	}
	if c.highlight == old {
		return false
	}
	events.Combobox.Highlight(c.ID, c.highlight)
	return true
}

// SetHighlight moves the highlight to index when it is in range.
func (c *Combobox) SetHighlight(index int) bool {
	if index < 0 || index >= len(c.filtered) || index == c.highlight {
		return false
	}
	c.highlight = index
	return true
}

// EnsureHighlightVisible adjusts the viewport so the highlight stays within
// maxVisible rows. Zero or less shows everything.
func (c *Combobox) EnsureHighlightVisible(maxVisible int) {
	if len(c.filtered) == 0 {
		c.highlight = 0
		c.viewportOffset = 0
		return
	}
	if c.highlight < 0 {
		c.highlight = 0
	}
	if c.highlight >= len(c.filtered) {
		c.highlight = len(c.filtered) - 1
	}
	if maxVisible <= 0 {
		c.viewportOffset = 0
		return
	}
	maxOffset := len(c.filtered) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if c.viewportOffset > maxOffset {
		c.viewportOffset = maxOffset
	}
	if c.viewportOffset < 0 {
		c.viewportOffset = 0
	}
	if c.highlight < c.viewportOffset {
		c.viewportOffset = c.highlight
	}
	if upper := c.viewportOffset + maxVisible - 1; c.highlight > upper {
		c.viewportOffset = c.highlight - maxVisible + 1
	}
}
