package state

import (
	"unicode"

	"github.com/atomicstack/visa-lookup/internal/logging/events"
)

// CursorPos returns the rune offset of the text cursor.
func (c *Combobox) CursorPos() int {
	runes := []rune(c.buffer)
	if c.cursor < 0 {
		return 0
	}
	if c.cursor > len(runes) {
		return len(runes)
	}
	return c.cursor
}

func (c *Combobox) setBuffer(text string, cursor int) {
	c.buffer = text
	runes := []rune(text)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	c.cursor = cursor
	c.highlight = 0
	c.viewportOffset = 0
	c.applyFilter()
}

// edit deselects before the buffer changes. The local selection is dropped
// first so the caller's resulting SetSelected(nil) does not wipe the text.
func (c *Combobox) edit(text string, cursor int) {
	c.selected = nil
	c.onChange("")
	c.setBuffer(text, cursor)
	events.Combobox.Edit(c.ID, text)
}

// Type inserts text at the cursor.
func (c *Combobox) Type(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(c.buffer)
	pos := c.CursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	c.edit(string(updated), pos+len(insert))
	return true
}

// Backspace deletes the rune before the cursor.
func (c *Combobox) Backspace() bool {
	runes := []rune(c.buffer)
	pos := c.CursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	c.edit(string(updated), pos-1)
	return true
}

// DeleteWord deletes the word preceding the cursor.
func (c *Combobox) DeleteWord() bool {
	runes := []rune(c.buffer)
	pos := c.CursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	updated := append(runes[:i], runes[pos:]...)
	c.edit(string(updated), i)
	return true
}

// Clear empties the buffer.
func (c *Combobox) Clear() bool {
	if c.buffer == "" {
		return false
	}
	c.edit("", 0)
	events.Combobox.Cleared(c.ID)
	return true
}

// MoveCursorStart moves the text cursor to the start.
func (c *Combobox) MoveCursorStart() bool {
	return c.moveCursorTo(0)
}

// MoveCursorEnd moves the text cursor to the end.
func (c *Combobox) MoveCursorEnd() bool {
	return c.moveCursorTo(len([]rune(c.buffer)))
}

// MoveCursorWordBackward moves the text cursor one word backward.
func (c *Combobox) MoveCursorWordBackward() bool {
	return c.moveCursorTo(wordStart([]rune(c.buffer), c.CursorPos()))
}

// MoveCursorWordForward moves the text cursor one word forward.
func (c *Combobox) MoveCursorWordForward() bool {
	runes := []rune(c.buffer)
	i := c.CursorPos()
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return c.moveCursorTo(i)
}

// MoveCursorRuneBackward moves the text cursor one rune backward.
func (c *Combobox) MoveCursorRuneBackward() bool {
	return c.moveCursorTo(c.CursorPos() - 1)
}

// MoveCursorRuneForward moves the text cursor one rune forward.
func (c *Combobox) MoveCursorRuneForward() bool {
	return c.moveCursorTo(c.CursorPos() + 1)
}

func (c *Combobox) moveCursorTo(pos int) bool {
	if pos < 0 || pos > len([]rune(c.buffer)) || pos == c.CursorPos() {
		return false
	}
	c.cursor = pos
	events.Combobox.Cursor(c.ID, pos)
	return true
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}
