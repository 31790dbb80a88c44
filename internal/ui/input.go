package ui

import (
	"unicode"

	uistate "github.com/atomicstack/visa-lookup/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateCaretModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.caret, cmd = m.caret.Update(msg)
	return cmd
}

func (m *Model) noteCaretChange(box *uistate.Combobox, before int) {
	if before != box.CursorPos() {
		m.caretDirty = true
	}
}

func (m *Model) handleComboboxKey(box *uistate.Combobox, msg tea.KeyMsg) tea.Cmd {
	if box == nil {
		return nil
	}
	before := box.CursorPos()
	defer m.noteCaretChange(box, before)
	switch msg.String() {
	case "ctrl+u":
		box.Clear()
	case "ctrl+w":
		box.DeleteWord()
	case "ctrl+a", "home":
		box.MoveCursorStart()
	case "ctrl+e", "end":
		box.MoveCursorEnd()
	case "alt+b":
		box.MoveCursorWordBackward()
	case "alt+f":
		box.MoveCursorWordForward()
	case "up":
		box.MoveHighlight(-1)
	case "down":
		box.MoveHighlight(1)
	case "pgup":
		box.MoveHighlight(-m.dropdownRows())
	case "pgdown":
		box.MoveHighlight(m.dropdownRows())
	case "enter":
		if box.ChooseHighlighted() {
			return m.moveFocus(1)
		}
		return nil
	default:
		m.handleComboboxText(box, msg)
	}
	box.EnsureHighlightVisible(m.dropdownRows())
	return nil
}

func (m *Model) handleComboboxText(box *uistate.Combobox, msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		box.Backspace()
	case tea.KeyLeft:
		box.MoveCursorRuneBackward()
	case tea.KeyRight:
		box.MoveCursorRuneForward()
	case tea.KeySpace:
		box.Type(" ")
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return
			}
		}
		box.Type(string(msg.Runes))
	}
}

func (m *Model) handleDaysKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "enter" {
		return m.moveFocus(1)
	}
	var cmd tea.Cmd
	m.days, cmd = m.days.Update(msg)
	m.controller.SetDays(m.days.Value())
	return cmd
}

// comboboxText renders the field text with the caret when focused, or the
// placeholder when empty.
func (m *Model) comboboxText(box *uistate.Combobox, tint *lipgloss.Style) string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	textStyle := styles.Field
	if box.Tinted() && tint != nil {
		textStyle = tint
	}
	if styles.Cursor != nil {
		m.caret.Style = styles.Cursor.Copy()
	}
	if textStyle != nil {
		m.caret.TextStyle = textStyle.Copy()
	} else {
		m.caret.TextStyle = lipgloss.Style{}
	}
	text := box.Text()
	if text == "" {
		if !box.Focused() {
			return render(styles.FieldPlaceholder, box.Placeholder)
		}
		runes := []rune(box.Placeholder)
		var caretRune, rest string
		if len(runes) > 0 {
			caretRune = string(runes[0])
			rest = string(runes[1:])
		}
		if styles.FieldPlaceholder != nil {
			m.caret.TextStyle = styles.FieldPlaceholder.Copy()
		}
		return m.renderCaret(caretRune) + render(styles.FieldPlaceholder, rest)
	}
	if !box.Focused() {
		return render(textStyle, text)
	}
	runes := []rune(text)
	pos := box.CursorPos()
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(textStyle, string(runes[pos+1:]))
	}
	return render(textStyle, string(runes[:pos])) + m.renderCaret(caretRune) + after
}

func (m *Model) renderCaret(char string) string {
	if char == "" {
		char = " "
	}
	m.caret.SetChar(char)

	base := m.caret.TextStyle.Copy().Inline(true)
	if m.caret.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		return base.Inherit(cursorStyle).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
