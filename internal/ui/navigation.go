package ui

import (
	"github.com/atomicstack/visa-lookup/internal/logging/events"
	uistate "github.com/atomicstack/visa-lookup/internal/ui/state"
	"github.com/atomicstack/visa-lookup/internal/worldmap"
	tea "github.com/charmbracelet/bubbletea"
)

type field int

const (
	fieldPassport field = iota
	fieldCountry
	fieldDays
	fieldMap
)

var focusOrder = []field{fieldPassport, fieldCountry, fieldDays, fieldMap}

func (f field) String() string {
	switch f {
	case fieldPassport:
		return "passport"
	case fieldCountry:
		return "country"
	case fieldDays:
		return "days"
	case fieldMap:
		return "map"
	}
	return "unknown"
}

func (m *Model) fieldVisible(f field) bool {
	switch f {
	case fieldPassport:
		return m.passports.Loaded() && m.passports.Err() == nil
	case fieldCountry:
		return m.countries.Loaded() && m.countries.Err() == nil
	case fieldDays:
		return m.controller.ShowDaysInput()
	}
	return true
}

func (m *Model) comboboxFor(f field) *uistate.Combobox {
	switch f {
	case fieldPassport:
		return m.passportBox
	case fieldCountry:
		return m.countryBox
	}
	return nil
}

// setFocus moves input focus. Leaving a combobox closes its dropdown.
func (m *Model) setFocus(f field) tea.Cmd {
	if f == m.focus {
		return nil
	}
	if box := m.comboboxFor(m.focus); box != nil {
		box.Blur()
	}
	if m.focus == fieldDays {
		m.days.Blur()
	}
	m.focus = f
	m.caretDirty = true
	events.UI.Focus(f.String())
	if box := m.comboboxFor(f); box != nil {
		box.Focus()
		box.EnsureHighlightVisible(m.dropdownRows())
		return nil
	}
	if f == fieldDays {
		return m.days.Focus()
	}
	return nil
}

// moveFocus walks the focus ring, skipping fields that are not on screen.
func (m *Model) moveFocus(delta int) tea.Cmd {
	start := 0
	for i, f := range focusOrder {
		if f == m.focus {
			start = i
			break
		}
	}
	n := len(focusOrder)
	for step := 1; step <= n; step++ {
		next := focusOrder[((start+delta*step)%n+n)%n]
		if m.fieldVisible(next) {
			return m.setFocus(next)
		}
	}
	return nil
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c", "esc":
		return tea.Quit
	case "ctrl+r":
		m.reset()
		return nil
	case "tab":
		return m.moveFocus(1)
	case "shift+tab":
		return m.moveFocus(-1)
	}
	switch m.focus {
	case fieldPassport, fieldCountry:
		return m.handleComboboxKey(m.comboboxFor(m.focus), keyMsg)
	case fieldDays:
		return m.handleDaysKey(keyMsg)
	case fieldMap:
		return m.handleMapKey(keyMsg)
	}
	return nil
}

func (m *Model) handleMapKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left":
		m.grid.Move(-1, 0)
	case "right":
		m.grid.Move(1, 0)
	case "up":
		m.grid.Move(0, -1)
	case "down":
		m.grid.Move(0, 1)
	case "enter", " ":
		m.grid.ClickCurrent(m)
	case "+", "=":
		if m.zoom.In() {
			events.UI.Zoom(m.zoom.Level())
		}
	case "-":
		if m.zoom.Out() {
			events.UI.Zoom(m.zoom.Level())
		}
	}
	return nil
}

// OnRegionClick implements worldmap.ClickHandler. The resulting lookup is
// queued for finishUpdate.
func (m *Model) OnRegionClick(code string) {
	_, passportSet := m.controller.Passport()
	_, countrySet := m.controller.Country()
	if passportSet && countrySet {
		m.setInfo(resetHint)
	}
	m.queueRequest(m.controller.ClickRegion(code))
}

var _ worldmap.ClickHandler = (*Model)(nil)

func (m *Model) reset() {
	m.controller.Reset()
	m.days.SetValue("")
	m.forceClearInfo()
	events.UI.Reset()
}
