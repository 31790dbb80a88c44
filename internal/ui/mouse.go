package ui

import tea "github.com/charmbracelet/bubbletea"

// handleMouseMsg acts on the zones recorded by the last View. Presses are
// handled rather than releases so a dropdown choice lands before focus
// leaves the field.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		return m.handleWheel(ev)
	case tea.MouseButtonLeft:
	default:
		return nil
	}
	if ev.Action != tea.MouseActionPress {
		return nil
	}

	for _, f := range []field{fieldPassport, fieldCountry} {
		dz, ok := m.zones.dropdowns[f]
		if !ok || ev.Y < dz.top || ev.Y >= dz.top+dz.count {
			continue
		}
		if box := m.comboboxFor(f); box != nil && box.Open() {
			box.Choose(dz.offset + ev.Y - dz.top)
			return m.setFocus(fieldMap)
		}
	}

	if ev.Y >= m.zones.mapTop && ev.Y < m.zones.mapTop+m.zones.mapRows {
		cmd := m.setFocus(fieldMap)
		m.grid.Click(ev.X, ev.Y-m.zones.mapTop, m)
		return cmd
	}

	for f, row := range m.zones.fields {
		if ev.Y == row {
			return m.setFocus(f)
		}
	}

	if m.comboboxFor(m.focus) != nil {
		return m.setFocus(fieldMap)
	}
	return nil
}

func (m *Model) handleWheel(ev tea.MouseMsg) tea.Cmd {
	delta := 1
	if ev.Button == tea.MouseButtonWheelUp {
		delta = -1
	}
	if box := m.comboboxFor(m.focus); box != nil && box.Open() {
		if dz, ok := m.zones.dropdowns[m.focus]; ok && ev.Y >= dz.top && ev.Y < dz.top+dz.count {
			box.MoveHighlight(delta)
			box.EnsureHighlightVisible(m.dropdownRows())
			return nil
		}
	}
	if ev.Y >= m.zones.mapTop && ev.Y < m.zones.mapTop+m.zones.mapRows {
		m.grid.Move(0, delta)
	}
	return nil
}
