package ui

import (
	"github.com/atomicstack/visa-lookup/internal/backend"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(l *backend.Loader) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-l.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.loader != nil {
		return waitForBackendEvent(m.loader)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.loader = nil
	return nil
}

// applyBackendEvent routes an event into the stores and the controller.
// Widgets are refreshed by finishUpdate.
func (m *Model) applyBackendEvent(evt backend.Event) {
	res := m.dispatcher.Handle(evt)
	if res.PassportsUpdated && m.passports.Err() == nil {
		m.grid.SetRegions(m.controller.Regions())
	}
	if res.VisaUpdated && !m.controller.ShowDaysInput() && m.focus == fieldDays {
		m.setFocus(fieldMap)
	}
}
