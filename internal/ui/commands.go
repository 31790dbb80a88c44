package ui

import (
	"fmt"

	"github.com/atomicstack/visa-lookup/internal/backend"
	"github.com/atomicstack/visa-lookup/internal/selection"
	"github.com/atomicstack/visa-lookup/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// visaLoadedMsg carries the answer to one visa lookup.
type visaLoadedMsg struct {
	event backend.Event
}

func (m *Model) handleVisaLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(visaLoadedMsg)
	if !ok {
		return nil
	}
	if m.inflight > 0 {
		m.inflight--
	}
	m.applyBackendEvent(loaded.event)
	return nil
}

// flushRequests schedules the queued lookups. Only the newest request can
// still apply, so older ones are skipped.
func (m *Model) flushRequests() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	req := m.pending[len(m.pending)-1]
	m.pending = m.pending[:0]
	if req.Generation != m.controller.Generation() {
		return nil
	}
	return m.visaCmd(req)
}

func (m *Model) visaCmd(req selection.FetchRequest) tea.Cmd {
	fetch := m.fetchVisa
	if fetch == nil {
		return nil
	}
	m.inflight++
	return m.bus.Execute(command.Request{
		ID:    fmt.Sprintf("visa:%d", req.Generation),
		Label: req.PassportSlug + " > " + req.CountrySlug,
		Handler: func() tea.Msg {
			return visaLoadedMsg{event: fetch(req)}
		},
	})
}

// Loading reports whether a visa lookup is in flight.
func (m *Model) Loading() bool {
	return m.inflight > 0
}
