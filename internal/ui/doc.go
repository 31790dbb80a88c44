// Package ui contains the Bubble Tea program for the visa lookup page.
// The Model type focuses on message orchestration while dedicated helpers
// own focus, text input, mouse hit-testing, and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are
//     routed through a typed handler registry so each tea.Msg is handled by a
//     focused function (key presses, mouse presses, backend events).
//   - Every Update ends in finishUpdate, which pushes the selection state
//     into the widgets (comboboxes, map, stay-length field) and turns any
//     queued visa lookups into commands.
//
// State ownership:
//   - The passport and destination catalogs live in internal/state stores,
//     filled by the dispatcher from backend events.
//   - The selection and the resolved visa live in selection.Controller. The
//     comboboxes (internal/ui/state.Combobox) own only their text buffers and
//     report choices back through their change callbacks.
//
// Backend interactions:
//   - A backend.Loader fetches both catalogs at start-up; Update waits for
//     those events and hands them to applyBackendEvent.
//   - Visa lookups run through the command bus. Each carries the controller
//     generation that requested it, and answers for an older generation are
//     dropped by the controller.
package ui
