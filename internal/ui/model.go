package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/visa-lookup/internal/backend"
	"github.com/atomicstack/visa-lookup/internal/data/dispatcher"
	"github.com/atomicstack/visa-lookup/internal/selection"
	"github.com/atomicstack/visa-lookup/internal/state"
	"github.com/atomicstack/visa-lookup/internal/theme"
	"github.com/atomicstack/visa-lookup/internal/ui/command"
	uistate "github.com/atomicstack/visa-lookup/internal/ui/state"
	"github.com/atomicstack/visa-lookup/internal/visa"
	"github.com/atomicstack/visa-lookup/internal/worldmap"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for the visa lookup page.
type Model struct {
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	infoMsg    string
	infoExpire time.Time

	loader    *backend.Loader
	fetchVisa func(selection.FetchRequest) backend.Event
	inflight  int

	passports  state.CatalogStore
	countries  state.CatalogStore
	controller *selection.Controller
	dispatcher *dispatcher.Dispatcher
	bus        *command.Bus
	pending    []selection.FetchRequest

	passportBox *uistate.Combobox
	countryBox  *uistate.Combobox
	days        textinput.Model
	grid        *worldmap.Grid
	zoom        uistate.Zoom
	focus       field

	caret      cursor.Model
	caretDirty bool

	zones zones

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the page. loader may be nil, in which case catalogs
// and visa results must be delivered as messages.
func NewModel(loader *backend.Loader, width, height int, showFooter bool) *Model {
	passports := state.NewCatalogStore()
	countries := state.NewCatalogStore()
	controller := selection.New(passports, countries)
	m := &Model{
		loader:     loader,
		passports:  passports,
		countries:  countries,
		controller: controller,
		dispatcher: dispatcher.New(passports, countries, controller),
		bus:        command.New(),
		showFooter: showFooter,
		grid:       worldmap.NewGrid(styles),
		zoom:       uistate.NewZoom(),
		focus:      fieldMap,
	}
	if loader != nil {
		m.fetchVisa = loader.Visa
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	m.passportBox = uistate.NewCombobox("passport", visa.PassportPlaceholder, func(value string) {
		m.queueRequest(m.controller.SelectPassport(value))
	})
	m.countryBox = uistate.NewCombobox("country", visa.CountryPlaceholder, func(value string) {
		m.queueRequest(m.controller.SelectCountry(value))
	})
	m.days = newDaysInput()
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Field != nil {
		c.TextStyle = styles.Field.Copy()
	}
	c.SetChar(" ")
	m.caret = c
	m.registerHandlers()
	return m
}

func newDaysInput() textinput.Model {
	in := textinput.New()
	in.Placeholder = visa.DaysPlaceholder
	in.Prompt = ""
	in.CharLimit = 5
	in.Width = 24
	if styles.Field != nil {
		in.TextStyle = styles.Field.Copy()
	}
	if styles.FieldPlaceholder != nil {
		in.PlaceholderStyle = styles.FieldPlaceholder.Copy()
	}
	if styles.Cursor != nil {
		in.Cursor.Style = styles.Cursor.Copy()
	}
	return in
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.loader != nil {
		m.loader.Start()
		cmds = append(cmds, waitForBackendEvent(m.loader))
	}
	if cmd := m.caret.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateCaretModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	} else if m.focus == fieldDays {
		// blink and other textinput-internal messages
		var cmd tea.Cmd
		m.days, cmd = m.days.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(visaLoadedMsg{}):     m.handleVisaLoadedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate pushes selection changes into the widgets and turns queued
// fetch requests into commands.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.syncWidgets()
	if cmd := m.flushRequests(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.caretDirty {
		m.caretDirty = false
		m.caret.Blink = false
		if cmd := m.caret.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// syncWidgets is the one-directional effect from the controller to the
// comboboxes, the map and the stay-length field.
func (m *Model) syncWidgets() {
	m.passportBox.SetOptions(m.controller.PassportOptions())
	m.passportBox.SetSelected(m.controller.PassportOption())
	m.countryBox.SetOptions(m.controller.CountryOptions())
	m.countryBox.SetSelected(m.controller.CountryOption())
	m.grid.SetRegions(m.controller.Regions())
	if m.controller.Days() == "" && m.days.Value() != "" {
		m.days.SetValue("")
	}
	if !m.fieldVisible(m.focus) {
		m.setFocus(fieldMap)
	}
}

func (m *Model) queueRequest(req selection.FetchRequest, ok bool) {
	if !ok {
		return
	}
	m.pending = append(m.pending, req)
}
