package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/visa-lookup/internal/selection"
	"github.com/atomicstack/visa-lookup/internal/state"
	uistate "github.com/atomicstack/visa-lookup/internal/ui/state"
	"github.com/atomicstack/visa-lookup/internal/visa"
	"github.com/atomicstack/visa-lookup/internal/worldmap"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	labelWidth      = 14
	maxDropdownRows = 6
	defaultMapRows  = 8
	minMapRows      = 3
	defaultWidth    = 80

	passportLabel = visa.PassportLabel
	countryLabel  = visa.CountryLabel
	daysLabel     = visa.DaysLabel

	noMatchesText = "(nessun risultato)"
	suggestFormat = "Forse cercavi: %s?"
	zoomFormat    = "Mappa · zoom %d/%d  (+/-)"
	resetHint     = "Entrambi i paesi sono scelti: ctrl+r per ricominciare."
	footerText    = "tab campo · ↑/↓ scegli · invio conferma · +/- zoom · ctrl+r azzera · esc esci"
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

type dropdownZone struct {
	top    int
	offset int
	count  int
}

// zones records where the last View placed clickable things.
type zones struct {
	mapTop    int
	mapRows   int
	fields    map[field]int
	dropdowns map[field]dropdownZone
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	top := []styledLine{{text: visa.Title, style: styles.Title}}
	if m.controller.ShowGuidance() {
		if hint := m.controller.Guidance(); hint != "" {
			top = append(top, styledLine{text: hint, style: styles.Guidance})
		}
	}
	top = append(top, styledLine{text: fmt.Sprintf(zoomFormat, m.zoom.Level(), worldmap.MaxZoom), style: styles.MapZoom})

	form, fields, dropdowns := m.formLines()
	bottom := m.bottomLines()

	mapRows := m.mapRows(len(top) + 1 + len(form) + len(bottom))
	mapLines := m.grid.Render(width, mapRows, m.zoom.Level(), m.focus == fieldMap, m.controller)
	if len(mapLines) == 0 {
		mapLines = []string{""}
	}

	lines := make([]styledLine, 0, len(top)+len(mapLines)+len(form)+len(bottom)+1)
	lines = append(lines, top...)
	mapTop := len(lines)
	for _, row := range mapLines {
		lines = append(lines, styledLine{text: row, raw: true})
	}
	lines = append(lines, styledLine{})
	formTop := len(lines)
	lines = append(lines, form...)
	lines = append(lines, bottom...)

	m.zones = zones{
		mapTop:    mapTop,
		mapRows:   len(mapLines),
		fields:    make(map[field]int, len(fields)),
		dropdowns: make(map[field]dropdownZone, len(dropdowns)),
	}
	for f, row := range fields {
		m.zones.fields[f] = formTop + row
	}
	for f, dz := range dropdowns {
		dz.top += formTop
		m.zones.dropdowns[f] = dz
	}

	lines = applyWidth(lines, width)
	lines = limitHeight(lines, m.height, width)
	return renderLines(lines)
}

// formLines renders the two comboboxes and the stay-length field. Rows in
// the returned zones are relative to the first form line.
func (m *Model) formLines() ([]styledLine, map[field]int, map[field]dropdownZone) {
	lines := make([]styledLine, 0, 8)
	fields := map[field]int{}
	dropdowns := map[field]dropdownZone{}

	catalog := func(f field, store state.CatalogStore, loading string, box *uistate.Combobox, label string, tint *lipgloss.Style) {
		switch {
		case !store.Loaded():
			lines = append(lines, styledLine{text: loading, style: styles.Loading})
			return
		case store.Err() != nil:
			lines = append(lines, styledLine{text: visa.LoadFailedMessage, style: styles.Error})
			return
		}
		fields[f] = len(lines)
		lines = append(lines, styledLine{text: m.fieldLabel(label, box.Focused(), false) + m.comboboxText(box, tint), raw: true})
		if !box.Open() {
			return
		}
		rows, dz := m.dropdownLines(box)
		dz.top = len(lines)
		if dz.count > 0 {
			dropdowns[f] = dz
		}
		lines = append(lines, rows...)
	}
	catalog(fieldPassport, m.passports, visa.LoadingPassports, m.passportBox, passportLabel, styles.PassportTint)
	catalog(fieldCountry, m.countries, visa.LoadingCountries, m.countryBox, countryLabel, styles.CountryTint)

	if m.controller.ShowDaysInput() {
		fields[fieldDays] = len(lines)
		label := m.fieldLabel(daysLabel, m.focus == fieldDays, m.controller.DaysSelected())
		lines = append(lines, styledLine{text: label + m.days.View(), raw: true})
	}
	return lines, fields, dropdowns
}

func (m *Model) fieldLabel(label string, focused, selected bool) string {
	text := label + strings.Repeat(" ", max(1, labelWidth-len([]rune(label))))
	style := styles.Label
	switch {
	case focused && styles.FocusedLabel != nil:
		style = styles.FocusedLabel
	case selected && styles.DaysSelected != nil:
		style = styles.DaysSelected
	}
	if style == nil {
		return text
	}
	return style.Render(text)
}

func (m *Model) dropdownLines(box *uistate.Combobox) ([]styledLine, dropdownZone) {
	indent := strings.Repeat(" ", labelWidth)
	candidates := box.Filtered()
	if len(candidates) == 0 {
		text := noMatchesText
		if suggestion := box.Suggestion(); suggestion != "" {
			text = fmt.Sprintf(suggestFormat, suggestion)
		}
		return []styledLine{{text: indent + text, style: styles.Suggestion}}, dropdownZone{}
	}
	visible := m.dropdownRows()
	box.EnsureHighlightVisible(visible)
	start := box.ViewportOffset()
	end := start + visible
	if end > len(candidates) {
		end = len(candidates)
	}
	lines := make([]styledLine, 0, end-start)
	for i := start; i < end; i++ {
		opt := candidates[i]
		marker := "  "
		style := styles.Option
		if box.IsSelected(opt) && styles.SelectedOption != nil {
			style = styles.SelectedOption
		}
		if i == box.Highlight() {
			marker = "› "
			if styles.HighlightedOption != nil {
				style = styles.HighlightedOption
			}
		}
		lines = append(lines, styledLine{text: indent + marker + opt.Label, style: style})
	}
	return lines, dropdownZone{offset: start, count: end - start}
}

func (m *Model) bottomLines() []styledLine {
	lines := make([]styledLine, 0, 4)
	if verdict := m.controller.Verdict(); !verdict.Empty() {
		lines = append(lines, styledLine{}, styledLine{text: verdict.Text, style: m.verdictStyle(verdict)})
	}
	if m.showFooter {
		lines = append(lines, styledLine{}, styledLine{text: footerText, style: styles.Footer})
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	return lines
}

func (m *Model) verdictStyle(verdict visa.Verdict) *lipgloss.Style {
	if m.controller.Status() == selection.StatusFailed {
		return styles.Error
	}
	switch verdict.Class {
	case visa.ClassVisaRequired:
		return styles.VisaRequired
	case visa.ClassEVisa:
		return styles.EVisaRequired
	case visa.ClassVisaFree:
		return styles.VisaFree
	}
	return styles.Info
}

func (m *Model) dropdownRows() int {
	if m.height <= 0 {
		return maxDropdownRows
	}
	rows := m.height / 4
	if rows < 1 {
		rows = 1
	}
	if rows > maxDropdownRows {
		rows = maxDropdownRows
	}
	return rows
}

func (m *Model) mapRows(used int) int {
	if m.height <= 0 {
		return defaultMapRows
	}
	remain := m.height - used
	if remain < minMapRows {
		return minMapRows
	}
	return remain
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	if box := m.comboboxFor(m.focus); box != nil {
		box.EnsureHighlightVisible(m.dropdownRows())
	}
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if !line.raw && line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
