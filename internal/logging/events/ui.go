package events

import "github.com/atomicstack/visa-lookup/internal/logging"

type UITracer struct{}

type ComboboxTracer struct{}

type CommandTracer struct{}

var (
	UI       = UITracer{}
	Combobox = ComboboxTracer{}
	Command  = CommandTracer{}
)

func (UITracer) Focus(field string) {
	logging.Trace("ui.focus", map[string]interface{}{"field": field})
}

func (UITracer) Zoom(level int) {
	logging.Trace("ui.zoom", map[string]interface{}{"level": level})
}

func (UITracer) Reset() {
	logging.Trace("ui.reset", nil)
}

func (ComboboxTracer) Edit(id, text string) {
	logging.Trace("combobox.edit", map[string]interface{}{"combobox": id, "text": text})
}

func (ComboboxTracer) Cleared(id string) {
	logging.Trace("combobox.clear", map[string]interface{}{"combobox": id})
}

func (ComboboxTracer) Cursor(id string, pos int) {
	logging.Trace("combobox.cursor", map[string]interface{}{"combobox": id, "cursor": pos})
}

func (ComboboxTracer) Highlight(id string, index int) {
	logging.Trace("combobox.highlight", map[string]interface{}{"combobox": id, "index": index})
}

func (ComboboxTracer) Choose(id, value string) {
	logging.Trace("combobox.choose", map[string]interface{}{"combobox": id, "value": value})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
