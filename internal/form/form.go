// Package form implements the generic modal form workflow: an ordered field
// schema, draft values, a pluggable validator, and per-field error state.
// One form engine serves every entity type; the caller supplies the schema
// and the validator.
package form

import (
	"github.com/charmbracelet/bubbles/textinput"
)

// Kind selects the input widget for a field
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindPassword Kind = "password"
	KindSelect   Kind = "select"
)

// Option is one choice of a select field
type Option struct {
	Value string
	Label string
}

// Field describes one entry of the form schema
type Field struct {
	Name        string
	Label       string
	Kind        Kind
	Options     []Option
	Placeholder string
	Required    bool
}

// Validator inspects draft values and returns errors keyed by field name.
// An empty map means the draft is acceptable.
type Validator func(values map[string]string) map[string]string

// Form holds the draft state for one open modal. It is rebuilt from scratch
// whenever the modal opens. The version stamp makes reopening the same
// modal type produce a fresh draft instead of resurrecting stale input.
type Form struct {
	fields  []Field
	inputs  map[string]*textinput.Model
	selects map[string]int // cursor into Options, -1 = nothing chosen
	errors  map[string]string
	focus   int
	version int64
}

// New builds a form from a schema and initial values. version is the modal
// open stamp; callers bump it on every open.
func New(fields []Field, initial map[string]string, version int64) *Form {
	f := &Form{
		fields:  fields,
		inputs:  make(map[string]*textinput.Model),
		selects: make(map[string]int),
		errors:  make(map[string]string),
		version: version,
	}

	for i, field := range fields {
		switch field.Kind {
		case KindSelect:
			f.selects[field.Name] = -1
			for idx, opt := range field.Options {
				if opt.Value == initial[field.Name] && initial[field.Name] != "" {
					f.selects[field.Name] = idx
					break
				}
			}
		default:
			ti := textinput.New()
			ti.Placeholder = field.Placeholder
			ti.SetValue(initial[field.Name])
			ti.CharLimit = 256
			if field.Kind == KindPassword {
				ti.EchoMode = textinput.EchoPassword
				ti.EchoCharacter = '•'
			}
			if i == 0 {
				ti.Focus()
			}
			f.inputs[field.Name] = &ti
		}
	}

	return f
}

// Version returns the open stamp this form was built for
func (f *Form) Version() int64 {
	return f.version
}

// Fields returns the schema in order
func (f *Form) Fields() []Field {
	return f.fields
}

// FocusIndex returns the index of the focused field
func (f *Form) FocusIndex() int {
	return f.focus
}

// FocusedField returns the schema entry under focus
func (f *Form) FocusedField() Field {
	return f.fields[f.focus]
}

// Next moves focus forward, wrapping around
func (f *Form) Next() {
	f.setFocus((f.focus + 1) % len(f.fields))
}

// Prev moves focus backward, wrapping around
func (f *Form) Prev() {
	f.setFocus((f.focus - 1 + len(f.fields)) % len(f.fields))
}

func (f *Form) setFocus(idx int) {
	if ti, ok := f.inputs[f.fields[f.focus].Name]; ok {
		ti.Blur()
	}
	f.focus = idx
	if ti, ok := f.inputs[f.fields[f.focus].Name]; ok {
		ti.Focus()
	}
}

// Input returns the text input of a field, nil for selects
func (f *Form) Input(name string) *textinput.Model {
	return f.inputs[name]
}

// Value returns the current draft value of a field
func (f *Form) Value(name string) string {
	if ti, ok := f.inputs[name]; ok {
		return ti.Value()
	}
	if cursor, ok := f.selects[name]; ok && cursor >= 0 {
		for _, field := range f.fields {
			if field.Name == name {
				return field.Options[cursor].Value
			}
		}
	}
	return ""
}

// Values returns the full draft as a value map
func (f *Form) Values() map[string]string {
	values := make(map[string]string, len(f.fields))
	for _, field := range f.fields {
		values[field.Name] = f.Value(field.Name)
	}
	return values
}

// SetValue replaces a field's draft value and clears that field's error.
// Other fields keep their errors: correcting one field must not wipe the
// messages shown for the rest.
func (f *Form) SetValue(name, value string) {
	if ti, ok := f.inputs[name]; ok {
		ti.SetValue(value)
	}
	if _, ok := f.selects[name]; ok {
		f.selects[name] = -1
		for _, field := range f.fields {
			if field.Name != name {
				continue
			}
			for idx, opt := range field.Options {
				if opt.Value == value {
					f.selects[name] = idx
				}
			}
		}
	}
	f.ClearError(name)
}

// CycleSelect advances a select field's cursor by delta, wrapping, and
// clears that field's error
func (f *Form) CycleSelect(name string, delta int) {
	cursor, ok := f.selects[name]
	if !ok {
		return
	}
	var options []Option
	for _, field := range f.fields {
		if field.Name == name {
			options = field.Options
		}
	}
	if len(options) == 0 {
		return
	}
	if cursor < 0 {
		cursor = 0
	} else {
		cursor = (cursor + delta + len(options)) % len(options)
	}
	f.selects[name] = cursor
	f.ClearError(name)
}

// SelectCursor returns the cursor of a select field, -1 when unset
func (f *Form) SelectCursor(name string) int {
	if cursor, ok := f.selects[name]; ok {
		return cursor
	}
	return -1
}

// Error returns the error shown for a field, empty when none
func (f *Form) Error(name string) string {
	return f.errors[name]
}

// ClearError removes the error of a single field
func (f *Form) ClearError(name string) {
	delete(f.errors, name)
}

// HasErrors reports whether any field error is displayed
func (f *Form) HasErrors() bool {
	return len(f.errors) > 0
}

// Submit runs the validator against the draft. A non-empty error map blocks
// submission: the errors are stored per field and nil is returned. On
// success the draft values are returned and the caller closes the modal.
func (f *Form) Submit(validate Validator) map[string]string {
	values := f.Values()
	if validate != nil {
		if errors := validate(values); len(errors) > 0 {
			f.errors = errors
			return nil
		}
	}
	f.errors = make(map[string]string)
	return values
}
