// Package form holds the view model shared by every HTML form: fields with
// widgets and attributes, default styling, and field-level validation errors.
package form

import (
	"slices"
	"strings"
)

type Widget string

const (
	TextInput              Widget = "text"
	PasswordInput          Widget = "password"
	Textarea               Widget = "textarea"
	DateInput              Widget = "date"
	TimeInput              Widget = "time"
	NumberInput            Widget = "number"
	RadioSelect            Widget = "radio"
	CheckboxInput          Widget = "checkbox"
	CheckboxSelectMultiple Widget = "checkbox_multiple"
)

const defaultClass = "form-control"

// Widgets left to the browser's native rendering.
var unstyledWidgets = map[Widget]bool{
	CheckboxInput:          true,
	RadioSelect:            true,
	CheckboxSelectMultiple: true,
}

// Choice is one option of a radio or checkbox group.
type Choice struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Field describes one input of a form as rendered.
type Field struct {
	Name    string            `json:"name"`
	Label   string            `json:"label"`
	Widget  Widget            `json:"widget"`
	Value   string            `json:"value,omitempty"`
	Attrs   map[string]string `json:"attrs,omitempty"`
	Choices []Choice          `json:"choices,omitempty"`
	Errors  []string          `json:"errors,omitempty"`
}

// Fielder is implemented by anything that exposes a collection of fields.
type Fielder interface {
	Fields() []*Field
}

// ApplyDefaultStyling adds the default CSS class to every styled widget of f.
// Existing classes are preserved and the default class is never duplicated.
func ApplyDefaultStyling(f Fielder) {
	for _, field := range f.Fields() {
		if unstyledWidgets[field.Widget] {
			continue
		}
		if field.Attrs == nil {
			field.Attrs = make(map[string]string)
		}
		classes := strings.Fields(field.Attrs["class"])
		if !slices.Contains(classes, defaultClass) {
			classes = append(classes, defaultClass)
		}
		field.Attrs["class"] = strings.Join(classes, " ")
	}
}

// Form is a generic Fielder with non-field errors, used by every page form.
type Form struct {
	Items    []*Field `json:"fields"`
	NonField []string `json:"non_field_errors,omitempty"`
}

func (f *Form) Fields() []*Field {
	return f.Items
}

// Field returns the field with the given name, or nil.
func (f *Form) Field(name string) *Field {
	for _, field := range f.Items {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// New builds a styled form from fields.
func New(fields ...*Field) *Form {
	f := &Form{Items: fields}
	ApplyDefaultStyling(f)
	return f
}

// WithErrors copies the messages of errs onto the matching fields.
// Messages for unknown fields become non-field errors.
func (f *Form) WithErrors(errs *Errors) *Form {
	if errs == nil {
		return f
	}
	for name, msgs := range errs.Fields {
		if field := f.Field(name); field != nil {
			field.Errors = append(field.Errors, msgs...)
			continue
		}
		f.NonField = append(f.NonField, msgs...)
	}
	f.NonField = append(f.NonField, errs.NonField...)
	return f
}
