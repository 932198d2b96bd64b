package form

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	MsgRequired      = "This field is required."
	MsgInvalidChoice = "Select a valid choice."
	MsgInvalidValue  = "Enter a valid value."
)

// Errors collects validation messages keyed by field name plus form-wide messages.
type Errors struct {
	Fields   map[string][]string `json:"fields,omitempty"`
	NonField []string            `json:"non_field,omitempty"`
}

func (e *Errors) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *Errors) AddNonField(msg string) {
	e.NonField = append(e.NonField, msg)
}

func (e *Errors) Get(field string) []string {
	return e.Fields[field]
}

func (e *Errors) Empty() bool {
	return e == nil || (len(e.Fields) == 0 && len(e.NonField) == 0)
}

// Error makes Errors usable as an error value.
func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.Fields)+len(e.NonField))
	for field, msgs := range e.Fields {
		parts = append(parts, field+": "+strings.Join(msgs, " "))
	}
	parts = append(parts, e.NonField...)
	return strings.Join(parts, "; ")
}

// Merge adds the messages of other for fields that have none yet, so a field
// only reports the first rule it failed. Either side may be nil.
func (e *Errors) Merge(other *Errors) *Errors {
	if e == nil {
		e = &Errors{}
	}
	if other != nil {
		for field, msgs := range other.Fields {
			if len(e.Get(field)) > 0 {
				continue
			}
			for _, msg := range msgs {
				e.Add(field, msg)
			}
		}
		e.NonField = append(e.NonField, other.NonField...)
	}
	return e.OrNil()
}

// OrNil returns nil when no message was collected.
func (e *Errors) OrNil() *Errors {
	if e.Empty() {
		return nil
	}
	return e
}

// RegisterTagNames makes validator report field names from the form tag
// (falling back to json), so binding errors line up with rendered inputs.
func RegisterTagNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
}

// Bind binds the request into obj and converts binding failures into Errors.
func Bind(c *gin.Context, obj any) *Errors {
	if err := c.ShouldBind(obj); err != nil {
		return FromBinding(err)
	}
	return nil
}

// FromBinding converts a gin binding error into Errors.
func FromBinding(err error) *Errors {
	errs := &Errors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.AddNonField(MsgInvalidValue)
		return errs
	}
	for _, fe := range verrs {
		// Slice elements are reported as "name[i]".
		name := fe.Field()
		if i := strings.IndexByte(name, '['); i > 0 {
			name = name[:i]
		}
		if msg := messageFor(fe); !slices.Contains(errs.Get(name), msg) {
			errs.Add(name, msg)
		}
	}
	return errs
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "oneof", "uuid", "dive":
		return MsgInvalidChoice
	default:
		return MsgInvalidValue
	}
}
