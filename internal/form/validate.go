// internal/form/validate.go
//
// Pizza – Forms subsystem: field validation.
//
// Context
//   Every validation pass evaluates all field rules against the current draft
//   and collects one message per failing field.  Rules are declared as
//   go-playground/validator tags on orderRules; the first failing tag of a
//   field decides its message, so “required” wins over the length bounds.
//
//   Validation never returns an error value.  Failures are converted into an
//   Errors map the state holder can render next to each field.
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field keys used in Errors and in the JSON payload.
const (
	FieldFullName = "fullName"
	FieldSize     = "size"
	FieldToppings = "toppings"
)

// User-facing validation messages.
const (
	MsgFullNameRequired = "Full name is required"
	MsgFullNameTooShort = "Full name must be at least 3 characters"
	MsgFullNameTooLong  = "Full name must be at most 20 characters"
	MsgSizeRequired     = "Size is required"
	MsgSizeIncorrect    = "Size must be S, M, or L"
	MsgInvalidInput     = "Invalid input"
)

// Errors maps a field key to its message.  The empty key holds form-level
// problems.
type Errors map[string]string

// Empty reports whether there are no errors.
func (e Errors) Empty() bool { return len(e) == 0 }

// Clone returns a copy that does not share storage with e.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Fields returns the failing field keys in sorted order.
func (e Errors) Fields() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// orderRules is the validated view of a Draft.  FullName is trimmed before
// validation; min and max count runes.
type orderRules struct {
	FullName string   `json:"fullName" validate:"required,min=3,max=20"`
	Size     string   `json:"size"     validate:"required,oneof=S M L"`
	Toppings []string `json:"toppings"`
}

var messages = map[string]map[string]string{
	FieldFullName: {
		"required": MsgFullNameRequired,
		"min":      MsgFullNameTooShort,
		"max":      MsgFullNameTooLong,
	},
	FieldSize: {
		"required": MsgSizeRequired,
		"oneof":    MsgSizeIncorrect,
	},
}

// Validator runs the order rules.  It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a Validator that reports fields by their JSON names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Validate performs one validation pass.  A nil result means the draft is
// valid.
func (val *Validator) Validate(d Draft) Errors {
	err := val.v.Struct(orderRules{
		FullName: d.Name(),
		Size:     string(d.Size),
		Toppings: d.Toppings,
	})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{"": err.Error()}
	}

	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe.Field(), fe.Tag())
	}
	return out
}

// message resolves the user-facing text for a failed tag.
func message(field, tag string) string {
	if m, ok := messages[field][tag]; ok {
		return m
	}
	return MsgInvalidInput
}
