// internal/form/validate_test.go
//
// Unit-tests for the order validator.
//
// Run: go test ./internal/form -v

package form

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate_FullNameLength(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		in   string
		want string // "" means no fullName error
	}{
		{"empty", "", MsgFullNameRequired},
		{"whitespace only", "   ", MsgFullNameRequired},
		{"one char", "A", MsgFullNameTooShort},
		{"two chars", "Al", MsgFullNameTooShort},
		{"two chars padded", "  Al  ", MsgFullNameTooShort},
		{"three chars", "Ali", ""},
		{"three runes", "Zoë", ""},
		{"twenty chars", strings.Repeat("a", 20), ""},
		{"twenty chars padded", "  " + strings.Repeat("a", 20) + "  ", ""},
		{"twenty one chars", strings.Repeat("a", 21), MsgFullNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(Draft{FullName: tt.in, Size: SizeMedium})
			if got := errs[FieldFullName]; got != tt.want {
				t.Fatalf("fullName error = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate_Size(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		in   Size
		want string
	}{
		{SizeUnset, MsgSizeRequired},
		{"XL", MsgSizeIncorrect},
		{"s", MsgSizeIncorrect},
		{"Medium", MsgSizeIncorrect},
		{SizeSmall, ""},
		{SizeMedium, ""},
		{SizeLarge, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			errs := v.Validate(Draft{FullName: "Alice", Size: tt.in})
			if got := errs[FieldSize]; got != tt.want {
				t.Fatalf("size error = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate_CollectsAllFields(t *testing.T) {
	errs := NewValidator().Validate(Draft{FullName: "Al", Size: "XL"})

	want := Errors{
		FieldFullName: MsgFullNameTooShort,
		FieldSize:     MsgSizeIncorrect,
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_ToppingsUnconstrained(t *testing.T) {
	errs := NewValidator().Validate(Draft{
		FullName: "Alice",
		Size:     SizeLarge,
		Toppings: []string{"1", "anything", ""},
	})
	if errs != nil {
		t.Fatalf("expected valid draft, got %v", errs)
	}
}
