package validator

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// Present validates that a value is not empty. Whitespace counts as content,
// matching the required attribute of text inputs.
func Present(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return value != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "Please fill out this field.",
			TranslationKey: "validation.value_missing",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// Required validates that a string is not empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func MinLen(field, value string, min int) Rule {
	length := TextLength(value)
	return Rule{
		Check: func() bool {
			return length == 0 || length >= min
		},
		Error: ValidationError{
			Field: field,
			Message: fmt.Sprintf(
				"Please lengthen this text to %d characters or more (you are currently using %d characters).",
				min, length,
			),
			TranslationKey: "validation.too_short",
			TranslationValues: map[string]any{
				"field":  field,
				"min":    min,
				"length": length,
			},
		},
	}
}

func MaxLen(field, value string, max int) Rule {
	length := TextLength(value)
	return Rule{
		Check: func() bool {
			return length <= max
		},
		Error: ValidationError{
			Field: field,
			Message: fmt.Sprintf(
				"Please shorten this text to %d characters or less (you are currently using %d characters).",
				max, length,
			),
			TranslationKey: "validation.too_long",
			TranslationValues: map[string]any{
				"field":  field,
				"max":    max,
				"length": length,
			},
		},
	}
}

// TextLength returns the length of s in UTF-16 code units.
func TextLength(s string) int {
	n := 0
	// Ranging over s yields only valid runes or U+FFFD, never surrogates.
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
