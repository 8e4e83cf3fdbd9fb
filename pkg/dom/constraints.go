package dom

import (
	"strconv"

	"github.com/dmitrymomot/mesto/pkg/i18n"
	"github.com/dmitrymomot/mesto/pkg/validator"
)

// Localizer turns a failed constraint into the message shown to the user.
type Localizer interface {
	Localize(err validator.ValidationError) string
}

// LocalizerFunc adapts a function to Localizer.
type LocalizerFunc func(validator.ValidationError) string

func (f LocalizerFunc) Localize(err validator.ValidationError) string {
	return f(err)
}

var defaultLocalizer = LocalizerFunc(func(err validator.ValidationError) string {
	return err.Message
})

// TranslatorLocalizer localises messages through t for lang. Keys without a
// translation keep the built-in English message.
func TranslatorLocalizer(t *i18n.Translator, lang string) Localizer {
	return LocalizerFunc(func(err validator.ValidationError) string {
		if t == nil || !t.Has(lang, err.TranslationKey) {
			return err.Message
		}
		return t.T(lang, err.TranslationKey, i18n.Args(err.TranslationValues)...)
	})
}

// WillValidate reports whether the element takes part in constraint
// validation: enabled input, textarea and select elements that are not
// buttons or hidden inputs.
func (e *Element) WillValidate() bool {
	if e.Disabled() || e.HasAttr("readonly") {
		return false
	}
	switch e.Tag() {
	case "textarea", "select":
		return true
	case "input":
		switch e.Attr("type") {
		case "hidden", "submit", "button", "reset", "image":
			return false
		}
		return true
	}
	return false
}

// ValidationMessage returns the native validity message of a form control,
// or "" when its current value satisfies every constraint.
func (e *Element) ValidationMessage() string {
	failed := e.failedConstraint()
	if failed == nil {
		return ""
	}
	return e.doc.localizer.Localize(*failed)
}

// CheckValidity reports whether the control satisfies its constraints.
func (e *Element) CheckValidity() bool {
	return e.failedConstraint() == nil
}

// failedConstraint checks valueMissing, typeMismatch, patternMismatch,
// tooLong and tooShort in that order.
func (e *Element) failedConstraint() *validator.ValidationError {
	if !e.WillValidate() {
		return nil
	}

	field := e.Attr("name")
	if field == "" {
		field = e.ID()
	}
	value := e.Value()

	rules := make([]validator.Rule, 0, 5)
	if e.HasAttr("required") {
		rules = append(rules, validator.Present(field, value))
	}
	switch e.Attr("type") {
	case "url":
		rules = append(rules, validator.ValidURL(field, value))
	case "email":
		rules = append(rules, validator.ValidEmail(field, value))
	}
	if e.HasAttr("pattern") {
		rules = append(rules, validator.MatchesPattern(field, value, e.Attr("pattern")))
	}
	if n, ok := e.lengthAttr("maxlength"); ok {
		rules = append(rules, validator.MaxLen(field, value, n))
	}
	if n, ok := e.lengthAttr("minlength"); ok {
		rules = append(rules, validator.MinLen(field, value, n))
	}

	return validator.First(rules...)
}

func (e *Element) lengthAttr(key string) (int, bool) {
	if !e.HasAttr(key) {
		return 0, false
	}
	n, err := strconv.Atoi(e.Attr(key))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
