package dom

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/mesto/pkg/validation"
)

// ValidationRoot adapts the document to validation.Root.
func (d *Document) ValidationRoot() validation.Root {
	return validationRoot{doc: d}
}

// ValidationForm adapts a form element to validation.Form. The error display
// of an input is the element with class "<input id>-error" inside the form.
func ValidationForm(form *Element) validation.Form {
	return validationForm{el: form}
}

type validationRoot struct {
	doc *Document
}

func (r validationRoot) Forms(selector string) []validation.Form {
	var forms []validation.Form
	for _, el := range r.doc.QuerySelectorAll(selector) {
		forms = append(forms, ValidationForm(el))
	}
	return forms
}

type validationForm struct {
	el *Element
}

func (f validationForm) Inputs(selector string) []validation.Input {
	var inputs []validation.Input
	for _, el := range f.el.QuerySelectorAll(selector) {
		inputs = append(inputs, el)
	}
	return inputs
}

func (f validationForm) SubmitControl(selector string) (validation.Control, bool) {
	el := f.el.QuerySelector(selector)
	if el == nil {
		return nil, false
	}
	return el, true
}

func (f validationForm) ErrorDisplay(input validation.Input) (validation.Element, bool) {
	el, ok := input.(*Element)
	if !ok || el.ID() == "" {
		return nil, false
	}
	display := f.el.QuerySelector("." + cssEscape(el.ID()) + "-error")
	if display == nil {
		return nil, false
	}
	return display, true
}

// cssEscape escapes characters that cannot appear unescaped in a class
// selector.
func cssEscape(ident string) string {
	var b strings.Builder
	for i, r := range ident {
		switch {
		case r == '-' || r == '_' || r >= 0x80,
			r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9' && i > 0:
			b.WriteRune(r)
		default:
			fmt.Fprintf(&b, "\\%x ", r)
		}
	}
	return b.String()
}
