// Package validator provides small rule values that back constraint checks of
// form inputs and request payloads.
//
// A Rule couples a boolean Check function with translation-friendly error
// metadata. Rules are evaluated either with Apply, which aggregates every
// failure into a ValidationErrors value that satisfies the error interface, or
// with First, which mirrors how a browser reports a single validity message
// per input: the first failing rule wins.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.Required("name", name),
//	    validator.MinLen("name", name, 2),
//	    validator.ValidURL("link", link),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // inspect field-level messages
//	}
//
//	if failed := validator.First(
//	    validator.Present("link", value),
//	    validator.ValidURL("link", value),
//	); failed != nil {
//	    fmt.Println(failed.Message)
//	}
//
// # Lengths
//
// Length rules count UTF-16 code units, the unit browsers use for the
// minlength and maxlength attributes, so Cyrillic text and emoji are measured
// the same way the page measures them.
//
// Rules other than Present and Required pass for an empty value: emptiness is
// reported by the presence rules alone.
package validator
