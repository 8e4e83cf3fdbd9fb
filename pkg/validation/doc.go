// Package validation keeps the submit controls and error messages of a page's
// forms in step with the native validity of their inputs.
//
// Enable attaches to every form found through a Root. Each value change of an
// input updates that input's error display and then recomputes the form's
// validity: the submit control is disabled, and marked with the inactive
// class, unless every input reports an empty validity message. Clear removes
// every error display of a form and reapplies the submit state, which is how
// a form is prepared before it is shown again.
//
// The package knows nothing about a concrete DOM. It works through the Root,
// Form, Input, Control and Element interfaces; package dom provides the
// implementation used by the page.
//
//	v := validation.Enable(doc.ValidationRoot(), validation.DefaultConfig())
//	defer v.Close()
//
//	validation.Clear(dom.ValidationForm(profileForm), validation.DefaultConfig())
//
// Validation state is never stored: every evaluation reads the inputs as they
// are at that moment. Selectors that match nothing turn operations into
// no-ops.
package validation
