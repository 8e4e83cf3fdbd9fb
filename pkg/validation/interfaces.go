package validation

// Element is the part of an element the engine changes.
type Element interface {
	AddClass(name string)
	RemoveClass(name string)
	ToggleClass(name string, on bool)
	SetTextContent(text string)
}

// Input is a form field subject to native constraint validation.
type Input interface {
	Element
	// ValidationMessage returns "" when the current value is valid and the
	// reason it is not otherwise.
	ValidationMessage() string
	// OnInput subscribes handler to value changes and returns a function
	// that removes the subscription.
	OnInput(handler func()) (unsubscribe func())
}

// Control is a submit control.
type Control interface {
	Element
	SetDisabled(disabled bool)
}

// Form gives access to the inputs, submit control and error displays of one
// form.
type Form interface {
	// Inputs returns the inputs matching selector in document order.
	Inputs(selector string) []Input
	// SubmitControl returns the first control matching selector.
	SubmitControl(selector string) (Control, bool)
	// ErrorDisplay returns the element that shows the message of input.
	ErrorDisplay(input Input) (Element, bool)
}

// Root finds forms.
type Root interface {
	Forms(selector string) []Form
}
