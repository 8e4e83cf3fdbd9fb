package dom

const controlSelector = "input, textarea, select"

// Controls returns the form controls inside e in document order.
func (e *Element) Controls() []*Element {
	return e.QuerySelectorAll(controlSelector)
}

// Reset restores every control inside e to its default value. No events are
// dispatched, as with a form reset.
func (e *Element) Reset() {
	for _, c := range e.Controls() {
		delete(e.doc.values, c.node)
	}
}

// RequestSubmit submits the form the way a submit button does. When a control
// fails its constraints, and the form has no novalidate attribute, an invalid
// event is dispatched to each failing control instead and false is returned.
// Otherwise a submit event is dispatched and true is returned.
func (e *Element) RequestSubmit() bool {
	if !e.HasAttr("novalidate") {
		valid := true
		for _, c := range e.Controls() {
			if !c.CheckValidity() {
				valid = false
				c.Dispatch(&Event{Type: EventInvalid})
			}
		}
		if !valid {
			return false
		}
	}
	e.Dispatch(&Event{Type: EventSubmit})
	return true
}

// Submit dispatches a submit event on the form without checking constraints.
func (e *Element) Submit() {
	e.Dispatch(&Event{Type: EventSubmit})
}
