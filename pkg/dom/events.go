package dom

import "slices"

// Event types dispatched by the helpers of this package.
const (
	EventClick   = "click"
	EventInput   = "input"
	EventSubmit  = "submit"
	EventInvalid = "invalid"
	EventKeyDown = "keydown"
)

// Event is delivered to listeners of its target and of every ancestor.
type Event struct {
	Type string
	// Key is the key name of keyboard events, for example "Escape".
	Key string

	Target        *Element
	CurrentTarget *Element

	defaultPrevented bool
	stopped          bool
}

// PreventDefault cancels the default action of the event.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation keeps the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Listener handles an event.
type Listener func(*Event)

type listener struct {
	fn      Listener
	removed bool
}

// AddEventListener registers fn for events of eventType reaching e, and
// returns a function that removes it. Removing twice is a no-op.
func (e *Element) AddEventListener(eventType string, fn Listener) func() {
	l := &listener{fn: fn}
	byType := e.doc.listeners[e.node]
	if byType == nil {
		byType = make(map[string][]*listener)
		e.doc.listeners[e.node] = byType
	}
	byType[eventType] = append(byType[eventType], l)

	return func() {
		if l.removed {
			return
		}
		l.removed = true
		byType[eventType] = slices.DeleteFunc(byType[eventType], func(x *listener) bool { return x == l })
	}
}

// OnInput registers handler for input events on e.
func (e *Element) OnInput(handler func()) func() {
	return e.AddEventListener(EventInput, func(*Event) { handler() })
}

// Dispatch delivers ev to e and then to each ancestor, stopping early when a
// listener calls StopPropagation. Listeners added during dispatch do not see
// the event. It returns false if a listener called PreventDefault.
func (e *Element) Dispatch(ev *Event) bool {
	ev.Target = e

	var path []*Element
	for n := e.node; n != nil; n = n.Parent {
		path = append(path, e.doc.wrap(n))
	}

	for _, current := range path {
		ls := slices.Clone(e.doc.listeners[current.node][ev.Type])
		ev.CurrentTarget = current
		for _, l := range ls {
			if l.removed {
				continue
			}
			l.fn(ev)
		}
		if ev.stopped {
			break
		}
	}
	ev.CurrentTarget = nil
	return !ev.defaultPrevented
}

// Click dispatches a click event. Disabled controls ignore clicks; a click on
// a submit button requests submission of its form.
func (e *Element) Click() {
	if e.Disabled() {
		return
	}
	if !e.Dispatch(&Event{Type: EventClick}) {
		return
	}
	if e.isSubmitButton() {
		if form := e.Closest("form"); form != nil {
			form.RequestSubmit()
		}
	}
}

// Input sets the value of a form control and dispatches an input event, as
// typing does.
func (e *Element) Input(value string) {
	e.SetValue(value)
	e.Dispatch(&Event{Type: EventInput})
}

func (e *Element) isSubmitButton() bool {
	switch e.Tag() {
	case "button":
		t := e.Attr("type")
		return t == "" || t == "submit"
	case "input":
		return e.Attr("type") == "submit"
	}
	return false
}
