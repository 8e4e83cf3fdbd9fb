// Package modal opens and closes popups of a document. An open popup closes
// on Escape, on its close button and on a click on its overlay.
package modal

import (
	"github.com/dmitrymomot/mesto/pkg/dom"
)

const (
	OpenedClass   = "popup_is-opened"
	CloseSelector = ".popup__close"
	EscapeKey     = "Escape"
)

// Controller tracks the Escape subscription of every open popup.
// It is not safe for concurrent use; callers serialise document access.
type Controller struct {
	doc    *dom.Document
	escape map[*dom.Element]func()
}

func New(doc *dom.Document) *Controller {
	return &Controller{doc: doc, escape: make(map[*dom.Element]func())}
}

// Open shows popup and closes it on the next Escape key press. Opening an
// already open popup is a no-op.
func (c *Controller) Open(popup *dom.Element) {
	if popup == nil {
		return
	}
	popup.AddClass(OpenedClass)
	if _, ok := c.escape[popup]; ok {
		return
	}
	c.escape[popup] = c.doc.AddEventListener(dom.EventKeyDown, func(ev *dom.Event) {
		if ev.Key == EscapeKey {
			c.Close(popup)
		}
	})
}

// Close hides popup and drops its Escape subscription.
func (c *Controller) Close(popup *dom.Element) {
	if popup == nil {
		return
	}
	popup.RemoveClass(OpenedClass)
	if unsubscribe, ok := c.escape[popup]; ok {
		unsubscribe()
		delete(c.escape, popup)
	}
}

// IsOpen reports whether popup is shown.
func (c *Controller) IsOpen(popup *dom.Element) bool {
	return popup != nil && popup.HasClass(OpenedClass)
}

// SetCloseListeners closes popup on a click of its close button or of the
// popup element itself, which is the overlay around the content. It returns a
// function that removes both listeners.
func (c *Controller) SetCloseListeners(popup *dom.Element) func() {
	if popup == nil {
		return func() {}
	}
	var removers []func()
	if button := popup.QuerySelector(CloseSelector); button != nil {
		removers = append(removers, button.AddEventListener(dom.EventClick, func(*dom.Event) {
			c.Close(popup)
		}))
	}
	removers = append(removers, popup.AddEventListener(dom.EventClick, func(ev *dom.Event) {
		if ev.Target == popup {
			c.Close(popup)
		}
	}))
	return func() {
		for _, remove := range removers {
			remove()
		}
	}
}
