// Package dom is a headless document model for driving an HTML page from Go.
//
// A Document is parsed from HTML with golang.org/x/net/html. Elements are
// found with CSS selectors compiled by github.com/andybalholm/cascadia and
// expose the parts of the browser DOM the gallery page relies on: attributes,
// class lists, text content, input values, inline styles, tree edits and
// deep clones.
//
// # Events
//
// Listeners are registered per element with AddEventListener, which returns a
// function that removes the listener. Dispatch delivers an event to its
// target and then bubbles it through every ancestor up to the document, the
// way DOM events propagate. Click, Input, KeyDown and RequestSubmit are
// shortcuts for the interactions a user performs.
//
// # Constraint validation
//
// Inputs report a native validity message computed from their required,
// minlength, maxlength, pattern and type attributes, in the order browsers
// check them. Messages come from package validator and can be localised with
// a Localizer, for example one backed by an i18n.Translator.
//
// # Template content
//
// Queries never descend into <template> elements other than the one they are
// issued on, so template markup stays inert until it is cloned into the page.
//
// A Document is not safe for concurrent use; callers serialise access.
package dom
