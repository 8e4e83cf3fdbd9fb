package dom

import (
	"bytes"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is a node of a Document. Each node has exactly one *Element, so
// elements can be compared with ==.
type Element struct {
	doc  *Document
	node *html.Node
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

func (e *Element) ID() string {
	return attr(e.node, "id")
}

func (e *Element) Attr(key string) string {
	return attr(e.node, key)
}

func (e *Element) HasAttr(key string) bool {
	return hasAttr(e.node, key)
}

func (e *Element) SetAttr(key, val string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			e.node.Attr[i].Val = val
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: val})
}

func (e *Element) RemoveAttr(key string) {
	e.node.Attr = slices.DeleteFunc(e.node.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == key
	})
}

// Classes returns the class list in attribute order.
func (e *Element) Classes() []string {
	return strings.Fields(attr(e.node, "class"))
}

func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.Classes(), name)
}

func (e *Element) AddClass(name string) {
	if name == "" || e.HasClass(name) {
		return
	}
	e.SetAttr("class", strings.Join(append(e.Classes(), name), " "))
}

func (e *Element) RemoveClass(name string) {
	if !e.HasClass(name) {
		return
	}
	classes := slices.DeleteFunc(e.Classes(), func(c string) bool { return c == name })
	e.SetAttr("class", strings.Join(classes, " "))
}

// ToggleClass adds name when on is true and removes it otherwise.
func (e *Element) ToggleClass(name string, on bool) {
	if on {
		e.AddClass(name)
		return
	}
	e.RemoveClass(name)
}

// TextContent returns the concatenated text of all descendant text nodes.
func (e *Element) TextContent() string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
				continue
			}
			collect(c)
		}
	}
	collect(e.node)
	return b.String()
}

// SetTextContent replaces all children with a single text node.
func (e *Element) SetTextContent(text string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	if text != "" {
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// Value returns the current value of a form control. It starts as the value
// attribute (or the text of a textarea) and changes with SetValue.
func (e *Element) Value() string {
	if v, ok := e.doc.values[e.node]; ok {
		return v
	}
	return e.DefaultValue()
}

// DefaultValue returns the value a form reset restores.
func (e *Element) DefaultValue() string {
	if e.node.DataAtom == atom.Textarea {
		return e.TextContent()
	}
	return attr(e.node, "value")
}

func (e *Element) SetValue(v string) {
	e.doc.values[e.node] = v
}

func (e *Element) Disabled() bool {
	return hasAttr(e.node, "disabled")
}

func (e *Element) SetDisabled(disabled bool) {
	if disabled {
		e.SetAttr("disabled", "")
		return
	}
	e.RemoveAttr("disabled")
}

// Style returns the value of an inline style property.
func (e *Element) Style(prop string) string {
	for _, decl := range parseStyle(attr(e.node, "style")) {
		if decl[0] == prop {
			return decl[1]
		}
	}
	return ""
}

// SetStyle sets an inline style property, keeping the order of the others.
func (e *Element) SetStyle(prop, value string) {
	decls := parseStyle(attr(e.node, "style"))
	replaced := false
	for i := range decls {
		if decls[i][0] == prop {
			decls[i][1] = value
			replaced = true
		}
	}
	if !replaced {
		decls = append(decls, [2]string{prop, value})
	}

	parts := make([]string, 0, len(decls))
	for _, decl := range decls {
		parts = append(parts, decl[0]+": "+decl[1])
	}
	e.SetAttr("style", strings.Join(parts, "; ")+";")
}

func parseStyle(style string) [][2]string {
	var decls [][2]string
	for part := range strings.SplitSeq(style, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		decls = append(decls, [2]string{prop, strings.TrimSpace(value)})
	}
	return decls
}

// QuerySelector returns the first descendant matching selector, or nil.
// An invalid selector matches nothing.
func (e *Element) QuerySelector(selector string) *Element {
	m := compile(selector)
	if m == nil {
		return nil
	}
	var found *html.Node
	walk(e.node, func(n *html.Node) bool {
		if n.Type == html.ElementNode && m.Match(n) {
			found = n
			return false
		}
		return true
	})
	return e.doc.wrap(found)
}

// QuerySelectorAll returns every descendant matching selector in document order.
func (e *Element) QuerySelectorAll(selector string) []*Element {
	m := compile(selector)
	if m == nil {
		return nil
	}
	var found []*Element
	walk(e.node, func(n *html.Node) bool {
		if n.Type == html.ElementNode && m.Match(n) {
			found = append(found, e.doc.wrap(n))
		}
		return true
	})
	return found
}

// Matches reports whether the element itself matches selector.
func (e *Element) Matches(selector string) bool {
	m := compile(selector)
	return m != nil && e.node.Type == html.ElementNode && m.Match(e.node)
}

// Closest returns the nearest inclusive ancestor matching selector, or nil.
func (e *Element) Closest(selector string) *Element {
	for n := e.node; n != nil; n = n.Parent {
		if el := e.doc.wrap(n); el.Matches(selector) {
			return el
		}
	}
	return nil
}

// Parent returns the parent element, or nil for detached nodes and the
// document node.
func (e *Element) Parent() *Element {
	return e.doc.wrap(e.node.Parent)
}

// Children returns the child elements.
func (e *Element) Children() []*Element {
	var children []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, e.doc.wrap(c))
		}
	}
	return children
}

// Content returns the element itself when it is a <template>; queries issued
// on it reach the template markup.
func (e *Element) Content() *Element {
	if e.node.DataAtom != atom.Template {
		return nil
	}
	return e
}

// Append moves child to the end of e's children.
func (e *Element) Append(child *Element) {
	child.detach()
	e.node.AppendChild(child.node)
}

// Prepend moves child to the start of e's children.
func (e *Element) Prepend(child *Element) {
	child.detach()
	if e.node.FirstChild == nil {
		e.node.AppendChild(child.node)
		return
	}
	e.node.InsertBefore(child.node, e.node.FirstChild)
}

// Remove detaches the element from its parent.
func (e *Element) Remove() {
	e.detach()
}

// Clear removes every child node.
func (e *Element) Clear() {
	e.SetTextContent("")
}

func (e *Element) detach() {
	if e.node.Parent != nil {
		e.node.Parent.RemoveChild(e.node)
	}
}

// Connected reports whether the element is attached to its document.
func (e *Element) Connected() bool {
	for n := e.node; n != nil; n = n.Parent {
		if n == e.doc.root {
			return true
		}
	}
	return false
}

// Clone returns a detached deep copy. Listeners and current values are not
// copied.
func (e *Element) Clone() *Element {
	return e.doc.wrap(cloneNode(e.node))
}

func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      slices.Clone(n.Attr),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneNode(child))
	}
	return c
}

// OuterHTML serialises the element and its descendants.
func (e *Element) OuterHTML() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, e.node)
	return buf.String()
}
