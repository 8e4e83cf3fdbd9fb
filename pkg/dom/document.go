package dom

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dmitrymomot/mesto/pkg/cache"
)

// Compiled selector groups; nil marks a selector that failed to parse.
var selectors = cache.NewLRUCache[string, cascadia.Matcher](512)

// Document is a parsed HTML page.
type Document struct {
	root      *html.Node
	elements  map[*html.Node]*Element
	listeners map[*html.Node]map[string][]*listener
	values    map[*html.Node]string
	localizer Localizer
}

// Option configures a Document.
type Option func(*Document)

// WithLocalizer sets the source of native validity messages.
func WithLocalizer(l Localizer) Option {
	return func(d *Document) {
		if l != nil {
			d.localizer = l
		}
	}
}

// Parse reads an HTML document.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Join(ErrParse, err)
	}

	d := &Document{
		root:      root,
		elements:  make(map[*html.Node]*Element),
		listeners: make(map[*html.Node]map[string][]*listener),
		values:    make(map[*html.Node]string),
		localizer: defaultLocalizer,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// ParseString reads an HTML document from s.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(s), opts...)
}

// Root returns the document node. Listeners on it see every bubbling event.
func (d *Document) Root() *Element {
	return d.wrap(d.root)
}

// Body returns the <body> element, or nil.
func (d *Document) Body() *Element {
	return d.QuerySelector("body")
}

// QuerySelector returns the first element matching selector, or nil.
func (d *Document) QuerySelector(selector string) *Element {
	return d.Root().QuerySelector(selector)
}

// QuerySelectorAll returns every element matching selector in document order.
func (d *Document) QuerySelectorAll(selector string) []*Element {
	return d.Root().QuerySelectorAll(selector)
}

// GetElementByID returns the element with the given id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}
	return d.wrap(found)
}

// AddEventListener registers fn on the document node.
func (d *Document) AddEventListener(eventType string, fn Listener) func() {
	return d.Root().AddEventListener(eventType, fn)
}

// KeyDown dispatches a keydown event with the given key to the document.
func (d *Document) KeyDown(key string) {
	d.Root().Dispatch(&Event{Type: EventKeyDown, Key: key})
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// HTML returns the serialised document.
func (d *Document) HTML() string {
	var buf bytes.Buffer
	_ = d.Render(&buf)
	return buf.String()
}

// CreateElement returns a detached element with the given tag name.
func (d *Document) CreateElement(tag string) *Element {
	return d.wrap(&html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tag)),
		Data:     tag,
	})
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{doc: d, node: n}
	d.elements[n] = el
	return el
}

func compile(selector string) cascadia.Matcher {
	return selectors.GetOrCompute(selector, func() cascadia.Matcher {
		group, err := cascadia.ParseGroup(selector)
		if err != nil {
			return nil
		}
		return group
	})
}

// walk visits the descendants of n in document order until fn returns false.
// Content of <template> descendants is skipped.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !fn(c) {
			return false
		}
		if c.Type == html.ElementNode && c.DataAtom == atom.Template {
			continue
		}
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return true
		}
	}
	return false
}
