package hxview

import (
	"bytes"
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DOMHandler handles a DOM event dispatched through a delegation table.
type DOMHandler func(e *DOMEvent)

// DelegationTable maps "<domEvent> <selector>" keys to handlers.
type DelegationTable map[string]DOMHandler

// DOMEvent is a DOM event travelling from its target up to the root element.
type DOMEvent struct {
	Type          string
	Target        *html.Node
	CurrentTarget *html.Node

	defaultPrevented bool
	stopped          bool
}

// NewDOMEvent creates an event of the given type aimed at target.
func NewDOMEvent(typ string, target *html.Node) *DOMEvent {
	return &DOMEvent{Type: typ, Target: target, CurrentTarget: target}
}

func (e *DOMEvent) PreventDefault()          { e.defaultPrevented = true }
func (e *DOMEvent) StopPropagation()         { e.stopped = true }
func (e *DOMEvent) DefaultPrevented() bool   { return e.defaultPrevented }
func (e *DOMEvent) PropagationStopped() bool { return e.stopped }

// Selection is the set of nodes a selector resolved to.
type Selection []*html.Node

// Len returns the number of matched nodes.
func (s Selection) Len() int { return len(s) }

// First returns the first matched node or nil.
func (s Selection) First() *html.Node {
	if len(s) == 0 {
		return nil
	}
	return s[0]
}

// Text returns the concatenated text content of every matched node.
func (s Selection) Text() string {
	var sb strings.Builder
	for _, n := range s {
		collectText(&sb, n)
	}
	return sb.String()
}

// Attr returns the named attribute of the first matched node.
func (s Selection) Attr(name string) (string, bool) {
	n := s.First()
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func collectText(sb *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(sb, c)
	}
}

type delegation struct {
	key      string
	event    string
	selector cascadia.Selector // nil binds to the root itself
	handler  DOMHandler
}

// HTMLElement is an Element backed by an x/net/html node tree.
type HTMLElement struct {
	root        *html.Node
	delegations []delegation
}

// NewElement creates a detached element with the given tag name.
func NewElement(tag string) *HTMLElement {
	if tag == "" {
		tag = "div"
	}
	return &HTMLElement{root: &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}}
}

// WrapElement adopts an existing node as a view's root element.
func WrapElement(n *html.Node) *HTMLElement {
	return &HTMLElement{root: n}
}

func (el *HTMLElement) Node() *html.Node { return el.root }

// Find returns the descendants of the root matching selector. Invalid
// selectors match nothing.
func (el *HTMLElement) Find(selector string) Selection {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil
	}
	return Selection(cascadia.QueryAll(el.root, sel))
}

// SetContent replaces the root's children with the parsed markup.
func (el *HTMLElement) SetContent(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), el.root)
	if err != nil {
		return err
	}
	for c := el.root.FirstChild; c != nil; {
		next := c.NextSibling
		el.root.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		el.root.AppendChild(n)
	}
	return nil
}

// HTML renders the element including its own tag.
func (el *HTMLElement) HTML() string {
	var buf bytes.Buffer
	if err := html.Render(&buf, el.root); err != nil {
		return ""
	}
	return buf.String()
}

// AttachTo appends the root to parent, detaching it from any previous parent.
func (el *HTMLElement) AttachTo(parent *html.Node) {
	el.Detach()
	if parent != nil {
		parent.AppendChild(el.root)
	}
}

// Detach removes the root from its parent. Descendants are left intact.
func (el *HTMLElement) Detach() {
	if el.root.Parent != nil {
		el.root.Parent.RemoveChild(el.root)
	}
}

func (el *HTMLElement) Attached() bool { return el.root.Parent != nil }

// Delegate installs table as the sole delegation table. Keys are installed in
// sorted order so dispatch order at a given node is deterministic. Keys with
// invalid selectors or nil handlers are skipped.
func (el *HTMLElement) Delegate(table DelegationTable) {
	el.delegations = nil
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		h := table[key]
		if h == nil {
			continue
		}
		event, selector := parseEventKey(key)
		d := delegation{key: key, event: event, handler: h}
		if selector != "" {
			sel, err := cascadia.Compile(selector)
			if err != nil {
				continue
			}
			d.selector = sel
		}
		el.delegations = append(el.delegations, d)
	}
}

// Undelegate removes the active delegation table.
func (el *HTMLElement) Undelegate() {
	el.delegations = nil
}

// Delegated returns the installed keys in dispatch order.
func (el *HTMLElement) Delegated() []string {
	keys := make([]string, len(el.delegations))
	for i, d := range el.delegations {
		keys[i] = d.key
	}
	return keys
}

// Dispatch walks e from its target up to the root. At each descendant it runs
// the handlers whose selector matches; at the root it runs the handlers bound
// without a selector. Propagation stops after the current node once a handler
// calls StopPropagation.
func (el *HTMLElement) Dispatch(e *DOMEvent) *DOMEvent {
	if e.Target == nil {
		e.Target = el.root
	}
	if !el.contains(e.Target) {
		return e
	}
	for n := e.Target; n != nil; n = n.Parent {
		e.CurrentTarget = n
		for _, d := range el.delegations {
			if d.event != e.Type {
				continue
			}
			if n == el.root {
				if d.selector != nil {
					continue
				}
			} else if d.selector == nil || !d.selector.Match(n) {
				continue
			}
			d.handler(e)
		}
		if e.stopped || n == el.root {
			break
		}
	}
	return e
}

func (el *HTMLElement) contains(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == el.root {
			return true
		}
	}
	return false
}
