package hxview

import (
	"context"
	"fmt"
	"strings"
)

// TestResult holds the result of rendering a view for testing.
type TestResult struct {
	HTML string
	View *View
}

// HTMLContains returns true if the rendered HTML contains s.
func (r *TestResult) HTMLContains(s string) bool {
	return strings.Contains(r.HTML, s)
}

// TestRender renders v with a background context and returns its markup.
//
//	result, err := hxview.TestRender(v)
//	if !result.HTMLContains("Buy milk") {
//	    t.Fatal("missing title")
//	}
func TestRender(v *View) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), v)
}

// TestRenderWithContext renders v with a custom context.
func TestRenderWithContext(ctx context.Context, v *View) (*TestResult, error) {
	if err := v.Render(ctx); err != nil {
		return nil, err
	}
	return &TestResult{HTML: v.Element().HTML(), View: v}, nil
}

// Simulate dispatches a DOM event of type eventType on the first element in
// v matching selector, or on the root element when selector is empty.
// "@ui.<name>" references are allowed.
//
//	e, err := hxview.Simulate(v, "click", "@ui.save")
//	if !e.DefaultPrevented() { ... }
func Simulate(v *View, eventType, selector string) (*DOMEvent, error) {
	target := v.Element().Node()
	if selector != "" {
		target = v.Find(selector).First()
		if target == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoElement, selector)
		}
	}
	return v.Element().Dispatch(NewDOMEvent(eventType, target)), nil
}

// Trace records labelled steps in order. It is handy for asserting
// lifecycle ordering across views and behaviors.
type Trace struct {
	entries []string
}

// Add appends a label.
func (t *Trace) Add(label string) {
	t.entries = append(t.entries, label)
}

// Handler returns a Handler that records label when invoked.
func (t *Trace) Handler(label string) Handler {
	return func(...any) any {
		t.Add(label)
		return nil
	}
}

// Entries returns the recorded labels.
func (t *Trace) Entries() []string {
	return t.entries
}

// String joins the labels with " > ".
func (t *Trace) String() string {
	return strings.Join(t.entries, " > ")
}
