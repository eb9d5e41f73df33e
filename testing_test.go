package hxview

import (
	"errors"
	"testing"
)

func TestTestRender(t *testing.T) {
	v := New(&Definition{Template: StaticTemplate(`<h1>Title</h1>`)})

	result, err := TestRender(v)
	if err != nil {
		t.Fatalf("TestRender() error = %v", err)
	}
	if !result.HTMLContains("<h1>Title</h1>") {
		t.Errorf("HTML = %q", result.HTML)
	}
	if result.View != v {
		t.Error("result should reference the view")
	}
}

func TestSimulateMissingSelector(t *testing.T) {
	v := New(nil)
	if _, err := Simulate(v, "click", ".nothing"); !errors.Is(err, ErrNoElement) {
		t.Errorf("Simulate() error = %v, want ErrNoElement", err)
	}
}

func TestTrace(t *testing.T) {
	trace := &Trace{}
	trace.Add("a")
	trace.Handler("b")()

	if got := trace.String(); got != "a > b" {
		t.Errorf("String() = %q, want %q", got, "a > b")
	}
}
