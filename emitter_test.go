package hxview

import (
	"reflect"
	"testing"
)

func TestEmitterOnTrigger(t *testing.T) {
	var e Emitter
	var got []any
	e.On("change", func(args ...any) { got = args })

	e.Trigger("change", "a", 1)
	e.Trigger("other", "b")

	if !reflect.DeepEqual(got, []any{"a", 1}) {
		t.Errorf("args = %v, want [a 1]", got)
	}
}

func TestEmitterAll(t *testing.T) {
	var e Emitter
	var got [][]any
	e.On("all", func(args ...any) { got = append(got, args) })

	e.Trigger("change", 1)
	e.Trigger("all", 2)

	want := [][]any{{"change", 1}, {2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("all listener got %v, want %v", got, want)
	}
}

func TestEmitterOff(t *testing.T) {
	tests := []struct {
		name      string
		off       func(e *Emitter, a, b ListenerID)
		wantCalls []string
	}{
		{
			name:      "by id",
			off:       func(e *Emitter, a, _ ListenerID) { e.Off("x", a) },
			wantCalls: []string{"b"},
		},
		{
			name: "by event",
			off:  func(e *Emitter, _, _ ListenerID) { e.Off("x", 0) },
		},
		{
			name: "everything",
			off:  func(e *Emitter, _, _ ListenerID) { e.Off("", 0) },
		},
		{
			name:      "unknown id",
			off:       func(e *Emitter, _, _ ListenerID) { e.Off("x", 999) },
			wantCalls: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Emitter
			var calls []string
			a := e.On("x", func(...any) { calls = append(calls, "a") })
			b := e.On("x", func(...any) { calls = append(calls, "b") })

			tt.off(&e, a, b)
			e.Trigger("x")

			if !reflect.DeepEqual(calls, tt.wantCalls) {
				t.Errorf("calls = %v, want %v", calls, tt.wantCalls)
			}
		})
	}
}

func TestEmitterOffDuringTrigger(t *testing.T) {
	var e Emitter
	var calls []string
	var second ListenerID
	e.On("x", func(...any) {
		calls = append(calls, "first")
		e.Off("x", second)
	})
	second = e.On("x", func(...any) { calls = append(calls, "second") })

	e.Trigger("x")
	e.Trigger("x")

	want := []string{"first", "second", "first"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestEmitterNilCallback(t *testing.T) {
	var e Emitter
	if id := e.On("x", nil); id != 0 {
		t.Errorf("On(nil) = %d, want 0", id)
	}
	if e.ListenerCount("x") != 0 {
		t.Error("nil callback should not be registered")
	}
}

func TestListenerStopListening(t *testing.T) {
	a, b := NewModel(nil), NewModel(nil)
	var l Listener
	l.ListenTo(a, "change", func(...any) {})
	l.ListenTo(a, "sync", func(...any) {})
	l.ListenTo(b, "change", func(...any) {})

	if l.Listening() != 3 {
		t.Fatalf("Listening() = %d, want 3", l.Listening())
	}

	l.StopListening(a)
	if a.ListenerCount("change") != 0 || a.ListenerCount("sync") != 0 {
		t.Error("a still has listeners")
	}
	if b.ListenerCount("change") != 1 {
		t.Error("b lost its listener")
	}

	l.StopListening(nil)
	if l.Listening() != 0 || b.ListenerCount("change") != 0 {
		t.Error("StopListening(nil) should release everything")
	}
}

func TestListenerListenToKeyDedupes(t *testing.T) {
	m := NewModel(nil)
	var l Listener
	cb := func(...any) {}

	if !l.listenToKey(m, "change", "k", nil, cb) {
		t.Fatal("first listenToKey should subscribe")
	}
	if l.listenToKey(m, "change", "k", nil, cb) {
		t.Error("second listenToKey should not subscribe")
	}
	if m.ListenerCount("change") != 1 {
		t.Errorf("ListenerCount = %d, want 1", m.ListenerCount("change"))
	}

	l.stopListeningKey(m, "change", "k")
	if m.ListenerCount("change") != 0 || l.Listening() != 0 {
		t.Error("stopListeningKey should release the subscription")
	}
}

func TestModelSetAll(t *testing.T) {
	m := NewModel(map[string]any{"a": 1, "b": 2})
	var events []string
	m.On("all", func(args ...any) { events = append(events, args[0].(string)) })

	m.SetAll(map[string]any{"a": 1, "c": 3, "b": 5})
	m.Set("a", 1)
	m.Set("list", []string{"x"})
	m.Set("list", []string{"x"})
	m.Unset("missing")
	m.Unset("c")

	want := []string{
		"change:b", "change:c", "change",
		"change:list", "change",
		"change:list", "change",
		"change:c", "change",
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
	if m.Get("c") != nil {
		t.Errorf("Get(c) = %v after Unset", m.Get("c"))
	}
}

func TestCollection(t *testing.T) {
	a, b := NewModel(nil), NewModel(nil)
	c := NewCollection(a)
	var events []string
	c.On("all", func(args ...any) { events = append(events, args[0].(string)) })

	c.Add(b)
	c.Remove(a)
	c.Remove(a)
	c.Reset()

	if !reflect.DeepEqual(events, []string{"add", "remove", "reset"}) {
		t.Errorf("events = %v", events)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Reset, want 0", c.Len())
	}
}
