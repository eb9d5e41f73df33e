package hxview

import (
	"reflect"
	"testing"
)

// precedenceView wires the same "click .btn" key into all four sources and
// records which one handled the click.
func precedenceView(t *testing.T, legacy bool, trace *Trace) *View {
	t.Helper()
	behavior := NewBehavior(BehaviorOptions{
		Events:   EventsMap{"click .btn": "behaviorEvent"},
		Triggers: TriggerMap{"click .btn": "behavior:trigger"},
		Methods:  Methods{"behaviorEvent": trace.Handler("behavior event")},
	})
	opts := []Option{WithBehaviors(behavior)}
	if legacy {
		opts = append(opts, WithLegacyTriggerPrecedence())
	}
	v := New(&Definition{
		Template: markupTemplate(`<button class="btn">b</button>`),
		Events:   EventsMap{"click .btn": "viewEvent"},
		Triggers: TriggerMap{"click .btn": "view:trigger"},
		Methods: Methods{
			"viewEvent":         trace.Handler("view event"),
			"onViewTrigger":     trace.Handler("view trigger"),
			"onBehaviorTrigger": trace.Handler("behavior trigger"),
		},
	}, opts...)
	mustRender(t, v)
	return v
}

func TestDelegateEventsPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		legacy bool
		want   []string
	}{
		{name: "view triggers win", want: []string{"view trigger"}},
		{name: "legacy behavior triggers win", legacy: true, want: []string{"behavior trigger"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trace := &Trace{}
			v := precedenceView(t, tt.legacy, trace)

			if _, err := Simulate(v, "click", ".btn"); err != nil {
				t.Fatalf("Simulate() error = %v", err)
			}
			if !reflect.DeepEqual(trace.Entries(), tt.want) {
				t.Errorf("handled by %v, want %v", trace.Entries(), tt.want)
			}
		})
	}
}

func TestDelegateEventsViewEventOverridesBehaviorEvent(t *testing.T) {
	trace := &Trace{}
	behavior := NewBehavior(BehaviorOptions{
		Events:  EventsMap{"click .btn": "behaviorEvent", "focus .btn": "behaviorFocus"},
		Methods: Methods{"behaviorEvent": trace.Handler("behavior click"), "behaviorFocus": trace.Handler("behavior focus")},
	})
	v := New(&Definition{
		Template: markupTemplate(`<button class="btn">b</button>`),
		Events:   EventsMap{"click .btn": "viewEvent"},
		Methods:  Methods{"viewEvent": trace.Handler("view click")},
	}, WithBehaviors(behavior))
	mustRender(t, v)

	Simulate(v, "click", ".btn")
	Simulate(v, "focus", ".btn")

	want := []string{"view click", "behavior focus"}
	if !reflect.DeepEqual(trace.Entries(), want) {
		t.Errorf("handled by %v, want %v", trace.Entries(), want)
	}
}

func TestDelegateEventsReplacesTable(t *testing.T) {
	v := New(&Definition{
		Events:  EventsMap{"click": "a", "keyup .x": "a"},
		Methods: Methods{"a": func(...any) any { return nil }},
	})
	before := v.Element().Delegated()
	if len(before) != 2 {
		t.Fatalf("Delegated() = %v, want 2 keys", before)
	}

	v.DelegateEvents()
	v.DelegateEvents()

	after := v.Element().Delegated()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("Delegated() after re-delegation = %v, want %v", after, before)
	}
}

func TestDelegateEventsPersistsNormalizedEvents(t *testing.T) {
	v := New(&Definition{
		UI:      map[string]string{"save": ".save"},
		Events:  EventsMap{"click @ui.save": "save"},
		Methods: Methods{"save": func(...any) any { return nil }},
	})

	events := v.Events()
	if _, ok := events["click .save"]; !ok {
		t.Errorf("Events() = %v, want normalized key %q", events, "click .save")
	}
}

func TestDelegateEventsExplicitTableNotPersisted(t *testing.T) {
	var explicit, declared int
	v := New(&Definition{
		Template: markupTemplate(`<a class="link">l</a>`),
		Events:   EventsMap{"click .link": func(*DOMEvent) { declared++ }},
	})
	mustRender(t, v)

	v.DelegateEvents(EventsMap{"click .link": func(*DOMEvent) { explicit++ }})
	Simulate(v, "click", ".link")

	if explicit != 1 || declared != 0 {
		t.Fatalf("explicit = %d, declared = %d, want 1 and 0", explicit, declared)
	}
	if _, ok := v.Events()["click .link"]; !ok {
		t.Error("Events() should still hold the declared events")
	}

	v.DelegateEvents()
	Simulate(v, "click", ".link")
	if declared != 1 {
		t.Errorf("declared = %d after re-delegation, want 1", declared)
	}
}

func TestEventsFuncEvaluatedOnce(t *testing.T) {
	calls := 0
	v := New(&Definition{
		EventsFunc: func(v *View) EventsMap {
			calls++
			return EventsMap{"click": func() {}}
		},
	})
	v.DelegateEvents()
	mustRender(t, v)

	if calls != 1 {
		t.Errorf("EventsFunc called %d times, want 1", calls)
	}
	if len(v.Events()) != 1 {
		t.Errorf("Events() = %v, want one entry", v.Events())
	}
}

func TestDelegateEventsHandlerKinds(t *testing.T) {
	trace := &Trace{}
	v := New(&Definition{
		Template: markupTemplate(`<i class="a"></i><i class="b"></i><i class="c"></i><i class="d"></i>`),
		Events: EventsMap{
			"click .a": "named",
			"click .b": DOMHandler(func(*DOMEvent) { trace.Add("dom handler") }),
			"click .c": Handler(func(args ...any) any {
				if _, ok := args[0].(*DOMEvent); ok {
					trace.Add("handler")
				}
				return nil
			}),
			"click .d": func() { trace.Add("func") },
			"click .e": "missing",
		},
		Methods: Methods{"named": trace.Handler("named")},
	})
	mustRender(t, v)

	for _, sel := range []string{".a", ".b", ".c", ".d"} {
		if _, err := Simulate(v, "click", sel); err != nil {
			t.Fatalf("Simulate(%s) error = %v", sel, err)
		}
	}

	want := []string{"named", "dom handler", "handler", "func"}
	if !reflect.DeepEqual(trace.Entries(), want) {
		t.Errorf("handled by %v, want %v", trace.Entries(), want)
	}

	for _, k := range v.Element().Delegated() {
		if k == "click .e" {
			t.Error("unresolved handler should not be delegated")
		}
	}
}

func TestUndelegateEvents(t *testing.T) {
	clicks := 0
	v := New(&Definition{Events: EventsMap{"click": func() { clicks++ }}})

	v.UndelegateEvents()
	Simulate(v, "click", "")

	if clicks != 0 {
		t.Errorf("clicks = %d after UndelegateEvents, want 0", clicks)
	}
	if len(v.Element().Delegated()) != 0 {
		t.Errorf("Delegated() = %v, want empty", v.Element().Delegated())
	}
}
