package hxview

import (
	"reflect"
	"testing"
)

func TestMethodName(t *testing.T) {
	tests := []struct {
		event string
		want  string
	}{
		{"render", "onRender"},
		{"before:destroy", "onBeforeDestroy"},
		{"childview:before:render", "onChildviewBeforeRender"},
		{"do:foo", "onDoFoo"},
		{"already_snake", "onAlready_snake"},
		{"", "on"},
	}

	for _, tt := range tests {
		t.Run(tt.event, func(t *testing.T) {
			if got := MethodName(tt.event); got != tt.want {
				t.Errorf("MethodName(%q) = %q, want %q", tt.event, got, tt.want)
			}
			// second call is served from the cache
			if got := MethodName(tt.event); got != tt.want {
				t.Errorf("cached MethodName(%q) = %q, want %q", tt.event, got, tt.want)
			}
		})
	}
}

func TestTriggerMethodReturnsOwnResult(t *testing.T) {
	behavior := NewBehavior(BehaviorOptions{Methods: Methods{
		"onFoo": func(...any) any { return "behavior" },
	}})
	v := New(&Definition{Methods: Methods{
		"onFoo": func(args ...any) any { return args[0].(int) * 2 },
	}}, WithBehaviors(behavior))

	if got := v.TriggerMethod("foo", 21); got != 42 {
		t.Errorf("TriggerMethod() = %v, want 42", got)
	}
	if got := v.TriggerMethod("bar"); got != nil {
		t.Errorf("TriggerMethod() without method = %v, want nil", got)
	}
}

func TestTriggerMethodReachesBehaviorsInOrder(t *testing.T) {
	trace := &Trace{}
	b1 := NewBehavior(BehaviorOptions{Methods: Methods{"onFoo": trace.Handler("b1")}})
	b2 := NewBehavior(BehaviorOptions{Methods: Methods{"onFoo": trace.Handler("b2")}})
	v := New(&Definition{Methods: Methods{"onFoo": trace.Handler("view")}}, WithBehaviors(b1, b2))

	v.TriggerMethod("foo")

	want := []string{"view", "b1", "b2"}
	if !reflect.DeepEqual(trace.Entries(), want) {
		t.Errorf("order = %v, want %v", trace.Entries(), want)
	}
}

func TestTriggerMethodFiresOnEmitter(t *testing.T) {
	v := New(nil)
	var got []any
	v.On("saved", func(args ...any) { got = args })

	v.TriggerMethod("saved", "a", 1)

	if !reflect.DeepEqual(got, []any{"a", 1}) {
		t.Errorf("listener args = %v, want [a 1]", got)
	}
}

func TestBubbleRenaming(t *testing.T) {
	rec := newRecorder()
	parent := New(&Definition{
		ChildEvents: EventMap{"foo": "handleFoo"},
		Methods: Methods{
			"onChildviewFoo": rec.handler("childview:foo"),
			"handleFoo":      rec.handler("handleFoo"),
		},
	})
	child := New(nil)
	parent.AddChild(child)

	child.TriggerMethod("foo", "x", 2)

	want := []any{child, "x", 2}
	if !reflect.DeepEqual(rec.args["childview:foo"], want) {
		t.Errorf("childview:foo args = %v, want %v", rec.args["childview:foo"], want)
	}
	if !reflect.DeepEqual(rec.args["handleFoo"], want) {
		t.Errorf("child event handler args = %v, want %v", rec.args["handleFoo"], want)
	}
	if !reflect.DeepEqual(rec.calls, []string{"childview:foo", "handleFoo"}) {
		t.Errorf("calls = %v, want prefixed event before child handler", rec.calls)
	}
}

func TestBubbleCustomPrefixAndEmitter(t *testing.T) {
	parent := New(&Definition{ChildViewEventPrefix: "row"})
	child := New(nil, WithParent(parent))

	var gotChild any
	parent.On("row:select", func(args ...any) { gotChild = args[0] })

	child.TriggerMethod("select")

	if gotChild != child {
		t.Errorf("row:select first arg = %v, want child", gotChild)
	}
}

func TestChildEventsAcceptFunctions(t *testing.T) {
	var called bool
	parent := New(&Definition{
		ChildEventsFunc: func(v *View) EventMap {
			return EventMap{"ping": func() { called = true }}
		},
	})
	child := New(nil, WithParent(parent))

	child.TriggerMethod("ping")
	if !called {
		t.Error("child event function was not called")
	}
}

func TestBubbleStopsAtNearestAncestor(t *testing.T) {
	rec := newRecorder()
	grandparent := New(&Definition{Methods: Methods{
		"onChildviewFoo":          rec.handler("gp childview:foo"),
		"onChildviewChildviewFoo": rec.handler("gp childview:childview:foo"),
	}})
	parent := New(&Definition{Methods: Methods{"onChildviewFoo": rec.handler("p childview:foo")}})
	child := New(nil)
	grandparent.AddChild(parent)
	parent.AddChild(child)

	child.TriggerMethod("foo")

	if !reflect.DeepEqual(rec.calls, []string{"p childview:foo"}) {
		t.Errorf("calls = %v, want only the parent", rec.calls)
	}
}

func TestBubbleSkipsNonViewNodes(t *testing.T) {
	rec := newRecorder()
	parent := New(&Definition{Methods: Methods{"onChildviewFoo": rec.handler("childview:foo")}})
	region := parent.AddRegion("main", ".main")
	child := New(nil, WithParent(region))

	if child.ParentView() != parent {
		t.Fatal("ParentView() should skip the region")
	}
	child.TriggerMethod("foo")
	if rec.count("childview:foo") != 1 {
		t.Errorf("parent received %d childview:foo, want 1", rec.count("childview:foo"))
	}
}

func TestTriggerArgsReflectCurrentModel(t *testing.T) {
	var got TriggerArgs
	v := New(&Definition{
		Template: markupTemplate(`<button class="go">go</button>`),
		Triggers: TriggerMap{"click .go": "go"},
		Methods: Methods{"onGo": func(args ...any) any {
			got = args[0].(TriggerArgs)
			return nil
		}},
	})
	mustRender(t, v)

	m := NewModel(map[string]any{"id": 2})
	v.SetModel(m)
	if _, err := Simulate(v, "click", ".go"); err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}

	if got.View != v {
		t.Error("TriggerArgs.View should be the view")
	}
	if got.Model != Entity(m) {
		t.Error("TriggerArgs.Model should be the model assigned after delegation")
	}
	if got.Collection != nil {
		t.Errorf("TriggerArgs.Collection = %v, want nil", got.Collection)
	}
}
