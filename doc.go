// Package hxview provides views for building server-rendered UI components
// in Go: a managed render/destroy lifecycle, delegated DOM events, reusable
// behaviors and event bubbling through a tree of views.
//
// # Core Concepts
//
// A Definition declares what views of one kind share. A View is an
// instance with its own root element, model or collection, behaviors and
// children:
//
//	todoDef := &hxview.Definition{
//	    Name:     "todo",
//	    TagName:  "li",
//	    Template: todoTemplate,
//	    UI:       map[string]string{"remove": ".remove"},
//	    Triggers: hxview.TriggerMap{"click @ui.remove": "remove"},
//	    ModelEvents: hxview.EventMap{"change": "rerender"},
//	    Methods: hxview.Methods{
//	        "rerender": func(...any) any { ... },
//	    },
//	}
//
//	v := hxview.New(todoDef, hxview.WithModel(todo))
//	err := v.Render(ctx)
//
// Templates return templ.Component values. GoTemplate adapts html/template
// sources, which is how YAML definitions are rendered.
//
// # Events
//
// DelegateEvents merges four sources into the single delegation table
// installed on the root element:
//
//   - events declared by behaviors
//   - the view's own events
//   - triggers declared by behaviors
//   - the view's own triggers
//
// Later sources override earlier ones for the same key, so the view always
// wins over its behaviors. WithLegacyTriggerPrecedence restores the older
// order in which behavior triggers are merged last.
//
// Keys take the form "<domEvent> <selector>". Selectors and other strings may
// reference UI elements as "@ui.<name>".
//
// # Triggers and Bubbling
//
// A trigger turns a DOM event into a view event fired with TriggerMethod.
// TriggerMethod calls the view's conventional method (MethodName maps
// "before:destroy" to "onBeforeDestroy"), then each behavior's, then
// forwards the event to the nearest ancestor view as
// "childview:<event>" with the originating view as the first argument.
// The ancestor's ChildEvents handler for the unprefixed name runs as well.
//
// # Lifecycle
//
// Render produces markup, binds UI elements, delegates events and rebinds
// entity events. Destroy is idempotent and runs in a fixed order: the
// "before:destroy" event, state flags, UI unbinding, element removal,
// children, behaviors, the "destroy" event, and finally release of entity
// subscriptions. After Destroy, operations that need a live view return a
// *ViewDestroyedError.
//
// Views run on a single goroutine and every operation completes
// synchronously.
package hxview
