package hxview

import "golang.org/x/net/html"

// Entity is an observable data object a view renders or reacts to, such as
// a Model or Collection. Views reference entities but never own them.
type Entity interface {
	On(event string, cb Callback) ListenerID
	Off(event string, id ListenerID)
}

// Node is a position in the view tree. The parent chain is a weak reference
// used only for event bubbling; it is never followed for destruction.
//
// Views and Regions implement Node. A container that is not a view (such as a
// Region) is skipped when looking for the nearest ancestor view.
type Node interface {
	ParentNode() Node
}

// Element is the root element abstraction a view renders into.
//
// The default implementation, HTMLElement, is backed by golang.org/x/net/html.
// Delegated handlers are keyed by "<domEvent> <selector>" strings; an empty
// selector binds directly to the root.
//
// Delegate replaces any previously installed table, so exactly one
// delegation table is active per element.
type Element interface {
	Node() *html.Node
	Find(selector string) Selection
	SetContent(markup string) error
	HTML() string
	AttachTo(parent *html.Node)
	Detach()
	Attached() bool
	Delegate(table DelegationTable)
	Undelegate()
	Delegated() []string
	Dispatch(e *DOMEvent) *DOMEvent
}

// Behavior is a reusable bundle of events, triggers, UI bindings, entity
// bindings and lifecycle hooks attached to a view at construction.
//
// Behaviors are implemented by embedding *BaseBehavior, which provides every
// capability. Embedders may override TriggerMethod or Destroy and call the
// embedded implementation.
//
//	type Tooltip struct {
//	    *hxview.BaseBehavior
//	}
//
//	func NewTooltip() *Tooltip {
//	    return &Tooltip{BaseBehavior: hxview.NewBehavior(hxview.BehaviorOptions{
//	        UI:     map[string]string{"tip": ".tip"},
//	        Events: hxview.EventsMap{"mouseover @ui.tip": "show"},
//	    })}
//	}
type Behavior interface {
	TriggerMethod(event string, args ...any) any
	Destroy(args ...any)

	proxyViewProperties(v *View)
	behaviorEvents() DelegationTable
	behaviorTriggers() DelegationTable
	bindUIElements()
	unbindUIElements()
	delegateEntityEvents(model, collection Entity)
	undelegateEntityEvents(model, collection Entity)
}

// BehaviorFactory creates a fresh behavior for each view built from a
// Definition. Views own their behaviors, so instances are never shared.
type BehaviorFactory func() Behavior
