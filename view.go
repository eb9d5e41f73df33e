package hxview

import (
	"strconv"
	"sync/atomic"

	"go.uber.org/zap"
)

// DefaultChildViewEventPrefix is the prefix ancestors use for events bubbled
// from descendant views.
const DefaultChildViewEventPrefix = "childview"

// EventsMap maps "<domEvent> <selector>" keys to DOM handler references. A
// reference is a method name or a function of type DOMHandler,
// func(*DOMEvent), Handler or func().
type EventsMap map[string]any

// EventsFunc computes a view's events the first time they are delegated.
type EventsFunc func(v *View) EventsMap

var cidCounter atomic.Uint64

// View is a UI component with a managed lifecycle, delegated DOM events,
// attached behaviors and event bubbling to its ancestors.
//
// Views are built from a Definition, which declares what every instance
// shares, plus Options that override it per instance:
//
//	v := hxview.New(todoDef,
//	    hxview.WithModel(todo),
//	    hxview.WithLogger(logger),
//	)
//	if err := v.Render(ctx); err != nil {
//	    return err
//	}
//	defer v.Destroy()
//
// A view owns its behaviors and children and destroys them with itself. It
// references its parent and its model/collection without owning them.
//
// Views are not safe for concurrent use. Every operation runs synchronously
// to completion.
type View struct {
	Listener

	cid     string
	def     *Definition
	opts    options
	logger  *zap.Logger
	emitter Emitter
	methods Methods

	el         Element
	model      Entity
	collection Entity
	parent     Node

	behaviors []Behavior
	children  []*View
	regions   []*Region

	events    EventsMap
	hasEvents bool
	ui        uiRegistry

	isRendered  bool
	isDestroyed bool
	destroying  bool
}

// New creates a view from def (which may be nil) and instance options. The
// view's behaviors are created, its events are delegated on the root element
// and its entity events are bound.
func New(def *Definition, opts ...Option) *View {
	if def == nil {
		def = &Definition{}
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	v := &View{
		cid:        "view" + strconv.FormatUint(cidCounter.Add(1), 10),
		def:        def,
		opts:       o,
		logger:     o.logger,
		model:      o.model,
		collection: o.collection,
	}
	v.SetParent(o.parent)
	if v.logger == nil {
		v.logger = zap.NewNop()
	}

	v.methods = make(Methods, len(def.Methods)+len(o.methods))
	for name, h := range def.Methods {
		v.methods[name] = h
	}
	for name, h := range o.methods {
		v.methods[name] = h
	}

	v.el = o.el
	if v.el == nil {
		v.el = NewElement(def.TagName)
	}

	v.ui.declared = def.UI
	if o.ui != nil {
		v.ui.declared = o.ui
	}

	v.initBehaviors()
	for _, name := range sortedKeys(def.Regions) {
		v.AddRegion(name, def.Regions[name])
	}

	v.DelegateEvents()
	v.DelegateEntityEvents()

	v.logger.Debug("view created", zap.String("cid", v.cid), zap.String("definition", def.Name))
	return v
}

func (v *View) initBehaviors() {
	for _, f := range v.def.Behaviors {
		if b := f(); b != nil {
			v.behaviors = append(v.behaviors, b)
		}
	}
	v.behaviors = append(v.behaviors, v.opts.behaviors...)
}

// CID returns the view's unique client identifier.
func (v *View) CID() string { return v.cid }

// Definition returns the declaration the view was built from.
func (v *View) Definition() *Definition { return v.def }

// Element returns the root element.
func (v *View) Element() Element { return v.el }

// Find queries the root element. "@ui.<name>" references are allowed.
func (v *View) Find(selector string) Selection {
	return v.el.Find(v.NormalizeUIString(selector))
}

// Model returns the view's model, if any.
func (v *View) Model() Entity { return v.model }

// Collection returns the view's collection, if any.
func (v *View) Collection() Entity { return v.collection }

// SetModel swaps the model, moving entity event bindings to the new one.
// It is a no-op on a destroyed view.
func (v *View) SetModel(m Entity) *View {
	if v.skipDestroyed("SetModel") {
		return v
	}
	v.UndelegateEntityEvents()
	v.model = m
	return v.DelegateEntityEvents()
}

// SetCollection swaps the collection, moving entity event bindings to the
// new one. It is a no-op on a destroyed view.
func (v *View) SetCollection(c Entity) *View {
	if v.skipDestroyed("SetCollection") {
		return v
	}
	v.UndelegateEntityEvents()
	v.collection = c
	return v.DelegateEntityEvents()
}

// Behaviors returns the attached behaviors in declaration order.
func (v *View) Behaviors() []Behavior { return v.behaviors }

// Method returns the named method, or nil.
func (v *View) Method(name string) Handler { return v.methods[name] }

// SetMethod registers or replaces a named method.
func (v *View) SetMethod(name string, h Handler) *View {
	v.methods[name] = h
	return v
}

// On subscribes to events triggered on the view, including every event
// passed to TriggerMethod.
func (v *View) On(event string, cb Callback) ListenerID {
	return v.emitter.On(event, cb)
}

// Off removes a subscription made with On.
func (v *View) Off(event string, id ListenerID) {
	v.emitter.Off(event, id)
}

// Trigger fires event on the view's own emitter without invoking methods or
// bubbling.
func (v *View) Trigger(event string, args ...any) {
	v.emitter.Trigger(event, args...)
}

// ParentNode returns the node the view is attached under.
func (v *View) ParentNode() Node { return v.parent }

// SetParent records the weak back-reference used for bubbling.
func (v *View) SetParent(p Node) *View {
	v.parent = p
	if isNilNode(p) {
		v.parent = nil
	}
	return v
}

// IsRendered reports whether the view has rendered and not been destroyed.
func (v *View) IsRendered() bool { return v.isRendered }

// IsDestroyed reports whether Destroy has run. Once true it stays true.
func (v *View) IsDestroyed() bool { return v.isDestroyed }

func (v *View) ensureIntact() error {
	if v.isDestroyed {
		return &ViewDestroyedError{CID: v.cid}
	}
	return nil
}

// skipDestroyed reports whether v is destroyed. Mutators that return the view
// for chaining use it to turn into no-ops after Destroy.
func (v *View) skipDestroyed(op string) bool {
	if !v.isDestroyed {
		return false
	}
	v.logger.Debug("ignoring call on destroyed view", zap.String("cid", v.cid), zap.String("op", op))
	return true
}

// Option resolution: instance options win over the definition.

func (v *View) template() Template {
	if v.opts.templateSet {
		return v.opts.template
	}
	return v.def.Template
}

func (v *View) declaredEvents() (EventsMap, EventsFunc) {
	if v.opts.events != nil || v.opts.eventsFunc != nil {
		return v.opts.events, v.opts.eventsFunc
	}
	return v.def.Events, v.def.EventsFunc
}

func (v *View) triggers() TriggerMap {
	if v.opts.triggers != nil {
		return v.opts.triggers
	}
	return v.def.Triggers
}

func (v *View) modelEvents() EventMap {
	if v.opts.modelEvents != nil {
		return v.opts.modelEvents
	}
	return v.def.ModelEvents
}

func (v *View) collectionEvents() EventMap {
	if v.opts.collectionEvents != nil {
		return v.opts.collectionEvents
	}
	return v.def.CollectionEvents
}

func (v *View) childEvents() EventMap {
	if v.opts.childEvents != nil {
		return v.opts.childEvents
	}
	if v.def.ChildEventsFunc != nil {
		return v.def.ChildEventsFunc(v)
	}
	return v.def.ChildEvents
}

func (v *View) childViewEventPrefix() string {
	if v.opts.childViewEventPrefix != nil {
		return *v.opts.childViewEventPrefix
	}
	if v.def.ChildViewEventPrefix != "" {
		return v.def.ChildViewEventPrefix
	}
	return DefaultChildViewEventPrefix
}

func (v *View) templateContext() map[string]any {
	ctx := map[string]any{}
	for k, val := range v.def.TemplateContext {
		ctx[k] = val
	}
	if v.def.TemplateContextFunc != nil {
		for k, val := range v.def.TemplateContextFunc(v) {
			ctx[k] = val
		}
	}
	for k, val := range v.opts.templateContext {
		ctx[k] = val
	}
	return ctx
}
