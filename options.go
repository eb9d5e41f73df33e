package hxview

import "go.uber.org/zap"

// Option overrides a Definition for a single view instance.
type Option func(*options)

type options struct {
	model      Entity
	collection Entity
	el         Element
	parent     Node
	logger     *zap.Logger

	template        Template
	templateSet     bool
	templateContext map[string]any

	ui                   map[string]string
	events               EventsMap
	eventsFunc           EventsFunc
	triggers             TriggerMap
	modelEvents          EventMap
	collectionEvents     EventMap
	childEvents          EventMap
	childViewEventPrefix *string
	methods              Methods
	behaviors            []Behavior

	legacyTriggerPrecedence bool
}

// WithModel sets the view's model.
func WithModel(m Entity) Option {
	return func(o *options) { o.model = m }
}

// WithCollection sets the view's collection.
func WithCollection(c Entity) Option {
	return func(o *options) { o.collection = c }
}

// WithElement renders the view into an existing element instead of a new
// one built from the definition's tag name.
func WithElement(el Element) Option {
	return func(o *options) { o.el = el }
}

// WithParent sets the weak parent reference used for bubbling.
func WithParent(p Node) Option {
	return func(o *options) {
		if !isNilNode(p) {
			o.parent = p
		}
	}
}

// WithLogger sets the logger for lifecycle and delegation diagnostics.
// Views log nothing by default.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTemplate overrides the template. A nil template makes the view
// template-less.
func WithTemplate(t Template) Option {
	return func(o *options) {
		o.template = t
		o.templateSet = true
	}
}

// WithTemplateContext adds values to the template data.
func WithTemplateContext(ctx map[string]any) Option {
	return func(o *options) { o.templateContext = ctx }
}

// WithUI overrides the declared UI selector map.
func WithUI(ui map[string]string) Option {
	return func(o *options) { o.ui = ui }
}

// WithEvents overrides the declared DOM events.
func WithEvents(events EventsMap) Option {
	return func(o *options) { o.events = events }
}

// WithEventsFunc overrides the declared DOM events with a function. It is
// evaluated once, the first time events are delegated, and its normalized
// result is kept as the view's events.
func WithEventsFunc(f EventsFunc) Option {
	return func(o *options) { o.eventsFunc = f }
}

// WithTriggers overrides the declared triggers.
func WithTriggers(t TriggerMap) Option {
	return func(o *options) { o.triggers = t }
}

// WithModelEvents overrides the declared model events.
func WithModelEvents(m EventMap) Option {
	return func(o *options) { o.modelEvents = m }
}

// WithCollectionEvents overrides the declared collection events.
func WithCollectionEvents(m EventMap) Option {
	return func(o *options) { o.collectionEvents = m }
}

// WithChildEvents overrides the handlers invoked for events bubbled from
// descendant views.
func WithChildEvents(m EventMap) Option {
	return func(o *options) { o.childEvents = m }
}

// WithChildViewEventPrefix overrides the prefix for bubbled events.
func WithChildViewEventPrefix(prefix string) Option {
	return func(o *options) { o.childViewEventPrefix = &prefix }
}

// WithMethods adds named methods, replacing same-named definition methods.
func WithMethods(m Methods) Option {
	return func(o *options) {
		if o.methods == nil {
			o.methods = Methods{}
		}
		for name, h := range m {
			o.methods[name] = h
		}
	}
}

// WithBehaviors attaches behaviors after those created by the definition.
func WithBehaviors(b ...Behavior) Option {
	return func(o *options) { o.behaviors = append(o.behaviors, b...) }
}

// WithLegacyTriggerPrecedence merges behavior triggers after the view's own
// triggers, letting them override the view's events and triggers. By default
// the view's own events and triggers win.
func WithLegacyTriggerPrecedence() Option {
	return func(o *options) { o.legacyTriggerPrecedence = true }
}
