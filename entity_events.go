package hxview

import (
	"strings"

	"go.uber.org/zap"
)

// bindEntityEvents subscribes every handler in events to entity. Method names
// are tracked by name and functions by their entry in events, so binding the
// same map twice leaves a single subscription per entry while functions from
// different maps always subscribe.
func bindEntityEvents(l *Listener, entity Entity, events EventMap, methods Methods, logger *zap.Logger) {
	if isNilEntity(entity) || len(events) == 0 {
		return
	}
	for names, ref := range events {
		h := resolveHandler(ref, methods)
		if h == nil {
			logger.Warn("entity event handler not found", zap.String("events", names), zap.Any("handler", ref))
			continue
		}
		key := handlerKey(ref, events, names)
		cb := func(args ...any) { h(args...) }
		for _, event := range strings.Fields(names) {
			l.listenToKey(entity, event, key, events, cb)
		}
	}
}

// unbindEntityEvents removes the subscriptions made by bindEntityEvents for
// the same map. Entries that were never bound are ignored.
func unbindEntityEvents(l *Listener, entity Entity, events EventMap) {
	if isNilEntity(entity) || len(events) == 0 {
		return
	}
	for names, ref := range events {
		key := handlerKey(ref, events, names)
		for _, event := range strings.Fields(names) {
			l.stopListeningKey(entity, event, key)
		}
	}
}

// BindEntityEvents subscribes the view to entity using a map of event names
// to handler references. Method names resolve against the view's methods.
// It is a no-op when entity or events is nil, or once the view is destroyed.
func (v *View) BindEntityEvents(entity Entity, events EventMap) *View {
	if v.skipDestroyed("BindEntityEvents") {
		return v
	}
	bindEntityEvents(&v.Listener, entity, events, v.methods, v.logger)
	return v
}

// UnbindEntityEvents removes the subscriptions made by BindEntityEvents.
func (v *View) UnbindEntityEvents(entity Entity, events EventMap) *View {
	unbindEntityEvents(&v.Listener, entity, events)
	return v
}

// DelegateEntityEvents unbinds and then rebinds the model and collection
// event maps of the view and of every behavior. Calling it repeatedly never
// leaves duplicate subscriptions. A destroyed view stays unsubscribed.
func (v *View) DelegateEntityEvents() *View {
	if v.skipDestroyed("DelegateEntityEvents") {
		return v
	}
	v.UndelegateEntityEvents()

	v.BindEntityEvents(v.model, v.modelEvents())
	v.BindEntityEvents(v.collection, v.collectionEvents())
	for _, b := range v.behaviors {
		b.delegateEntityEvents(v.model, v.collection)
	}
	return v
}

// UndelegateEntityEvents unbinds the model and collection event maps of the
// view and of every behavior.
func (v *View) UndelegateEntityEvents() *View {
	v.UnbindEntityEvents(v.model, v.modelEvents())
	v.UnbindEntityEvents(v.collection, v.collectionEvents())
	for _, b := range v.behaviors {
		b.undelegateEntityEvents(v.model, v.collection)
	}
	return v
}
