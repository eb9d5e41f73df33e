package hxview

import "go.uber.org/zap"

// domHandler turns an events-map reference into a DOM handler. Method names
// are resolved against methods and receive the DOM event as their only
// argument.
func domHandler(ref any, methods Methods) DOMHandler {
	switch h := ref.(type) {
	case DOMHandler:
		return h
	case func(*DOMEvent):
		return h
	}
	if h := resolveHandler(ref, methods); h != nil {
		return func(e *DOMEvent) { h(e) }
	}
	return nil
}

// DelegateEvents merges behavior events, the view's events, the view's
// triggers and behavior triggers into one delegation table and installs it
// on the root element, replacing the previous table.
//
// When events is given it is used instead of the view's declared events and
// is not persisted. Otherwise the declared events (or EventsFunc) are
// normalized and kept as the view's events.
//
// Precedence, lowest to highest: behavior events, view events, behavior
// triggers, view triggers. With WithLegacyTriggerPrecedence the last two
// are swapped, so behavior triggers override everything.
//
// DelegateEvents is a no-op on a destroyed view.
func (v *View) DelegateEvents(events ...EventsMap) *View {
	if v.skipDestroyed("DelegateEvents") {
		return v
	}
	for _, b := range v.behaviors {
		b.proxyViewProperties(v)
	}

	var resolved EventsMap
	if len(events) > 0 {
		resolved = NormalizeUIKeys(events[0], v.ui.selectors())
	} else {
		if !v.hasEvents {
			declared, f := v.declaredEvents()
			if f != nil {
				declared = f(v)
			}
			v.events = NormalizeUIKeys(declared, v.ui.selectors())
			v.hasEvents = true
		}
		resolved = v.events
	}

	combined := DelegationTable{}
	for _, b := range v.behaviors {
		mergeTable(combined, b.behaviorEvents())
	}
	for key, ref := range resolved {
		h := domHandler(ref, v.methods)
		if h == nil {
			v.logger.Warn("event handler not found", zap.String("cid", v.cid), zap.String("key", key))
			continue
		}
		combined[key] = h
	}

	triggers := v.ConfigureTriggers()
	behaviorTriggers := DelegationTable{}
	for _, b := range v.behaviors {
		mergeTable(behaviorTriggers, b.behaviorTriggers())
	}
	if v.opts.legacyTriggerPrecedence {
		mergeTable(combined, triggers)
		mergeTable(combined, behaviorTriggers)
	} else {
		mergeTable(combined, behaviorTriggers)
		mergeTable(combined, triggers)
	}

	v.el.Delegate(combined)
	v.logger.Debug("events delegated", zap.String("cid", v.cid), zap.Int("handlers", len(combined)))
	return v
}

// UndelegateEvents removes the view's delegation table from the root element.
func (v *View) UndelegateEvents() *View {
	v.el.Undelegate()
	return v
}

// Events returns the view's normalized events, or nil before the first
// DelegateEvents call without arguments.
func (v *View) Events() EventsMap {
	return v.events
}
