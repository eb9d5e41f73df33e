package hxview

// Callback receives the arguments passed to Emitter.Trigger.
type Callback func(args ...any)

// ListenerID identifies a subscription on an Emitter. Go functions are not
// comparable, so subscriptions are removed by ID rather than by handler.
type ListenerID uint64

type listenerEntry struct {
	id ListenerID
	cb Callback
}

// Emitter is the observable primitive used by views, behaviors and entities.
//
// The zero value is ready to use. Emitter is not safe for concurrent use;
// views run on a single goroutine and dispatch synchronously.
//
//	var e hxview.Emitter
//	id := e.On("change", func(args ...any) { ... })
//	e.Trigger("change", "name")
//	e.Off("change", id)
//
// Listeners registered for "all" receive every event with the event name
// prepended to the arguments.
type Emitter struct {
	listeners map[string][]listenerEntry
	nextID    ListenerID
}

// On subscribes cb to a single event name and returns its ID.
func (e *Emitter) On(event string, cb Callback) ListenerID {
	if cb == nil {
		return 0
	}
	if e.listeners == nil {
		e.listeners = make(map[string][]listenerEntry)
	}
	e.nextID++
	e.listeners[event] = append(e.listeners[event], listenerEntry{id: e.nextID, cb: cb})
	return e.nextID
}

// Off removes a subscription. An id of 0 removes every listener for event,
// and an empty event with id 0 removes every listener.
func (e *Emitter) Off(event string, id ListenerID) {
	if e.listeners == nil {
		return
	}
	if event == "" && id == 0 {
		e.listeners = nil
		return
	}
	if id == 0 {
		delete(e.listeners, event)
		return
	}
	entries := e.listeners[event]
	for i, entry := range entries {
		if entry.id != id {
			continue
		}
		// Copy so an in-flight Trigger keeps iterating its own snapshot.
		next := make([]listenerEntry, 0, len(entries)-1)
		next = append(next, entries[:i]...)
		next = append(next, entries[i+1:]...)
		if len(next) == 0 {
			delete(e.listeners, event)
		} else {
			e.listeners[event] = next
		}
		return
	}
}

// Trigger fires event synchronously. Listeners added or removed while the
// event is dispatching do not affect the current dispatch.
func (e *Emitter) Trigger(event string, args ...any) {
	if e.listeners == nil {
		return
	}
	for _, entry := range e.listeners[event] {
		entry.cb(args...)
	}
	if event == "all" {
		return
	}
	all := e.listeners["all"]
	if len(all) == 0 {
		return
	}
	withName := make([]any, 0, len(args)+1)
	withName = append(withName, event)
	withName = append(withName, args...)
	for _, entry := range all {
		entry.cb(withName...)
	}
}

// ListenerCount returns the number of listeners subscribed to event.
func (e *Emitter) ListenerCount(event string) int {
	return len(e.listeners[event])
}

type subscription struct {
	entity Entity
	event  string
	key    string
	owner  any // keeps the declaring map alive while its address is in key
	id     ListenerID
}

// Listener tracks subscriptions made on other entities so they can be
// released together, mirroring listenTo/stopListening.
type Listener struct {
	subs []subscription
}

// ListenTo subscribes cb to event on entity and records the subscription.
func (l *Listener) ListenTo(entity Entity, event string, cb Callback) ListenerID {
	if isNilEntity(entity) || cb == nil {
		return 0
	}
	id := entity.On(event, cb)
	l.subs = append(l.subs, subscription{entity: entity, event: event, id: id})
	return id
}

// listenToKey subscribes only if no subscription with the same entity, event
// and key is active. It reports whether a new subscription was made.
func (l *Listener) listenToKey(entity Entity, event, key string, owner any, cb Callback) bool {
	for _, s := range l.subs {
		if s.entity == entity && s.event == event && s.key == key {
			return false
		}
	}
	id := entity.On(event, cb)
	l.subs = append(l.subs, subscription{entity: entity, event: event, key: key, owner: owner, id: id})
	return true
}

func (l *Listener) stopListeningKey(entity Entity, event, key string) {
	kept := l.subs[:0]
	for _, s := range l.subs {
		if s.entity == entity && s.event == event && s.key == key {
			s.entity.Off(s.event, s.id)
			continue
		}
		kept = append(kept, s)
	}
	clear(l.subs[len(kept):])
	l.subs = kept
}

// StopListening releases every subscription made on entity, or every
// subscription when entity is nil.
func (l *Listener) StopListening(entity Entity) {
	all := isNilEntity(entity)
	kept := l.subs[:0]
	for _, s := range l.subs {
		if all || s.entity == entity {
			s.entity.Off(s.event, s.id)
			continue
		}
		kept = append(kept, s)
	}
	clear(l.subs[len(kept):])
	l.subs = kept
}

// Listening returns the number of active subscriptions.
func (l *Listener) Listening() int {
	return len(l.subs)
}
