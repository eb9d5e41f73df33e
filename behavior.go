package hxview

import (
	"fmt"

	"go.uber.org/zap"
)

// BehaviorOptions declares what a behavior contributes to its view.
//
// Method names in Events and entity maps resolve against Methods. Triggers
// fire on the view, not on the behavior. UI selectors are merged with the
// view's own, with the view winning on conflicts.
type BehaviorOptions struct {
	Name             string
	UI               map[string]string
	Events           EventsMap
	Triggers         TriggerMap
	ModelEvents      EventMap
	CollectionEvents EventMap
	Methods          Methods
}

// BaseBehavior implements every Behavior capability. Embed it to build
// custom behaviors.
type BaseBehavior struct {
	Listener

	opts        BehaviorOptions
	emitter     Emitter
	view        *View
	el          Element
	ui          uiRegistry
	isDestroyed bool
}

// NewBehavior creates a behavior from its declaration.
func NewBehavior(opts BehaviorOptions) *BaseBehavior {
	if opts.Methods == nil {
		opts.Methods = Methods{}
	}
	return &BaseBehavior{opts: opts}
}

// Name returns the declared behavior name.
func (b *BaseBehavior) Name() string { return b.opts.Name }

// View returns the view the behavior is attached to.
func (b *BaseBehavior) View() *View { return b.view }

// Element returns the view's current root element.
func (b *BaseBehavior) Element() Element { return b.el }

// Find queries the view's root element.
func (b *BaseBehavior) Find(selector string) Selection {
	if b.el == nil {
		return nil
	}
	return b.el.Find(b.normalizeUIString(selector))
}

// SetMethod registers or replaces a named method.
func (b *BaseBehavior) SetMethod(name string, h Handler) {
	b.opts.Methods[name] = h
}

// GetUI returns a resolved handle from the behavior's UI map. Like
// View.GetUI it fails once the behavior is destroyed.
func (b *BaseBehavior) GetUI(name string) (Selection, error) {
	if b.isDestroyed {
		return nil, fmt.Errorf("%w: %q", ErrBehaviorDestroyed, b.opts.Name)
	}
	return b.ui.elements[name], nil
}

// IsDestroyed reports whether Destroy has run.
func (b *BaseBehavior) IsDestroyed() bool { return b.isDestroyed }

// On subscribes to events triggered on the behavior.
func (b *BaseBehavior) On(event string, cb Callback) ListenerID {
	return b.emitter.On(event, cb)
}

// Off removes a subscription made with On.
func (b *BaseBehavior) Off(event string, id ListenerID) {
	b.emitter.Off(event, id)
}

// TriggerMethod invokes the behavior's conventional method for event and
// fires event on the behavior.
func (b *BaseBehavior) TriggerMethod(event string, args ...any) any {
	var ret any
	if h := b.opts.Methods[MethodName(event)]; h != nil {
		ret = h(args...)
	}
	b.emitter.Trigger(event, args...)
	return ret
}

// Destroy releases the behavior's subscriptions and UI handles. The view
// calls it after destroying its children.
func (b *BaseBehavior) Destroy(args ...any) {
	if b.isDestroyed {
		return
	}
	b.isDestroyed = true
	b.ui.unbind()
	b.StopListening(nil)
}

// BindEntityEvents binds an entity event map with handlers resolved against
// the behavior's methods.
func (b *BaseBehavior) BindEntityEvents(entity Entity, events EventMap) {
	bindEntityEvents(&b.Listener, entity, events, b.opts.Methods, b.logger())
}

// UnbindEntityEvents reverses BindEntityEvents.
func (b *BaseBehavior) UnbindEntityEvents(entity Entity, events EventMap) {
	unbindEntityEvents(&b.Listener, entity, events)
}

func (b *BaseBehavior) logger() *zap.Logger {
	if b.view != nil {
		return b.view.logger
	}
	return zap.NewNop()
}

func (b *BaseBehavior) proxyViewProperties(v *View) {
	b.view = v
	b.el = v.el
	b.ui.declared = b.uiSelectors()
}

// uiSelectors merges the behavior's UI map with the view's.
func (b *BaseBehavior) uiSelectors() map[string]string {
	if b.opts.UI == nil {
		return nil
	}
	merged := make(map[string]string, len(b.opts.UI))
	for k, s := range b.opts.UI {
		merged[k] = s
	}
	if b.view != nil {
		for k, s := range b.view.ui.selectors() {
			merged[k] = s
		}
	}
	return merged
}

func (b *BaseBehavior) normalizeUIString(s string) string {
	if b.ui.bindings != nil {
		return normalizeUIString(s, b.ui.bindings)
	}
	return normalizeUIString(s, b.uiSelectors())
}

func (b *BaseBehavior) behaviorEvents() DelegationTable {
	if len(b.opts.Events) == 0 {
		return nil
	}
	table := make(DelegationTable, len(b.opts.Events))
	for key, ref := range b.opts.Events {
		h := domHandler(ref, b.opts.Methods)
		if h == nil {
			b.logger().Warn("behavior event handler not found",
				zap.String("behavior", b.opts.Name), zap.String("key", key))
			continue
		}
		table[b.normalizeUIString(key)] = h
	}
	return table
}

func (b *BaseBehavior) behaviorTriggers() DelegationTable {
	if len(b.opts.Triggers) == 0 || b.view == nil {
		return nil
	}
	normalized := make(TriggerMap, len(b.opts.Triggers))
	for key, ref := range b.opts.Triggers {
		normalized[b.normalizeUIString(key)] = ref
	}
	return b.view.buildTriggers(normalized)
}

func (b *BaseBehavior) bindUIElements() {
	if b.el == nil {
		return
	}
	b.ui.bind(b.el)
}

func (b *BaseBehavior) unbindUIElements() {
	b.ui.unbind()
}

func (b *BaseBehavior) delegateEntityEvents(model, collection Entity) {
	b.BindEntityEvents(model, b.opts.ModelEvents)
	b.BindEntityEvents(collection, b.opts.CollectionEvents)
}

func (b *BaseBehavior) undelegateEntityEvents(model, collection Entity) {
	b.UnbindEntityEvents(model, b.opts.ModelEvents)
	b.UnbindEntityEvents(collection, b.opts.CollectionEvents)
}
