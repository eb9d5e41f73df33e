package hxview

// TriggerMethod fires event on the view and propagates it.
//
//  1. The view's method named MethodName(event) is invoked with args and
//     the event is fired on the view's emitter.
//  2. Every behavior receives the same call, in order.
//  3. The nearest ancestor view receives "<prefix>:<event>" with the view
//     prepended to args, and its child event handler for event, if any, is
//     invoked with those arguments.
//
// The prefixed event is delivered to the ancestor's own method and emitter
// only; it does not continue to bubble or reach the ancestor's behaviors.
//
// TriggerMethod returns the value of the view's own method from step 1, or
// nil when the view has no such method.
func (v *View) TriggerMethod(event string, args ...any) any {
	ret := v.invokeMethod(event, args)

	behaviors := v.behaviors
	for i := 0; i < len(behaviors); i++ {
		behaviors[i].TriggerMethod(event, args...)
	}

	v.triggerEventOnParentView(event, args)
	return ret
}

func (v *View) invokeMethod(event string, args []any) any {
	var ret any
	if h := v.methods[MethodName(event)]; h != nil {
		ret = h(args...)
	}
	v.emitter.Trigger(event, args...)
	return ret
}

func (v *View) triggerEventOnParentView(event string, args []any) {
	parent := v.ParentView()
	if parent == nil {
		return
	}

	callArgs := make([]any, 0, len(args)+1)
	callArgs = append(callArgs, v)
	callArgs = append(callArgs, args...)

	parent.invokeMethod(parent.childViewEventPrefix()+":"+event, callArgs)

	ref, ok := parent.childEvents()[event]
	if !ok {
		return
	}
	if h := resolveHandler(ref, parent.methods); h != nil {
		h(callArgs...)
	}
}

// ParentView walks the parent chain and returns the nearest ancestor that is
// a view, or nil at the root of the tree.
func (v *View) ParentView() *View {
	for p := v.parent; !isNilNode(p); p = p.ParentNode() {
		if pv, ok := p.(*View); ok {
			return pv
		}
	}
	return nil
}
