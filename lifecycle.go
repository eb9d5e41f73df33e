package hxview

import "go.uber.org/zap"

// Destroy tears the view down. It is idempotent: once the view is destroyed,
// or while a destroy is in progress, further calls return immediately without
// firing events.
//
// The order is fixed:
//  1. "before:destroy" fires while the view is still live
//  2. IsDestroyed becomes true and IsRendered false
//  3. UI elements are unbound
//  4. the root element is detached and its delegation table removed
//  5. child views are destroyed
//  6. behaviors are destroyed with the same arguments
//  7. "destroy" fires
//  8. every subscription the view made on other entities is released
//
// Extra arguments are passed to both events and to each behavior.
func (v *View) Destroy(args ...any) *View {
	if v.isDestroyed || v.destroying {
		return v
	}
	v.destroying = true

	v.TriggerMethod("before:destroy", args...)

	v.isDestroyed = true
	v.isRendered = false

	v.UnbindUIElements()
	v.removeElement()
	v.removeChildren()

	behaviors := append([]Behavior(nil), v.behaviors...)
	for _, b := range behaviors {
		b.Destroy(args...)
	}

	v.TriggerMethod("destroy", args...)
	v.StopListening(nil)

	v.destroying = false
	v.logger.Debug("view destroyed", zap.String("cid", v.cid))
	return v
}

// removeElement detaches the root element. Descendant views are destroyed
// afterwards, so their markup leaves with the root in one step.
func (v *View) removeElement() {
	v.el.Detach()
	v.el.Undelegate()
}

func (v *View) removeChildren() {
	for _, child := range v.Children() {
		child.Destroy()
	}
	v.children = nil
	for _, r := range v.regions {
		r.view = nil
	}
}

// AddChild nests child under the view. The child's parent reference is set
// so its events bubble here, and it is destroyed with the view.
func (v *View) AddChild(child *View) *View {
	if child == nil || child == v || v.skipDestroyed("AddChild") {
		return v
	}
	for _, c := range v.children {
		if c == child {
			return v
		}
	}
	child.SetParent(v)
	v.children = append(v.children, child)
	return v
}

// RemoveChild detaches child from the view without destroying it.
func (v *View) RemoveChild(child *View) *View {
	for i, c := range v.children {
		if c != child {
			continue
		}
		v.children = append(v.children[:i:i], v.children[i+1:]...)
		if child.parent == Node(v) {
			child.parent = nil
		}
		break
	}
	return v
}

// Children returns the immediate child views: those added with AddChild
// followed by the views shown in regions.
func (v *View) Children() []*View {
	out := make([]*View, 0, len(v.children)+len(v.regions))
	out = append(out, v.children...)
	for _, r := range v.regions {
		if r.view != nil {
			out = append(out, r.view)
		}
	}
	return out
}

// NestedViews returns every descendant view, depth first.
func (v *View) NestedViews() []*View {
	var out []*View
	for _, child := range v.Children() {
		out = append(out, child)
		out = append(out, child.NestedViews()...)
	}
	return out
}
