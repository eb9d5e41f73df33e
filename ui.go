package hxview

// uiRegistry keeps the declared selector map separate from the handles it
// resolves to. bindings is the durable map captured on first bind; elements
// only exists between a bind and the matching unbind.
type uiRegistry struct {
	declared map[string]string
	bindings map[string]string
	elements map[string]Selection
}

// selectors returns the durable map, falling back to the declared one.
func (r *uiRegistry) selectors() map[string]string {
	if r.bindings != nil {
		return r.bindings
	}
	return r.declared
}

func (r *uiRegistry) bind(el Element) {
	if r.declared == nil {
		return
	}
	if r.bindings == nil {
		r.bindings = r.declared
	}
	r.elements = make(map[string]Selection, len(r.bindings))
	for name, selector := range r.bindings {
		r.elements[name] = el.Find(selector)
	}
}

func (r *uiRegistry) unbind() {
	if r.bindings == nil {
		return
	}
	clear(r.elements)
	r.elements = nil
	r.bindings = nil
}

// BindUIElements resolves the declared UI selectors against the view's root
// element, then does the same for every behavior. Each call discards the
// previously resolved handles. It is a no-op on a destroyed view.
func (v *View) BindUIElements() {
	if v.skipDestroyed("BindUIElements") {
		return
	}
	v.ui.bind(v.el)
	for _, b := range v.behaviors {
		b.bindUIElements()
	}
}

// UnbindUIElements drops every resolved handle for the view and its
// behaviors. UI() reports the durable selector map again afterwards.
func (v *View) UnbindUIElements() {
	v.ui.unbind()
	for _, b := range v.behaviors {
		b.unbindUIElements()
	}
}

// UI returns the selector map: the durable bindings once bound, otherwise
// the declared map.
func (v *View) UI() map[string]string {
	return v.ui.selectors()
}

// UIElements returns the resolved handles, or nil when the view is unbound.
func (v *View) UIElements() map[string]Selection {
	return v.ui.elements
}

// GetUI returns the resolved handle for name. The result is empty when the
// view is not bound or the selector matched nothing.
func (v *View) GetUI(name string) (Selection, error) {
	if err := v.ensureIntact(); err != nil {
		return nil, err
	}
	return v.ui.elements[name], nil
}

// NormalizeUIKeys rewrites "@ui.<name>" references in the keys of hash.
func (v *View) NormalizeUIKeys(hash map[string]any) map[string]any {
	return NormalizeUIKeys(hash, v.ui.selectors())
}

// NormalizeUIValues rewrites "@ui.<name>" references in the string values of
// hash and in the listed properties of nested maps.
func (v *View) NormalizeUIValues(hash map[string]any, properties ...string) map[string]any {
	return NormalizeUIValues(hash, v.ui.selectors(), properties...)
}

// NormalizeUIString rewrites "@ui.<name>" references in s.
func (v *View) NormalizeUIString(s string) string {
	return normalizeUIString(s, v.ui.selectors())
}
