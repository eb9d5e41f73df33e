package hxview

// Model is an observable attribute map.
//
// Set fires "change:<key>" with (model, value) for each changed key and then
// "change" with (model).
type Model struct {
	Emitter
	attrs map[string]any
}

// NewModel creates a model holding a copy of attrs.
func NewModel(attrs map[string]any) *Model {
	m := &Model{attrs: make(map[string]any, len(attrs))}
	for k, v := range attrs {
		m.attrs[k] = v
	}
	return m
}

// Get returns the attribute value for key.
func (m *Model) Get(key string) any {
	return m.attrs[key]
}

// Set assigns an attribute and fires change events if the value changed.
func (m *Model) Set(key string, value any) {
	m.SetAll(map[string]any{key: value})
}

// SetAll assigns several attributes and fires a single "change" event.
func (m *Model) SetAll(attrs map[string]any) {
	var changed []string
	for k, v := range attrs {
		if old, ok := m.attrs[k]; ok && equalValue(old, v) {
			continue
		}
		m.attrs[k] = v
		changed = append(changed, k)
	}
	if len(changed) == 0 {
		return
	}
	for _, k := range sortedKeys(keySet(changed)) {
		m.Trigger("change:"+k, m, m.attrs[k])
	}
	m.Trigger("change", m)
}

// Unset removes an attribute and fires change events if it was present.
func (m *Model) Unset(key string) {
	if _, ok := m.attrs[key]; !ok {
		return
	}
	delete(m.attrs, key)
	m.Trigger("change:"+key, m, nil)
	m.Trigger("change", m)
}

// Attributes returns a shallow copy of the attributes.
func (m *Model) Attributes() map[string]any {
	out := make(map[string]any, len(m.attrs))
	for k, v := range m.attrs {
		out[k] = v
	}
	return out
}

// Collection is an observable ordered list of models.
//
// Add fires "add" with (model, collection), Remove fires "remove" with
// (model, collection) and Reset fires "reset" with (collection).
type Collection struct {
	Emitter
	models []*Model
}

// NewCollection creates a collection holding models.
func NewCollection(models ...*Model) *Collection {
	return &Collection{models: append([]*Model(nil), models...)}
}

// Add appends a model.
func (c *Collection) Add(m *Model) {
	c.models = append(c.models, m)
	c.Trigger("add", m, c)
}

// Remove removes a model if present.
func (c *Collection) Remove(m *Model) {
	for i, existing := range c.models {
		if existing != m {
			continue
		}
		c.models = append(c.models[:i:i], c.models[i+1:]...)
		c.Trigger("remove", m, c)
		return
	}
}

// Reset replaces every model.
func (c *Collection) Reset(models ...*Model) {
	c.models = append([]*Model(nil), models...)
	c.Trigger("reset", c)
}

// Models returns the models in order.
func (c *Collection) Models() []*Model {
	return c.models
}

// Len returns the number of models.
func (c *Collection) Len() int { return len(c.models) }

// At returns the model at index i.
func (c *Collection) At(i int) *Model { return c.models[i] }

func keySet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// equalValue compares attribute values without panicking on uncomparable
// types, which are always treated as changed.
func equalValue(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
