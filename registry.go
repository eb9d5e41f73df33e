package hxview

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds named view definitions so views can be created by name,
// for example from definitions loaded from YAML files.
//
//	reg := hxview.NewRegistry()
//	reg.Add(todoDef, listDef)
//	v, err := reg.New("todo", hxview.WithModel(todo))
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]*Definition
	methods     Methods
	behaviors   map[string]BehaviorFactory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		definitions: make(map[string]*Definition),
		methods:     Methods{},
		behaviors:   make(map[string]BehaviorFactory),
	}
}

// Add registers definitions. Panics on an unnamed definition or a name
// collision, since both are programming errors caught at startup.
func (reg *Registry) Add(defs ...*Definition) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, def := range defs {
		if def.Name == "" {
			panic("hxview: definition must have a name")
		}
		if _, exists := reg.definitions[def.Name]; exists {
			panic(fmt.Sprintf("hxview: definition name collision for %q", def.Name))
		}
		reg.definitions[def.Name] = def
	}
}

// LoadFiles loads YAML definitions and registers them.
func (reg *Registry) LoadFiles(paths ...string) error {
	defs := make([]*Definition, 0, len(paths))
	for _, path := range paths {
		def, err := LoadDefinitionFile(path)
		if err != nil {
			return err
		}
		defs = append(defs, def)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	for _, def := range defs {
		if _, exists := reg.definitions[def.Name]; exists {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidDefinition, def.Name)
		}
	}
	for _, def := range defs {
		reg.definitions[def.Name] = def
	}
	return nil
}

// Method registers a method available to every view created by the
// registry. Definition methods take precedence.
func (reg *Registry) Method(name string, h Handler) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.methods[name] = h
}

// Behavior registers a behavior factory under name. Definitions attach it by
// listing the name in their "behaviors" field.
func (reg *Registry) Behavior(name string, f BehaviorFactory) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.behaviors[name] = f
}

// Lookup returns the named definition.
func (reg *Registry) Lookup(name string) (*Definition, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	def, ok := reg.definitions[name]
	return def, ok
}

// Names returns the registered definition names in sorted order.
func (reg *Registry) Names() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	names := make([]string, 0, len(reg.definitions))
	for name := range reg.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates a view from the named definition. Registry methods are
// supplied underneath the definition's own.
func (reg *Registry) New(name string, opts ...Option) (*View, error) {
	reg.mu.RLock()
	def, ok := reg.definitions[name]
	shared := make(Methods, len(reg.methods))
	for k, h := range reg.methods {
		shared[k] = h
	}
	var factories []BehaviorFactory
	var missing string
	if ok {
		for _, b := range def.BehaviorNames {
			f, found := reg.behaviors[b]
			if !found {
				missing = b
				break
			}
			factories = append(factories, f)
		}
	}
	reg.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
	if missing != "" {
		return nil, fmt.Errorf("%w: %q uses unknown behavior %q", ErrInvalidDefinition, name, missing)
	}
	for k, h := range def.Methods {
		shared[k] = h
	}
	def = def.Extend(Definition{Methods: shared, Behaviors: factories})
	return New(def, opts...), nil
}
