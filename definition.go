package hxview

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition declares what every view built from it shares: template, UI
// selectors, events, triggers, entity events, child event handlers,
// methods and behaviors.
//
// Definitions can be written in Go or loaded from YAML. Function-valued
// fields have no YAML form and are set in code:
//
//	name: todo
//	tagName: li
//	template: |
//	  <span class="title">{{.title}}</span>
//	  <button class="remove">x</button>
//	ui:
//	  remove: .remove
//	triggers:
//	  "click @ui.remove": remove
//	modelEvents:
//	  change: render
//
// Event handler references in YAML are method names, resolved against the
// Methods registered in code. Behaviors are referenced by the names they were
// registered under with Registry.Behavior.
type Definition struct {
	Name           string `yaml:"name"`
	TagName        string `yaml:"tagName,omitempty"`
	TemplateSource string `yaml:"template,omitempty"`

	Template            Template                     `yaml:"-"`
	TemplateContext     map[string]any               `yaml:"templateContext,omitempty"`
	TemplateContextFunc func(v *View) map[string]any `yaml:"-"`

	UI      map[string]string `yaml:"ui,omitempty"`
	Regions map[string]string `yaml:"regions,omitempty"`

	Events     EventsMap  `yaml:"events,omitempty"`
	EventsFunc EventsFunc `yaml:"-"`
	Triggers   TriggerMap `yaml:"triggers,omitempty"`

	ModelEvents      EventMap `yaml:"modelEvents,omitempty"`
	CollectionEvents EventMap `yaml:"collectionEvents,omitempty"`

	ChildEvents          EventMap               `yaml:"childEvents,omitempty"`
	ChildEventsFunc      func(v *View) EventMap `yaml:"-"`
	ChildViewEventPrefix string                 `yaml:"childViewEventPrefix,omitempty"`

	Methods   Methods           `yaml:"-"`
	Behaviors []BehaviorFactory `yaml:"-"`

	// BehaviorNames lists behaviors registered with a Registry by name.
	BehaviorNames []string `yaml:"behaviors,omitempty"`
}

// LoadDefinition decodes a YAML definition and compiles its template.
func LoadDefinition(r io.Reader) (*Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	if err := def.compile(); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadDefinitionFile reads a YAML definition from path. The definition name
// defaults to the file name.
func LoadDefinitionFile(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	defer f.Close()

	def, err := LoadDefinition(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if def.Name == "" {
		def.Name = path
	}
	return def, nil
}

func (d *Definition) compile() error {
	if d.TemplateSource == "" || d.Template != nil {
		return nil
	}
	tpl, err := GoTemplate(d.Name, d.TemplateSource)
	if err != nil {
		return fmt.Errorf("%w: template: %w", ErrInvalidDefinition, err)
	}
	d.Template = tpl
	return nil
}

// Extend returns a copy of d with the non-zero fields of override applied.
// Maps are replaced, not merged; Methods and Behaviors are appended.
func (d *Definition) Extend(override Definition) *Definition {
	out := *d
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.TagName != "" {
		out.TagName = override.TagName
	}
	if override.TemplateSource != "" {
		out.TemplateSource = override.TemplateSource
		out.Template = nil
	}
	if override.Template != nil {
		out.Template = override.Template
	}
	if override.TemplateContext != nil {
		out.TemplateContext = override.TemplateContext
	}
	if override.TemplateContextFunc != nil {
		out.TemplateContextFunc = override.TemplateContextFunc
	}
	if override.UI != nil {
		out.UI = override.UI
	}
	if override.Regions != nil {
		out.Regions = override.Regions
	}
	if override.Events != nil {
		out.Events = override.Events
	}
	if override.EventsFunc != nil {
		out.EventsFunc = override.EventsFunc
	}
	if override.Triggers != nil {
		out.Triggers = override.Triggers
	}
	if override.ModelEvents != nil {
		out.ModelEvents = override.ModelEvents
	}
	if override.CollectionEvents != nil {
		out.CollectionEvents = override.CollectionEvents
	}
	if override.ChildEvents != nil {
		out.ChildEvents = override.ChildEvents
	}
	if override.ChildEventsFunc != nil {
		out.ChildEventsFunc = override.ChildEventsFunc
	}
	if override.ChildViewEventPrefix != "" {
		out.ChildViewEventPrefix = override.ChildViewEventPrefix
	}
	if len(override.Methods) > 0 {
		out.Methods = make(Methods, len(d.Methods)+len(override.Methods))
		for k, h := range d.Methods {
			out.Methods[k] = h
		}
		for k, h := range override.Methods {
			out.Methods[k] = h
		}
	}
	if override.BehaviorNames != nil {
		out.BehaviorNames = override.BehaviorNames
	}
	if len(override.Behaviors) > 0 {
		out.Behaviors = append(append([]BehaviorFactory{}, d.Behaviors...), override.Behaviors...)
	}
	return &out
}
