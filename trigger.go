package hxview

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// TriggerDef converts a DOM event into a named view event.
// PreventDefault and StopPropagation default to true when nil.
type TriggerDef struct {
	Event           string `yaml:"event"`
	PreventDefault  *bool  `yaml:"preventDefault,omitempty"`
	StopPropagation *bool  `yaml:"stopPropagation,omitempty"`
}

// Trigger is shorthand for a TriggerDef with explicit options.
func Trigger(event string, preventDefault, stopPropagation bool) TriggerDef {
	return TriggerDef{Event: event, PreventDefault: &preventDefault, StopPropagation: &stopPropagation}
}

func (d TriggerDef) preventDefault() bool  { return d.PreventDefault == nil || *d.PreventDefault }
func (d TriggerDef) stopPropagation() bool { return d.StopPropagation == nil || *d.StopPropagation }

// TriggerMap maps "<domEvent> <selector>" keys to an event name or a
// TriggerDef.
type TriggerMap map[string]any

// UnmarshalYAML accepts either a bare event name or a TriggerDef mapping for
// each entry.
func (m *TriggerMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("triggers: expected a mapping, got %s", nodeKind(value))
	}
	out := make(TriggerMap, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			out[key.Value] = val.Value
		case yaml.MappingNode:
			var def TriggerDef
			if err := val.Decode(&def); err != nil {
				return fmt.Errorf("triggers[%q]: %w", key.Value, err)
			}
			if def.Event == "" {
				return fmt.Errorf("triggers[%q]: missing event", key.Value)
			}
			out[key.Value] = def
		default:
			return fmt.Errorf("triggers[%q]: unsupported %s", key.Value, nodeKind(val))
		}
	}
	*m = out
	return nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "document"
}

func toTriggerDef(ref any) (TriggerDef, bool) {
	switch d := ref.(type) {
	case string:
		d = strings.TrimSpace(d)
		return TriggerDef{Event: d}, d != ""
	case TriggerDef:
		return d, d.Event != ""
	case *TriggerDef:
		if d == nil {
			return TriggerDef{}, false
		}
		return *d, d.Event != ""
	}
	return TriggerDef{}, false
}

// TriggerArgs is the payload of events fired by triggers. Model and
// Collection are read from the view when the DOM event fires.
type TriggerArgs struct {
	View       *View
	Model      Entity
	Collection Entity
}

// buildViewTrigger returns the DOM handler for a trigger definition, or nil
// when the definition is not usable.
func (v *View) buildViewTrigger(ref any) DOMHandler {
	def, ok := toTriggerDef(ref)
	if !ok {
		v.logger.Warn("ignoring trigger definition", zap.String("cid", v.cid), zap.Any("definition", ref))
		return nil
	}
	prevent, stop := def.preventDefault(), def.stopPropagation()
	return func(e *DOMEvent) {
		if e != nil {
			if prevent {
				e.PreventDefault()
			}
			if stop {
				e.StopPropagation()
			}
		}
		v.TriggerMethod(def.Event, TriggerArgs{View: v, Model: v.model, Collection: v.collection})
	}
}

// ConfigureTriggers builds DOM handlers for the view's declared triggers.
// It returns nil when no triggers are declared.
func (v *View) ConfigureTriggers() DelegationTable {
	triggers := v.triggers()
	if triggers == nil {
		return nil
	}
	return v.buildTriggers(NormalizeUIKeys(triggers, v.ui.selectors()))
}

func (v *View) buildTriggers(triggers TriggerMap) DelegationTable {
	table := make(DelegationTable, len(triggers))
	for key, ref := range triggers {
		if h := v.buildViewTrigger(ref); h != nil {
			table[key] = h
		}
	}
	return table
}
