package hxview

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Handler is a view or behavior method referenced by name from event maps
// and invoked by TriggerMethod.
type Handler func(args ...any) any

// Methods is the lookup table of named handlers for a view or behavior.
//
// TriggerMethod looks handlers up by their conventional name, so the
// "before:destroy" event invokes Methods["onBeforeDestroy"].
type Methods map[string]Handler

// EventMap maps entity event names (space-separated lists allowed) to
// handler references. A reference is a method name or a function of type
// Handler, Callback, func() or func(...any).
type EventMap map[string]any

var methodNames sync.Map // event name -> method name

// MethodName converts an event name to the conventional method name:
// "render" becomes "onRender" and "before:destroy" becomes "onBeforeDestroy".
func MethodName(event string) string {
	if v, ok := methodNames.Load(event); ok {
		return v.(string)
	}
	var sb strings.Builder
	sb.WriteString("on")
	for _, part := range strings.Split(event, ":") {
		r, size := utf8.DecodeRuneInString(part)
		if size == 0 {
			continue
		}
		sb.WriteRune(unicode.ToUpper(r))
		sb.WriteString(part[size:])
	}
	name := sb.String()
	methodNames.Store(event, name)
	return name
}

// parseEventKey splits "click .save" into ("click", ".save").
func parseEventKey(key string) (event, selector string) {
	key = strings.TrimSpace(key)
	i := strings.IndexFunc(key, unicode.IsSpace)
	if i < 0 {
		return key, ""
	}
	return key[:i], strings.TrimSpace(key[i:])
}

var uiRef = regexp.MustCompile(`@ui\.[a-zA-Z_$0-9-]*`)

// normalizeUIString replaces every "@ui.<name>" with its selector. Unknown
// names are left untouched.
func normalizeUIString(s string, ui map[string]string) string {
	if !strings.Contains(s, "@ui.") {
		return s
	}
	return uiRef.ReplaceAllStringFunc(s, func(ref string) string {
		if sel, ok := ui[ref[len("@ui."):]]; ok {
			return sel
		}
		return ref
	})
}

// NormalizeUIKeys returns a copy of hash with "@ui.<name>" references in its
// keys replaced by the selectors in ui.
func NormalizeUIKeys[V any](hash map[string]V, ui map[string]string) map[string]V {
	if hash == nil {
		return nil
	}
	out := make(map[string]V, len(hash))
	for k, v := range hash {
		out[normalizeUIString(k, ui)] = v
	}
	return out
}

// NormalizeUIValues returns a copy of hash with "@ui.<name>" references
// replaced in string values. For nested map values only the listed
// properties are rewritten.
func NormalizeUIValues(hash map[string]any, ui map[string]string, properties ...string) map[string]any {
	if hash == nil {
		return nil
	}
	out := make(map[string]any, len(hash))
	for k, v := range hash {
		switch val := v.(type) {
		case string:
			out[k] = normalizeUIString(val, ui)
		case map[string]any:
			if len(properties) == 0 {
				out[k] = val
				continue
			}
			nested := make(map[string]any, len(val))
			for nk, nv := range val {
				nested[nk] = nv
			}
			for _, prop := range properties {
				if s, ok := nested[prop].(string); ok {
					nested[prop] = normalizeUIString(s, ui)
				}
			}
			out[k] = nested
		default:
			out[k] = v
		}
	}
	return out
}

// resolveHandler turns a handler reference into a Handler. Method names are
// looked up in methods; unknown names and unsupported types resolve to nil.
func resolveHandler(ref any, methods Methods) Handler {
	switch h := ref.(type) {
	case string:
		return methods[strings.TrimSpace(h)]
	case Handler:
		return h
	case func(...any) any:
		return h
	case Callback:
		return func(args ...any) any { h(args...); return nil }
	case func(...any):
		return func(args ...any) any { h(args...); return nil }
	case func():
		return func(...any) any { h(); return nil }
	}
	return nil
}

// handlerKey identifies a binding for bookkeeping. Method names are keyed by
// name. Functions are not comparable, so a function is keyed by the map entry
// that declared it; the subscription pins that map while it is active, so the
// address cannot be reused by another map.
func handlerKey(ref any, events EventMap, names string) string {
	if s, ok := ref.(string); ok {
		return "method:" + strings.TrimSpace(s)
	}
	return fmt.Sprintf("entry:%x:%s", reflect.ValueOf(events).Pointer(), names)
}

func isNilEntity(e Entity) bool {
	return e == nil || isNilValue(e)
}

func isNilNode(n Node) bool {
	return n == nil || isNilValue(n)
}

func isNilValue(x any) bool {
	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func mergeTable(dst, src DelegationTable) {
	for k, v := range src {
		dst[k] = v
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
