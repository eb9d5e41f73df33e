package hxview

import (
	"bytes"
	"context"
	"html/template"

	"github.com/a-h/templ"
	"go.uber.org/zap"
)

// Template produces a view's markup from its serialized data. It must be a
// pure function of its inputs.
//
//	func todoTemplate(data map[string]any, v *hxview.View) templ.Component {
//	    return components.Todo(data["title"].(string))
//	}
type Template func(data map[string]any, v *View) templ.Component

// GoTemplate compiles an html/template source into a Template.
func GoTemplate(name, src string) (Template, error) {
	t, err := template.New(name).Parse(src)
	if err != nil {
		return nil, err
	}
	return func(data map[string]any, _ *View) templ.Component {
		return templ.FromGoHTML(t, data)
	}, nil
}

// StaticTemplate renders the same markup regardless of data.
func StaticTemplate(markup string) Template {
	return func(map[string]any, *View) templ.Component {
		return templ.Raw(markup)
	}
}

// Render renders the template into the root element, binds UI elements,
// delegates events and rebinds entity events. It fires "before:render" and
// "render". Views without a template skip the markup step.
//
// Re-rendering empties the view's regions, since their content lived in the
// replaced markup.
func (v *View) Render(ctx context.Context) error {
	if err := v.ensureIntact(); err != nil {
		return err
	}

	v.TriggerMethod("before:render", v)

	if v.isRendered {
		for _, r := range v.regions {
			r.Empty()
		}
	}
	if err := v.renderTemplate(ctx); err != nil {
		return err
	}

	v.BindUIElements()
	v.DelegateEvents()
	v.DelegateEntityEvents()

	v.isRendered = true
	v.TriggerMethod("render", v)

	v.logger.Debug("view rendered", zap.String("cid", v.cid))
	return nil
}

func (v *View) renderTemplate(ctx context.Context) error {
	tpl := v.template()
	if tpl == nil {
		return nil
	}
	comp := tpl(v.MixinTemplateContext(v.SerializeData()), v)
	if comp == nil {
		return nil
	}

	var buf bytes.Buffer
	if err := comp.Render(ctx, &buf); err != nil {
		return err
	}
	return v.el.SetContent(buf.String())
}

// SerializeModel returns a deep copy of the model's attributes, or an empty
// map when the view has no model with attributes. Values keep their Go types,
// so templates can assert them as stored on the model.
func (v *View) SerializeModel() map[string]any {
	if isNilEntity(v.model) {
		return map[string]any{}
	}
	src, ok := v.model.(Attributer)
	if !ok {
		return map[string]any{}
	}
	return v.snapshot(src)
}

// SerializeCollection returns a deep copy of every model's attributes.
func (v *View) SerializeCollection() []map[string]any {
	if isNilEntity(v.collection) {
		return nil
	}
	lister, ok := v.collection.(ModelLister)
	if !ok {
		return nil
	}
	models := lister.Models()
	items := make([]map[string]any, 0, len(models))
	for _, m := range models {
		items = append(items, v.snapshot(m))
	}
	return items
}

// SerializeData returns the template data: the model's attributes, plus the
// collection's models under "items".
func (v *View) SerializeData() map[string]any {
	data := v.SerializeModel()
	if items := v.SerializeCollection(); items != nil {
		data["items"] = items
	}
	return data
}

// MixinTemplateContext copies the template context into target and returns
// it. Definition values are applied first, then the definition's context
// function, then instance values.
func (v *View) MixinTemplateContext(target map[string]any) map[string]any {
	if target == nil {
		target = map[string]any{}
	}
	for k, val := range v.templateContext() {
		target[k] = val
	}
	return target
}

// NormalizeAttributes rewrites "@ui.<name>" references in attribute values,
// for example an hx-target pointing at a UI element.
func (v *View) NormalizeAttributes(attrs templ.Attributes) templ.Attributes {
	return templ.Attributes(v.NormalizeUIValues(attrs))
}
