package hxview

import (
	"context"
	"fmt"
)

// Region is a named slot inside a view's markup that shows one child view at
// a time. It sits between the parent and the child in the parent chain, so
// bubbling from the child skips over it to the parent view.
type Region struct {
	name     string
	selector string
	swap     SwapMode
	parent   *View
	view     *View
}

// AddRegion declares a region whose content goes into the first element
// matching selector. "@ui.<name>" references are allowed.
func (v *View) AddRegion(name, selector string) *Region {
	r := &Region{name: name, selector: selector, parent: v}
	v.regions = append(v.regions, r)
	return r
}

// GetRegion returns the named region, or nil.
func (v *View) GetRegion(name string) *Region {
	for _, r := range v.regions {
		if r.name == name {
			return r
		}
	}
	return nil
}

// SetSwap sets where shown views are placed inside the target element.
func (r *Region) SetSwap(mode SwapMode) *Region {
	r.swap = mode
	return r
}

// Name returns the region's name.
func (r *Region) Name() string { return r.name }

// CurrentView returns the view being shown, or nil.
func (r *Region) CurrentView() *View { return r.view }

// ParentNode returns the view that declared the region.
func (r *Region) ParentNode() Node {
	if r.parent == nil {
		return nil
	}
	return r.parent
}

// Show renders child if needed and places its element inside the region
// according to the region's SwapMode. A different view already shown is
// destroyed first. The region only reports child as its current view once it
// has rendered and been placed.
func (r *Region) Show(ctx context.Context, child *View) error {
	if err := r.parent.ensureIntact(); err != nil {
		return err
	}
	if r.view != nil && r.view != child {
		r.Empty()
	}
	child.SetParent(r)

	if !child.IsRendered() {
		if err := child.Render(ctx); err != nil {
			r.view = nil
			return err
		}
	}

	target := r.parent.Find(r.selector).First()
	if target == nil {
		r.view = nil
		return fmt.Errorf("region %q: %w: %s", r.name, ErrNoElement, r.selector)
	}
	r.swap.insert(target, child.Element())
	r.view = child
	return nil
}

// Empty destroys the shown view, if any.
func (r *Region) Empty() {
	if r.view == nil {
		return
	}
	v := r.view
	r.view = nil
	v.Destroy()
}
