package hxview

import "golang.org/x/net/html"

// SwapMode controls where a region places the element of the view it shows,
// relative to the region's target element. The names follow hx-swap.
type SwapMode string

const (
	// SwapInner replaces the target's contents. This is the default.
	SwapInner SwapMode = "innerHTML"

	// SwapBeforeEnd appends after the target's existing contents.
	SwapBeforeEnd SwapMode = "beforeend"

	// SwapAfterBegin prepends before the target's existing contents.
	SwapAfterBegin SwapMode = "afterbegin"
)

// insert places el inside target according to the mode.
func (m SwapMode) insert(target *html.Node, el Element) {
	switch m {
	case SwapBeforeEnd:
		el.AttachTo(target)
	case SwapAfterBegin:
		el.Detach()
		target.InsertBefore(el.Node(), target.FirstChild)
	default:
		el.Detach()
		for c := target.FirstChild; c != nil; {
			next := c.NextSibling
			target.RemoveChild(c)
			c = next
		}
		el.AttachTo(target)
	}
}
