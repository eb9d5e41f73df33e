package hxview

import (
	"github.com/pthm/hxview/lib/encoding"
	"go.uber.org/zap"
)

// Attributer is implemented by entities that expose their attributes.
type Attributer = encoding.Attributer

// ModelLister is implemented by collections that expose their models.
type ModelLister interface {
	Models() []*Model
}

// snapshot deep-copies the attributes of src so templates never alias
// entity state. It falls back to a shallow copy if the attributes cannot be
// packed.
func (v *View) snapshot(src Attributer) map[string]any {
	attrs, err := encoding.Snapshot(src)
	if err == nil {
		return attrs
	}
	v.logger.Warn("attribute snapshot failed", zap.String("cid", v.cid), zap.Error(err))
	shallow := make(map[string]any)
	for k, val := range src.Attributes() {
		shallow[k] = val
	}
	return shallow
}
