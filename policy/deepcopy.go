package policy

import (
	"github.com/deepnoodle-ai/protoclone/object"
)

// DeepCopyValue returns a structural duplicate of v. Tables reachable from v,
// as keys, values or fallbacks, are copied; every other value is carried
// over unchanged. A table reachable through several paths, including v
// itself, is copied exactly once.
func DeepCopyValue(v any) any {
	c := copier{seen: map[*object.Table]*object.Table{}}
	return c.copy(v)
}

// copier holds the identity cache of a single DeepCopyValue call.
type copier struct {
	seen map[*object.Table]*object.Table
}

func (c *copier) copy(v any) any {
	t, ok := v.(*object.Table)
	if !ok {
		return v
	}
	if dup, ok := c.seen[t]; ok {
		return dup
	}
	// Register before populating so self references resolve to the copy.
	dup := object.NewTable(nil)
	c.seen[t] = dup
	if fb := t.Fallback(); fb != nil {
		dup.SetFallback(c.copy(fb).(*object.Table))
	}
	t.Range(func(key, value any) bool {
		dup.Set(c.copy(key), c.copy(value))
		return true
	})
	return dup
}
