package object

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Table is the container value type. It maps comparable keys to arbitrary
// values. A table may have a fallback table which is consulted when a key
// is not present in the table itself.
type Table struct {
	items    map[any]any
	fallback *Table

	// Used to avoid the possibility of infinite recursion when inspecting.
	inspectActive bool
}

// NewTable returns a table holding a copy of the given items.
func NewTable(items map[any]any) *Table {
	t := &Table{items: make(map[any]any, len(items))}
	for k, v := range items {
		t.Set(k, v)
	}
	return t
}

// NewList returns a table holding the given values under the keys 0..n-1.
func NewList(values ...any) *Table {
	t := &Table{items: make(map[any]any, len(values))}
	for i, v := range values {
		t.Set(i, v)
	}
	return t
}

// NewDelegatingTable returns an empty table whose lookups fall back to the
// given table.
func NewDelegatingTable(fallback *Table) *Table {
	return &Table{items: map[any]any{}, fallback: fallback}
}

func (t *Table) Type() Type {
	return TABLE
}

// Get returns the value stored under key, consulting the fallback chain
// when the key is not present in the table itself.
func (t *Table) Get(key any) any {
	for cur := t; cur != nil; cur = cur.fallback {
		if v, ok := cur.items[key]; ok {
			return v
		}
	}
	return nil
}

// Lookup is like Get but also reports whether the key was found.
func (t *Table) Lookup(key any) (any, bool) {
	for cur := t; cur != nil; cur = cur.fallback {
		if v, ok := cur.items[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// RawGet returns the value stored in the table itself, ignoring the fallback.
func (t *Table) RawGet(key any) (any, bool) {
	v, ok := t.items[key]
	return v, ok
}

// Set stores value under key. Setting a nil value removes the key. Keys must
// be comparable Go values; Set panics on slices, maps and other
// non-comparable keys, as a Go map would.
func (t *Table) Set(key, value any) {
	if t.items == nil {
		t.items = map[any]any{}
	}
	if value == nil {
		delete(t.items, key)
		return
	}
	t.items[key] = value
}

// Delete removes key from the table itself.
func (t *Table) Delete(key any) {
	delete(t.items, key)
}

// Len returns the number of entries held by the table itself.
func (t *Table) Len() int {
	return len(t.items)
}

// Fallback returns the table consulted on lookup misses, if any.
func (t *Table) Fallback() *Table {
	return t.fallback
}

// SetFallback replaces the fallback table.
func (t *Table) SetFallback(fallback *Table) {
	t.fallback = fallback
}

// Keys returns the keys held by the table itself in a deterministic order:
// numbers ascending, then strings, then booleans, then everything else.
func (t *Table) Keys() []any {
	keys := make([]any, 0, len(t.items))
	for k := range t.items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keyLess(keys[i], keys[j])
	})
	return keys
}

// Range calls fn for each entry held by the table itself, in key order.
// Return false from fn to stop.
func (t *Table) Range(fn func(key, value any) bool) {
	for _, k := range t.Keys() {
		if !fn(k, t.items[k]) {
			return
		}
	}
}

func (t *Table) Inspect() string {
	// A table can contain itself. Detect if we're already inspecting the
	// table and return a placeholder if so.
	if t.inspectActive {
		return "{...}"
	}
	t.inspectActive = true
	defer func() { t.inspectActive = false }()

	var out bytes.Buffer
	pairs := make([]string, 0, len(t.items))
	for _, k := range t.Keys() {
		pairs = append(pairs, fmt.Sprintf("%s: %s", inspectValue(k), inspectValue(t.items[k])))
	}
	out.WriteString("{")
	out.WriteString(strings.Join(pairs, ", "))
	out.WriteString("}")
	return out.String()
}

func (t *Table) String() string {
	return t.Inspect()
}

func inspectValue(v any) string {
	switch v := v.(type) {
	case *Table:
		return v.Inspect()
	case string:
		return fmt.Sprintf("%q", v)
	case Func:
		return "function"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func keyRank(k any) int {
	if k == nil {
		return 3
	}
	kind := reflect.TypeOf(k).Kind()
	switch {
	case isNumericKind(kind):
		return 0
	case kind == reflect.String:
		return 1
	case kind == reflect.Bool:
		return 2
	default:
		return 3
	}
}

func keyLess(a, b any) bool {
	ra, rb := keyRank(a), keyRank(b)
	if ra != rb {
		return ra < rb
	}
	switch ra {
	case 0:
		fa, _ := AsFloat(a)
		fb, _ := AsFloat(b)
		if fa != fb {
			return fa < fb
		}
	case 1:
		sa, sb := reflect.ValueOf(a).String(), reflect.ValueOf(b).String()
		if sa != sb {
			return sa < sb
		}
	case 2:
		ba, bb := reflect.ValueOf(a).Bool(), reflect.ValueOf(b).Bool()
		if ba != bb {
			return !ba
		}
	default:
		sa, sb := fmt.Sprintf("%v", a), fmt.Sprintf("%v", b)
		if sa != sb {
			return sa < sb
		}
	}
	// Equal values of different Go types, such as int(1) and float64(1),
	// are ordered by type name, then by address for pointers.
	ta, tb := fmt.Sprintf("%T", a), fmt.Sprintf("%T", b)
	if ta != tb {
		return ta < tb
	}
	return keyAddr(a) < keyAddr(b)
}

// keyAddr returns the address held by pointer-like keys, zero otherwise.
func keyAddr(k any) uintptr {
	v := reflect.ValueOf(k)
	switch v.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return v.Pointer()
	}
	return 0
}
