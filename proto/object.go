// Package proto implements prototype objects with configurable cloning.
//
// A Config is compiled once into a Strategy. The strategy creates a root
// Object, and every object cloned from it, directly or indirectly, follows
// the same strategy:
//
//	s, err := proto.Compile(&proto.Config{
//		Default: policy.AssignmentCopy,
//		Types:   map[object.Type]*policy.Policy{object.TABLE: policy.ShallowCopy},
//	})
//	if err != nil {
//		return err
//	}
//	root := s.NewRoot()
//	root.MustSet("arr", object.NewList(1, 2, 3))
//	dup, err := root.Clone()
//
// Objects are not safe for concurrent use.
package proto

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/deepnoodle-ai/protoclone/errz"
	"github.com/deepnoodle-ai/protoclone/object"
	"github.com/deepnoodle-ai/protoclone/policy"
)

// Names of the object operations. They can never be used as slot names.
const (
	CloneOp = "clone"
	SlotOp  = "slot"
	MixinOp = "mixin"
)

// privatePrefix marks slot names generated for internal use.
const privatePrefix = '\x00'

var _ object.Cloneable = (*Object)(nil)

// Object is a prototype object: a set of named slots plus the cloning table
// that decides how each slot is carried into clones.
type Object struct {
	slots    map[string]any
	table    Table
	strategy *Strategy

	// Used only when metadata is stored inline.
	meta *meta
}

// Method is a slot value that receives the object it was called on.
type Method func(self *Object, args ...any) (any, error)

func (m Method) Type() object.Type {
	return object.FUNCTION
}

// Strategy returns the strategy the object follows.
func (o *Object) Strategy() *Strategy {
	return o.strategy
}

// Clone returns a new object built from the current slots of o according to
// the object's strategy. o is never modified. On failure no object is
// returned and the error reports every slot that could not be cloned.
func (o *Object) Clone() (*Object, error) {
	return o.strategy.clone(o)
}

// CloneValue implements object.Cloneable, so prototype objects held in
// slots can be cloned with policy.CloneDelegatedCopy.
func (o *Object) CloneValue() (any, error) {
	return o.Clone()
}

// Declare records p as the cloning policy of the named slot. A nil policy
// declares the slot without a policy of its own.
func (o *Object) Declare(name string, p *policy.Policy) error {
	if err := checkName(name); err != nil {
		return err
	}
	o.table.Declare(name, p)
	return nil
}

// Slot declares the named slot with the given policy, or with
// policy.AssignmentCopy when none is given, and returns o. It panics if the
// name is reserved or more than one policy is given.
func (o *Object) Slot(name string, p ...*policy.Policy) *Object {
	if len(p) > 1 {
		panic(fmt.Sprintf("slot %q: expected at most one policy, got %d", name, len(p)))
	}
	pol := policy.AssignmentCopy
	if len(p) == 1 {
		pol = p[0]
	}
	if err := o.Declare(name, pol); err != nil {
		panic(err)
	}
	return o
}

// Get returns the value of the named slot. Slots not held by the object are
// looked up on its delegation parent, if any.
func (o *Object) Get(name string) (any, bool) {
	for cur := o; cur != nil; cur = cur.Parent() {
		if v, ok := cur.slots[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// RawGet returns the value of the named slot held by the object itself.
func (o *Object) RawGet(name string) (any, bool) {
	v, ok := o.slots[name]
	return v, ok
}

// Has returns true if the named slot resolves to a value.
func (o *Object) Has(name string) bool {
	_, ok := o.Get(name)
	return ok
}

// Set writes the named slot. Setting nil removes the slot from the object.
// On protected objects the slot must have been declared first.
func (o *Object) Set(name string, value any) error {
	if err := checkName(name); err != nil {
		return err
	}
	if m := o.metadata(); m != nil && m.guard != nil {
		if err := m.guard(o, name); err != nil {
			return err
		}
	}
	o.set(name, value)
	return nil
}

// MustSet is like Set but panics on error.
func (o *Object) MustSet(name string, value any) *Object {
	if err := o.Set(name, value); err != nil {
		panic(err)
	}
	return o
}

func (o *Object) set(name string, value any) {
	if value == nil {
		delete(o.slots, name)
		return
	}
	o.slots[name] = value
}

// Names returns the names of the slots held by the object itself, sorted.
func (o *Object) Names() []string {
	names := make([]string, 0, len(o.slots))
	for name := range o.slots {
		if !isPrivate(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Parent returns the object o delegates to, or nil.
func (o *Object) Parent() *Object {
	if m := o.metadata(); m != nil {
		return m.parent
	}
	return nil
}

// Declared returns true if the named slot has a cloning table entry.
func (o *Object) Declared(name string) bool {
	_, ok := o.table.Lookup(name)
	return ok
}

// Policy returns the policy that would be used to clone the named slot if
// it held value.
func (o *Object) Policy(name string, value any) (*policy.Policy, error) {
	return o.strategy.resolve(o.table, name, value)
}

// Call invokes the named slot. Method slots receive o as their receiver.
func (o *Object) Call(name string, args ...any) (any, error) {
	v, ok := o.Get(name)
	if !ok {
		return nil, errz.TypeMismatchf("slot %q is not set", name)
	}
	switch fn := v.(type) {
	case Method:
		return fn(o, args...)
	case object.Func:
		return fn(args...)
	default:
		return nil, errz.TypeMismatchf("slot %q is not callable (%s)", name, object.TypeOf(v))
	}
}

func (o *Object) Type() object.Type {
	return object.USERDATA
}

func (o *Object) Inspect() string {
	var out bytes.Buffer
	pairs := make([]string, 0, len(o.slots))
	for _, name := range o.Names() {
		pairs = append(pairs, fmt.Sprintf("%s: %s", name, object.Inspect(o.slots[name])))
	}
	out.WriteString("object{")
	out.WriteString(strings.Join(pairs, ", "))
	out.WriteString("}")
	return out.String()
}

func (o *Object) String() string {
	return o.Inspect()
}

func (o *Object) metadata() *meta {
	if o.strategy.metadata == nil {
		return nil
	}
	return o.strategy.metadata.load(o)
}

func checkName(name string) error {
	switch name {
	case CloneOp, SlotOp, MixinOp:
		return errz.ReservedSlotf("%q is an object operation", name).WithSlot(name)
	}
	if strings.ContainsRune(name, privatePrefix) {
		return errz.ReservedSlotf("slot names may not contain NUL").WithSlot(name)
	}
	return nil
}

func isPrivate(name string) bool {
	return len(name) > 0 && name[0] == privatePrefix
}

func sortedSlotNames(slots map[string]any) []string {
	names := make([]string, 0, len(slots))
	for name := range slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
