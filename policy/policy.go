// Package policy implements the built-in cloning policies.
//
// A cloning policy decides how a slot value is carried from a prototype
// object to its clone. Policies are pure functions of the value; they never
// modify their input. A policy may return Absent to leave the slot
// unpopulated in the clone.
package policy

import (
	"fmt"
)

// Func is the signature of a cloning policy.
type Func func(value any) (any, error)

// Policy is a named cloning policy.
type Policy struct {
	name string
	fn   Func
}

// New returns a policy with the given name and implementation.
func New(name string, fn Func) *Policy {
	if fn == nil {
		panic(fmt.Sprintf("policy %q: nil implementation", name))
	}
	return &Policy{name: name, fn: fn}
}

// Name returns the name of the policy.
func (p *Policy) Name() string {
	return p.name
}

// Apply runs the policy against value.
func (p *Policy) Apply(value any) (any, error) {
	return p.fn(value)
}

func (p *Policy) String() string {
	return fmt.Sprintf("policy(%s)", p.name)
}

type absent struct{}

func (absent) String() string { return "absent" }

// Absent is returned by a policy to indicate that the slot is not populated
// in the clone.
var Absent any = absent{}

// IsAbsent returns true if v is the Absent marker.
func IsAbsent(v any) bool {
	_, ok := v.(absent)
	return ok
}
