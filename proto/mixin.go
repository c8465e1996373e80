package proto

import (
	"github.com/deepnoodle-ai/protoclone/errz"
	"github.com/deepnoodle-ai/protoclone/object"
	"github.com/deepnoodle-ai/protoclone/policy"
)

// Mixin binds resource to o and adds a forwarding method for each of the
// given names. The resource is stored in a private slot cloned with
// policy.CloneDelegatedCopy, so every clone of o gets its own copy of the
// resource. The resource must implement object.Cloneable (or be a table
// with a clone function); if it does not, cloning o fails.
//
// Forwarders call the method of the same name on the resource held by the
// object they are invoked on. A prototype object resource is called through
// its slots. The clone operation is never forwarded.
func (o *Object) Mixin(resource any, names ...string) *Object {
	s := o.strategy
	id := s.mixinSlotName()
	o.table.Declare(id, policy.CloneDelegatedCopy)
	o.set(id, resource)

	forwarderPolicy, _ := s.Policy(object.FUNCTION)
	for _, name := range names {
		if checkName(name) != nil {
			s.logger.Debug().Str("name", name).Msg("mixin skipped reserved name")
			continue
		}
		o.table.Declare(name, forwarderPolicy)
		o.set(name, forwarder(id, name))
	}
	s.logger.Debug().
		Str("resource", object.Inspect(resource)).
		Strs("methods", names).
		Bool("cloneable", object.HasCloneCapability(resource)).
		Msg("mixin added")
	return o
}

func forwarder(id, method string) Method {
	return func(self *Object, args ...any) (any, error) {
		resource, ok := self.Get(id)
		if !ok {
			return nil, errz.TypeMismatchf("mixin resource for %q is not set", method)
		}
		if r, ok := resource.(*Object); ok {
			return r.Call(method, args...)
		}
		return object.Invoke(resource, method, args...)
	}
}
