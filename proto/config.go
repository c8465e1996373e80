package proto

import (
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/deepnoodle-ai/protoclone/errz"
	"github.com/deepnoodle-ai/protoclone/object"
	"github.com/deepnoodle-ai/protoclone/policy"
)

// Config is the declarative description of a family of prototype objects.
// A Config is read once by Compile; changing it afterwards has no effect on
// strategies already compiled from it.
type Config struct {
	// Default is used for every type without a policy of its own.
	Default *policy.Policy

	// Types holds per-type policies, keyed by the runtime type of a slot
	// value.
	Types map[object.Type]*policy.Policy

	// UseDelegation makes every clone fall back to its source object for
	// slots it does not hold itself.
	UseDelegation bool

	// UseSlotProtection rejects writes to slots that were never declared
	// with Slot.
	UseSlotProtection bool

	// UseExtraMetadata keeps delegation and protection metadata in a side
	// store keyed by object identity instead of on the object itself.
	UseExtraMetadata bool

	// UseCloneDelegation makes each clone's cloning table delegate to its
	// parent's table instead of copying every entry.
	UseCloneDelegation bool
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	if c == nil {
		return errz.InvalidConfigurationf("configuration is nil")
	}
	types := make([]object.Type, 0, len(c.Types))
	for typ := range c.Types {
		types = append(types, typ)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	var result *multierror.Error
	for _, typ := range types {
		if !typ.IsValid() {
			result = multierror.Append(result, errz.InvalidConfigurationf("unknown type %q", typ))
			continue
		}
		if c.Types[typ] == nil {
			result = multierror.Append(result, errz.InvalidConfigurationf("nil policy for type %q", typ))
		}
	}
	return result.ErrorOrNil()
}

// resolveTypes returns the effective policy of every type, with unset types
// falling back to the default. Types without any policy are omitted.
func (c *Config) resolveTypes() map[object.Type]*policy.Policy {
	resolved := make(map[object.Type]*policy.Policy, len(object.Types))
	for _, typ := range object.Types {
		if p := c.Types[typ]; p != nil {
			resolved[typ] = p
		} else if c.Default != nil {
			resolved[typ] = c.Default
		}
	}
	return resolved
}

// needsMetadata returns true if clones need a metadata record.
func (c *Config) needsMetadata() bool {
	return c.UseDelegation || c.UseSlotProtection
}
