package policy

import (
	"fmt"
	"sort"
)

// registry holds every named policy known to the process. Built-in policies
// register themselves from init().
var registry = map[string]*Policy{}

// Register makes a policy available by name, e.g. to configuration files.
// Panics if a policy with the same name is already registered.
func Register(p *Policy) {
	if _, exists := registry[p.name]; exists {
		panic(fmt.Sprintf("policy %q already registered", p.name))
	}
	registry[p.name] = p
}

// Lookup returns the registered policy with the given name.
func Lookup(name string) (*Policy, bool) {
	p, ok := registry[name]
	return p, ok
}

// Names returns the names of all registered policies, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
