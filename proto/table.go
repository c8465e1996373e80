package proto

import (
	"sort"

	"github.com/deepnoodle-ai/protoclone/policy"
)

// Table is the cloning table of an object: the policy declared for each of
// its slots. A name may be declared with a nil policy, in which case the
// per-type and default policies apply to it.
type Table interface {
	// Lookup returns the policy declared for name and whether name was
	// declared at all.
	Lookup(name string) (*policy.Policy, bool)

	// Declare records the policy for name.
	Declare(name string, p *policy.Policy)

	// Names returns every declared name, sorted.
	Names() []string
}

// copyingTable owns every one of its entries.
type copyingTable struct {
	entries map[string]*policy.Policy
}

// newCopyingTable returns a table holding a copy of every entry of parent.
func newCopyingTable(parent Table) Table {
	t := &copyingTable{entries: map[string]*policy.Policy{}}
	if parent != nil {
		for _, name := range parent.Names() {
			p, _ := parent.Lookup(name)
			t.entries[name] = p
		}
	}
	return t
}

func (t *copyingTable) Lookup(name string) (*policy.Policy, bool) {
	p, ok := t.entries[name]
	return p, ok
}

func (t *copyingTable) Declare(name string, p *policy.Policy) {
	t.entries[name] = p
}

func (t *copyingTable) Names() []string {
	return sortedNames(t.entries)
}

// delegatingTable holds only the entries declared on it and falls back to
// its parent for everything else. Entries are never written to the parent.
type delegatingTable struct {
	entries map[string]*policy.Policy
	parent  Table
}

// newDelegatingTable returns an empty table that falls back to parent.
func newDelegatingTable(parent Table) Table {
	return &delegatingTable{entries: map[string]*policy.Policy{}, parent: parent}
}

func (t *delegatingTable) Lookup(name string) (*policy.Policy, bool) {
	if p, ok := t.entries[name]; ok {
		return p, true
	}
	if t.parent == nil {
		return nil, false
	}
	return t.parent.Lookup(name)
}

func (t *delegatingTable) Declare(name string, p *policy.Policy) {
	t.entries[name] = p
}

func (t *delegatingTable) Names() []string {
	if t.parent == nil {
		return sortedNames(t.entries)
	}
	seen := map[string]*policy.Policy{}
	for _, name := range t.parent.Names() {
		seen[name] = nil
	}
	for name := range t.entries {
		seen[name] = nil
	}
	return sortedNames(seen)
}

func sortedNames(m map[string]*policy.Policy) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
