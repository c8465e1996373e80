package policy

import (
	"github.com/deepnoodle-ai/protoclone/errz"
	"github.com/deepnoodle-ai/protoclone/object"
)

// Built-in policies.
var (
	// NoCopy never populates the slot in the clone. Under delegation the
	// slot is then resolved through the parent object.
	NoCopy = New("noCopy", func(value any) (any, error) {
		return Absent, nil
	})

	// AssignmentCopy returns the value unchanged. Tables and other reference
	// values end up shared between the object and its clone.
	AssignmentCopy = New("assignmentCopy", func(value any) (any, error) {
		return value, nil
	})

	// ShallowCopy returns a new table holding the same entries as the
	// original. Only the table's own entries are copied.
	ShallowCopy = New("shallowCopy", func(value any) (any, error) {
		t, err := object.AsTable(value)
		if err != nil {
			return nil, err
		}
		dup := object.NewTable(nil)
		t.Range(func(k, v any) bool {
			dup.Set(k, v)
			return true
		})
		return dup, nil
	})

	// DelegateCopy returns a new, empty table whose lookups fall back to the
	// original table.
	DelegateCopy = New("delegateCopy", func(value any) (any, error) {
		t, err := object.AsTable(value)
		if err != nil {
			return nil, err
		}
		return object.NewDelegatingTable(t), nil
	})

	// DeepCopy returns a full structural duplicate of a table. Shared and
	// cyclic substructure is preserved in the copy.
	DeepCopy = New("deepCopy", func(value any) (any, error) {
		if _, err := object.AsTable(value); err != nil {
			return nil, err
		}
		return DeepCopyValue(value), nil
	})

	// CloneDelegatedCopy asks the value to clone itself.
	CloneDelegatedCopy = New("cloneDelegatedCopy", func(value any) (any, error) {
		clone, ok := object.CloneFunc(value)
		if !ok {
			return nil, errz.MissingCloneCapabilityf("%s has no clone operation", object.TypeOf(value))
		}
		return clone()
	})
)

func init() {
	for _, p := range []*Policy{
		NoCopy,
		AssignmentCopy,
		ShallowCopy,
		DelegateCopy,
		DeepCopy,
		CloneDelegatedCopy,
	} {
		Register(p)
	}
}
