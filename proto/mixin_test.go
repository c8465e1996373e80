package proto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/protoclone/errz"
	"github.com/deepnoodle-ai/protoclone/object"
	"github.com/deepnoodle-ai/protoclone/policy"
)

// testResource hands out a new identity every time it is cloned.
type testResource struct {
	counter *int
	id      int
	items   []string
}

func (r *testResource) CloneValue() (any, error) {
	*r.counter++
	return &testResource{
		counter: r.counter,
		id:      *r.counter,
		items:   append([]string(nil), r.items...),
	}, nil
}

func (r *testResource) Peek() *testResource {
	return r
}

func (r *testResource) Push(item string) int {
	r.items = append(r.items, item)
	return len(r.items)
}

func (r *testResource) Items() []string {
	return r.items
}

type notCloneable struct{}

func (notCloneable) Peek() string { return "peek" }

func TestMixinDistinctness(t *testing.T) {
	configs := []Config{
		{Default: policy.AssignmentCopy},
		{
			Default:       policy.AssignmentCopy,
			Types:         map[object.Type]*policy.Policy{object.FUNCTION: policy.NoCopy},
			UseDelegation: true,
		},
		{Default: policy.AssignmentCopy, UseSlotProtection: true, UseCloneDelegation: true},
		{Default: policy.AssignmentCopy, UseDelegation: true, UseExtraMetadata: true, UseSlotProtection: true},
	}
	for _, cfg := range configs {
		t.Run(configName(cfg), func(t *testing.T) {
			res := &testResource{counter: new(int)}
			obj := compile(t, cfg).NewRoot().Mixin(res, "Peek")

			a, err := obj.Clone()
			require.Nil(t, err)
			b, err := obj.Clone()
			require.Nil(t, err)

			pa, err := a.Call("Peek")
			require.Nil(t, err)
			pb, err := b.Call("Peek")
			require.Nil(t, err)
			po, err := obj.Call("Peek")
			require.Nil(t, err)

			require.Same(t, res, po)
			require.NotSame(t, pa, pb)
			require.NotSame(t, res, pa)
			require.NotSame(t, res, pb)
		})
	}
}

func TestMixinForwardsArguments(t *testing.T) {
	res := &testResource{counter: new(int)}
	obj := compile(t, Config{Default: policy.AssignmentCopy}).NewRoot().
		Mixin(res, "Push", "Items")

	n, err := obj.Call("Push", "a")
	require.Nil(t, err)
	require.Equal(t, 1, n)

	dup, err := obj.Clone()
	require.Nil(t, err)
	n, err = dup.Call("Push", "b")
	require.Nil(t, err)
	require.Equal(t, 2, n)

	items, err := obj.Call("Items")
	require.Nil(t, err)
	require.Equal(t, []string{"a"}, items)
	items, err = dup.Call("Items")
	require.Nil(t, err)
	require.Equal(t, []string{"a", "b"}, items)
}

func TestMixinNeverForwardsClone(t *testing.T) {
	res := &testResource{counter: new(int)}
	obj := compile(t, Config{Default: policy.AssignmentCopy, UseSlotProtection: true}).NewRoot().
		Mixin(res, "clone", "Peek")
	require.Equal(t, []string{"Peek"}, obj.Names())
	require.False(t, obj.Declared("clone"))
	require.True(t, obj.Declared("Peek"))
}

func TestMixinMissingCloneCapability(t *testing.T) {
	// Mixing in never fails; cloning does.
	obj := compile(t, Config{Default: policy.AssignmentCopy}).NewRoot().
		Mixin(notCloneable{}, "Peek")

	result, err := obj.Call("Peek")
	require.Nil(t, err)
	require.Equal(t, "peek", result)

	dup, err := obj.Clone()
	require.Nil(t, dup)
	require.True(t, errors.Is(err, errz.ErrMissingCloneCapability))
}

func TestMixinForwarderPolicy(t *testing.T) {
	s := compile(t, Config{
		Default: policy.AssignmentCopy,
		Types:   map[object.Type]*policy.Policy{object.FUNCTION: policy.NoCopy},
	})
	obj := s.NewRoot().Mixin(&testResource{counter: new(int)}, "Peek")
	p, ok := obj.table.Lookup("Peek")
	require.True(t, ok)
	require.Same(t, policy.NoCopy, p)

	// Without delegation the forwarder is gone from the clone.
	dup, err := obj.Clone()
	require.Nil(t, err)
	require.False(t, dup.Has("Peek"))
}

func TestMixinTableResource(t *testing.T) {
	res := object.NewTable(map[any]any{"name": "orig"})
	res.Set(object.CloneKey, object.Func(func(args ...any) (any, error) {
		self := args[0].(*object.Table)
		return policy.DeepCopyValue(self), nil
	}))
	res.Set("rename", object.Func(func(args ...any) (any, error) {
		self := args[0].(*object.Table)
		self.Set("name", args[1])
		return self.Get("name"), nil
	}))

	obj := compile(t, Config{Default: policy.AssignmentCopy}).NewRoot().Mixin(res, "rename")
	dup, err := obj.Clone()
	require.Nil(t, err)

	result, err := dup.Call("rename", "copy")
	require.Nil(t, err)
	require.Equal(t, "copy", result)
	require.Equal(t, "orig", res.Get("name"))
}

func TestMixinObjectResource(t *testing.T) {
	s := compile(t, Config{Default: policy.AssignmentCopy})
	res := s.NewRoot()
	res.MustSet("peek", Method(func(self *Object, args ...any) (any, error) {
		return self, nil
	}))
	res.MustSet("greet", object.Func(func(args ...any) (any, error) {
		return "hello " + args[0].(string), nil
	}))

	host := s.NewRoot().Mixin(res, "peek", "greet")
	po, err := host.Call("peek")
	require.Nil(t, err)
	require.Same(t, res, po)

	greeting, err := host.Call("greet", "bob")
	require.Nil(t, err)
	require.Equal(t, "hello bob", greeting)

	a, err := host.Clone()
	require.Nil(t, err)
	b, err := host.Clone()
	require.Nil(t, err)
	pa, err := a.Call("peek")
	require.Nil(t, err)
	pb, err := b.Call("peek")
	require.Nil(t, err)
	require.NotSame(t, pa, pb)
	require.NotSame(t, res, pa)

	_, err = host.Call("missing")
	require.True(t, errors.Is(err, errz.ErrTypeMismatch))
}
