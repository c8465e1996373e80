package policy

import (
	"testing"

	"github.com/deepnoodle-ai/protoclone/object"
	"github.com/stretchr/testify/require"
)

func TestDeepCopySelfReference(t *testing.T) {
	orig := object.NewTable(nil)
	orig.Set("self", orig)

	result, err := DeepCopy.Apply(orig)
	require.Nil(t, err)
	dup := result.(*object.Table)
	require.NotSame(t, orig, dup)
	require.Same(t, dup, dup.Get("self"))
	require.Same(t, orig, orig.Get("self"))
}

func TestDeepCopySharedSubstructure(t *testing.T) {
	shared := object.NewList(1, 2)
	orig := object.NewTable(map[any]any{"a": shared, "b": shared})

	dup := DeepCopyValue(orig).(*object.Table)
	a := dup.Get("a").(*object.Table)
	b := dup.Get("b").(*object.Table)
	require.Same(t, a, b)
	require.NotSame(t, shared, a)

	a.Set(0, 100)
	require.Equal(t, 1, shared.Get(0))
}

func TestDeepCopyNested(t *testing.T) {
	leaf := object.NewTable(map[any]any{"v": "leaf"})
	mid := object.NewTable(map[any]any{"leaf": leaf})
	orig := object.NewTable(map[any]any{"mid": mid, "n": 3})

	dup := DeepCopyValue(orig).(*object.Table)
	dupMid := dup.Get("mid").(*object.Table)
	dupLeaf := dupMid.Get("leaf").(*object.Table)
	require.NotSame(t, mid, dupMid)
	require.NotSame(t, leaf, dupLeaf)
	require.Equal(t, "leaf", dupLeaf.Get("v"))
	require.Equal(t, 3, dup.Get("n"))
	require.Equal(t, orig.Inspect(), dup.Inspect())
}

func TestDeepCopyTableKeys(t *testing.T) {
	key := object.NewTable(nil)
	orig := object.NewTable(nil)
	orig.Set(key, key)

	dup := DeepCopyValue(orig).(*object.Table)
	keys := dup.Keys()
	require.Len(t, keys, 1)
	dupKey := keys[0].(*object.Table)
	require.NotSame(t, key, dupKey)
	// The key and the value were the same table; so are their copies.
	require.Same(t, dupKey, dup.Get(dupKey))
}

func TestDeepCopyFallback(t *testing.T) {
	parent := object.NewTable(map[any]any{"a": 1})
	child := object.NewDelegatingTable(parent)
	orig := object.NewTable(map[any]any{"parent": parent, "child": child})

	dup := DeepCopyValue(orig).(*object.Table)
	dupParent := dup.Get("parent").(*object.Table)
	dupChild := dup.Get("child").(*object.Table)
	require.Same(t, dupParent, dupChild.Fallback())

	parent.Set("a", 2)
	require.Equal(t, 1, dupChild.Get("a"))
}

func TestDeepCopyCacheIsCallScoped(t *testing.T) {
	orig := object.NewList(object.NewTable(nil))
	first := DeepCopyValue(orig).(*object.Table)
	second := DeepCopyValue(orig).(*object.Table)
	require.NotSame(t, first, second)
	require.NotSame(t, first.Get(0), second.Get(0))
}

func TestDeepCopyNonTable(t *testing.T) {
	require.Equal(t, 5, DeepCopyValue(5))
	require.Nil(t, DeepCopyValue(nil))
}
