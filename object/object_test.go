package object

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type customNumber int

type reportsTable struct{}

func (reportsTable) Type() Type { return TABLE }

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  Type
	}{
		{"nil", nil, NIL},
		{"bool", true, BOOLEAN},
		{"int", 3, NUMBER},
		{"uint8", uint8(3), NUMBER},
		{"float", 1.5, NUMBER},
		{"named int", customNumber(2), NUMBER},
		{"string", "hi", STRING},
		{"table", NewTable(nil), TABLE},
		{"func", Func(func(args ...any) (any, error) { return nil, nil }), FUNCTION},
		{"go func", func() {}, FUNCTION},
		{"chan", make(chan int), THREAD},
		{"struct", struct{}{}, USERDATA},
		{"pointer", &struct{}{}, USERDATA},
		{"typed", reportsTable{}, TABLE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, TypeOf(tt.value))
		})
	}
}

func TestTypeIsValid(t *testing.T) {
	for _, typ := range Types {
		require.True(t, typ.IsValid())
	}
	require.False(t, NIL.IsValid())
	require.False(t, Type("list").IsValid())
}

type cloneCounter struct{ n int }

func (c *cloneCounter) CloneValue() (any, error) {
	return &cloneCounter{n: c.n + 1}, nil
}

func TestCloneFunc(t *testing.T) {
	fn, ok := CloneFunc(&cloneCounter{n: 1})
	require.True(t, ok)
	v, err := fn()
	require.Nil(t, err)
	require.Equal(t, 2, v.(*cloneCounter).n)

	tbl := NewTable(nil)
	require.False(t, HasCloneCapability(tbl))
	tbl.Set(CloneKey, Func(func(args ...any) (any, error) {
		self := args[0].(*Table)
		return NewTable(map[any]any{"from": self.Get("name")}), nil
	}))
	tbl.Set("name", "orig")
	fn, ok = CloneFunc(tbl)
	require.True(t, ok)
	v, err = fn()
	require.Nil(t, err)
	require.Equal(t, "orig", v.(*Table).Get("from"))

	require.False(t, HasCloneCapability(42))
}

func TestInspect(t *testing.T) {
	require.Equal(t, "nil", Inspect(nil))
	require.Equal(t, `"a"`, Inspect("a"))
	require.Equal(t, "3", Inspect(3))
	require.Equal(t, "function", Inspect(func() {}))
	require.Equal(t, "userdata(*object.cloneCounter)", Inspect(&cloneCounter{}))
}
