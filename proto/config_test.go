package proto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/protoclone/errz"
	"github.com/deepnoodle-ai/protoclone/object"
	"github.com/deepnoodle-ai/protoclone/policy"
)

func TestCompileNilConfig(t *testing.T) {
	s, err := Compile(nil)
	require.Nil(t, s)
	require.True(t, errors.Is(err, errz.ErrInvalidConfiguration))
}

func TestCompileInvalidTypes(t *testing.T) {
	s, err := Compile(&Config{
		Default: policy.AssignmentCopy,
		Types: map[object.Type]*policy.Policy{
			"list":          policy.ShallowCopy,
			object.TABLE:    nil,
			object.FUNCTION: policy.NoCopy,
		},
	})
	require.Nil(t, s)
	require.True(t, errors.Is(err, errz.ErrInvalidConfiguration))
	require.Contains(t, err.Error(), `unknown type "list"`)
	require.Contains(t, err.Error(), `nil policy for type "table"`)
	require.Contains(t, err.Error(), "2 errors occurred")
}

func TestConfigResolveTypes(t *testing.T) {
	cfg := &Config{
		Default: policy.AssignmentCopy,
		Types:   map[object.Type]*policy.Policy{object.TABLE: policy.DeepCopy},
	}
	resolved := cfg.resolveTypes()
	require.Len(t, resolved, len(object.Types))
	require.Same(t, policy.DeepCopy, resolved[object.TABLE])
	require.Same(t, policy.AssignmentCopy, resolved[object.NUMBER])

	// Without a default only explicit types resolve.
	cfg.Default = nil
	resolved = cfg.resolveTypes()
	require.Len(t, resolved, 1)
}

func TestConfigIsCopiedAtCompileTime(t *testing.T) {
	cfg := &Config{Default: policy.AssignmentCopy}
	s, err := Compile(cfg)
	require.Nil(t, err)

	cfg.Default = policy.NoCopy
	cfg.UseDelegation = true
	p, ok := s.Policy(object.NUMBER)
	require.True(t, ok)
	require.Same(t, policy.AssignmentCopy, p)
	require.False(t, s.Describe().UseDelegation)
}
