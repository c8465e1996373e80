// Package protoclone builds families of prototype objects with configurable
// cloning.
//
// A configuration names a default cloning policy, optional per-type
// policies, and four structural flags. New compiles it and returns the root
// object of the family:
//
//	root, err := protoclone.New(&protoclone.Config{
//		Default: protoclone.AssignmentCopy,
//		Types:   map[object.Type]*policy.Policy{object.TABLE: protoclone.ShallowCopy},
//	})
//	if err != nil {
//		return err
//	}
//	root.Slot("arr").MustSet("arr", object.NewList(1, 2, 3))
//	dup, err := root.Clone()
//
// Configurations may also be loaded from YAML with LoadConfig.
package protoclone

import (
	"github.com/deepnoodle-ai/protoclone/policy"
	"github.com/deepnoodle-ai/protoclone/proto"
)

type (
	// Config describes a family of prototype objects.
	Config = proto.Config
	// Object is a prototype object.
	Object = proto.Object
	// Strategy is a compiled configuration.
	Strategy = proto.Strategy
	// Option configures compilation.
	Option = proto.Option
)

// Built-in policies.
var (
	NoCopy             = policy.NoCopy
	AssignmentCopy     = policy.AssignmentCopy
	ShallowCopy        = policy.ShallowCopy
	DelegateCopy       = policy.DelegateCopy
	DeepCopy           = policy.DeepCopy
	CloneDelegatedCopy = policy.CloneDelegatedCopy
)

// WithLogger sets the logger used while compiling and cloning.
var WithLogger = proto.WithLogger

// Compile validates cfg and compiles it into a reusable strategy.
func Compile(cfg *Config, opts ...Option) (*Strategy, error) {
	return proto.Compile(cfg, opts...)
}

// New compiles cfg and returns the root object of the family it describes.
// It fails with an invalid configuration error if cfg is nil or malformed.
func New(cfg *Config, opts ...Option) (*Object, error) {
	s, err := proto.Compile(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return s.NewRoot(), nil
}

// Policies returns every registered policy by name.
func Policies() map[string]*policy.Policy {
	policies := map[string]*policy.Policy{}
	for _, name := range policy.Names() {
		p, _ := policy.Lookup(name)
		policies[name] = p
	}
	return policies
}
