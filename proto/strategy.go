package proto

import (
	"fmt"
	"sync/atomic"

	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/protoclone/errz"
	"github.com/deepnoodle-ai/protoclone/object"
	"github.com/deepnoodle-ai/protoclone/policy"
)

// Strategy is a compiled configuration: the recipe every object of one
// family follows when it is cloned. Build one with Compile.
type Strategy struct {
	cfg    Config
	types  map[object.Type]*policy.Policy
	logger zerolog.Logger

	// Chosen once by Compile.
	metadata  metaStore
	guard     writeGuard
	newTable  func(parent Table) Table
	tableKind string
	steps     []step

	// Used when a mixin identifier cannot be generated from a UUID.
	mixinSeq atomic.Uint64
}

// step is one stage of the clone pipeline.
type step struct {
	name string
	run  func(job *cloneJob) error
}

// cloneJob carries the state of a single clone call through the pipeline.
// Nothing reaches the caller unless every step succeeds.
type cloneJob struct {
	src   *Object
	draft *Object
	meta  *meta
}

// Compile validates cfg and builds the clone strategy it describes.
func Compile(cfg *Config, opts ...Option) (*Strategy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := collectOptions(opts...)
	s := &Strategy{
		cfg:    *cfg,
		types:  cfg.resolveTypes(),
		logger: o.logger,
	}
	s.cfg.Types = nil

	if cfg.needsMetadata() {
		if cfg.UseExtraMetadata {
			s.metadata = newSideMeta()
		} else {
			s.metadata = inlineMeta{}
		}
	}
	if cfg.UseSlotProtection {
		s.guard = declaredOnly
	}
	if cfg.UseCloneDelegation {
		s.newTable = newDelegatingTable
		s.tableKind = "delegating"
	} else {
		s.newTable = newCopyingTable
		s.tableKind = "copying"
	}

	s.steps = append(s.steps, step{name: "copy-slots", run: s.copySlots})
	if cfg.UseDelegation {
		s.steps = append(s.steps, step{name: "wire-delegation", run: wireDelegation})
	}
	if cfg.UseSlotProtection {
		s.steps = append(s.steps, step{name: "wire-protection", run: s.wireProtection})
	}
	if s.metadata != nil {
		s.steps = append(s.steps, step{name: "attach-metadata", run: s.attachMetadata})
	}
	s.steps = append(s.steps, step{name: "propagate-table", run: s.propagateTable})

	d := s.Describe()
	s.logger.Debug().
		Str("default", d.Default).
		Interface("types", d.Types).
		Str("metadata", d.Metadata).
		Str("table", d.Table).
		Strs("steps", d.Steps).
		Msg("compiled clone strategy")
	return s, nil
}

// NewRoot returns a new root object with no slots.
func (s *Strategy) NewRoot() *Object {
	root := &Object{
		slots:    map[string]any{},
		table:    s.newTable(nil),
		strategy: s,
	}
	if s.metadata != nil {
		s.metadata.store(root, &meta{guard: s.guard})
	}
	return root
}

// Policy returns the policy applied to values of the given type when a
// slot has no policy of its own.
func (s *Strategy) Policy(typ object.Type) (*policy.Policy, bool) {
	if p, ok := s.types[typ]; ok {
		return p, true
	}
	if s.cfg.Default != nil {
		return s.cfg.Default, true
	}
	return nil, false
}

// resolve returns the effective policy of a slot: the cloning table entry,
// then the policy for the value's runtime type, then the default.
func (s *Strategy) resolve(table Table, name string, value any) (*policy.Policy, error) {
	if p, ok := table.Lookup(name); ok && p != nil {
		return p, nil
	}
	if p, ok := s.Policy(object.TypeOf(value)); ok {
		return p, nil
	}
	return nil, errz.NoPolicyf("no policy for %s value", object.TypeOf(value)).WithSlot(name)
}

func (s *Strategy) clone(src *Object) (*Object, error) {
	job := &cloneJob{
		src: src,
		draft: &Object{
			slots:    make(map[string]any, len(src.slots)),
			strategy: s,
		},
	}
	for _, st := range s.steps {
		if err := st.run(job); err != nil {
			s.logger.Debug().Err(err).Str("step", st.name).Msg("clone failed")
			return nil, err
		}
	}
	return job.draft, nil
}

func (s *Strategy) copySlots(job *cloneJob) error {
	var result *multierror.Error
	for _, name := range sortedSlotNames(job.src.slots) {
		value := job.src.slots[name]
		p, err := s.resolve(job.src.table, name, value)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		out, err := p.Apply(value)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("slot %q: %s: %w", name, p.Name(), err))
			continue
		}
		if policy.IsAbsent(out) || out == nil {
			s.logger.Trace().Str("slot", name).Str("policy", p.Name()).Msg("slot left unset")
			continue
		}
		s.logger.Trace().Str("slot", name).Str("policy", p.Name()).Msg("slot copied")
		job.draft.slots[name] = out
	}
	return result.ErrorOrNil()
}

func wireDelegation(job *cloneJob) error {
	job.metaRecord().parent = job.src
	return nil
}

func (s *Strategy) wireProtection(job *cloneJob) error {
	job.metaRecord().guard = s.guard
	return nil
}

func (s *Strategy) attachMetadata(job *cloneJob) error {
	s.metadata.store(job.draft, job.metaRecord())
	return nil
}

func (s *Strategy) propagateTable(job *cloneJob) error {
	job.draft.table = s.newTable(job.src.table)
	return nil
}

func (job *cloneJob) metaRecord() *meta {
	if job.meta == nil {
		job.meta = &meta{}
	}
	return job.meta
}

// declaredOnly is the write guard of protected objects.
func declaredOnly(o *Object, name string) error {
	if _, ok := o.table.Lookup(name); !ok {
		return errz.UndeclaredSlotf("write to undeclared slot").WithSlot(name)
	}
	return nil
}

// mixinSlotName returns a fresh private slot name. Private names start with
// a NUL byte, which public slot names may not contain.
func (s *Strategy) mixinSlotName() string {
	id, err := uuid.NewV4()
	if err != nil {
		s.logger.Warn().Err(err).Msg("falling back to sequential mixin id")
		return fmt.Sprintf("%cmixin:%d", privatePrefix, s.mixinSeq.Add(1))
	}
	return fmt.Sprintf("%cmixin:%s", privatePrefix, id)
}

// Description reports how a strategy was compiled.
type Description struct {
	Default            string            `json:"default,omitempty"`
	Types              map[string]string `json:"types"`
	UseDelegation      bool              `json:"use_delegation"`
	UseSlotProtection  bool              `json:"use_slot_protection"`
	UseExtraMetadata   bool              `json:"use_extra_metadata"`
	UseCloneDelegation bool              `json:"use_clone_delegation"`
	Metadata           string            `json:"metadata"`
	Table              string            `json:"table"`
	Steps              []string          `json:"steps"`
}

// Describe returns a description of the compiled strategy.
func (s *Strategy) Describe() Description {
	d := Description{
		Types:              map[string]string{},
		UseDelegation:      s.cfg.UseDelegation,
		UseSlotProtection:  s.cfg.UseSlotProtection,
		UseExtraMetadata:   s.cfg.UseExtraMetadata,
		UseCloneDelegation: s.cfg.UseCloneDelegation,
		Metadata:           "none",
		Table:              s.tableKind,
	}
	if s.cfg.Default != nil {
		d.Default = s.cfg.Default.Name()
	}
	for typ, p := range s.types {
		d.Types[string(typ)] = p.Name()
	}
	if s.metadata != nil {
		d.Metadata = s.metadata.placement()
	}
	for _, st := range s.steps {
		d.Steps = append(d.Steps, st.name)
	}
	return d
}
