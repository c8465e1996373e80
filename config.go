package protoclone

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/deepnoodle-ai/protoclone/errz"
	"github.com/deepnoodle-ai/protoclone/object"
	"github.com/deepnoodle-ai/protoclone/policy"
)

// configFile is the YAML form of a Config. Policies are referenced by their
// registered names.
type configFile struct {
	Default  string `yaml:"default"`
	Boolean  string `yaml:"boolean"`
	Number   string `yaml:"number"`
	String   string `yaml:"string"`
	Table    string `yaml:"table"`
	Userdata string `yaml:"userdata"`
	Function string `yaml:"function"`
	Thread   string `yaml:"thread"`

	UseDelegation      bool `yaml:"useDelegation"`
	UseSlotProtection  bool `yaml:"useSlotProtection"`
	UseExtraMetadata   bool `yaml:"useExtraMetadata"`
	UseCloneDelegation bool `yaml:"useCloneDelegation"`
}

// ParseConfig decodes a YAML configuration:
//
//	default: assignmentCopy
//	table: shallowCopy
//	useDelegation: true
//
// Unknown fields, unknown policy names and malformed documents are reported
// as invalid configuration errors. An empty document is an empty config.
func ParseConfig(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f configFile
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, errz.InvalidConfigurationf("%s", err).WithCause(err)
	}

	cfg := &Config{
		Types:              map[object.Type]*policy.Policy{},
		UseDelegation:      f.UseDelegation,
		UseSlotProtection:  f.UseSlotProtection,
		UseExtraMetadata:   f.UseExtraMetadata,
		UseCloneDelegation: f.UseCloneDelegation,
	}
	var result *multierror.Error
	if f.Default != "" {
		p, err := lookupPolicy("default", f.Default)
		if err != nil {
			result = multierror.Append(result, err)
		}
		cfg.Default = p
	}
	for _, entry := range []struct {
		typ  object.Type
		name string
	}{
		{object.BOOLEAN, f.Boolean},
		{object.NUMBER, f.Number},
		{object.STRING, f.String},
		{object.TABLE, f.Table},
		{object.USERDATA, f.Userdata},
		{object.FUNCTION, f.Function},
		{object.THREAD, f.Thread},
	} {
		if entry.name == "" {
			continue
		}
		p, err := lookupPolicy(string(entry.typ), entry.name)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		cfg.Types[entry.typ] = p
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and decodes a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

func lookupPolicy(field, name string) (*policy.Policy, error) {
	p, ok := policy.Lookup(name)
	if !ok {
		if hint := errz.DidYouMean(errz.Suggest(name, policy.Names())); hint != "" {
			return nil, errz.InvalidConfigurationf("%s: unknown policy %q, %s", field, name, hint)
		}
		return nil, errz.InvalidConfigurationf("%s: unknown policy %q", field, name)
	}
	return p, nil
}
