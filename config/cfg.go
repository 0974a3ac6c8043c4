package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"github.com/benbjohnson/cssselect/selector"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// NamespacesConfig declares the namespace prefixes selectors may use.
	NamespacesConfig struct {
		Default  string            `yaml:"default,omitempty"`
		Prefixes map[string]string `yaml:"prefixes,omitempty" validate:"dive,keys,required,endkeys,required"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Namespaces NamespacesConfig `yaml:"namespaces"`
		Logging    LoggingConfig    `yaml:"logging"`
	}
)

// Map returns the namespaces in the form the selector parser expects.
func (c *NamespacesConfig) Map() selector.Namespaces {
	ns := make(selector.Namespaces, len(c.Prefixes)+1)
	for prefix, uri := range c.Prefixes {
		ns[prefix] = uri
	}
	if len(c.Default) > 0 {
		ns[""] = c.Default
	}
	return ns
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields we defined are allowed, so yaml.Unmarshal cannot be used
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of the expanded configuration template to
// provide sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
