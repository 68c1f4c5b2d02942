package lidrup

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned by FindConfig when no config file is found
// walking up from the starting directory.
var ErrConfigNotFound = errors.New("lidrup-check: no config file found")

// Mode selects how strictly the checker enforces the parts of the format
// that are optional in the baseline ("strict") mode (spec §4.5, §6.1).
type Mode int

const (
	// ModeStrict is the default: headers optional, every conclusion
	// required.
	ModeStrict Mode = iota
	// ModeRelaxed tolerates a missing `m`/`u` conclusion in the proof by
	// skipping the corresponding verification (spec §4.5).
	ModeRelaxed
	// ModePedantic requires headers on both streams and requires the
	// interaction's own conclusion lines (`m`/`v`/`u`/`f`) in addition to
	// the proof's.
	ModePedantic
)

// Options collects the command-line and config-file settings that shape a
// single checking run (spec §6.1).
type Options struct {
	Mode      Mode `yaml:"mode"`
	NoReuse   bool `yaml:"no_reuse"`
	Verbosity int  `yaml:"-"` // -1 quiet, 0 default, >0 verbose, set only from flags
}

// Config represents the .lidrup-check.yaml configuration file: defaults for
// flags a project wants applied on every invocation unless overridden on
// the command line.
type Config struct {
	Mode    string `yaml:"mode,omitempty"` // "strict" | "relaxed" | "pedantic"
	NoReuse bool   `yaml:"no_reuse,omitempty"`
}

// DefaultConfigNames are the filenames searched for, most specific first.
var DefaultConfigNames = []string{".lidrup-check.yaml", ".lidrup-check.yml"}

// LoadConfig finds and loads the nearest config file walking up from dir.
// A missing config file is not an error: LoadConfig returns a zero Config.
func LoadConfig(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return &Config{}, nil
		}
		return nil, err
	}
	return LoadConfigFile(path)
}

// FindConfig searches for a config file starting from dir and walking up.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for d := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(d, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
		parent := filepath.Dir(d)
		if parent == d {
			return "", ErrConfigNotFound
		}
		d = parent
	}
}

// LoadConfigFile loads a config from a specific path.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ModeFromString parses the mode names accepted on the command line and in
// the config file.
func ModeFromString(s string) (Mode, error) {
	switch s {
	case "", "strict":
		return ModeStrict, nil
	case "relaxed":
		return ModeRelaxed, nil
	case "pedantic":
		return ModePedantic, nil
	default:
		return ModeStrict, errors.New("lidrup-check: unknown mode " + s)
	}
}

// ApplyConfig copies cfg's settings into opts: a non-empty cfg.Mode
// replaces opts.Mode, and cfg.NoReuse sets opts.NoReuse; fields cfg leaves
// empty keep opts' values. The caller applies flags after calling this, so
// flags win over the config file.
func ApplyConfig(opts Options, cfg *Config) (Options, error) {
	if cfg.Mode != "" {
		m, err := ModeFromString(cfg.Mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = m
	}
	if cfg.NoReuse {
		opts.NoReuse = true
	}
	return opts, nil
}
