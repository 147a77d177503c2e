// Package config holds the run configuration for strokefix and loads it from
// defaults, an optional YAML file and STROKEFIX_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")

// Default values.
const (
	DefaultModule    = "lucide-react"
	DefaultAttribute = "strokeWidth"
	DefaultValue     = "{1.5}"
)

var attributeName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_:-]*$`)

// Config describes a single rewrite run.
type Config struct {
	Roots      []string `yaml:"roots" env:"STROKEFIX_ROOTS"`
	Module     string   `yaml:"module" env:"STROKEFIX_MODULE"`
	Attribute  string   `yaml:"attribute" env:"STROKEFIX_ATTRIBUTE"`
	Value      string   `yaml:"value" env:"STROKEFIX_VALUE"`
	Extensions []string `yaml:"extensions" env:"STROKEFIX_EXTENSIONS"`
	SkipDirs   []string `yaml:"skip_dirs" env:"STROKEFIX_SKIP_DIRS"`
	Parallel   int      `yaml:"parallel" env:"STROKEFIX_PARALLEL"`
	// KeepGoing turns per-file read/write failures into warnings instead of
	// aborting the run.
	KeepGoing    bool `yaml:"keep_going" env:"STROKEFIX_KEEP_GOING"`
	DryRun       bool `yaml:"dry_run" env:"STROKEFIX_DRY_RUN"`
	UseGitignore bool `yaml:"gitignore" env:"STROKEFIX_GITIGNORE"`
}

// Default returns the configuration used when nothing else is provided.
func Default() Config {
	return Config{
		Roots:      []string{"."},
		Module:     DefaultModule,
		Attribute:  DefaultAttribute,
		Value:      DefaultValue,
		Extensions: []string{".tsx", ".ts"},
		SkipDirs:   []string{"node_modules", ".next"},
		Parallel:   1,
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when path
// is empty) and the environment, in that order.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 - path is supplied by the operator
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.normalize()

	return cfg, nil
}

// Token returns the literal text inserted into each tag, e.g. strokeWidth={1.5}.
func (c Config) Token() string {
	return c.Attribute + "=" + c.Value
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case len(c.Roots) == 0:
		return fmt.Errorf("%w: no roots", ErrInvalidConfig)
	case strings.TrimSpace(c.Module) == "":
		return fmt.Errorf("%w: empty module", ErrInvalidConfig)
	case !attributeName.MatchString(c.Attribute):
		return fmt.Errorf("%w: attribute %q is not a valid name", ErrInvalidConfig, c.Attribute)
	case c.Value == "":
		return fmt.Errorf("%w: empty value", ErrInvalidConfig)
	case strings.ContainsAny(c.Value, "\r\n"):
		return fmt.Errorf("%w: value must fit on one line", ErrInvalidConfig)
	case len(c.Extensions) == 0:
		return fmt.Errorf("%w: no extensions", ErrInvalidConfig)
	case c.Parallel < 1:
		return fmt.Errorf("%w: parallel must be at least 1, got %d", ErrInvalidConfig, c.Parallel)
	}

	return nil
}

// WithOverrides returns a copy of c with the non-zero fields of o applied.
// Boolean switches can only be turned on.
func (c Config) WithOverrides(o Config) Config {
	if len(o.Roots) > 0 {
		c.Roots = o.Roots
	}

	if o.Module != "" {
		c.Module = o.Module
	}

	if o.Attribute != "" {
		c.Attribute = o.Attribute
	}

	if o.Value != "" {
		c.Value = o.Value
	}

	if len(o.Extensions) > 0 {
		c.Extensions = o.Extensions
	}

	if len(o.SkipDirs) > 0 {
		c.SkipDirs = o.SkipDirs
	}

	if o.Parallel > 0 {
		c.Parallel = o.Parallel
	}

	c.KeepGoing = c.KeepGoing || o.KeepGoing
	c.DryRun = c.DryRun || o.DryRun
	c.UseGitignore = c.UseGitignore || o.UseGitignore
	c.normalize()

	return c
}

func (c *Config) normalize() {
	exts := make([]string, 0, len(c.Extensions))

	for _, ext := range c.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}

		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		exts = append(exts, ext)
	}

	c.Extensions = exts
}
