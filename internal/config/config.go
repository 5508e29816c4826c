// Package config reads and writes docver settings.
//
// Settings live in YAML at two scopes: global (~/.docver/config.yaml) and
// local (.docver/config.yaml in the project). A local file, when present,
// replaces the global one entirely; the two are never merged. Writes go to
// the global file unless the local scope is asked for.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope selects the global or local config file.
type Scope int

const (
	ScopeGlobal Scope = iota // ~/.docver/config.yaml
	ScopeLocal               // .docver/config.yaml
)

func (s Scope) String() string {
	if s == ScopeLocal {
		return "local"
	}
	return "global"
}

// ParseScope accepts "local" or "global".
func ParseScope(s string) (Scope, error) {
	switch s {
	case "local":
		return ScopeLocal, nil
	case "global":
		return ScopeGlobal, nil
	}
	return 0, fmt.Errorf("invalid scope %q (valid: local, global)", s)
}

// Dir is the directory holding local config and databases.
const Dir = ".docver"

const fileName = "config.yaml"

// Defaults for unset keys.
const (
	DefaultMaxName  = 255
	DefaultMaxPath  = 4096
	DefaultLogLevel = "warn"
)

// Author identifies who runs commands, recorded in the audit log.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Limits bound the length of document names and version paths in bytes.
// nil means the default.
type Limits struct {
	MaxName *int `yaml:"max_name,omitempty" validate:"omitempty,min=1,max=4096"`
	MaxPath *int `yaml:"max_path,omitempty" validate:"omitempty,min=1,max=65536"`
}

// Log sets the level of diagnostics written to stderr.
type Log struct {
	Level string `yaml:"level,omitempty" validate:"omitempty,oneof=debug info warn error"`
}

// Config is one config file.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`
	Log    Log    `yaml:"log,omitempty"`

	path  string // file loaded from, target of Save
	scope Scope
}

var check = newChecker()

// newChecker reports fields by their dotted yaml key so messages read the
// same as "docver config" arguments.
func newChecker() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		return name
	})
	return v
}

// Validate checks every set value. Unset values always pass.
func (c *Config) Validate() error {
	err := check.Struct(c)
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}
	fe := errs[0]
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "oneof":
		return fmt.Errorf("%w: %s must be one of %s, got %q",
			ErrInvalidValue, key, strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "min", "max":
		return fmt.Errorf("%w: %s must be between %s, got %v",
			ErrInvalidValue, key, bounds(fe), reflect.Indirect(reflect.ValueOf(fe.Value())))
	}
	return fmt.Errorf("%w: %s", ErrInvalidValue, key)
}

// bounds renders the min and max of the field behind fe, read from its tag.
func bounds(fe validator.FieldError) string {
	f, ok := reflect.TypeOf(Limits{}).FieldByName(fe.StructField())
	if !ok {
		return fe.Param()
	}
	var lo, hi string
	for _, rule := range strings.Split(f.Tag.Get("validate"), ",") {
		if v, ok := strings.CutPrefix(rule, "min="); ok {
			lo = v
		}
		if v, ok := strings.CutPrefix(rule, "max="); ok {
			hi = v
		}
	}
	return lo + " and " + hi
}

// MaxName returns the maximum document name length.
func (c *Config) MaxName() int {
	if c.Limits.MaxName == nil {
		return DefaultMaxName
	}
	return *c.Limits.MaxName
}

// MaxPath returns the maximum version path length.
func (c *Config) MaxPath() int {
	if c.Limits.MaxPath == nil {
		return DefaultMaxPath
	}
	return *c.Limits.MaxPath
}

// LogLevel returns the diagnostic log level.
func (c *Config) LogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		_ = l.UnmarshalText([]byte(DefaultLogLevel))
	}
	return l
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// LocalPath returns the local config file, relative to the working directory.
func LocalPath() string {
	return filepath.Join(Dir, fileName)
}

// GlobalPath returns ~/.docver/config.yaml, or "" without a home directory.
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, Dir, fileName)
}

func (s Scope) path() string {
	if s == ScopeLocal {
		return LocalPath()
	}
	return GlobalPath()
}

// Load reads the local config if it exists, otherwise the global one.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads one scope. A missing file yields an empty config.
func LoadScope(scope Scope) (*Config, error) {
	p := scope.path()
	if p == "" {
		return &Config{scope: scope}, nil
	}
	return loadFile(p, scope)
}

func loadFile(path string, scope Scope) (*Config, error) {
	cfg := &Config{path: path, scope: scope}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("malformed config %s: %w\n\nFix the YAML or delete the file to use defaults", path, err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config back to the file it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = c.scope.path()
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.write(c.path)
}

// SaveScope writes the config to the file of scope.
func (c *Config) SaveScope(scope Scope) error {
	p := scope.path()
	if p == "" {
		return ErrNoConfigPath
	}
	return c.write(p)
}

// write replaces path through a temporary file in the same directory, so a
// failed write leaves the old config intact.
func (c *Config) write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, fileName+".*")
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
