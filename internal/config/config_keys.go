// config_keys.go addresses settings by dotted key ("limits.max_name") for
// the config command and the MCP config tools.

package config

import (
	"fmt"
	"strconv"
	"strings"
)

// setting binds one dotted key to its field. get returns "" for unset
// strings; defaulted numeric keys report their default.
type setting struct {
	key   string
	get   func(*Config) string
	set   func(*Config, string) error
	unset func(*Config)
	isSet func(*Config) bool
}

func stringSetting(key string, field func(*Config) *string) setting {
	return setting{
		key:   key,
		get:   func(c *Config) string { return *field(c) },
		set:   func(c *Config, v string) error { *field(c) = v; return nil },
		unset: func(c *Config) { *field(c) = "" },
		isSet: func(c *Config) bool { return *field(c) != "" },
	}
}

func limitSetting(key string, field func(*Config) **int, value func(*Config) int) setting {
	return setting{
		key: key,
		get: func(c *Config) string { return strconv.Itoa(value(c)) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%w: %s must be a whole number, got %q", ErrInvalidValue, key, v)
			}
			*field(c) = &n
			return nil
		},
		unset: func(c *Config) { *field(c) = nil },
		isSet: func(c *Config) bool { return *field(c) != nil },
	}
}

var settings = []setting{
	stringSetting("author.name", func(c *Config) *string { return &c.Author.Name }),
	stringSetting("author.email", func(c *Config) *string { return &c.Author.Email }),
	limitSetting("limits.max_name", func(c *Config) **int { return &c.Limits.MaxName }, (*Config).MaxName),
	limitSetting("limits.max_path", func(c *Config) **int { return &c.Limits.MaxPath }, (*Config).MaxPath),
	{
		key: "log.level",
		get: func(c *Config) string { return strings.ToLower(c.LogLevel().String()) },
		set: func(c *Config, v string) error {
			c.Log.Level = strings.ToLower(strings.TrimSpace(v))
			return nil
		},
		unset: func(c *Config) { c.Log.Level = "" },
		isSet: func(c *Config) bool { return c.Log.Level != "" },
	},
}

func lookup(key string) (setting, error) {
	for _, s := range settings {
		if s.key == key {
			return s, nil
		}
	}
	return setting{}, fmt.Errorf("%w: %s (valid: %s)", ErrUnknownKey, key, strings.Join(ValidKeys(), ", "))
}

// ValidKeys returns every key in display order.
func ValidKeys() []string {
	keys := make([]string, len(settings))
	for i, s := range settings {
		keys[i] = s.key
	}
	return keys
}

// IsValidKey reports whether key names a setting.
func IsValidKey(key string) bool {
	_, err := lookup(key)
	return err == nil
}

// Get returns the effective value of key.
func (c *Config) Get(key string) (string, error) {
	s, err := lookup(key)
	if err != nil {
		return "", err
	}
	return s.get(c), nil
}

// Set assigns key. An out-of-range value leaves the config unchanged.
func (c *Config) Set(key, value string) error {
	s, err := lookup(key)
	if err != nil {
		return err
	}
	next := *c
	if err := s.set(&next, value); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// Unset clears key so its default applies again.
func (c *Config) Unset(key string) error {
	s, err := lookup(key)
	if err != nil {
		return err
	}
	s.unset(c)
	return nil
}

// IsSet reports whether key has an explicit value.
func (c *Config) IsSet(key string) bool {
	s, err := lookup(key)
	return err == nil && s.isSet(c)
}

// All returns every key with its effective value.
func (c *Config) All() map[string]string {
	all := make(map[string]string, len(settings))
	for _, s := range settings {
		all[s.key] = s.get(c)
	}
	return all
}

// Entry is one key with its effective value.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Set   bool   `json:"set"` // false when Value is the default
}

// Entries returns every key in ValidKeys order.
func (c *Config) Entries() []Entry {
	out := make([]Entry, len(settings))
	for i, s := range settings {
		out[i] = Entry{Key: s.key, Value: s.get(c), Set: s.isSet(c)}
	}
	return out
}
