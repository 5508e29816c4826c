// config.go implements "docver config" for reading and writing settings.
//
// Reads and writes go to the same file: local .docver/config.yaml when it
// exists (or --local is given), otherwise ~/.docver/config.yaml.

package core

import (
	"fmt"

	"github.com/jpl-au/docver/cmd"
	"github.com/jpl-au/docver/extension"
	"github.com/jpl-au/docver/internal/config"
	"github.com/jpl-au/docver/internal/log"
	"github.com/spf13/cobra"
)

const flagUnset = "unset"

// configResult is the JSON output of a set or unset.
type configResult struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Scope string `json:"scope"`
}

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  docver config                         # show all keys, defaults marked
  docver config limits.max_name         # show one value
  docver config log.level debug         # set a value
  docver config --unset limits.max_name # back to the default

Configuration locations:
  Global: ~/.docver/config.yaml
  Local:  .docver/config.yaml

The local file wins when it exists. Use --local to read and write it even
before it exists. See 'docver guide config' for every key.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.docver/config.yaml)")
	c.Flags().Bool(flagUnset, false, "Remove the key so its default applies")
	return c
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool(extension.FlagLocal)
	unset, _ := c.Flags().GetBool(flagUnset)

	var cfg *config.Config
	var err error
	if forceLocal {
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	scope := cfg.Scope().String()

	switch {
	case unset:
		if len(args) != 1 {
			return cmd.PrintJSONError(fmt.Errorf("config --%s takes exactly one key", flagUnset))
		}
		return saveConfig(cfg, "unset", args[0], "", scope, cfg.Unset(args[0]))
	case len(args) == 0:
		return listConfig(cfg)
	case len(args) == 1:
		v, err := cfg.Get(args[0])
		log.Event("core:config", "get").Author(cmd.Author()).Detail("key", args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)
		return nil
	default:
		return saveConfig(cfg, "set", args[0], args[1], scope, cfg.Set(args[0], args[1]))
	}
}

func listConfig(cfg *config.Config) error {
	entries := cfg.Entries()
	log.Event("core:config", "list").Author(cmd.Author()).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(entries)
	}
	for _, e := range entries {
		if e.Set {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", e.Key, e.Value)
		} else {
			fmt.Fprintf(cmd.Out(), "%s: %s (default)\n", e.Key, e.Value)
		}
	}
	return nil
}

// saveConfig persists a set or unset whose in-memory result is changeErr.
func saveConfig(cfg *config.Config, action, key, value, scope string, changeErr error) error {
	err := changeErr
	if err == nil {
		err = cfg.Save()
	}

	log.Event("core:config", action).
		Author(cmd.Author()).
		Detail("key", key).
		Detail("scope", scope).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config %s %q: %w", action, key, err))
	}

	if action == "unset" {
		value, _ = cfg.Get(key)
	}
	if cmd.JSON() {
		return cmd.PrintJSON(configResult{Key: key, Value: value, Scope: scope})
	}
	if action == "unset" {
		fmt.Fprintf(cmd.Out(), "%s unset, default %s (%s)\n", key, value, scope)
		return nil
	}
	fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", key, value, scope)
	return nil
}
