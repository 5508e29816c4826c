// tools_config.go implements docver_config_get and docver_config_set.
//
// A successful set reloads the running service's limits, so a new
// limits.max_name applies to the next tool call without a restart.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/docver/internal/config"
	"github.com/jpl-au/docver/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// configSetResult is the JSON result of docver_config_set.
type configSetResult struct {
	config.Entry
	Scope   string `json:"scope"`
	Warning string `json:"warning,omitempty"`
}

// loadConfig loads the named scope: "local", "global", or "" for whichever
// file is in effect.
func loadConfig(scope string) (*config.Config, error) {
	if scope == "" {
		return config.Load()
	}
	sc, err := config.ParseScope(scope)
	if err != nil {
		return nil, err
	}
	return config.LoadScope(sc)
}

// configGet handles docver_config_get tool calls.
func (h *handlers) configGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	key := getString(req, "key", "")
	cfg, err := loadConfig(getString(req, "scope", ""))
	if err != nil {
		log.Event("mcp:config_get", "get").Author("mcp").Detail("key", key).Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	if key == "" {
		log.Event("mcp:config_get", "list").Author("mcp").Write(nil)
		return jsonResult(cfg.Entries())
	}

	v, err := cfg.Get(key)

	log.Event("mcp:config_get", "get").Author("mcp").Detail("key", key).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(config.Entry{Key: key, Value: v, Set: cfg.IsSet(key)})
}

// configSet handles docver_config_set tool calls. unset=true clears the key.
func (h *handlers) configSet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}
	unset := getBool(req, "unset", false)
	value := getString(req, "value", "")
	if value == "" && !unset {
		return mcp.NewToolResultError("value is required unless unset is true"), nil
	}

	action := "set"
	if unset {
		action = "unset"
	}
	l := log.Event("mcp:config_set", action).Author("mcp").Detail("key", key)

	cfg, err := loadConfig(getString(req, "scope", ""))
	if err == nil {
		if unset {
			err = cfg.Unset(key)
		} else {
			err = cfg.Set(key, value)
		}
	}
	if err == nil {
		err = cfg.Save()
	}
	if err != nil {
		l.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	l.Detail("scope", cfg.Scope().String()).Write(nil)

	v, _ := cfg.Get(key)
	res := configSetResult{
		Entry: config.Entry{Key: key, Value: v, Set: cfg.IsSet(key)},
		Scope: cfg.Scope().String(),
	}
	if err := h.svc.ReloadConfig(); err != nil {
		h.logger.Warn("config reload failed", "key", key, "err", err)
		res.Warning = fmt.Sprintf("saved, but reload failed; restart the server to apply: %v", err)
	}
	return jsonResult(res)
}
