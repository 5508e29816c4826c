/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go opens the document service for store-backed commands
// and hands it to the extensions.
//
// Extensions register their commands from init(), before any store exists.
// The service is opened on the first store-backed command, once per
// process, and shared through a single extension.Context.

package cmd

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jpl-au/docver/extension"
	"github.com/jpl-au/docver/internal/config"
	"github.com/jpl-au/docver/internal/document"
	"github.com/jpl-au/docver/internal/log"
	"github.com/jpl-au/docver/internal/store"
)

// bootstrapCommands run without a store because they create one (init) or
// are needed before one exists (guide, config, and cobra's help and
// completion).
var bootstrapCommands = []string{"init", "guide", "config", "help", "completion"}

// noStoreCommands holds bootstrapCommands plus every command an extension
// declares through extension.Storeless. Built by registerExtensions.
var noStoreCommands map[string]bool

func buildNoStoreCommands() map[string]bool {
	cmds := make(map[string]bool, len(bootstrapCommands))
	for _, name := range bootstrapCommands {
		cmds[name] = true
	}
	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}
	return cmds
}

// Shared state for the running command.
var (
	extContext extension.Context
	extService *document.Service
	initOnce   sync.Once
	initErr    error
)

// initExtensions opens the service and runs Init on every Initializable
// extension. Config is loaded first so limits and log.level apply to the
// service from its first call.
func initExtensions() error {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}

		svc, err := document.New(DB(), Dir(), document.WithConfig(cfg), document.WithLogger(Logger(cfg)))
		if err != nil {
			initErr = openError(err)
			return
		}
		extService = svc

		// Audit entries are keyed by project directory.
		log.SetProject(svc.Dir())

		extContext = extension.NewContext(svc, svc.DB(), cfg, svc.Logger())
		svc.SetExtensionContext(extContext)

		for _, ext := range extension.All() {
			init, ok := ext.(extension.Initializable)
			if !ok {
				continue
			}
			if err := init.Init(extContext); err != nil {
				initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
				return
			}
			svc.Logger().Debug("extension initialised", "ext", ext.Name())
		}
	})
	return initErr
}

// openError adds a hint for a database written by a newer docver.
func openError(err error) error {
	if errors.Is(err, store.ErrSchemaTooNew) {
		return fmt.Errorf("opening database: %w (upgrade docver to use this database)", err)
	}
	return fmt.Errorf("opening database: %w", err)
}

var extensionsOnce sync.Once

// registerExtensions adds every extension's commands to the root command.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			rootCmd.AddCommand(ext.Commands()...)
		}
		noStoreCommands = buildNoStoreCommands()
	})
}
