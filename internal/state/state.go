// Package state wires the configuration, note store, query engine and
// view controller into the shared application state.
package state

import (
	"fmt"
	"os"

	"github.com/zetbrowse/zb/internal/config"
	"github.com/zetbrowse/zb/internal/query"
	"github.com/zetbrowse/zb/internal/sorter"
	"github.com/zetbrowse/zb/internal/store"
	"github.com/zetbrowse/zb/internal/view"
)

type State struct {
	Config      *config.Config
	Store       *store.VaultStore
	Engine      *query.Engine
	Controller  *view.Controller
	Watcher     *VaultWatcher
	Home        string
	Vault       string
	DefaultSort sorter.Mode
}

func NewState() (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	if err := config.EnsureConfigExists(home); err != nil {
		return nil, err
	}

	cfg, err := config.Load(home)
	if err != nil {
		return nil, err
	}

	defaultSort, err := sorter.ParseMode(cfg.DefaultSort)
	if err != nil {
		return nil, fmt.Errorf("config defaultsort: %w", err)
	}

	st := store.NewVaultStore(cfg.VaultDir, store.Config{
		IgnoredFolders: append([]string(nil), cfg.Search.IgnoredFolders...),
	})

	// The vault may not exist yet (pre-init); browsing will surface that,
	// but configuration commands still need to run.
	watcher, err := NewVaultWatcher(cfg.VaultDir)
	if err != nil {
		watcher = nil
	} else {
		watcher.OnChange(st.QueueUpdate)
	}

	engine := query.NewEngine(st)

	return &State{
		Config:      cfg,
		Store:       st,
		Engine:      engine,
		Controller:  view.NewController(st, engine),
		Watcher:     watcher,
		Home:        home,
		Vault:       cfg.VaultDir,
		DefaultSort: defaultSort,
	}, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home, nil
}

// Close releases the vault watcher.
func (s *State) Close() error {
	if s == nil || s.Watcher == nil {
		return nil
	}
	err := s.Watcher.Close()
	s.Watcher = nil
	return err
}
