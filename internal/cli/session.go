package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/mesh-intelligence/notekeeper/internal/noteapi"
	"github.com/mesh-intelligence/notekeeper/internal/sqlite"
	"github.com/mesh-intelligence/notekeeper/internal/xmlstore"
	"github.com/mesh-intelligence/notekeeper/pkg/types"
)

// storeConfig returns the backend configuration resolved by setup.
func (a *app) storeConfig() types.Config {
	return types.Config{Backend: a.backend, DataDir: a.dirs.Data}
}

// openStore creates and attaches the configured backend. The caller must
// Detach it.
func (a *app) openStore() (types.Store, error) {
	cfg := a.storeConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("backend %q: %w", cfg.Backend, err)
	}

	var store types.Store
	switch cfg.Backend {
	case types.BackendSQLite:
		store = sqlite.NewBackend(a.log)
	default:
		store = xmlstore.New(a.log)
	}
	if err := store.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach %s store: %w", cfg.Backend, err)
	}
	return store, nil
}

// loadNotes loads api from its store. A store that was never saved yields an
// empty collection.
func (a *app) loadNotes(api *noteapi.NoteAPI) error {
	err := api.Load()
	if errors.Is(err, fs.ErrNotExist) {
		a.log.Debug("no saved notes, starting empty", "data_dir", a.dirs.Data)
		return nil
	}
	return err
}

// withNotes attaches the store, loads the collection and runs fn on it. When
// mutates is set and fn succeeds, the collection is saved before detaching.
// Persistence failures are system errors; errors from fn pass through.
func (a *app) withNotes(mutates bool, fn func(api *noteapi.NoteAPI) error) (err error) {
	store, err := a.openStore()
	if err != nil {
		return sysError(err)
	}
	defer func() {
		if derr := store.Detach(); derr != nil && err == nil {
			err = sysError(fmt.Errorf("detach store: %w", derr))
		}
	}()

	api := noteapi.New(store)
	if err := a.loadNotes(api); err != nil {
		return sysError(err)
	}

	if err := fn(api); err != nil {
		return err
	}
	if !mutates {
		return nil
	}
	if err := api.Save(); err != nil {
		return sysError(err)
	}
	a.log.Debug("notes saved", "count", api.NumberOfNotes())
	return nil
}
