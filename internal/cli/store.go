package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/funnelkit/internal/catalog"
	"github.com/mesh-intelligence/funnelkit/internal/sqlite"
	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

// session is an attached store with both record stores resolved.
type session struct {
	store      types.Store
	templates  types.TemplateStore
	categories types.CategoryStore
	dataDir    string
}

// withStore attaches the configured backend, runs fn and detaches.
func (a *app) withStore(fn func(s *session) error) error {
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	cfg := types.Config{
		Backend: a.cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend(sqlite.WithLogger(a.logger))
	if err := backend.Attach(cfg); err != nil {
		return fmt.Errorf("attach store: %w", err)
	}
	defer func() {
		if err := backend.Detach(); err != nil {
			a.logger.Warn("detach failed", zap.Error(err))
		}
	}()

	s := &session{store: backend, dataDir: dataDir}
	if s.templates, err = backend.Templates(); err != nil {
		return err
	}
	if s.categories, err = backend.Categories(); err != nil {
		return err
	}
	return fn(s)
}

// provider returns the built-in catalog extended with catalog_file, if set.
func (a *app) provider() (catalog.Provider, error) {
	path := a.catalogFile()
	if path == "" {
		return catalog.Default(), nil
	}
	extra, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("catalog extension loaded",
		zap.String("path", path), zap.Int("definitions", len(extra)))
	return catalog.Merge(catalog.Default(), extra), nil
}
