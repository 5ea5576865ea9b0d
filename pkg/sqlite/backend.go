// Package sqlite provides the public API for the SQLite funnelkit store.
// It exposes the backend factory while keeping implementation details
// internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/funnelkit/internal/sqlite"
	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

// Option configures a backend created by NewBackend.
type Option = sqlite.Option

// WithLogger sets the logger used for store lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return sqlite.WithLogger(l)
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	store := sqlite.NewBackend()
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".funnelkit-db",
//	})
//	defer store.Detach()
func NewBackend(opts ...Option) types.Store {
	return sqlite.NewBackend(opts...)
}
