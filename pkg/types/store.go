package types

import "errors"

// Store is a backend-agnostic handle on the template and category stores.
// Callers attach to a backend, use the stores, and detach when done.
type Store interface {
	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, store operations return ErrStoreDetached.
	Detach() error

	// Templates returns the template record store.
	Templates() (TemplateStore, error)

	// Categories returns the category store.
	Categories() (CategoryStore, error)
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)
