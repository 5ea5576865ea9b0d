package types

import "errors"

// BackendSQLite is the only storage backend.
const BackendSQLite = "sqlite"

// Config selects the storage backend and where it keeps its files.
// An empty DataDir means the working directory.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// Validate reports a ValidationError wrapping ErrBackendEmpty or
// ErrBackendUnknown when Backend does not name a supported backend.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		return nil
	case "":
		return &ValidationError{Field: "backend", Err: ErrBackendEmpty}
	default:
		return &ValidationError{Field: "backend", Value: c.Backend, Err: ErrBackendUnknown}
	}
}
