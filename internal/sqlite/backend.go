// Package sqlite implements the SQLite storage backend for funnelkit.
// SQLite is the query engine; the JSONL files in DataDir are the source of
// truth and are rewritten atomically after every mutation.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

var _ types.Store = (*Backend)(nil)

// dbFileName is the SQLite file created inside DataDir. It is rebuilt from
// the JSONL files on every Attach.
const dbFileName = "funnelkit.db"

// Backend implements types.Store using SQLite.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   *zap.Logger
	now      func() time.Time

	templates  *templatesTable
	categories *categoriesTable
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for lifecycle and persistence events.
func WithLogger(l *zap.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithClock overrides the time source used for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		logger: zap.NewNop(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(b)
	}
	b.templates = &templatesTable{backend: b}
	b.categories = &categoriesTable{backend: b}
	return b
}

// Templates returns the template record store.
// Returns ErrStoreDetached if the backend is not attached.
func (b *Backend) Templates() (types.TemplateStore, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return b.templates, nil
}

// Categories returns the category store.
// Returns ErrStoreDetached if the backend is not attached.
func (b *Backend) Categories() (types.CategoryStore, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return b.categories, nil
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, builds a fresh SQLite schema, loads
// the JSONL files, and seeds the system categories on first run.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}
	config.DataDir = dataDir

	// The database is a cache of the JSONL files; start from scratch.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	// One connection serializes writers and keeps transactions simple.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return fmt.Errorf("create schema: %w", err)
	}

	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return fmt.Errorf("init JSONL: %w", err)
	}

	loaded, err := loadAllJSONL(db, dataDir)
	if err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	seeded, err := seedSystemCategories(db, dataDir, b.now())
	if err != nil {
		db.Close()
		return fmt.Errorf("seed categories: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true

	b.logger.Info("store attached",
		zap.String("data_dir", dataDir),
		zap.Int("templates", loaded[types.TableTemplates]),
		zap.Int("categories", loaded[types.TableCategories]),
		zap.Int("seeded_categories", seeded))
	return nil
}

// Detach releases all resources held by the backend.
// After Detach, all operations return ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.logger.Debug("store detached", zap.String("data_dir", b.config.DataDir))
	return nil
}

// generateUUID generates a new UUID v7 for entity IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fall back to UUID v4 if v7 generation fails.
		return uuid.New().String()
	}
	return id.String()
}

// formatTime renders timestamps the way they are stored.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
