// Package store persists categories and blocks. The default backend keeps one
// JSON file per record under a diskv tree; sqlite and redis backends implement
// the same contract.
package store

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/snip/pkg/block"
)

var (
	// ErrNotFound is returned when a record id does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrCategoryInUse is returned when deleting a category that blocks still
	// reference.
	ErrCategoryInUse = errors.New("store: category in use")
)

// Persistence defines the persistence contract for categories and blocks.
type Persistence interface {
	ListCategories(ctx context.Context) ([]block.Category, error)
	ListBlocks(ctx context.Context) ([]block.Block, error)
	GetBlock(ctx context.Context, id string) (block.Block, error)
	CreateBlock(ctx context.Context, b block.Block) (block.Block, error)
	UpdateBlock(ctx context.Context, id string, patch block.Patch) (block.Block, error)
	DeleteBlock(ctx context.Context, id string) error
	CreateCategory(ctx context.Context, c block.Category) (block.Category, error)
	UpdateCategory(ctx context.Context, id string, patch block.CategoryPatch) (block.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	Close() error
}

// Watchable is implemented by backends that can stream change notifications.
type Watchable interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// Drivers.
const (
	DriverDiskv  = "diskv"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Drivers lists the supported backend names.
func Drivers() []string {
	return []string{DriverDiskv, DriverSQLite, DriverRedis}
}

// Load opens the backend selected by cfg. A nil cfg reads the config file.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	switch cfg.Driver() {
	case "", DriverDiskv:
		return NewDiskv(cfg.BasePath())
	case DriverSQLite:
		return NewSQLite(cfg.SQLitePath())
	case DriverRedis:
		return NewRedis(cfg.Redis())
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver())
	}
}
