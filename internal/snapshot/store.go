// Package snapshot persists named tag group documents.
package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/kutbudev/tagsync/internal/config"
	"github.com/kutbudev/tagsync/internal/models"
)

// ErrNotFound is returned by Load when no snapshot exists under the name.
var ErrNotFound = errors.New("snapshot not found")

// Store saves and loads the desired tag groups by logical name.
type Store interface {
	Save(ctx context.Context, name string, groups []models.TagGroup) error
	Load(ctx context.Context, name string) ([]models.TagGroup, error)
}

// Open returns the store selected by cfg.Backend.
func Open(cfg config.SnapshotConfig) (Store, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileStore(cfg.Dir, cfg.Format)
	case "postgres":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("snapshot.dsn is required for the postgres backend")
		}
		return OpenDBStore(cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Backend)
	}
}

func normalize(groups []models.TagGroup) []models.TagGroup {
	for i := range groups {
		groups[i].Normalize()
	}
	return groups
}
