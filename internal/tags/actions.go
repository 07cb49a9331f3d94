package tags

import (
	"context"
	"fmt"

	"github.com/kutbudev/tagsync/internal/log"
	"github.com/kutbudev/tagsync/internal/models"
)

// SnapshotName is the logical name tag groups are stored under.
const SnapshotName = "tag-groups"

// SnapshotStore persists the desired state.
type SnapshotStore interface {
	Save(ctx context.Context, name string, groups []models.TagGroup) error
	Load(ctx context.Context, name string) ([]models.TagGroup, error)
}

// Client is the remote side both actions need.
type Client interface {
	TagLister
	Mutator
}

// Service wires the fetcher, reconciler and snapshot store for backup and restore.
type Service struct {
	fetcher    *Fetcher
	reconciler *Reconciler
	store      SnapshotStore
}

func NewService(client Client, store SnapshotStore) *Service {
	return &Service{
		fetcher:    NewFetcher(client),
		reconciler: NewReconciler(client),
		store:      store,
	}
}

// Backup fetches the current state without ids and saves it.
func (s *Service) Backup(ctx context.Context) ([]models.TagGroup, error) {
	groups, err := s.fetcher.Fetch(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("fetch tag groups: %w", err)
	}
	if err := s.store.Save(ctx, SnapshotName, groups); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	log.Infow("backup written", "snapshot", SnapshotName, "groups", len(groups))
	return groups, nil
}

type RestoreOptions struct {
	// DryRun computes the plan without calling any mutation.
	DryRun bool
}

// Restore loads the snapshot and reconciles the remote state towards it.
func (s *Service) Restore(ctx context.Context, opts RestoreOptions) (*Result, error) {
	current, err := s.fetcher.Fetch(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("fetch tag groups: %w", err)
	}

	desired, err := s.store.Load(ctx, SnapshotName)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if err := models.Validate(desired); err != nil {
		return nil, err
	}

	if opts.DryRun {
		return &Result{Plan: NewPlan(desired, current)}, nil
	}
	return s.reconciler.Reconcile(ctx, desired, current)
}
