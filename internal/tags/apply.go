package tags

import (
	"context"
	"fmt"

	"github.com/kutbudev/tagsync/internal/log"
	"github.com/kutbudev/tagsync/internal/models"
)

// Mutator issues the remote create/update/delete calls.
type Mutator interface {
	CreateTagGroup(ctx context.Context, g *models.TagGroup) (string, error)
	UpdateTagGroup(ctx context.Context, id string, patches []models.Patch) error
	DeleteTagGroup(ctx context.Context, id string) error
	CreateTag(ctx context.Context, t *models.Tag) (string, error)
	UpdateTag(ctx context.Context, id string, patches []models.Patch) error
	DeleteTag(ctx context.Context, id string) error
}

// ApplyError reports the operation that failed and how many ran before it.
// Operations already applied are not rolled back.
type ApplyError struct {
	Applied int
	Op      Operation
	Err     error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("%s failed after %d applied operations: %v", e.Op, e.Applied, e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

// Apply runs the plan's operations in order and stops at the first failure.
// Ids returned by creates are written back into the plan's desired groups so
// tags created later resolve their owning group.
func (p *Plan) Apply(ctx context.Context, m Mutator) (int, error) {
	for i := range p.Operations {
		op := &p.Operations[i]
		if err := ctx.Err(); err != nil {
			return i, &ApplyError{Applied: i, Op: *op, Err: err}
		}
		if err := applyOne(ctx, m, op); err != nil {
			return i, &ApplyError{Applied: i, Op: *op, Err: err}
		}
		log.Debugw("applied operation", "op", op.String(), "id", op.ID)
	}
	return len(p.Operations), nil
}

func applyOne(ctx context.Context, m Mutator, op *Operation) error {
	switch {
	case op.Target == TargetGroup && op.Action == ActionCreate:
		id, err := m.CreateTagGroup(ctx, op.group)
		if err != nil {
			return err
		}
		op.group.ID = id
		op.ID = id
		return nil

	case op.Target == TargetGroup && op.Action == ActionUpdate:
		return m.UpdateTagGroup(ctx, op.ID, op.Patches)

	case op.Target == TargetGroup && op.Action == ActionDelete:
		return m.DeleteTagGroup(ctx, op.ID)

	case op.Target == TargetTag && op.Action == ActionCreate:
		op.tag.TagGroupID = nil
		if op.group.IsReal() {
			groupID := op.group.ID
			op.tag.TagGroupID = &groupID
		}
		id, err := m.CreateTag(ctx, op.tag)
		if err != nil {
			return err
		}
		op.tag.ID = id
		op.ID = id
		return nil

	case op.Target == TargetTag && op.Action == ActionUpdate:
		return m.UpdateTag(ctx, op.ID, op.Patches)

	case op.Target == TargetTag && op.Action == ActionDelete:
		return m.DeleteTag(ctx, op.ID)
	}
	return fmt.Errorf("unknown operation %s %s", op.Action, op.Target)
}
