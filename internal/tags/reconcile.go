package tags

import (
	"context"

	"github.com/kutbudev/tagsync/internal/log"
	"github.com/kutbudev/tagsync/internal/models"
)

// Result describes a finished reconcile run.
type Result struct {
	Plan    *Plan
	Applied int
}

// Reconciler makes the remote tag groups match a desired state.
type Reconciler struct {
	mutator Mutator
}

func NewReconciler(m Mutator) *Reconciler {
	return &Reconciler{mutator: m}
}

// Reconcile plans against a freshly fetched current state and applies the plan.
// It is not safe to replay against a stale current state.
func (r *Reconciler) Reconcile(ctx context.Context, desired, current []models.TagGroup) (*Result, error) {
	plan := NewPlan(desired, current)
	s := plan.Summary()
	log.Infow("reconciling tag groups",
		"operations", len(plan.Operations),
		"group_creates", s[TargetGroup][ActionCreate],
		"group_deletes", s[TargetGroup][ActionDelete],
		"tag_creates", s[TargetTag][ActionCreate],
		"tag_deletes", s[TargetTag][ActionDelete])

	applied, err := plan.Apply(ctx, r.mutator)
	res := &Result{Plan: plan, Applied: applied}
	if err != nil {
		log.Error("reconcile aborted", err)
		return res, err
	}
	log.Infow("reconcile finished", "applied", applied)
	return res, nil
}
