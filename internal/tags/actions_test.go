package tags

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kutbudev/tagsync/internal/api"
	"github.com/kutbudev/tagsync/internal/models"
)

func TestBackupStripsIDs(t *testing.T) {
	client := &fakeClient{nodes: sampleNodes()}
	store := newMemoryStore()

	groups, err := NewService(client, store).Backup(context.Background())
	require.NoError(t, err)

	saved := store.docs[SnapshotName]
	assert.Equal(t, groups, saved)
	for _, g := range saved {
		assert.Empty(t, g.ID)
		for _, tag := range g.Tags {
			assert.Empty(t, tag.ID)
		}
	}
	assert.Empty(t, client.calls)
}

func TestRestoreReconcilesTowardsSnapshot(t *testing.T) {
	client := &fakeClient{nodes: []api.TagNode{
		{ID: "t-keep", Name: "High", Color: "red", TagGroup: riskGroup()},
		{ID: "t-gone", Name: "Stray"},
	}}
	store := newMemoryStore()
	store.docs[SnapshotName] = []models.TagGroup{
		{Name: "Risk", Mode: "SINGLE", Tags: []models.Tag{{Name: "High", Color: "orange"}}},
	}

	res, err := NewService(client, store).Restore(context.Background(), RestoreOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"updateTagGroup g-risk", "updateTag t-keep", "deleteTag t-gone"}, client.methods())
	assert.Equal(t, 3, res.Applied)
}

func TestRestoreDryRunIssuesNoMutations(t *testing.T) {
	client := &fakeClient{nodes: sampleNodes()}
	store := newMemoryStore()
	store.docs[SnapshotName] = nil

	res, err := NewService(client, store).Restore(context.Background(), RestoreOptions{DryRun: true})
	require.NoError(t, err)

	assert.Empty(t, client.calls)
	assert.Zero(t, res.Applied)
	s := res.Plan.Summary()
	assert.Equal(t, 5, s[TargetTag][ActionDelete])
	assert.Equal(t, 2, s[TargetGroup][ActionDelete])
}

func TestRestoreRejectsDuplicateNames(t *testing.T) {
	client := &fakeClient{}
	store := newMemoryStore()
	store.docs[SnapshotName] = []models.TagGroup{{Name: "Risk"}, {Name: "Risk"}}

	_, err := NewService(client, store).Restore(context.Background(), RestoreOptions{})
	assert.ErrorContains(t, err, `duplicate tag group "Risk"`)
	assert.Empty(t, client.calls)
}

func TestRestoreMissingSnapshot(t *testing.T) {
	_, err := NewService(&fakeClient{}, newMemoryStore()).Restore(context.Background(), RestoreOptions{})
	assert.ErrorContains(t, err, "load snapshot")
}
