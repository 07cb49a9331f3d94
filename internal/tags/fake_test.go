package tags

import (
	"context"
	"fmt"

	"github.com/kutbudev/tagsync/internal/api"
	"github.com/kutbudev/tagsync/internal/models"
)

// call is one recorded mutation, e.g. "createTag High group=g-1".
type call struct {
	Method  string
	Arg     string
	GroupID *string
	Patches []models.Patch
}

// fakeClient records mutations and hands out sequential ids.
type fakeClient struct {
	nodes   []api.TagNode
	listErr error
	calls   []call
	nextID  int
	failOn  string
}

func (f *fakeClient) ListTags(context.Context) ([]api.TagNode, error) {
	return f.nodes, f.listErr
}

func (f *fakeClient) record(c call) error {
	if f.failOn != "" && f.failOn == c.Method+" "+c.Arg {
		return fmt.Errorf("boom")
	}
	f.calls = append(f.calls, c)
	return nil
}

func (f *fakeClient) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeClient) CreateTagGroup(_ context.Context, g *models.TagGroup) (string, error) {
	if err := f.record(call{Method: "createTagGroup", Arg: g.Name}); err != nil {
		return "", err
	}
	return f.newID("g"), nil
}

func (f *fakeClient) UpdateTagGroup(_ context.Context, id string, patches []models.Patch) error {
	return f.record(call{Method: "updateTagGroup", Arg: id, Patches: patches})
}

func (f *fakeClient) DeleteTagGroup(_ context.Context, id string) error {
	return f.record(call{Method: "deleteTagGroup", Arg: id})
}

func (f *fakeClient) CreateTag(_ context.Context, t *models.Tag) (string, error) {
	if err := f.record(call{Method: "createTag", Arg: t.Name, GroupID: t.TagGroupID}); err != nil {
		return "", err
	}
	return f.newID("t"), nil
}

func (f *fakeClient) UpdateTag(_ context.Context, id string, patches []models.Patch) error {
	return f.record(call{Method: "updateTag", Arg: id, Patches: patches})
}

func (f *fakeClient) DeleteTag(_ context.Context, id string) error {
	return f.record(call{Method: "deleteTag", Arg: id})
}

func (f *fakeClient) methods() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Method + " " + c.Arg
	}
	return out
}

type memoryStore struct {
	docs map[string][]models.TagGroup
}

func newMemoryStore() *memoryStore {
	return &memoryStore{docs: map[string][]models.TagGroup{}}
}

func (m *memoryStore) Save(_ context.Context, name string, groups []models.TagGroup) error {
	m.docs[name] = groups
	return nil
}

func (m *memoryStore) Load(_ context.Context, name string) ([]models.TagGroup, error) {
	groups, ok := m.docs[name]
	if !ok {
		return nil, fmt.Errorf("snapshot %q not found", name)
	}
	return groups, nil
}
