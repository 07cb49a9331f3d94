// Package tags fetches, diffs and reconciles tag groups against the remote service.
package tags

import (
	"context"

	"github.com/kutbudev/tagsync/internal/api"
	"github.com/kutbudev/tagsync/internal/log"
	"github.com/kutbudev/tagsync/internal/models"
)

// TagLister returns the flat listTags edge list.
type TagLister interface {
	ListTags(ctx context.Context) ([]api.TagNode, error)
}

// Fetcher loads the current remote state.
type Fetcher struct {
	lister TagLister
}

func NewFetcher(lister TagLister) *Fetcher {
	return &Fetcher{lister: lister}
}

// Fetch returns all tag groups sorted by name, each with its tags sorted by name.
// Tags without a group land in a single ungrouped bucket. With eraseID the ids of
// tags and groups are stripped.
func (f *Fetcher) Fetch(ctx context.Context, eraseID bool) ([]models.TagGroup, error) {
	nodes, err := f.lister.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	groups := Normalize(nodes, eraseID)
	log.Debugw("fetched tag groups", "groups", len(groups), "tags", len(nodes))
	return groups, nil
}

// Normalize groups listTags nodes into sorted tag groups.
func Normalize(nodes []api.TagNode, eraseID bool) []models.TagGroup {
	index := make(map[groupKey]int)
	var groups []models.TagGroup

	for _, n := range nodes {
		g := groupOf(n.TagGroup)
		if eraseID {
			g.ID = ""
		}

		tag := models.Tag{
			ID:          n.ID,
			Name:        n.Name,
			Description: models.Present(n.Description),
			Color:       n.Color,
			Status:      n.Status,
		}
		if eraseID {
			tag.ID = ""
		}

		key := keyOf(&g)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, g)
		}
		groups[i].Tags = append(groups[i].Tags, tag)
	}

	for i := range groups {
		groups[i].SortTags()
	}
	models.SortGroups(groups)
	return groups
}

func groupOf(n *api.TagGroupNode) models.TagGroup {
	if n == nil {
		return models.Ungrouped()
	}
	return models.TagGroup{
		ID:                       n.ID,
		Name:                     n.Name,
		Mode:                     n.Mode,
		ShortName:                models.Present(n.ShortName),
		Description:              models.Present(n.Description),
		RestrictToFactSheetTypes: n.RestrictToFactSheetTypes,
		Kind:                     models.RealGroup,
	}
}
