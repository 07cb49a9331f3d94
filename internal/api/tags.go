package api

import (
	"context"
	"fmt"

	"github.com/kutbudev/tagsync/internal/models"
)

// TagGroupNode is the tag group embedded in a listTags node.
type TagGroupNode struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	ShortName                *string  `json:"shortName"`
	Description              *string  `json:"description"`
	Mode                     string   `json:"mode"`
	RestrictToFactSheetTypes []string `json:"restrictToFactSheetTypes"`
}

// TagNode is one node of the listTags edge list. TagGroup is nil for ungrouped tags.
type TagNode struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Color       string        `json:"color"`
	Status      string        `json:"status"`
	TagGroup    *TagGroupNode `json:"tagGroup"`
}

type listTagsData struct {
	ListTags struct {
		Edges []struct {
			Node TagNode `json:"node"`
		} `json:"edges"`
	} `json:"listTags"`
}

type idPayload struct {
	ID string `json:"id"`
}

// ListTags returns every tag with its embedded group, as one edge list.
func (c *Client) ListTags(ctx context.Context) ([]TagNode, error) {
	var data listTagsData
	if err := c.Exec(ctx, listTagsQuery, nil, &data); err != nil {
		return nil, fmt.Errorf("listTags: %w", err)
	}

	nodes := make([]TagNode, 0, len(data.ListTags.Edges))
	for _, e := range data.ListTags.Edges {
		nodes = append(nodes, e.Node)
	}
	return nodes, nil
}

// CreateTagGroup creates g and returns the new id.
func (c *Client) CreateTagGroup(ctx context.Context, g *models.TagGroup) (string, error) {
	restrict := g.RestrictToFactSheetTypes
	if restrict == nil {
		restrict = []string{}
	}
	vars := map[string]any{
		"name":                     g.Name,
		"mode":                     g.Mode,
		"restrictToFactSheetTypes": restrict,
		"shortName":                models.Present(g.ShortName),
		"description":              models.Present(g.Description),
	}

	var data struct {
		CreateTagGroup idPayload `json:"createTagGroup"`
	}
	if err := c.Exec(ctx, createTagGroupMutation, vars, &data); err != nil {
		return "", fmt.Errorf("createTagGroup %q: %w", g.Name, err)
	}
	return data.CreateTagGroup.ID, nil
}

func (c *Client) UpdateTagGroup(ctx context.Context, id string, patches []models.Patch) error {
	vars := map[string]any{"id": id, "patches": patches}
	if err := c.Exec(ctx, updateTagGroupMutation, vars, nil); err != nil {
		return fmt.Errorf("updateTagGroup %s: %w", id, err)
	}
	return nil
}

func (c *Client) DeleteTagGroup(ctx context.Context, id string) error {
	if err := c.Exec(ctx, deleteTagGroupMutation, map[string]any{"id": id}, nil); err != nil {
		return fmt.Errorf("deleteTagGroup %s: %w", id, err)
	}
	return nil
}

// CreateTag creates t under t.TagGroupID (nil for an ungrouped tag) and returns the new id.
func (c *Client) CreateTag(ctx context.Context, t *models.Tag) (string, error) {
	vars := map[string]any{
		"name":        t.Name,
		"description": models.Present(t.Description),
		"color":       t.Color,
		"tagGroupId":  t.TagGroupID,
	}

	var data struct {
		CreateTag idPayload `json:"createTag"`
	}
	if err := c.Exec(ctx, createTagMutation, vars, &data); err != nil {
		return "", fmt.Errorf("createTag %q: %w", t.Name, err)
	}
	return data.CreateTag.ID, nil
}

func (c *Client) UpdateTag(ctx context.Context, id string, patches []models.Patch) error {
	vars := map[string]any{"id": id, "patches": patches}
	if err := c.Exec(ctx, updateTagMutation, vars, nil); err != nil {
		return fmt.Errorf("updateTag %s: %w", id, err)
	}
	return nil
}

func (c *Client) DeleteTag(ctx context.Context, id string) error {
	if err := c.Exec(ctx, deleteTagMutation, map[string]any{"id": id}, nil); err != nil {
		return fmt.Errorf("deleteTag %s: %w", id, err)
	}
	return nil
}
