package tags

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kutbudev/tagsync/internal/models"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Target string

const (
	TargetGroup Target = "tagGroup"
	TargetTag   Target = "tag"
)

// Operation is one planned remote mutation.
type Operation struct {
	Action    Action
	Target    Target
	Name      string
	GroupName string // owning group of a tag operation
	ID        string // remote id for update and delete
	Patches   []models.Patch

	group *models.TagGroup // group to create, or owning group of a tag create
	tag   *models.Tag      // tag to create
}

func (op Operation) String() string {
	sign := map[Action]string{ActionCreate: "+", ActionUpdate: "~", ActionDelete: "-"}[op.Action]
	name := op.Name
	if op.Target == TargetTag {
		name = op.GroupName + "/" + op.Name
	}
	return fmt.Sprintf("%s %s %s %s", sign, op.Action, op.Target, name)
}

// Plan is the ordered operation log turning current into desired.
type Plan struct {
	Operations []Operation

	desired []models.TagGroup
}

// Summary counts operations per target and action.
type Summary map[Target]map[Action]int

func (p *Plan) Summary() Summary {
	s := Summary{
		TargetGroup: {ActionCreate: 0, ActionUpdate: 0, ActionDelete: 0},
		TargetTag:   {ActionCreate: 0, ActionUpdate: 0, ActionDelete: 0},
	}
	for _, op := range p.Operations {
		s[op.Target][op.Action]++
	}
	return s
}

// Desired returns the desired groups with the ids resolved so far.
func (p *Plan) Desired() []models.TagGroup {
	return p.desired
}

func (p *Plan) String() string {
	var b strings.Builder
	for _, op := range p.Operations {
		b.WriteString(op.String())
		b.WriteByte('\n')
	}
	return b.String()
}

type groupKey struct {
	kind models.GroupKind
	name string
}

func keyOf(g *models.TagGroup) groupKey {
	return groupKey{kind: g.Kind, name: g.Name}
}

// findGroup returns the first group with the same kind and name as needle.
func findGroup(needle *models.TagGroup, haystack []models.TagGroup) *models.TagGroup {
	k := keyOf(needle)
	for i := range haystack {
		if keyOf(&haystack[i]) == k {
			return &haystack[i]
		}
	}
	return nil
}

func findTag(name string, haystack []models.Tag) *models.Tag {
	for i := range haystack {
		if haystack[i].Name == name {
			return &haystack[i]
		}
	}
	return nil
}

// NewPlan computes every operation needed to make current look like desired,
// without calling the remote service. Groups are created before their tags and
// tags are deleted before their group. desired is copied, not modified.
func NewPlan(desired, current []models.TagGroup) *Plan {
	p := &Plan{desired: cloneGroups(desired)}

	for i := range p.desired {
		d := &p.desired[i]
		var currentTags []models.Tag

		if c := findGroup(d, current); c != nil {
			d.ID = c.ID
			if d.IsReal() {
				p.Operations = append(p.Operations, Operation{
					Action:  ActionUpdate,
					Target:  TargetGroup,
					Name:    d.Name,
					ID:      d.ID,
					Patches: GroupPatches(d),
				})
			}
			currentTags = c.Tags
		} else {
			// the ungrouped bucket is never created; its tags still are
			d.ID = ""
			if d.IsReal() {
				p.Operations = append(p.Operations, Operation{
					Action: ActionCreate,
					Target: TargetGroup,
					Name:   d.Name,
					group:  d,
				})
			}
		}

		p.planTags(d, currentTags)
	}

	for i := range current {
		c := &current[i]
		if findGroup(c, p.desired) != nil {
			continue
		}
		for _, t := range c.Tags {
			p.Operations = append(p.Operations, deleteTagOp(c, t))
		}
		if c.IsReal() {
			p.Operations = append(p.Operations, Operation{
				Action: ActionDelete,
				Target: TargetGroup,
				Name:   c.Name,
				ID:     c.ID,
			})
		}
	}

	return p
}

func (p *Plan) planTags(g *models.TagGroup, currentTags []models.Tag) {
	for i := range g.Tags {
		d := &g.Tags[i]
		if c := findTag(d.Name, currentTags); c != nil {
			d.ID = c.ID
			p.Operations = append(p.Operations, Operation{
				Action:    ActionUpdate,
				Target:    TargetTag,
				Name:      d.Name,
				GroupName: g.Name,
				ID:        d.ID,
				Patches:   TagPatches(d),
			})
			continue
		}
		d.ID = ""
		p.Operations = append(p.Operations, Operation{
			Action:    ActionCreate,
			Target:    TargetTag,
			Name:      d.Name,
			GroupName: g.Name,
			group:     g,
			tag:       d,
		})
	}

	for _, c := range currentTags {
		if findTag(c.Name, g.Tags) == nil {
			p.Operations = append(p.Operations, deleteTagOp(g, c))
		}
	}
}

func deleteTagOp(g *models.TagGroup, t models.Tag) Operation {
	return Operation{
		Action:    ActionDelete,
		Target:    TargetTag,
		Name:      t.Name,
		GroupName: g.Name,
		ID:        t.ID,
	}
}

// GroupPatches always replaces mode and restrictToFactSheetTypes, and replaces
// or removes shortName and description depending on presence.
func GroupPatches(g *models.TagGroup) []models.Patch {
	restrict := g.RestrictToFactSheetTypes
	if restrict == nil {
		restrict = []string{}
	}
	encoded, _ := json.Marshal(restrict) // a []string always encodes

	return []models.Patch{
		models.Replace("/mode", g.Mode),
		models.Replace("/restrictToFactSheetTypes", string(encoded)),
		models.ReplaceOrRemove("/shortName", g.ShortName),
		models.ReplaceOrRemove("/description", g.Description),
	}
}

// TagPatches replaces or removes description and always replaces color and status.
func TagPatches(t *models.Tag) []models.Patch {
	return []models.Patch{
		models.ReplaceOrRemove("/description", t.Description),
		models.Replace("/color", t.Color),
		models.Replace("/status", t.Status),
	}
}

func cloneGroups(groups []models.TagGroup) []models.TagGroup {
	out := make([]models.TagGroup, len(groups))
	for i, g := range groups {
		out[i] = g
		out[i].Tags = append([]models.Tag(nil), g.Tags...)
		out[i].RestrictToFactSheetTypes = append([]string(nil), g.RestrictToFactSheetTypes...)
	}
	return out
}
