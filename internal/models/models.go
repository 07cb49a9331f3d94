package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// UngroupedName is the on-disk name of the bucket holding tags without a tag group.
const UngroupedName = "__OTHER_TAGS__"

// GroupKind distinguishes real tag groups from the ungrouped bucket.
type GroupKind int

const (
	RealGroup GroupKind = iota
	UngroupedBucket
)

func (k GroupKind) String() string {
	if k == UngroupedBucket {
		return "ungrouped"
	}
	return "real"
}

// TagGroup represents a tag group and the tags it owns
type TagGroup struct {
	ID                       string    `json:"id,omitempty" yaml:"id,omitempty"`
	Name                     string    `json:"name" yaml:"name"`
	Mode                     string    `json:"mode,omitempty" yaml:"mode,omitempty"`
	ShortName                *string   `json:"shortName" yaml:"shortName"`
	Description              *string   `json:"description" yaml:"description"`
	RestrictToFactSheetTypes []string  `json:"restrictToFactSheetTypes" yaml:"restrictToFactSheetTypes"`
	Tags                     []Tag     `json:"tags" yaml:"tags"`
	Kind                     GroupKind `json:"-" yaml:"-"`
}

// Tag represents a single tag inside a tag group
type Tag struct {
	ID          string  `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string  `json:"name" yaml:"name"`
	Description *string `json:"description" yaml:"description"`
	Color       string  `json:"color" yaml:"color"`
	Status      string  `json:"status,omitempty" yaml:"status,omitempty"`
	TagGroupID  *string `json:"tagGroupId,omitempty" yaml:"tagGroupId,omitempty"`
}

// Ungrouped returns a fresh ungrouped bucket. Callers get their own copy.
func Ungrouped() TagGroup {
	return TagGroup{Name: UngroupedName, Kind: UngroupedBucket}
}

// IsReal reports whether the group exists as a remote object.
func (g *TagGroup) IsReal() bool {
	return g.Kind == RealGroup
}

// SortTags orders the group's tags by name.
func (g *TagGroup) SortTags() {
	sort.SliceStable(g.Tags, func(i, j int) bool { return g.Tags[i].Name < g.Tags[j].Name })
}

// SortGroups orders groups by name.
func SortGroups(groups []TagGroup) {
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
}

// Normalize drops empty optional strings so presence alone decides patch shape,
// and derives Kind from the encoded name.
func (g *TagGroup) Normalize() {
	g.ShortName = Present(g.ShortName)
	g.Description = Present(g.Description)
	if len(g.RestrictToFactSheetTypes) == 0 {
		g.RestrictToFactSheetTypes = nil
	}
	if len(g.Tags) == 0 {
		g.Tags = nil
	}
	if g.Name == UngroupedName {
		g.Kind = UngroupedBucket
		g.ID = ""
	}
	for i := range g.Tags {
		g.Tags[i].Description = Present(g.Tags[i].Description)
	}
}

// UnmarshalJSON decodes a group and normalizes it.
func (g *TagGroup) UnmarshalJSON(data []byte) error {
	type plain TagGroup
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*g = TagGroup(p)
	g.Normalize()
	return nil
}

// MarshalJSON encodes the ungrouped bucket by its reserved name and never with an id.
func (g TagGroup) MarshalJSON() ([]byte, error) {
	type plain TagGroup
	p := plain(g)
	if g.Kind == UngroupedBucket {
		p.Name = UngroupedName
		p.ID = ""
	}
	return json.Marshal(p)
}

// Present returns nil for a nil or empty string pointer.
func Present(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// Flatten returns every tag of every group, in group order.
func Flatten(groups []TagGroup) []Tag {
	var out []Tag
	for _, g := range groups {
		out = append(out, g.Tags...)
	}
	return out
}

// Validate rejects duplicate group names (per kind) and duplicate tag names within a group.
func Validate(groups []TagGroup) error {
	var problems []string
	seen := make(map[groupKey]bool, len(groups))
	for _, g := range groups {
		k := groupKey{g.Kind, g.Name}
		if seen[k] {
			problems = append(problems, fmt.Sprintf("duplicate tag group %q", g.Name))
		}
		seen[k] = true

		tags := make(map[string]bool, len(g.Tags))
		for _, t := range g.Tags {
			if tags[t.Name] {
				problems = append(problems, fmt.Sprintf("duplicate tag %q in group %q", t.Name, g.Name))
			}
			tags[t.Name] = true
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid tag groups: %s", strings.Join(problems, "; "))
	}
	return nil
}

type groupKey struct {
	kind GroupKind
	name string
}
