// Package nav maps section ids to scroll positions and tracks scroll state.
package nav

import (
	"sort"

	"portfolio-terminal/internal/content"
)

// Anchor records where a section starts in a rendered layout.
type Anchor struct {
	ID     content.SectionID
	Offset int
}

// Controller resolves section ids against one rendered layout. A new layout
// (resize, theme change, content reload) needs a new Controller.
type Controller struct {
	byID    map[content.SectionID]int
	ordered []Anchor
}

// NewController indexes anchors. When an id repeats, the first anchor wins.
func NewController(anchors []Anchor) Controller {
	c := Controller{byID: make(map[content.SectionID]int, len(anchors))}
	for _, a := range anchors {
		if _, dup := c.byID[a.ID]; dup {
			continue
		}
		c.byID[a.ID] = a.Offset
		c.ordered = append(c.ordered, a)
	}
	sort.SliceStable(c.ordered, func(i, j int) bool { return c.ordered[i].Offset < c.ordered[j].Offset })
	return c
}

// Locate returns the offset that aligns the section's top with the viewport
// top. Unknown ids report false and the caller does nothing.
func (c Controller) Locate(id content.SectionID) (int, bool) {
	off, ok := c.byID[id]
	return off, ok
}

// SectionAt returns the section whose anchor is the last one at or above
// offset, or "" while the viewport is still above the first section.
func (c Controller) SectionAt(offset int) content.SectionID {
	var current content.SectionID
	for _, a := range c.ordered {
		if a.Offset > offset {
			break
		}
		current = a.ID
	}
	return current
}

// Anchors returns the anchors in layout order.
func (c Controller) Anchors() []Anchor {
	out := make([]Anchor, len(c.ordered))
	copy(out, c.ordered)
	return out
}
