package features

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/lifedash/internal/record"
)

const NoteName = "notes"

// Note is a rich-text note. Content holds HTML produced by the editor.
type Note struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Content string   `json:"content" validate:"max=200000"`
	Tags    []string `json:"tags,omitempty" validate:"max=32,dive,required,max=40"`
}

// NotesTagged lists records carrying tag, case-insensitively, sorted by
// title. An empty tag matches every note.
func NotesTagged(c record.Collection[Note], tag string) []record.Record[Note] {
	out := c.Filter(func(r record.Record[Note]) bool {
		if tag == "" {
			return true
		}
		return slices.ContainsFunc(r.Data.Tags, func(t string) bool {
			return strings.EqualFold(t, tag)
		})
	}).Records()
	slices.SortStableFunc(out, byTitle(func(n Note) string { return strings.ToLower(n.Title) }))
	return out
}

// ParseTags splits a comma separated list, trimming blanks and duplicates.
func ParseTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
