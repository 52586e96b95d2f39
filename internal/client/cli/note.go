package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lifedash/internal/client/debounce"
	"github.com/dmitrijs2005/lifedash/internal/client/features"
	"github.com/dmitrijs2005/lifedash/internal/common"
	"github.com/dmitrijs2005/lifedash/internal/record"
)

func (a *App) note(ctx context.Context, args []string) error {
	const use = "note add <title> | note edit <id> | note list [tag] | note trash|restore|purge <id> | note trashlist | note empty"
	notes := a.session.Notes
	cmd, rest := sub(args)
	switch cmd {
	case "add":
		if len(rest) == 0 {
			return usage(use)
		}
		tags, err := GetSimpleText(a.reader, "Tags (comma separated, optional)", a.out)
		if err != nil {
			return err
		}
		content, err := GetMultiline(a.reader, "Note text", a.out)
		if err != nil {
			return err
		}
		r, err := notes.Create(ctx, features.Note{Title: strings.Join(rest, " "), Content: content, Tags: features.ParseTags(tags)})
		if err != nil {
			return err
		}
		a.ok("Added note %s", shortID(r.ID))
		return nil

	case "edit":
		id, err := idOf(notes.Active(), rest, use)
		if err != nil {
			return err
		}
		return a.noteEdit(ctx, id)

	case "list":
		tag := ""
		if len(rest) > 0 {
			tag = rest[0]
		}
		a.printNotes("Notes", features.NotesTagged(notes.Active(), tag))
		return nil

	case "trashlist":
		a.printNotes("Trash", features.NotesTagged(notes.Trash(), ""))
		return nil

	case "trash", "restore", "purge":
		view := notes.Active()
		if cmd != "trash" {
			view = notes.Trash()
		}
		id, err := idOf(view, rest, use)
		if err != nil {
			return err
		}
		switch cmd {
		case "trash":
			err = notes.MoveToTrash(ctx, id)
		case "restore":
			err = notes.Restore(ctx, id)
		default:
			err = notes.Purge(ctx, id)
		}
		if err != nil {
			return err
		}
		a.ok("Note %s: %s done", shortID(id), cmd)
		return nil

	case "empty":
		n, err := notes.EmptyTrash(ctx)
		if err != nil {
			return err
		}
		a.ok("Purged %d note(s)", n)
		return nil

	default:
		return usage(use)
	}
}

// noteEdit replaces the content of note id. Every pause of NoteDebounce
// while typing saves the text so far.
func (a *App) noteEdit(ctx context.Context, id string) error {
	cur, ok := a.session.Notes.Get(id)
	if !ok || cur.Trashed() {
		return fmt.Errorf("note %s: %w", id, common.ErrNotFound)
	}
	a.print(a.st.Muted.Render("Current text:") + "\n" + cur.Data.Content + "\n")

	var saveErr error
	saver := debounce.NewSaver(a.config.NoteDebounce, func(text string) {
		if _, err := a.session.Notes.Update(ctx, id, func(n *features.Note) { n.Content = text }); err != nil {
			saveErr = err
		}
	})
	text, err := GetMultilineEach(a.reader, "New text for "+cur.Data.Title, a.out, saver.Edit)
	if err != nil {
		saver.Stop()
		return err
	}
	if text == "" {
		saver.Stop()
		return nil
	}
	saver.Flush()
	saver.Stop()
	if saveErr != nil {
		return saveErr
	}
	a.ok("Saved note %s", shortID(id))
	return nil
}

func (a *App) printNotes(title string, notes []record.Record[features.Note]) {
	t := newTable(title, "id", "title", "tags", "text")
	for _, r := range notes {
		t.add(shortID(r.ID), r.Data.Title, strings.Join(r.Data.Tags, ","), firstLine(r.Data.Content, 40))
	}
	a.print(t.render(a.st))
}
