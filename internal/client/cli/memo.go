package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/lifedash/internal/client/features"
)

func (a *App) memo(ctx context.Context, args []string) error {
	const use = "memo add <title> | memo list | memo trash <id>"
	cmd, rest := sub(args)
	switch cmd {
	case "add":
		if len(rest) == 0 {
			return usage(use)
		}
		content, err := GetMultiline(a.reader, "Memo text", a.out)
		if err != nil {
			return err
		}
		r, err := a.session.Memos.Create(ctx, features.NewMemo(strings.Join(rest, " "), content))
		if err != nil {
			return err
		}
		a.ok("Added memo %s", shortID(r.ID))
		return nil

	case "list":
		t := newTable("Memos", "id", "", "title", "text")
		for _, r := range features.MemoBoard(a.session.Memos.Active()) {
			pin := ""
			if r.Data.Pinned {
				pin = "*"
			}
			t.add(shortID(r.ID), pin, r.Data.Title, firstLine(r.Data.Content, 50))
		}
		a.print(t.render(a.st))
		return nil

	case "trash":
		id, err := idOf(a.session.Memos.Active(), rest, use)
		if err != nil {
			return err
		}
		if err := a.session.Memos.MoveToTrash(ctx, id); err != nil {
			return err
		}
		a.ok("Moved memo %s to trash", shortID(id))
		return nil

	default:
		return usage(use)
	}
}
