package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lifedash/internal/client/features"
)

func (a *App) playlist(ctx context.Context, args []string) error {
	const use = "playlist add <url> [title] | playlist list | playlist sync"
	pl := a.session.Playlist
	cmd, rest := sub(args)
	switch cmd {
	case "add":
		if len(rest) == 0 {
			return usage(use)
		}
		id, err := features.ParseVideoID(rest[0])
		if err != nil {
			return err
		}
		cur := pl.Snapshot()
		if features.HasVideo(cur, id) {
			return fmt.Errorf("video %s is already in the playlist", id)
		}
		r, err := pl.Create(ctx, features.PlaylistEntry{VideoID: id, Title: strings.Join(rest[1:], " "), Order: features.NextOrder(cur)})
		if err != nil {
			return err
		}
		a.ok("Added %s", shortID(r.ID))
		return nil

	case "list":
		t := newTable("Playlist", "#", "title", "link")
		for _, r := range features.PlaylistInOrder(pl.Snapshot()) {
			title := r.Data.Title
			if r.Data.Favorite {
				title = "* " + title
			}
			t.add(fmt.Sprint(r.Data.Order), title, features.WatchURL(r.Data.VideoID))
		}
		a.print(t.render(a.st))
		return nil

	case "sync":
		// the one place a mirror failure is shown to the user
		if err := pl.Sync(ctx, pl.Snapshot()); err != nil {
			return fmt.Errorf("playlist sync failed: %w", err)
		}
		a.ok("Playlist synced")
		return nil

	default:
		return usage(use)
	}
}
