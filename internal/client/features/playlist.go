package features

import (
	"cmp"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/dmitrijs2005/lifedash/internal/common"
	"github.com/dmitrijs2005/lifedash/internal/record"
)

const PlaylistName = "playlist"

// PlaylistPolicy is the merge policy of the playlist: the mirror copy is
// authoritative once reachable.
const PlaylistPolicy = record.RemoteWins

type PlaylistEntry struct {
	VideoID  string `json:"videoId" validate:"required,ytid"`
	Title    string `json:"title" validate:"max=200"`
	Order    int    `json:"order" validate:"gte=0"`
	Favorite bool   `json:"favorite"`
}

var videoID = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ParseVideoID extracts the video id from a YouTube link or accepts a bare
// id. Supported forms: watch?v=, youtu.be/, /embed/, /shorts/, /live/.
func ParseVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if videoID.MatchString(raw) {
		return raw, nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("video link %q: %w", raw, common.ErrInvalidRecord)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	host = strings.TrimPrefix(host, "m.")
	var id string
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "music.youtube.com", "youtube-nocookie.com":
		if v := u.Query().Get("v"); v != "" {
			id = v
			break
		}
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) == 2 && slices.Contains([]string{"embed", "shorts", "live", "v"}, parts[0]) {
			id = parts[1]
		}
	}
	if !videoID.MatchString(id) {
		return "", fmt.Errorf("video link %q: %w", raw, common.ErrInvalidRecord)
	}
	return id, nil
}

// WatchURL is the canonical link of a video id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// PlaylistInOrder lists active entries by Order, favorites first on a tie.
func PlaylistInOrder(c record.Collection[PlaylistEntry]) []record.Record[PlaylistEntry] {
	out := c.Active().Records()
	slices.SortStableFunc(out, func(a, b record.Record[PlaylistEntry]) int {
		if n := cmp.Compare(a.Data.Order, b.Data.Order); n != 0 {
			return n
		}
		if a.Data.Favorite != b.Data.Favorite {
			if a.Data.Favorite {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Data.VideoID, b.Data.VideoID)
	})
	return out
}

// NextOrder is one past the highest Order in c.
func NextOrder(c record.Collection[PlaylistEntry]) int {
	next := 0
	for _, r := range c.Records() {
		if r.Data.Order >= next {
			next = r.Data.Order + 1
		}
	}
	return next
}

// HasVideo reports whether id is already in the active playlist.
func HasVideo(c record.Collection[PlaylistEntry], id string) bool {
	for _, r := range c.Active().Records() {
		if r.Data.VideoID == id {
			return true
		}
	}
	return false
}
