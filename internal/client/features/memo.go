package features

import (
	"cmp"
	"slices"

	"github.com/dmitrijs2005/lifedash/internal/record"
)

const MemoName = "memos"

// Memo is a sticky-note card placed on the memo board.
type Memo struct {
	Title   string `json:"title" validate:"max=200"`
	Content string `json:"content" validate:"max=20000"`
	Color   string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	X       int    `json:"x" validate:"gte=0"`
	Y       int    `json:"y" validate:"gte=0"`
	Width   int    `json:"width" validate:"gte=0"`
	Height  int    `json:"height" validate:"gte=0"`
	Pinned  bool   `json:"pinned"`
}

const (
	DefaultMemoWidth  = 220
	DefaultMemoHeight = 180
	DefaultMemoColor  = "#fff59d"
)

// NewMemo returns a memo with the board defaults applied.
func NewMemo(title, content string) Memo {
	return Memo{
		Title:   title,
		Content: content,
		Color:   DefaultMemoColor,
		Width:   DefaultMemoWidth,
		Height:  DefaultMemoHeight,
	}
}

// MemoBoard orders memos pinned first, then most recently updated.
func MemoBoard(c record.Collection[Memo]) []record.Record[Memo] {
	out := c.Records()
	slices.SortStableFunc(out, func(a, b record.Record[Memo]) int {
		if a.Data.Pinned != b.Data.Pinned {
			if a.Data.Pinned {
				return -1
			}
			return 1
		}
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return out
}

func byTitle[T any](title func(T) string) func(a, b record.Record[T]) int {
	return func(a, b record.Record[T]) int {
		return cmp.Compare(title(a.Data), title(b.Data))
	}
}
