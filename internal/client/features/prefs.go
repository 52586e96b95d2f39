package features

import (
	"context"
	"slices"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/client/localstore"
)

// Auxiliary local keys. They never reach the mirror.
const (
	journalDraftKey      = "pref.journal_draft"
	favoritesKey         = "pref.favorites"
	reminderLastShownKey = "pref.reminder_last_shown"
	uiKey                = "pref.ui"
)

// Draft is the unsaved journal text kept between sessions.
type Draft struct {
	Date    string    `json:"date"`
	Content string    `json:"content"`
	SavedAt time.Time `json:"savedAt"`
}

// UIPrefs are presentation toggles.
type UIPrefs struct {
	Theme         string          `json:"theme,omitempty"`
	Compact       bool            `json:"compact"`
	ShowCompleted bool            `json:"showCompleted"`
	Collapsed     map[string]bool `json:"collapsed,omitempty"`
}

// Prefs reads and writes the auxiliary keys with the local cache's
// best-effort contract: reads fall back to defaults, failed writes are
// logged and dropped.
type Prefs struct {
	cache *localstore.Cache
}

func NewPrefs(cache *localstore.Cache) *Prefs {
	return &Prefs{cache: cache}
}

func (p *Prefs) JournalDraft(ctx context.Context) Draft {
	return localstore.ReadValue(ctx, p.cache, journalDraftKey, Draft{})
}

func (p *Prefs) SaveJournalDraft(ctx context.Context, d Draft) {
	localstore.WriteValue(ctx, p.cache, journalDraftKey, d)
}

func (p *Prefs) ClearJournalDraft(ctx context.Context) {
	p.cache.Remove(ctx, journalDraftKey)
}

// Favorites returns the favorite record ids in the order they were added.
func (p *Prefs) Favorites(ctx context.Context) []string {
	return localstore.ReadValue[[]string](ctx, p.cache, favoritesKey, nil)
}

func (p *Prefs) IsFavorite(ctx context.Context, id string) bool {
	return slices.Contains(p.Favorites(ctx), id)
}

// ToggleFavorite flips id and reports whether it is now a favorite.
func (p *Prefs) ToggleFavorite(ctx context.Context, id string) bool {
	favs := p.Favorites(ctx)
	on := true
	if i := slices.Index(favs, id); i >= 0 {
		favs = slices.Delete(favs, i, i+1)
		on = false
	} else {
		favs = append(favs, id)
	}
	localstore.WriteValue(ctx, p.cache, favoritesKey, favs)
	return on
}

func (p *Prefs) ReminderLastShown(ctx context.Context) time.Time {
	return localstore.ReadValue(ctx, p.cache, reminderLastShownKey, time.Time{})
}

func (p *Prefs) MarkReminderShown(ctx context.Context, at time.Time) {
	localstore.WriteValue(ctx, p.cache, reminderLastShownKey, at.UTC())
}

// ReminderDue reports whether at least every has passed since the reminder
// was last shown. A reminder never shown is due.
func (p *Prefs) ReminderDue(ctx context.Context, now time.Time, every time.Duration) bool {
	last := p.ReminderLastShown(ctx)
	return last.IsZero() || now.Sub(last) >= every
}

func (p *Prefs) UI(ctx context.Context) UIPrefs {
	return localstore.ReadValue(ctx, p.cache, uiKey, UIPrefs{ShowCompleted: true})
}

func (p *Prefs) SetUI(ctx context.Context, ui UIPrefs) {
	localstore.WriteValue(ctx, p.cache, uiKey, ui)
}
