package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/lifedash/internal/client/debounce"
	"github.com/dmitrijs2005/lifedash/internal/client/features"
	"github.com/dmitrijs2005/lifedash/internal/timex"
)

func (a *App) journal(ctx context.Context, args []string) error {
	const use = "journal add [date] [mood] | journal list"
	cmd, rest := sub(args)
	switch cmd {
	case "add":
		return a.journalAdd(ctx, rest)
	case "list":
		return a.journalList()
	default:
		return usage(use)
	}
}

// journalAdd collects the entry text line by line. The text typed so far is
// kept as a draft after every pause of DraftDebounce, so an interrupted
// session resumes where it stopped.
func (a *App) journalAdd(ctx context.Context, args []string) error {
	date := a.today()
	mood := ""
	if len(args) > 0 {
		if _, err := timex.ParseDate(args[0]); err != nil {
			return err
		}
		date = args[0]
	}
	if len(args) > 1 {
		mood = args[1]
	}

	prefs := a.session.Prefs
	prefix := ""
	if d := prefs.JournalDraft(ctx); d.Date == date && d.Content != "" {
		prefix = d.Content
		a.print(a.st.Muted.Render("Restored draft:") + "\n" + prefix + "\n")
	} else if cur, ok := features.JournalForDate(a.session.Journal.Snapshot(), date); ok {
		prefix = cur.Data.Content
		if mood == "" {
			mood = cur.Data.Mood
		}
		a.print(a.st.Muted.Render("Appending to the entry of "+date+":") + "\n" + prefix + "\n")
	}

	join := func(text string) string {
		if prefix == "" {
			return text
		}
		if text == "" {
			return prefix
		}
		return prefix + "\n" + text
	}

	draft := debounce.NewSaver(a.config.DraftDebounce, func(text string) {
		prefs.SaveJournalDraft(ctx, features.Draft{Date: date, Content: join(text), SavedAt: a.now()})
	})
	text, err := GetMultilineEach(a.reader, "Journal for "+date, a.out, draft.Edit)
	if err != nil {
		draft.Flush()
		return err
	}
	content := strings.TrimSpace(join(text))
	if content == "" {
		draft.Stop()
		return nil
	}

	if _, err := a.session.WriteJournal(ctx, features.JournalEntry{Date: date, Content: content, Mood: mood}); err != nil {
		draft.Flush()
		return err
	}
	draft.Stop()
	prefs.ClearJournalDraft(ctx)
	a.ok("Saved journal entry for %s", date)
	return nil
}

func (a *App) journalList() error {
	t := newTable("Journal", "date", "mood", "entry")
	for _, r := range features.JournalByDate(a.session.Journal.Snapshot()) {
		t.add(r.Data.Date, r.Data.Mood, firstLine(r.Data.Content, 60))
	}
	a.print(t.render(a.st))
	return nil
}
