package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errUnknownCommand = errors.New("unknown command")

// commander executes one REPL command. The real App satisfies it; tests
// provide a stub.
type commander interface {
	Exec(ctx context.Context, cmd string, args []string) error
}

const helpText = `Commands:
  journal add [date] [mood]     write the entry of a day (default today)
  journal list
  memo add <title>              memo list | memo trash <id>
  note add <title>              note edit <id> | note list [tag]
  note trash|restore|purge <id> note trashlist | note empty
  routine list                  routine done <id> [date]
  sleep add <date> <bed> <wake> <quality 1-5>
  sleep list
  slot add <weekday> <start> <end> <subject>
  slot list
  event add <start> <end> <title>
  event list <from> <to>
  playlist add <url> [title]    playlist list | playlist sync
  reload                        reload every collection
  status                        mirror mode and record counts
  help | exit`

// runREPL reads commands from reader until EOF or "exit"/"quit" and
// dispatches them to c. Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, c commander, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "lifedash %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(w, helpText)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			err := c.Exec(ctx, cmd, args)
			switch {
			case errors.Is(err, errUnknownCommand):
				fmt.Fprintln(w, "Unknown command:", cmd)
			case err != nil:
				fmt.Fprintln(w, "Error:", err)
			}
		}
		if ctx.Err() != nil {
			return
		}
	}
}
