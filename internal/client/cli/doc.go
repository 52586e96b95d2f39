// Package cli is the interactive lifedash client.
//
// NewApp opens the local cache, connects the configured mirror and builds a
// features.Session; App.Run loads every collection, starts a watcher that
// pings the mirror and flips between online and offline mode, then blocks
// in a read-eval-print loop until the user exits.
//
// Every command works against the local cache first. Mirror writes happen in
// the background and their failures are only logged, except for
// "playlist sync", which reports them.
package cli
