// Package store implements the local-first record store: one Store per
// feature collection, reading and writing a local cache synchronously and a
// remote mirror in the background.
//
// Load merges local and remote copies by id under the store's merge policy
// and writes the result back to the cache. Save writes the cache before it
// returns and pushes changes to the mirror without waiting. Remote failures
// are logged and never surface, except through Sync.
//
// Stores with trash enabled keep soft-deleted records under "<name>.trash"
// and expose a small state machine: MoveToTrash, Restore, Purge, EmptyTrash.
package store
