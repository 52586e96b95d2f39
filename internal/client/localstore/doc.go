// Package localstore is the Local Cache: a per-device key/value store that
// holds one serialized collection per dashboard feature plus auxiliary keys
// (drafts, favorites, reminder stamps, UI toggles).
//
// # Layers
//
//   - Storage: raw byte-level key/value contract
//   - SQLiteStorage: Storage over a local SQLite file (modernc.org/sqlite)
//   - MemoryStorage: Storage over a map, for tests and throwaway sessions
//   - Cache: typed, fail-soft accessor used by the record store
//
// # Failure policy
//
// The cache is a convenience copy, not the record of truth. Reads that fail
// (missing key, I/O error, unparsable JSON) return an empty collection or the
// caller's default; writes that fail are logged and dropped. Nothing here
// returns an error to the record store.
//
// Typical Usage
//
//	st, _ := localstore.InitDatabase(ctx, "lifedash.db")
//	cache := localstore.NewCache(st, logger)
//	notes := localstore.ReadCollection[Note](ctx, cache, "notes")
//	localstore.WriteCollection(ctx, cache, "notes", notes)
package localstore
