package localstore

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/lifedash/internal/logging"
	"github.com/dmitrijs2005/lifedash/internal/record"
	"github.com/go-playground/validator/v10"
)

// Cache is the typed, fail-soft accessor over a Storage.
type Cache struct {
	storage  Storage
	logger   logging.Logger
	validate *validator.Validate
}

func NewCache(s Storage, l logging.Logger) *Cache {
	if l == nil {
		l = logging.Nop{}
	}
	return &Cache{storage: s, logger: l.With("module", "localstore"), validate: record.Validator()}
}

// Storage exposes the underlying byte store.
func (c *Cache) Storage() Storage {
	return c.storage
}

// ReadCollection loads the collection stored under key. Absent keys, read
// errors and unparsable text all yield an empty collection; individual
// invalid records are dropped.
func ReadCollection[T any](ctx context.Context, c *Cache, key string) record.Collection[T] {
	return ReadCollectionWith[T](ctx, c, key, c.validate)
}

// ReadCollectionWith is ReadCollection checking records with v, for payloads
// that carry rules beyond the shared tags.
func ReadCollectionWith[T any](ctx context.Context, c *Cache, key string, v *validator.Validate) record.Collection[T] {
	if v == nil {
		v = c.validate
	}
	data, err := c.storage.Get(ctx, key)
	if err != nil {
		c.logger.Warn(ctx, "local read failed", "key", key, "err", err)
		return record.NewCollection[T]()
	}
	if len(data) == 0 {
		return record.NewCollection[T]()
	}

	coll, errs := record.Decode[T](v, data)
	for _, err := range errs {
		c.logger.Warn(ctx, "dropping malformed local record", "key", key, "err", err)
	}
	return coll
}

// WriteCollection stores coll under key. Failures are logged and dropped;
// the return value only reports whether the write landed.
func WriteCollection[T any](ctx context.Context, c *Cache, key string, coll record.Collection[T]) bool {
	data, err := record.Encode(coll)
	if err != nil {
		c.logger.Warn(ctx, "local encode failed", "key", key, "err", err)
		return false
	}
	if err := c.storage.Set(ctx, key, data); err != nil {
		c.logger.Warn(ctx, "local write dropped", "key", key, "err", err)
		return false
	}
	return true
}

// ReadValue loads a single JSON value stored under key, returning def when
// the key is absent or unreadable.
func ReadValue[T any](ctx context.Context, c *Cache, key string, def T) T {
	data, err := c.storage.Get(ctx, key)
	if err != nil {
		c.logger.Warn(ctx, "local read failed", "key", key, "err", err)
		return def
	}
	if len(data) == 0 {
		return def
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		c.logger.Warn(ctx, "local value unparsable", "key", key, "err", err)
		return def
	}
	return v
}

// WriteValue stores v as JSON under key with the same best-effort contract
// as WriteCollection.
func WriteValue[T any](ctx context.Context, c *Cache, key string, v T) bool {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn(ctx, "local encode failed", "key", key, "err", err)
		return false
	}
	if err := c.storage.Set(ctx, key, data); err != nil {
		c.logger.Warn(ctx, "local write dropped", "key", key, "err", err)
		return false
	}
	return true
}

// Remove deletes key, best-effort.
func (c *Cache) Remove(ctx context.Context, key string) {
	if err := c.storage.Delete(ctx, key); err != nil {
		c.logger.Warn(ctx, "local delete dropped", "key", key, "err", err)
	}
}

// Has reports whether key holds any data. A failed read counts as absent.
func (c *Cache) Has(ctx context.Context, key string) bool {
	data, err := c.storage.Get(ctx, key)
	return err == nil && len(data) > 0
}
