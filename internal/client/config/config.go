package config

import (
	"time"

	"github.com/dmitrijs2005/lifedash/internal/client/debounce"
	"github.com/dmitrijs2005/lifedash/internal/client/store"
	"github.com/dmitrijs2005/lifedash/internal/mirror"
)

// MemoryDB as DBPath keeps the cache in memory for the life of the process.
const MemoryDB = "memory"

// Config holds runtime settings for the lifedash CLI.
type Config struct {
	// DBPath is the SQLite file backing the local cache.
	DBPath string
	Remote mirror.Settings

	OnlineCheckInterval time.Duration
	FetchTimeout        time.Duration
	PushTimeout         time.Duration
	NoteDebounce        time.Duration
	DraftDebounce       time.Duration

	// Encrypt seals payloads before they reach the mirror. The passphrase is
	// asked for at startup.
	Encrypt  bool
	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = "lifedash.db"
	c.Remote = mirror.Settings{Kind: mirror.KindGRPC, S3Region: "us-east-1"}
	c.OnlineCheckInterval = 3 * time.Second
	c.FetchTimeout = store.DefaultFetchTimeout
	c.PushTimeout = store.DefaultPushTimeout
	c.NoteDebounce = debounce.NoteWindow
	c.DraftDebounce = debounce.DraftWindow
	c.Encrypt = false
	c.LogLevel = "warn"
}

// LoadConfig applies defaults, then the JSON file named by -c/-config, then
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
