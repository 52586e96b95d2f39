package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/flagx"
	"github.com/dmitrijs2005/lifedash/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations are
// timex.Duration so they can be strings like "3s" or integer nanoseconds.
// Absent or zero fields leave the current value alone.
type JsonConfig struct {
	DBPath              string         `json:"db_path"`
	RemoteKind          string         `json:"remote_kind"`
	RemoteURL           string         `json:"remote_url"`
	RemoteKey           string         `json:"remote_key"`
	RemoteAccount       string         `json:"remote_account"`
	S3Bucket            string         `json:"s3_bucket"`
	S3Region            string         `json:"s3_region"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	FetchTimeout        timex.Duration `json:"fetch_timeout"`
	PushTimeout         timex.Duration `json:"push_timeout"`
	NoteDebounce        timex.Duration `json:"note_debounce"`
	DraftDebounce       timex.Duration `json:"draft_debounce"`
	Encrypt             *bool          `json:"encrypt"`
	LogLevel            string         `json:"log_level"`
}

// parseJSON overlays cfg with the file given via -c or -config. No flag, no
// change.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.JsonConfigFlags(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.DBPath, jc.DBPath)
	setString(&cfg.Remote.Kind, jc.RemoteKind)
	setString(&cfg.Remote.URL, jc.RemoteURL)
	setString(&cfg.Remote.Key, jc.RemoteKey)
	setString(&cfg.Remote.Account, jc.RemoteAccount)
	setString(&cfg.Remote.S3Bucket, jc.S3Bucket)
	setString(&cfg.Remote.S3Region, jc.S3Region)
	setString(&cfg.LogLevel, jc.LogLevel)

	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)
	setDuration(&cfg.FetchTimeout, jc.FetchTimeout)
	setDuration(&cfg.PushTimeout, jc.PushTimeout)
	setDuration(&cfg.NoteDebounce, jc.NoteDebounce)
	setDuration(&cfg.DraftDebounce, jc.DraftDebounce)

	if jc.Encrypt != nil {
		cfg.Encrypt = *jc.Encrypt
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration > 0 {
		*dst = v.Duration
	}
}
