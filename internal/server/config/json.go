package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/lifedash/internal/flagx"
	"github.com/dmitrijs2005/lifedash/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. KeyValidity
// accepts "720h" or integer nanoseconds.
type JsonConfig struct {
	GRPCAddr    string          `json:"grpc_addr"`
	MetricsAddr *string         `json:"metrics_addr"`
	DatabaseDSN string          `json:"database_dsn"`
	SecretKey   string          `json:"secret_key"`
	KeyValidity *timex.Duration `json:"key_validity"`
	LogLevel    string          `json:"log_level"`
}

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

	if jc.GRPCAddr != "" {
		cfg.GRPCAddr = jc.GRPCAddr
	}
	// an explicit "" turns metrics off
	if jc.MetricsAddr != nil {
		cfg.MetricsAddr = *jc.MetricsAddr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.KeyValidity != nil {
		cfg.KeyValidity = jc.KeyValidity.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
