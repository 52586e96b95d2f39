package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/flagx"
)

// parseFlags overlays cfg with command-line flags.
//
//	-a string   gRPC bind address (e.g. ":50051")
//	-m string   metrics bind address, "" to disable
//	-d string   PostgreSQL DSN
//	-s string   device key secret
//	-t int      device key validity, hours (0 = no expiry)
//	-l string   log level
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-m", "-d", "-s", "-t", "-l"})

	fs := flag.NewFlagSet("lifedash-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.GRPCAddr, "a", cfg.GRPCAddr, "address and port to run server")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "address to serve /metrics on")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	keyValidity := fs.Int("t", int(cfg.KeyValidity.Hours()), "device key validity (in hours)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if *keyValidity < 0 {
		return fmt.Errorf("key validity must not be negative, got %d", *keyValidity)
	}
	// only an explicit -t replaces a sub-hour value from JSON
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.KeyValidity = time.Duration(*keyValidity) * time.Hour
		}
	})
	return nil
}
