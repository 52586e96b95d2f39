package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/flagx"
)

var knownFlags = []string{
	"-d", "-k", "-a", "-t", "-account", "-bucket", "-region",
	"-i", "-fetch-timeout", "-push-timeout", "-E", "-l",
}

// parseFlags overlays cfg with command-line flags. Only the flags listed in
// knownFlags are looked at, so other components can share args.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("lifedash", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path to the local cache database")
	fs.StringVar(&cfg.Remote.Kind, "k", cfg.Remote.Kind, "mirror kind: grpc, postgres or s3")
	fs.StringVar(&cfg.Remote.URL, "a", cfg.Remote.URL, "mirror address (host:port, DSN or endpoint URL)")
	fs.StringVar(&cfg.Remote.Key, "t", cfg.Remote.Key, "mirror access key")
	fs.StringVar(&cfg.Remote.Account, "account", cfg.Remote.Account, "mirror account")
	fs.StringVar(&cfg.Remote.S3Bucket, "bucket", cfg.Remote.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.Remote.S3Region, "region", cfg.Remote.S3Region, "S3 region")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.DurationVar(&cfg.FetchTimeout, "fetch-timeout", cfg.FetchTimeout, "mirror fetch timeout")
	fs.DurationVar(&cfg.PushTimeout, "push-timeout", cfg.PushTimeout, "mirror push timeout")
	fs.BoolVar(&cfg.Encrypt, "E", cfg.Encrypt, "seal payloads sent to the mirror")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if *onlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %d", *onlineCheckInterval)
	}
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	return nil
}
