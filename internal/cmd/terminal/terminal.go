// Package terminal parses terminal command flags and launches the service.
package terminal

import (
	"context"
	"flag"
	"fmt"

	entrypoint "github.com/miragecorp/mirageos/internal/platform/cmd"
	server "github.com/miragecorp/mirageos/internal/services/terminal/app"
)

// Config holds terminal command configuration.
type Config struct {
	HTTPAddr string `env:"MIRAGEOS_TERMINAL_HTTP_ADDR" envDefault:":8080"`
	DBPath   string `env:"MIRAGEOS_DB_PATH"`
	ChatSeed int64  `env:"MIRAGEOS_CHAT_SEED"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "terminal HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "sqlite transcript path, blank disables persistence")
	fs.Int64Var(&cfg.ChatSeed, "chat-seed", cfg.ChatSeed, "chat responder seed, 0 picks a random one")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the terminal HTTP/WebSocket service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceTerminal, func(context.Context) error {
		if err := server.Run(ctx, server.Config{
			HTTPAddr: cfg.HTTPAddr,
			DBPath:   cfg.DBPath,
			ChatSeed: cfg.ChatSeed,
		}); err != nil {
			return fmt.Errorf("serve terminal: %w", err)
		}
		return nil
	})
}
