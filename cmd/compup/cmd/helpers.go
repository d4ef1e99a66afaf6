package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/seralvarez/compup/internal/config"
	"github.com/seralvarez/compup/internal/engine"
	"github.com/seralvarez/compup/internal/fetch"
	"github.com/seralvarez/compup/internal/source"
)

// Network timeouts: metadata queries are short, file downloads longer.
const (
	metadataTimeout = 30 * time.Second
	downloadTimeout = 60 * time.Second
)

// loadConfig reads the component configuration. A missing or broken
// config is not fatal: the run proceeds with an empty component set so
// every mode trivially reports nothing to process.
func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		errorf("loading config %s: %v", configPath, err)
		return &config.Config{Components: map[string]config.Component{}}
	}
	return cfg
}

// componentRoot returns the directory component directories live
// under: the directory containing the config file, matching where the
// original layout kept them.
func componentRoot() (string, error) {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolving config path: %w", err)
	}
	return filepath.Dir(abs), nil
}

// newEngine wires the resolver, fetcher and store together.
func newEngine(cfg *config.Config) (*engine.Engine, error) {
	root, err := componentRoot()
	if err != nil {
		return nil, err
	}

	resolver := &source.Resolver{
		Client: &http.Client{Timeout: metadataTimeout},
	}
	fetcher := &fetch.Fetcher{
		Client: &http.Client{Timeout: downloadTimeout},
	}

	return engine.New(cfg, resolver, fetcher, root, newLogger()), nil
}

// newLogger builds the engine's logger: text handler on stderr, level
// driven by the quiet/verbose flags.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
