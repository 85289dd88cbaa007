package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ziadkadry99/doxynav/internal/config"
	"github.com/ziadkadry99/doxynav/internal/navtree"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `doxynav init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the console logger, honouring --verbose.
func newLogger(cfg *config.Config, stderrOnly bool) *zap.Logger {
	level := cfg.LogLevel
	if verbose {
		level = config.LogDebug
	}
	return config.NewLogger(level, stderrOnly)
}

// readDocument loads a navtreedata.js file. With resolve set, deferred child
// scripts from the same directory are inlined.
func readDocument(path string, resolve bool) (*navtree.Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := navtree.Load(src)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if !resolve {
		return doc, nil
	}
	doc, err = navtree.Resolve(os.DirFS(filepath.Dir(path)), doc)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	return doc, nil
}

// writeOutput writes data to path, creating parent directories. A path of
// "-" writes to stdout.
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// extension returns the file extension used for f.
func extension(f navtree.Format) string {
	if f == navtree.FormatMarkdown {
		return "md"
	}
	return string(f)
}
