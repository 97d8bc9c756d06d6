// Package config holds the settings of the pdbstruct command and loads
// them with viper.
//
// Precedence (highest to lowest): CLI flags > env vars > config file > defaults
//
// Environment variables use the PDBSTRUCT_ prefix with underscores for
// nesting, for example PDBSTRUCT_LOG_LEVEL=debug or PDBSTRUCT_JOBS=4.
package config

import (
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/andrew-torda/pdbstruct/pdb"
	"github.com/andrew-torda/pdbstruct/pdb/ingest"
)

// Config is everything the command line program can be told
type Config struct {
	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Jobs is the number of files read at the same time
	Jobs int `mapstructure:"jobs" yaml:"jobs"`

	Reader ReaderConfig `mapstructure:"reader" yaml:"reader"`
	Index  IndexConfig  `mapstructure:"index" yaml:"index"`
	Fetch  FetchConfig  `mapstructure:"fetch" yaml:"fetch"`
}

// LogConfig says where slog output goes and how much of it
type LogConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	Destination string `mapstructure:"destination" yaml:"destination"`
}

type ReaderConfig struct {
	// AllAltLocs keeps every alternate location instead of the first
	AllAltLocs bool `mapstructure:"all_alternate_locations" yaml:"all_alternate_locations"`
}

type IndexConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type FetchConfig struct {
	Site    string        `mapstructure:"site" yaml:"site"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// Defaults is always valid
func Defaults() *Config {
	return &Config{
		Log: LogConfig{
			Level:       "info",
			Format:      "text",
			Destination: "stderr",
		},
		Jobs:  runtime.NumCPU(),
		Index: IndexConfig{Path: "pdbstruct.sqlite"},
		Fetch: FetchConfig{Site: "rcsb", Timeout: 30 * time.Second},
	}
}

var (
	levels  = []string{"debug", "info", "warn", "error"}
	formats = []string{"json", "text"}
)

// Validate checks values which came from a file, the environment or flags
func (c *Config) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, not %d", c.Jobs)
	}
	if !slices.Contains(levels, c.Log.Level) {
		return fmt.Errorf("log level %q is not one of %v", c.Log.Level, levels)
	}
	if !slices.Contains(formats, c.Log.Format) {
		return fmt.Errorf("log format %q is not one of %v", c.Log.Format, formats)
	}
	if _, err := pdb.ParseSite(c.Fetch.Site); err != nil {
		return err
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, not %s", c.Fetch.Timeout)
	}
	if c.Index.Path == "" {
		return fmt.Errorf("index path is empty")
	}
	return nil
}

// ReadOptions are the reader settings
func (c *Config) ReadOptions() ingest.Options {
	return ingest.Options{AllAltLocs: c.Reader.AllAltLocs}
}

// Site is the fetch site, already checked by Validate
func (c *Config) Site() pdb.Site {
	s, _ := pdb.ParseSite(c.Fetch.Site)
	return s
}
