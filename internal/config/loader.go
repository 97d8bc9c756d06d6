package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/andrew-torda/pdbstruct/internal/errcode"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix starts the names of environment variables we look at
const EnvPrefix = "PDBSTRUCT"

// Load reads configuration from a YAML file, the environment and the
// defaults. If path is empty a missing file is fine.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Defaults have to be set for AutomaticEnv to know the keys
	d := Defaults()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.destination", d.Log.Destination)
	v.SetDefault("jobs", d.Jobs)
	v.SetDefault("reader.all_alternate_locations", d.Reader.AllAltLocs)
	v.SetDefault("index.path", d.Index.Path)
	v.SetDefault("fetch.site", d.Fetch.Site)
	v.SetDefault("fetch.timeout", d.Fetch.Timeout)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pdbstruct")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(dir + "/pdbstruct")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, ConfigFileError(path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ConfigFileError(v.ConfigFileUsed(), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, ConfigValueError(err)
	}
	return &cfg, nil
}

// BindFlags copies the flags a user gave into cfg. Flags left alone do
// not change anything.
func BindFlags(cmd *cobra.Command, cfg *Config) error {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	if v.IsSet("jobs") {
		cfg.Jobs = v.GetInt("jobs")
	}
	if v.IsSet("all-altlocs") {
		cfg.Reader.AllAltLocs = v.GetBool("all-altlocs")
	}
	if v.IsSet("index") {
		cfg.Index.Path = v.GetString("index")
	}
	if v.IsSet("site") {
		cfg.Fetch.Site = v.GetString("site")
	}
	if v.IsSet("timeout") {
		cfg.Fetch.Timeout = v.GetDuration("timeout")
	}
	if v.IsSet("log-level") {
		cfg.Log.Level = v.GetString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return ConfigValueError(err)
	}
	return nil
}

// YAML is cfg as it would be written to a config file
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func ConfigFileError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConfigFileError,
		Msg:  "Cannot read config file <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot read config: %w", fn.Name(), err),
	}
}

func ConfigValueError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConfigValueError,
		Msg:  "Invalid configuration: %s",
		Vars: []any{err.Error()},
		Err:  fmt.Errorf("from %s: invalid configuration: %w", fn.Name(), err),
	}
}
