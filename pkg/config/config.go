// Package config loads mindful settings from .mindful.yaml and MINDFUL_* env.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// DefaultPath is where the journal lives when no config overrides it.
	DefaultPath = "~/.mindful.db"
	// DefaultQuietPeriod is how long an editor must be idle before autosave.
	DefaultQuietPeriod = 2 * time.Second

	CodecPlain  = "plain"
	CodecBcrypt = "bcrypt"
)

// Config is the resolved runtime configuration.
type Config struct {
	Path          string        `json:"path"`
	LockerCodec   string        `json:"lockerCodec"`
	AutosaveQuiet time.Duration `json:"autosaveQuiet"`
	Source        string        `json:"source,omitempty"`
}

// BasePath satisfies store.Config.
func (c *Config) BasePath() string {
	return c.Path
}

// Load walks the usual places looking for a .mindful file and overlays env.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("locker.codec", CodecPlain)
	v.SetDefault("autosave.quiet", DefaultQuietPeriod)
	v.SetConfigName(".mindful") // .yaml is implicit
	v.SetEnvPrefix("MINDFUL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("MINDFUL_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("config: expand path: %w", err)
	}
	codec := strings.ToLower(strings.TrimSpace(v.GetString("locker.codec")))
	switch codec {
	case "", CodecPlain:
		codec = CodecPlain
	case CodecBcrypt:
	default:
		return nil, fmt.Errorf("config: unknown locker.codec %q", codec)
	}
	quiet := v.GetDuration("autosave.quiet")
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Config{
		Path:          path,
		LockerCodec:   codec,
		AutosaveQuiet: quiet,
		Source:        v.ConfigFileUsed(),
	}, nil
}
