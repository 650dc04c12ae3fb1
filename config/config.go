// Package config loads postprocess settings from defaults, postprocess.toml
// and POSTPROCESS_* environment variables, in increasing precedence.
package config

import (
	"path/filepath"
	"time"

	"github.com/tsonic/express-postprocess/repo"
	"github.com/tsonic/express-postprocess/watch"
)

// Config holds every configurable setting.
type Config struct {
	Root       string      `mapstructure:"root" toml:"root" yaml:"root" json:"root"` // empty = detect from the working directory
	Major      string      `mapstructure:"major" toml:"major" yaml:"major" json:"major"`
	Descriptor string      `mapstructure:"descriptor" toml:"descriptor" yaml:"descriptor" json:"descriptor"`
	Manifest   string      `mapstructure:"manifest" toml:"manifest" yaml:"manifest" json:"manifest"`
	Log        LogConfig   `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
	Watch      WatchConfig `mapstructure:"watch" toml:"watch" yaml:"watch" json:"watch"`
}

// LogConfig controls the global logger.
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json" yaml:"json" json:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity" yaml:"verbosity" json:"verbosity"` // same scale as -v
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" yaml:"debounce_ms" json:"debounce_ms"` // 0 = default
}

// Debounce returns the watch debounce period.
func (c *Config) Debounce() time.Duration {
	if c.Watch.DebounceMS <= 0 {
		return watch.DefaultDebounce
	}
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// ResolveLayout builds the repository layout. An empty Root is detected
// from cwd; a relative Root is taken relative to cwd.
func (c *Config) ResolveLayout(cwd string) (repo.Layout, error) {
	root := c.Root
	if root == "" {
		detected, err := repo.DetectRoot(cwd)
		if err != nil {
			return repo.Layout{}, err
		}
		root = detected
	} else if !filepath.IsAbs(root) {
		root = filepath.Join(cwd, root)
	}
	return repo.Layout{
		Root:       root,
		Major:      c.Major,
		Descriptor: c.Descriptor,
		Manifest:   c.Manifest,
	}, nil
}
