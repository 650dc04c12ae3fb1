package config

import (
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/tsonic/express-postprocess/errors"
	"github.com/tsonic/express-postprocess/repo"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if !repo.ValidMajor(c.Major) {
		return errors.WithHint(errors.Newf("major must be numeric, got %q", c.Major),
			"set major = \"10\" or pass the major version as an argument")
	}

	if c.Descriptor == "" {
		return errors.New("descriptor cannot be empty")
	}

	// manifest is a file name inside versions/<major>
	if c.Manifest == "" {
		return errors.New("manifest cannot be empty")
	}
	if filepath.Base(c.Manifest) != c.Manifest {
		return errors.Newf("manifest must be a file name, got %q", c.Manifest)
	}

	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	// 0 = default debounce, negative = invalid
	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	return nil
}

// keySchema mirrors Config with untyped leaves so the strict key check
// reports unknown keys without tripping over value types.
type keySchema struct {
	Root       any `toml:"root"`
	Major      any `toml:"major"`
	Descriptor any `toml:"descriptor"`
	Manifest   any `toml:"manifest"`
	Log        struct {
		JSON      any `toml:"json"`
		Verbosity any `toml:"verbosity"`
	} `toml:"log"`
	Watch struct {
		DebounceMS any `toml:"debounce_ms"`
	} `toml:"watch"`
}

// CheckKeys returns the keys in a config file that no setting reads.
// Viper silently ignores them, so a misspelt key would otherwise go
// unnoticed.
func CheckKeys(path string) ([]string, error) {
	var schema keySchema
	md, err := toml.DecodeFile(path, &schema)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	sort.Strings(unknown)
	return unknown, nil
}
