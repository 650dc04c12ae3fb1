package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"github.com/tsonic/express-postprocess/errors"
)

const (
	// FileName is the project config file searched for from the working
	// directory upwards.
	FileName = "postprocess.toml"
	// EnvPrefix prefixes environment overrides, e.g. POSTPROCESS_MAJOR or
	// POSTPROCESS_WATCH_DEBOUNCE_MS.
	EnvPrefix = "POSTPROCESS"
)

// NewViper returns a viper instance with defaults, the config file and the
// environment bound. An empty configPath searches upward from the working
// directory; a missing project file is not an error.
func NewViper(configPath string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if configPath == "" {
		cwd, err := os.Getwd()
		if err == nil {
			configPath = FindProjectConfig(cwd)
		}
	}
	if configPath == "" {
		return v, nil
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}
	return v, nil
}

// Load reads the configuration from every source.
func Load(configPath string) (*Config, error) {
	v, err := NewViper(configPath)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path, ignoring the
// environment.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}
	return &config, nil
}

// FindProjectConfig walks up from start looking for FileName. It returns
// the first path found, or "".
func FindProjectConfig(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// EnvOverrides lists the POSTPROCESS_* variables currently set, sorted.
func EnvOverrides() []string {
	var out []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, EnvPrefix+"_") {
			name, _, _ := strings.Cut(kv, "=")
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
