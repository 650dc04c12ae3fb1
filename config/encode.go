package config

import (
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
	"github.com/tsonic/express-postprocess/errors"
	"gopkg.in/yaml.v3"
)

// Formats accepted by Encode.
var Formats = []string{"toml", "yaml", "json"}

// Encode renders the configuration in one of Formats.
func Encode(c *Config, format string) ([]byte, error) {
	switch format {
	case "toml":
		data, err := toml.Marshal(c)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to TOML")
		}
		return data, nil

	case "yaml":
		data, err := yaml.Marshal(c)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to YAML")
		}
		return data, nil

	case "json":
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to JSON")
		}
		return append(data, '\n'), nil

	default:
		return nil, errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
	}
}
