package config

import (
	"github.com/spf13/viper"
	"github.com/tsonic/express-postprocess/repo"
	"github.com/tsonic/express-postprocess/watch"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("root", "")
	v.SetDefault("major", repo.DefaultMajor)
	v.SetDefault("descriptor", repo.DefaultDescriptor)
	v.SetDefault("manifest", repo.DefaultManifest)

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)

	v.SetDefault("watch.debounce_ms", int(watch.DefaultDebounce.Milliseconds()))
}
