package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tsonic/express-postprocess/config"
	"github.com/tsonic/express-postprocess/display"
	"github.com/tsonic/express-postprocess/errors"
	"github.com/tsonic/express-postprocess/logger"
	"github.com/tsonic/express-postprocess/pipeline"
	"github.com/tsonic/express-postprocess/repo"
)

// Global flags
var (
	verbose    int
	jsonLog    bool
	rootDir    string
	configPath string
)

// Loaded by PersistentPreRunE for the running command.
var (
	cfg      *config.Config
	settings *viper.Viper
)

// RootCmd runs the full post-processing pipeline
var RootCmd = &cobra.Command{
	Use:   "postprocess [major]",
	Short: "Post-process the generated express declarations",
	Long: `postprocess - Post-process the generated express TypeScript declarations

Puts the use() overloads of versions/<major>/index/internal/index.d.ts into
canonical order, rewrites the handler aliases that return Task to return
Promise<void>, and copies the package version from the .NET project into
the bindings manifest. The declaration file is only written when it changes.

The major version defaults to 10.

Examples:
  postprocess                 # Process versions/10
  postprocess 9               # Process versions/9
  postprocess check           # Fail if a run would change anything
  postprocess readme --check  # Fail if the READMEs are stale
  postprocess watch           # Re-run whenever the generator writes`,
	Args:              majorArg,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runPipeline,
}

func init() {
	pf := RootCmd.PersistentFlags()
	pf.CountVarP(&verbose, "verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	pf.BoolVar(&jsonLog, "json-log", false, "Write logs to stderr as JSON")
	pf.StringVar(&rootDir, "root", "", "Repository root (default: enclosing git work tree)")
	pf.StringVar(&configPath, "config", "", "Config file (default: nearest "+config.FileName+")")

	RootCmd.AddCommand(CheckCmd)
	RootCmd.AddCommand(SyncCmd)
	RootCmd.AddCommand(ReadmeCmd)
	RootCmd.AddCommand(WatchCmd)
	RootCmd.AddCommand(ConfigCmd)
	RootCmd.AddCommand(VersionCmd)
}

// flagKeys lists the config keys the global flags override
var flagKeys = []struct{ key, flag string }{
	{"root", "root"},
	{"log.json", "json-log"},
	{"log.verbosity", "verbose"},
}

func setup(cmd *cobra.Command, args []string) error {
	v, err := config.NewViper(configPath)
	if err != nil {
		return err
	}

	pf := cmd.Root().PersistentFlags()
	for _, fk := range flagKeys {
		if err := v.BindPFlag(fk.key, pf.Lookup(fk.flag)); err != nil {
			return errors.Wrapf(err, "failed to bind --%s", fk.flag)
		}
	}

	loaded, err := config.LoadWithViper(v)
	if err != nil {
		return err
	}

	if err := logger.Initialize(loaded.Log.JSON, loaded.Log.Verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	cfg, settings = loaded, v
	if used := v.ConfigFileUsed(); used != "" {
		display.Printf(logger.OutputConfig, "config: %s", used)
	}
	return nil
}

var majorArg = cobra.MatchAll(cobra.MaximumNArgs(1), func(cmd *cobra.Command, args []string) error {
	if len(args) == 1 && !repo.ValidMajor(args[0]) {
		return errors.WithHint(errors.Newf("invalid major version %q", args[0]),
			"the major version is a plain number, e.g. 10")
	}
	return nil
})

// layoutFor resolves the repository layout for the optional major argument.
func layoutFor(args []string) (repo.Layout, error) {
	c := *cfg
	if len(args) == 1 {
		c.Major = args[0]
	}
	if err := c.Validate(); err != nil {
		return repo.Layout{}, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return repo.Layout{}, errors.Wrap(err, "cannot determine working directory")
	}
	return c.ResolveLayout(cwd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	layout, err := layoutFor(args)
	if err != nil {
		return err
	}

	res, err := pipeline.New(layout, nil).Run()
	if err != nil {
		return err
	}
	reportRun(layout, res)
	return nil
}
