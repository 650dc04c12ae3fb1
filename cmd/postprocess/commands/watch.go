package commands

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tsonic/express-postprocess/display"
	"github.com/tsonic/express-postprocess/logger"
	"github.com/tsonic/express-postprocess/pipeline"
	"github.com/tsonic/express-postprocess/watch"
)

// WatchCmd re-runs the pipeline when the generator output changes
var WatchCmd = &cobra.Command{
	Use:   "watch [major]",
	Short: "Re-run the post-processor whenever its inputs change",
	Long: `Run the pipeline once, then watch the declaration file and the project
descriptor and run it again after every burst of changes. Failures are
reported and watching continues. Stop with Ctrl-C.

The debounce period is watch.debounce_ms in postprocess.toml (default 500).`,
	Args: majorArg,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	layout, err := layoutFor(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(layout, nil)
	run := func() error {
		res, err := p.Run()
		if err != nil {
			display.Error(err)
			return err
		}
		reportRun(layout, res)
		return nil
	}

	// a failing first run is reported; the next change may fix it
	_ = run()

	w, err := watch.New(layout.WatchPaths(), cfg.Debounce(), run, nil)
	if err != nil {
		return err
	}

	rel := make([]string, 0, len(w.Files()))
	for _, f := range w.Files() {
		rel = append(rel, relative(layout.Root, f))
	}
	display.Printf(logger.OutputProgress, "Watching %s", strings.Join(rel, ", "))
	return w.Run(ctx)
}
