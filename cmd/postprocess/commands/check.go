package commands

import (
	"github.com/spf13/cobra"
	"github.com/tsonic/express-postprocess/display"
	"github.com/tsonic/express-postprocess/pipeline"
)

// CheckCmd verifies the generated files without writing
var CheckCmd = &cobra.Command{
	Use:   "check [major]",
	Short: "Fail if running the post-processor would change anything",
	Long: `Run the declaration passes in memory and compare the manifest version with
the project descriptor. Nothing is written. Exits non-zero and names the
stale files when a run would change them; structural errors in the
declaration file fail the same way they fail a run.`,
	Args: majorArg,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	layout, err := layoutFor(args)
	if err != nil {
		return err
	}

	res, err := pipeline.New(layout, nil).Check()
	reportOutcome(res)
	if err != nil {
		return err
	}

	display.Success("%s and %s are up to date",
		relative(layout.Root, res.Declaration), relative(layout.Root, res.Manifest.Manifest))
	return nil
}
