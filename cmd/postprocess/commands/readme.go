package commands

import (
	"github.com/spf13/cobra"
	"github.com/tsonic/express-postprocess/display"
	"github.com/tsonic/express-postprocess/logger"
	"github.com/tsonic/express-postprocess/readme"
)

var readmeCheck bool

// ReadmeCmd renders README.template.md
var ReadmeCmd = &cobra.Command{
	Use:   "readme [major]",
	Short: "Render README.template.md into the READMEs",
	Long: `Expand the <!-- include: path --> directives of README.template.md and
write the result to README.md and versions/<major>/README.md. Only
changed files are written. With --check nothing is written and the
command fails if either README is stale.`,
	Args: majorArg,
	RunE: runReadme,
}

func init() {
	ReadmeCmd.Flags().BoolVar(&readmeCheck, "check", false, "Fail instead of writing when a README is stale")
}

func runReadme(cmd *cobra.Command, args []string) error {
	layout, err := layoutFor(args)
	if err != nil {
		return err
	}

	targets, err := readme.Sync(layout, readmeCheck)
	if err != nil {
		return err
	}

	if readmeCheck {
		display.Success("READMEs are up to date")
		return nil
	}
	for _, t := range targets {
		if t.Changed {
			display.Success("Rendered %s", relative(layout.Root, t.Path))
		} else {
			display.Printf(logger.OutputFileWrites, "%s unchanged", relative(layout.Root, t.Path))
		}
	}
	return nil
}
