package commands

import (
	"github.com/spf13/cobra"
	"github.com/tsonic/express-postprocess/display"
	"github.com/tsonic/express-postprocess/manifest"
)

// SyncCmd runs only the manifest version sync
var SyncCmd = &cobra.Command{
	Use:   "sync [major]",
	Short: "Copy the project version into the bindings manifest",
	Long: `Read <Version> from the .NET project descriptor and write it to the
` + manifest.PackageID + ` entry of dotnet.packageReferences in
versions/<major>/tsonic.bindings.json. The manifest is always rewritten.`,
	Args: majorArg,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	layout, err := layoutFor(args)
	if err != nil {
		return err
	}

	res, err := manifest.Sync(layout.DescriptorPath(), layout.ManifestPath())
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		display.Warning("%s", w)
	}
	reportSync(layout, res)
	return nil
}
