// Package display prints user-facing CLI output.
//
// Command results go to the command's stdout. Status lines go through pterm
// and are gated by the logger's output categories, so -v controls how
// chatty a run is.
package display

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tsonic/express-postprocess/errors"
	"github.com/tsonic/express-postprocess/logger"
)

// ShouldOutputJSON reports whether the command's --json flag is set.
func ShouldOutputJSON(cmd *cobra.Command) bool {
	// Handle nil command gracefully
	if cmd == nil {
		return false
	}
	if f := cmd.Flags().Lookup("json"); f != nil {
		on, _ := cmd.Flags().GetBool("json")
		return on
	}
	return false
}

// OutputJSON writes v as indented JSON followed by a newline.
func OutputJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// Success reports a completed change.
func Success(format string, args ...interface{}) {
	if logger.ShouldOutput(logger.Verbosity, logger.OutputUserStatus) {
		pterm.Success.Printfln(format, args...)
	}
}

// Warning reports a non-fatal problem.
func Warning(format string, args ...interface{}) {
	if logger.ShouldOutput(logger.Verbosity, logger.OutputUserStatus) {
		pterm.Warning.Printfln(format, args...)
	}
}

// Printf prints a status line in category when the current verbosity
// allows it.
func Printf(category logger.OutputCategory, format string, args ...interface{}) {
	if !logger.ShouldOutput(logger.Verbosity, category) {
		return
	}
	printerFor(category).Printfln(format, args...)
}

// detailPrinter is pterm's debug style without its own debug-mode gate.
var detailPrinter = pterm.Debug.WithDebugger(false)

func printerFor(category logger.OutputCategory) *pterm.PrefixPrinter {
	switch category {
	case logger.OutputErrors:
		return &pterm.Error
	case logger.OutputProgress, logger.OutputFileWrites:
		return &pterm.Info
	case logger.OutputPassReport, logger.OutputConfig, logger.OutputTiming, logger.OutputBlockDump:
		return detailPrinter
	default:
		return &pterm.Info
	}
}

// Error prints a failure with its details and hints.
func Error(err error) {
	if err == nil || !logger.ShouldOutput(logger.Verbosity, logger.OutputErrors) {
		return
	}
	pterm.Error.Println(errors.Report(err))
}
