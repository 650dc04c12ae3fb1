package commands

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/tsonic/express-postprocess/display"
	"github.com/tsonic/express-postprocess/logger"
	"github.com/tsonic/express-postprocess/manifest"
	"github.com/tsonic/express-postprocess/pipeline"
	"github.com/tsonic/express-postprocess/repo"
)

// relative shortens path for display when it lies under root.
func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func reportOutcome(res *pipeline.Result) {
	if res == nil || res.Outcome == nil {
		return
	}

	ov := res.Outcome.Overloads
	if ov.Found {
		display.Printf(logger.OutputPassReport,
			"use() overloads: %d lines from line %d (%d pathless, %d pathful), reordered: %t",
			ov.Lines, ov.Start+1, ov.Pathless, ov.Pathful, ov.Moved)
		for _, l := range res.Outcome.Block {
			display.Printf(logger.OutputBlockDump, "%s", l)
		}
	} else {
		display.Printf(logger.OutputPassReport, "no use() overload block")
	}

	cb := res.Outcome.Callbacks
	if len(cb.Rewritten) > 0 {
		display.Printf(logger.OutputPassReport, "returning Promise<void>: %s", strings.Join(cb.Rewritten, ", "))
	}
	if len(cb.Skipped) > 0 {
		display.Printf(logger.OutputPassReport, "left returning Task: %s", strings.Join(cb.Skipped, ", "))
	}
}

func reportRun(layout repo.Layout, res *pipeline.Result) {
	reportOutcome(res)

	decl := relative(layout.Root, res.Declaration)
	if res.Written {
		display.Success("Updated %s", decl)
	} else {
		display.Printf(logger.OutputFileWrites, "%s already canonical", decl)
	}

	reportSync(layout, res.Manifest)
	display.Printf(logger.OutputTiming, "run %s took %s", res.RunID, res.Duration.Round(time.Millisecond))
}

func reportSync(layout repo.Layout, s *manifest.SyncResult) {
	if s == nil {
		return
	}
	m := relative(layout.Root, s.Manifest)
	if s.InSync {
		display.Printf(logger.OutputFileWrites, "%s: %s already at %s", m, manifest.PackageID, s.Version)
		return
	}
	display.Success("%s: %s %s -> %s", m, manifest.PackageID, s.Previous, s.Version)
}
