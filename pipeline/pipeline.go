// Package pipeline runs the declaration passes and the version sync for one
// major version of the express bindings.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tsonic/express-postprocess/dts"
	"github.com/tsonic/express-postprocess/dts/callback"
	"github.com/tsonic/express-postprocess/dts/overload"
	"github.com/tsonic/express-postprocess/errors"
	"github.com/tsonic/express-postprocess/logger"
	"github.com/tsonic/express-postprocess/manifest"
	"github.com/tsonic/express-postprocess/repo"
	"go.uber.org/zap"
)

// Outcome is the result of the in-memory declaration passes.
type Outcome struct {
	Overloads *overload.Report
	Callbacks *callback.Report
	Block     []string // the use() block as emitted, empty when absent
	Changed   bool     // the document differs from what was read
}

// Process reorders the use() overloads and then rewrites the callback
// aliases. On error the document may be partially edited and must not be
// saved.
func Process(doc *dts.Document) (*Outcome, error) {
	ov, err := overload.Reorder(doc)
	if err != nil {
		return nil, err
	}
	cb, err := callback.Rewrite(doc)
	if err != nil {
		return nil, err
	}
	out := &Outcome{Overloads: ov, Callbacks: cb, Changed: doc.Changed()}
	if ov.Found {
		out.Block = doc.Lines()[ov.Start : ov.Start+ov.Lines]
	}
	return out, nil
}

// Result describes one Run or Check.
type Result struct {
	RunID       string
	Declaration string
	Outcome     *Outcome
	Written     bool // the declaration file was rewritten
	Manifest    *manifest.SyncResult
	Duration    time.Duration

	started time.Time
}

// Pipeline binds the passes to a repository layout.
type Pipeline struct {
	layout repo.Layout
	log    *zap.SugaredLogger
}

// New creates a pipeline. A nil log uses the global component logger.
func New(layout repo.Layout, log *zap.SugaredLogger) *Pipeline {
	if log == nil {
		log = logger.ComponentLogger("pipeline")
	}
	return &Pipeline{layout: layout, log: log}
}

// Layout returns the paths the pipeline operates on.
func (p *Pipeline) Layout() repo.Layout { return p.layout }

// Run processes the declaration file, saves it if it changed, and then
// syncs the manifest version. Any failure stops the run where it happened.
func (p *Pipeline) Run() (*Result, error) {
	res, doc, log, err := p.process()
	if err != nil {
		return nil, err
	}

	written, err := doc.Save()
	if err != nil {
		return nil, err
	}
	res.Written = written
	if written {
		log.Infow("declaration file updated", logger.FieldFile, res.Declaration)
	} else {
		log.Debugw("declaration file already canonical", logger.FieldFile, res.Declaration)
	}

	sync, err := manifest.Sync(p.layout.DescriptorPath(), p.layout.ManifestPath())
	if err != nil {
		return nil, err
	}
	res.Manifest = sync
	p.logSync(log, sync)

	res.Duration = time.Since(res.started)
	log.Debugw("run complete", logger.FieldDurationMS, res.Duration.Milliseconds())
	return res, nil
}

// Check processes the declaration file and compares the manifest version
// without writing anything. It returns ErrOutOfDate naming the stale files
// when a Run would change them.
func (p *Pipeline) Check() (*Result, error) {
	res, _, log, err := p.process()
	if err != nil {
		return nil, err
	}

	sync, err := manifest.Check(p.layout.DescriptorPath(), p.layout.ManifestPath())
	if err != nil {
		return nil, err
	}
	res.Manifest = sync
	res.Duration = time.Since(res.started)

	var stale []string
	if res.Outcome.Changed {
		stale = append(stale, res.Declaration)
	}
	if !sync.InSync {
		log.Debugw("manifest version drift",
			logger.FieldPackage, manifest.PackageID,
			logger.FieldVersion, sync.Version,
			logger.FieldPrevious, sync.Previous)
		stale = append(stale, sync.Manifest)
	}
	if len(stale) > 0 {
		return res, errors.NewOutOfDate(fmt.Sprintf("Run: postprocess %s", p.layout.Major), stale...)
	}
	return res, nil
}

// process loads and transforms the declaration file in memory.
func (p *Pipeline) process() (*Result, *dts.Document, *zap.SugaredLogger, error) {
	if err := p.layout.Validate(); err != nil {
		return nil, nil, nil, err
	}

	res := &Result{
		RunID:       uuid.New().String(),
		Declaration: p.layout.DeclarationPath(),
		started:     time.Now(),
	}
	log := logger.ChildLogger(p.log, logger.FieldRunID, res.RunID, logger.FieldMajor, p.layout.Major)

	doc, err := dts.Load(res.Declaration)
	if err != nil {
		return nil, nil, nil, err
	}

	out, err := Process(doc)
	if err != nil {
		log.Errorw("declaration pass failed", logger.FieldFile, res.Declaration, logger.FieldError, err)
		return nil, nil, nil, err
	}
	res.Outcome = out

	ov := out.Overloads
	log.Debugw("use() overloads",
		logger.FieldPass, "overload",
		"found", ov.Found,
		logger.FieldLine, ov.Start,
		logger.FieldCount, ov.Lines,
		"moved", ov.Moved)
	log.Debugw("callback aliases",
		logger.FieldPass, "callback",
		"rewritten", out.Callbacks.Rewritten,
		"skipped", out.Callbacks.Skipped)

	return res, doc, log, nil
}

func (p *Pipeline) logSync(log *zap.SugaredLogger, sync *manifest.SyncResult) {
	for _, w := range sync.Warnings {
		log.Warnw(w, logger.FieldFile, sync.Descriptor, logger.FieldVersion, sync.Version)
	}
	log.Infow("manifest version synced",
		logger.FieldFile, sync.Manifest,
		logger.FieldPackage, manifest.PackageID,
		logger.FieldVersion, sync.Version,
		logger.FieldPrevious, sync.Previous,
		logger.FieldChanged, !sync.InSync)
}
