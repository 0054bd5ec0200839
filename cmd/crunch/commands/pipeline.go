package commands

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/teranos/crunch/am"
	"github.com/teranos/crunch/catalog"
	"github.com/teranos/crunch/codec"
	"github.com/teranos/crunch/display"
	"github.com/teranos/crunch/engine"
	"github.com/teranos/crunch/errors"
	"github.com/teranos/crunch/estimate"
	"github.com/teranos/crunch/logger"
	"github.com/teranos/crunch/sink"
	"github.com/teranos/crunch/upload"
)

// pipeline wires one generation run: sink, finalizers, catalog, engine
type pipeline struct {
	out       io.Writer // words (preview or stream) and JSON results
	errOut    io.Writer // progress and summaries
	verbosity int
	json      bool
	log       *zap.SugaredLogger

	uploadOptions []upload.Option
}

// runResult is the JSON form of a finished run
type runResult struct {
	RunID     string          `json:"run_id,omitempty"`
	Mode      string          `json:"mode"`
	Words     int64           `json:"words"`
	PerLength map[int]int64   `json:"per_length,omitempty"`
	Skipped   []string        `json:"skipped,omitempty"`
	Artifacts []sink.Artifact `json:"artifacts,omitempty"`
	Duration  string          `json:"duration"`
}

func newPipeline(out, errOut io.Writer, verbosity int, jsonOutput bool) *pipeline {
	return &pipeline{
		out:       out,
		errOut:    errOut,
		verbosity: verbosity,
		json:      jsonOutput,
		log:       logger.ComponentLogger("run"),
	}
}

func (p *pipeline) run(ctx context.Context, cfg *am.Config) (*engine.Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	mode := cfg.Mode()
	outputMode := cfg.Output.OutputMode()
	writesFiles := outputMode == am.OutputFile || outputMode == am.OutputSplit

	if writesFiles {
		p.checkDisk(ctx, cfg, mode)
	}

	store, runID, closeCatalog := p.startRun(ctx, cfg, mode)
	defer closeCatalog()

	finalizer, err := p.finalizers(ctx, cfg, store, runID)
	if err != nil {
		p.finishRun(ctx, store, runID, nil, err)
		return nil, err
	}

	out, err := p.buildSink(ctx, cfg, finalizer)
	if err != nil {
		p.finishRun(ctx, store, runID, nil, err)
		return nil, err
	}

	stats, runErr := engine.Run(ctx, mode, out,
		engine.WithLogger(logger.ComponentLogger("engine")),
		engine.WithProgress(p.emitter()))

	// Finish partial files even when the run was cancelled
	closeErr := out.Close(context.WithoutCancel(ctx))
	err = errors.CombineErrors(runErr, closeErr)

	var artifacts []sink.Artifact
	if r, ok := out.(sink.Reporter); ok {
		artifacts = r.Artifacts()
	}
	p.finishRun(ctx, store, runID, stats, err)

	if reportErr := p.report(runID, outputMode, stats, artifacts); reportErr != nil && err == nil {
		err = reportErr
	}
	return stats, err
}

// checkDisk warns when the upper-bound estimate exceeds free space. Bounds
// and filters usually shrink the output, so this never fails the run.
func (p *pipeline) checkDisk(ctx context.Context, cfg *am.Config, mode engine.Mode) {
	est, err := estimate.For(mode)
	if err != nil {
		return
	}
	dir := cfg.Output.Dir
	if cfg.Output.OutputMode() == am.OutputFile {
		dir = filepath.Dir(cfg.Output.Path)
	}
	if _, err := estimate.CheckDisk(ctx, dir, est.Bytes); err != nil {
		p.log.Warnw("Output may not fit on disk", logger.FieldPath, dir, logger.FieldError, err.Error())
	}
}

// startRun records the run in the catalog. A catalog failure only
// disables recording.
func (p *pipeline) startRun(ctx context.Context, cfg *am.Config, mode engine.Mode) (*catalog.Store, string, func()) {
	noop := func() {}
	if !cfg.Catalog.Enabled {
		return nil, "", noop
	}

	db, err := catalog.OpenWithMigrations(cfg.CatalogPath(), logger.ComponentLogger("catalog"))
	if err != nil {
		p.log.Warnw("Catalog unavailable, run will not be recorded", logger.FieldPath, cfg.CatalogPath(), logger.FieldError, err.Error())
		return nil, "", noop
	}
	closeDB := func() { closeQuietly(db) }

	rendered, err := am.Render(cfg, am.FormatJSON)
	if err != nil {
		closeDB()
		return nil, "", noop
	}

	store := catalog.NewStore(db)
	runID, err := store.StartRun(context.WithoutCancel(ctx), engine.ModeName(mode), string(rendered))
	if err != nil {
		p.log.Warnw("Failed to record run", logger.FieldError, err.Error())
		closeDB()
		return nil, "", noop
	}
	p.log.Infow("Run started", logger.FieldRunID, runID)
	return store, runID, closeDB
}

func (p *pipeline) finishRun(ctx context.Context, store *catalog.Store, runID string, stats *engine.Stats, runErr error) {
	if store == nil {
		return
	}
	var words int64
	var warnings int
	if stats != nil {
		words, warnings = stats.Words, len(stats.Warnings)
	}
	if err := store.FinishRun(context.WithoutCancel(ctx), runID, words, warnings, runErr); err != nil {
		p.log.Warnw("Failed to record run result", logger.FieldRunID, runID, logger.FieldError, err.Error())
	}
}

// finalizers builds the per-artifact chain: compress, upload, record
func (p *pipeline) finalizers(ctx context.Context, cfg *am.Config, store *catalog.Store, runID string) (sink.Finalizer, error) {
	var chain sink.Chain

	if codec.Enabled(cfg.Output.Compression) {
		compressor, err := codec.NewCompressor(cfg.Output.Compression)
		if err != nil {
			return nil, err
		}
		chain = append(chain, compressor)
	}

	if cfg.Upload.S3.Enabled() {
		uploader, err := upload.New(ctx, cfg.Upload.S3, p.uploadOptions...)
		if err != nil {
			return nil, errors.Wrap(err, "failed to configure upload")
		}
		chain = append(chain, uploader)
	}

	if store != nil {
		chain = append(chain, store.Recorder(runID))
	}
	return chain, nil
}

func (p *pipeline) buildSink(ctx context.Context, cfg *am.Config, finalizer sink.Finalizer) (sink.Sink, error) {
	var out sink.Sink
	switch cfg.Output.OutputMode() {
	case am.OutputStream:
		out = sink.NewStream(p.out)
	case am.OutputFile:
		f, err := sink.NewFile(cfg.Output.Path, finalizer)
		if err != nil {
			return nil, err
		}
		out = f
	case am.OutputSplit:
		budget, err := sink.ParseSize(cfg.Output.SplitSize)
		if err != nil {
			return nil, err
		}
		s, err := sink.NewSplit(ctx, cfg.Output.Dir, budget, finalizer)
		if err != nil {
			return nil, err
		}
		out = s
	default:
		out = sink.NewDisplay(p.out, cfg.Output.PreviewLimit)
	}

	if cfg.Output.RateLimit > 0 {
		out = sink.NewThrottle(ctx, out, cfg.Output.RateLimit)
	}
	return out, nil
}

func (p *pipeline) emitter() engine.ProgressEmitter {
	if p.json {
		return display.NewJSONEmitter(p.errOut)
	}
	return display.NewCLIEmitter(p.errOut, p.verbosity)
}

func (p *pipeline) report(runID, outputMode string, stats *engine.Stats, artifacts []sink.Artifact) error {
	if stats == nil {
		return nil
	}

	if !p.json {
		return display.RunSummary(p.errOut, stats, artifacts)
	}

	result := runResult{
		RunID:     runID,
		Mode:      stats.Mode,
		Words:     stats.Words,
		PerLength: stats.PerLength,
		Artifacts: artifacts,
		Duration:  stats.Duration.String(),
	}
	for _, w := range stats.Warnings {
		result.Skipped = append(result.Skipped, w.Error())
	}

	// Words own stdout when streaming or previewing
	target := p.out
	if outputMode == am.OutputStream || outputMode == am.OutputDisplay {
		target = p.errOut
	}
	return display.OutputJSON(target, result)
}

func closeQuietly(db *sql.DB) {
	if err := db.Close(); err != nil {
		logger.Debugw("Failed to close catalog", logger.FieldError, err.Error())
	}
}
