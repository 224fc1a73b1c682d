// Package engine sequences detection, extraction and write-back, and
// owns the two file-boundary JSON contracts (parse report, write
// report). Parse and write are independent operations: write mode
// re-derives everything it needs from the source file plus the answer
// set, sharing no in-memory state with any earlier parse.
package engine

import (
	"log"

	"rfpdesk/internal/detector"
	"rfpdesk/internal/extractor"
	"rfpdesk/internal/planner"
	"rfpdesk/internal/store"
	"rfpdesk/internal/writer"
)

// Config carries the heuristic bounds plus an optional run-log store.
type Config struct {
	Detector  detector.Options
	Extractor extractor.Options
	Planner   planner.Options

	// Store, when non-nil, records a row per parse/write run.
	Store *store.Store
}

// Engine is the pipeline orchestrator.
type Engine struct {
	det   *detector.Detector
	ext   *extractor.Extractor
	wr    *writer.Writer
	plan  planner.Options
	store *store.Store
}

// New creates an engine.
func New(cfg Config) *Engine {
	return &Engine{
		det: detector.New(cfg.Detector),
		ext: extractor.New(cfg.Extractor),
		wr: writer.New(writer.Options{
			Detector:  cfg.Detector,
			Extractor: cfg.Extractor,
		}),
		plan:  cfg.Planner,
		store: cfg.Store,
	}
}

func (e *Engine) logRun(run store.Run) {
	if e.store == nil {
		return
	}
	if err := e.store.RecordRun(run); err != nil {
		log.Printf("record run: %v", err)
	}
}
