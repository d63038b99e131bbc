package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/redline/internal/parser"
	"github.com/dgallion1/redline/internal/redline"
	"github.com/dgallion1/redline/internal/render"
)

// Worker processes a single comparison job.
type Worker struct {
	log         *slog.Logger
	pdfFallback bool
}

func NewWorker(log *slog.Logger, pdfFallback bool) *Worker {
	return &Worker{log: log, pdfFallback: pdfFallback}
}

// Process runs the full comparison pipeline for a job: extract text from
// both uploads, compare, render. The compare core has no failure mode for
// valid text; anything that can fail happens in the extraction phase.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "old", job.OldFilename, "new", job.NewFilename)

	if ctx.Err() != nil {
		job.AddError(ctx.Err().Error())
		job.SetStatus(StatusFailed, "canceled")
		return
	}

	// Phase 1: text extraction.
	job.SetStatus(StatusExtracting, "extracting")
	oldData, newData := job.Inputs()

	oldText, err := w.extract(oldData, job.OldFilename)
	if err != nil {
		log.Error("old side extraction failed", "error", err)
		job.AddError(fmt.Sprintf("old: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	newText, err := w.extract(newData, job.NewFilename)
	if err != nil {
		log.Error("new side extraction failed", "error", err)
		job.AddError(fmt.Sprintf("new: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	// Phase 2: align and diff.
	job.SetStatus(StatusComparing, "comparing")
	res := redline.Compare(oldText, newText, job.Options)
	if res.Degraded > 0 {
		// Budget exhaustion is a documented fallback, not a failure; the
		// affected pairs carry a coarser decomposition.
		log.Warn("diff time budget hit", "degraded_pairs", res.Degraded, "pairs", len(res.Pairs))
	}
	log.Info("compared documents",
		"old_chunks", res.OldChunks,
		"new_chunks", res.NewChunks,
		"pairs", len(res.Pairs),
	)

	// Phase 3: render.
	job.SetStatus(StatusRendering, "rendering")
	html := render.HTML(res, job.OldFilename, job.NewFilename)
	job.SetOutcome(res, html)
	job.SetStatus(StatusCompleted, "done")
}

func (w *Worker) extract(data []byte, filename string) (string, error) {
	p, err := parser.ForFile(filename)
	if err != nil {
		return "", err
	}
	if pdfParser, ok := p.(*parser.PDFParser); ok {
		pdfParser.FallbackPdftotext = w.pdfFallback
	}
	text, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", filename, err)
	}
	return text, nil
}
