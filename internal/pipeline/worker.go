package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dgallion1/deckgen/internal/facts"
	"github.com/dgallion1/deckgen/internal/generate"
	"github.com/dgallion1/deckgen/internal/render"
	"github.com/dgallion1/deckgen/internal/slides"
)

// FactFetcher gathers supporting facts for a topic. *facts.WebProvider
// satisfies it.
type FactFetcher interface {
	Fetch(ctx context.Context, topic string, limit int) ([]string, error)
}

// Worker runs a single deck generation job end to end.
type Worker struct {
	asm       *generate.Assembler
	web       FactFetcher
	log       *slog.Logger
	maxFacts  int
	outputDir string
	rendOpts  render.Options
}

func NewWorker(asm *generate.Assembler, web FactFetcher, log *slog.Logger, maxFacts int, outputDir string, rendOpts render.Options) *Worker {
	return &Worker{
		asm:       asm,
		web:       web,
		log:       log,
		maxFacts:  maxFacts,
		outputDir: outputDir,
		rendOpts:  rendOpts,
	}
}

// Process runs facts, generation and rendering for a job. Fact failures
// degrade to generation without grounding; generation and rendering
// failures fail the job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "topic", job.Topic)

	job.SetStatus(StatusFacts, "gathering_facts")
	gathered := w.gatherFacts(ctx, job, log)
	job.SetFacts(len(gathered))

	job.SetStatus(StatusDrafting, "generating")
	d, err := w.asm.Assemble(ctx, job.Topic, gathered)
	if err != nil {
		log.Error("generation failed", "error", err)
		job.AddError(fmt.Sprintf("generate: %s", err))
		job.SetStatus(StatusFailed, "generating")
		return
	}
	job.SetSlideCount(len(d.Slides))

	job.SetStatus(StatusRendering, "rendering")
	outPath := filepath.Join(w.outputDir, Slugify(job.Topic)+"-"+job.ID+job.Format)
	r, resolved, err := render.ForPath(outPath, log, w.rendOpts)
	if err != nil {
		log.Error("renderer selection failed", "error", err)
		job.AddError(fmt.Sprintf("render: %s", err))
		job.SetStatus(StatusFailed, "rendering")
		return
	}
	if err := r.Render(slides.Map(d), resolved); err != nil {
		log.Error("render failed", "error", err)
		job.AddError(fmt.Sprintf("render: %s", err))
		job.SetStatus(StatusFailed, "rendering")
		return
	}

	job.SetOutputPath(resolved)
	job.SetStatus(StatusCompleted, "done")
	log.Info("deck generated", "output", resolved, "slides", len(d.Slides))
}

// gatherFacts merges web research and the optional facts file. Either
// source failing logs a warning and drops that source.
func (w *Worker) gatherFacts(ctx context.Context, job *Job, log *slog.Logger) []string {
	var gathered []string

	if !job.NoWeb && w.web != nil {
		webFacts, err := w.web.Fetch(ctx, job.Topic, w.maxFacts)
		if err != nil {
			log.Warn("web research failed, generating without it", "error", err)
			job.AddError(fmt.Sprintf("web facts: %s", err))
		} else {
			gathered = append(gathered, webFacts...)
		}
	}

	if job.FactsFile != "" {
		fileFacts, err := facts.FromFile(job.FactsFile, w.maxFacts)
		if err != nil {
			log.Warn("facts file unreadable, skipping", "path", job.FactsFile, "error", err)
			job.AddError(fmt.Sprintf("facts file: %s", err))
		} else {
			gathered = append(gathered, fileFacts...)
		}
	}

	return gathered
}
