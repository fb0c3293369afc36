// Package pipeline coordinates the three stages into complete runs: caption,
// enrich, assemble. It owns the run lock, the per-run identifier, and the
// shared budget that caption and tag draw from during a full run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"artsync/internal/assembler"
	"artsync/internal/budget"
	"artsync/internal/captioner"
	"artsync/internal/catalog"
	"artsync/internal/config"
	"artsync/internal/logging"
	"artsync/internal/services/openai"
	"artsync/internal/tagger"
)

// Services holds the model-backed calls the stages depend on.
type Services struct {
	Caption captioner.Service
	Tag     tagger.Service
}

// Runner executes pipeline stages under a single run lock.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	lockPath string
	lock     *flock.Flock
	caption  *captioner.Stage
	tag      *tagger.Stage
	assemble *assembler.Assembler
}

// New wires a runner against the live OpenAI service.
func New(cfg *config.Config, logger *slog.Logger) *Runner {
	client := openai.NewClient(openai.Config{
		APIKey:         cfg.OpenAI.APIKey,
		BaseURL:        cfg.OpenAI.BaseURL,
		CaptionModel:   cfg.OpenAI.CaptionModel,
		TagModel:       cfg.OpenAI.TagModel,
		TimeoutSeconds: cfg.OpenAI.TimeoutSeconds,
	})
	return NewWithServices(cfg, logger, Services{Caption: client, Tag: client})
}

// NewWithServices wires a runner with explicit stage services.
func NewWithServices(cfg *config.Config, logger *slog.Logger, svcs Services) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	lockPath := filepath.Join(cfg.Paths.LogDir, "artsync.lock")
	return &Runner{
		cfg:      cfg,
		logger:   logger,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
		caption:  captioner.New(svcs.Caption, cfg.Site.Artist, logger),
		tag:      tagger.New(svcs.Tag, cfg.Site.Artist, cfg.Tags.MaxTags, logger),
		assemble: assembler.New(cfg, logger),
	}
}

// Report aggregates the stage summaries for one full run.
type Report struct {
	RunID           string
	Captions        []captioner.Summary
	Tags            []tagger.Summary
	Assembly        assembler.Summary
	BudgetRemaining int
}

// collections lists the source directories in processing order. The finished
// collection always comes first so it gets the budget when both have work.
func (r *Runner) collections() [][2]string {
	return [][2]string{
		{r.cfg.Paths.FinishedDir, catalog.Finished},
		{r.cfg.Paths.SketchbookDir, catalog.Sketchbook},
	}
}

func (r *Runner) withLock(fn func() error) error {
	if err := r.cfg.EnsureDirectories(); err != nil {
		return err
	}
	ok, err := r.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock %s: %w", r.lockPath, err)
	}
	if !ok {
		return errors.New("another artsync run is in progress")
	}
	defer func() {
		if err := r.lock.Unlock(); err != nil {
			r.logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()
	return fn()
}

// Run executes the full pipeline: caption and tag share one budget, then the
// site is assembled from whatever sidecars exist afterward. The credential is
// checked up front, before any network call.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if err := r.cfg.RequireAPIKey(); err != nil {
		return nil, err
	}

	report := &Report{RunID: uuid.NewString()}
	logger := r.logger.With(logging.String("run_id", report.RunID))
	logger.Info("pipeline run starting", logging.Int("budget", r.cfg.Run.Budget))

	err := r.withLock(func() error {
		b := budget.New(r.cfg.Run.Budget)

		for _, col := range r.collections() {
			summary, err := r.caption.Process(ctx, col[0], col[1], b)
			if err != nil {
				return err
			}
			report.Captions = append(report.Captions, summary)
		}
		for _, col := range r.collections() {
			summary, err := r.tag.Process(ctx, col[0], col[1], b)
			if err != nil {
				return err
			}
			report.Tags = append(report.Tags, summary)
		}
		report.BudgetRemaining = b.Remaining()

		summary, err := r.assemble.Build(ctx)
		if err != nil {
			return err
		}
		report.Assembly = summary
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("pipeline run finished",
		logging.Int("budget_remaining", report.BudgetRemaining),
		logging.Int("pages_updated", report.Assembly.PagesUpdated),
	)
	return report, nil
}

// Caption runs the caption stage alone over both collections with its own
// budget. A limit of zero or less falls back to the configured stage default.
func (r *Runner) Caption(ctx context.Context, limit int) ([]captioner.Summary, error) {
	if err := r.cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = r.cfg.Captions.MaxPerRun
	}

	var summaries []captioner.Summary
	err := r.withLock(func() error {
		b := budget.New(limit)
		for _, col := range r.collections() {
			summary, err := r.caption.Process(ctx, col[0], col[1], b)
			if err != nil {
				return err
			}
			summaries = append(summaries, summary)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// Tag runs the enrichment stage alone over both collections with its own
// budget. A limit of zero or less falls back to the configured stage default.
func (r *Runner) Tag(ctx context.Context, limit int) ([]tagger.Summary, error) {
	if err := r.cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = r.cfg.Tags.MaxPerRun
	}

	var summaries []tagger.Summary
	err := r.withLock(func() error {
		b := budget.New(limit)
		for _, col := range r.collections() {
			summary, err := r.tag.Process(ctx, col[0], col[1], b)
			if err != nil {
				return err
			}
			summaries = append(summaries, summary)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// Build runs the assembly stage alone. No credential is needed.
func (r *Runner) Build(ctx context.Context) (assembler.Summary, error) {
	var summary assembler.Summary
	err := r.withLock(func() error {
		var err error
		summary, err = r.assemble.Build(ctx)
		return err
	})
	return summary, err
}
