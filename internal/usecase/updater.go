package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/naka-gawa/readme-stats/internal/domain"
	"github.com/naka-gawa/readme-stats/internal/patch"
	"go.uber.org/zap"
)

// Renderer turns a report into the text placed between the markers.
type Renderer interface {
	Render(report *domain.Report) string
}

// UpdateOptions describes a single document update.
type UpdateOptions struct {
	Login       string
	Document    string
	StartMarker string
	EndMarker   string
	// DryRun writes the generated block to Out instead of the document.
	DryRun bool
	Out    io.Writer
}

// Updater runs fetch, aggregate, render and patch, then writes the document once.
type Updater struct {
	aggregator *Aggregator
	renderer   Renderer
	logger     *zap.Logger
	now        func() time.Time
}

// NewUpdater creates a new Updater instance.
func NewUpdater(aggregator *Aggregator, renderer Renderer, logger *zap.Logger) *Updater {
	return &Updater{
		aggregator: aggregator,
		renderer:   renderer,
		logger:     logger,
		now:        time.Now,
	}
}

// Run performs one update. The document is left untouched on any error.
func (u *Updater) Run(ctx context.Context, opts UpdateOptions) error {
	if opts.StartMarker == "" || opts.EndMarker == "" {
		return patch.ErrEmptyMarker
	}
	now := u.now().UTC()

	info, err := os.Stat(opts.Document)
	if err != nil {
		return fmt.Errorf("failed to stat document: %w", err)
	}
	original, err := os.ReadFile(opts.Document)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	if _, err := patch.Locate(string(original), opts.StartMarker, opts.EndMarker); err != nil {
		return err
	}

	u.logger.Info("fetching data", zap.String("login", opts.Login))
	report, err := u.aggregator.Aggregate(ctx, opts.Login, now)
	if err != nil {
		return fmt.Errorf("failed to aggregate stats: %w", err)
	}
	block := u.renderer.Render(report)

	updated, err := patch.Apply(string(original), opts.StartMarker, opts.EndMarker, block)
	if err != nil {
		return err
	}

	if opts.DryRun {
		if opts.Out != nil {
			fmt.Fprintln(opts.Out, "--- Generated Markdown ---")
			fmt.Fprint(opts.Out, block)
		}
		return nil
	}
	if updated == string(original) {
		u.logger.Info("document already up to date", zap.String("path", opts.Document))
		return nil
	}
	if err := os.WriteFile(opts.Document, []byte(updated), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	u.logger.Info("document updated successfully", zap.String("path", opts.Document))
	return nil
}
