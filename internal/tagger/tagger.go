// Package tagger implements the metadata enrichment stage: deriving tags,
// character names, and a slug from existing captions and writing the JSON
// metadata sidecar. Images with a metadata sidecar are skipped entirely, so
// repeated runs are idempotent; captions are read, never rewritten.
package tagger

import (
	"context"
	"log/slog"

	"artsync/internal/budget"
	"artsync/internal/catalog"
	"artsync/internal/logging"
	"artsync/internal/services/openai"
	"artsync/internal/sidecar"
)

// Service is the tagging call the stage depends on.
type Service interface {
	TagCaption(ctx context.Context, title, caption, kind string, maxTags int) (openai.TagResult, error)
}

// Stage enriches captioned images in one collection at a time.
type Stage struct {
	service Service
	artist  string
	maxTags int
	logger  *slog.Logger
}

// New constructs the enrichment stage.
func New(service Service, artist string, maxTags int, logger *slog.Logger) *Stage {
	if logger == nil {
		logger = logging.NewNop()
	}
	if maxTags <= 0 {
		maxTags = 10
	}
	return &Stage{
		service: service,
		artist:  artist,
		maxTags: maxTags,
		logger:  logger.With(logging.String("component", "tagger")),
	}
}

// Summary reports what one Process call did.
type Summary struct {
	Collection string
	Pending    int
	Processed  int
	Failed     int
}

// Process writes metadata sidecars for up to the remaining budget of
// captioned-but-untagged images in dir, newest first. Budget and failure
// semantics match the caption stage: every attempt consumes a unit, and
// per-item failures are logged and skipped.
func (s *Stage) Process(ctx context.Context, dir, collection string, b *budget.Budget) (Summary, error) {
	summary := Summary{Collection: collection}

	pending, err := catalog.ListPendingMetadata(dir, collection)
	if err != nil {
		return summary, err
	}
	summary.Pending = len(pending)
	if len(pending) == 0 {
		s.logger.Info("no captioned images needing metadata", logging.String("collection", collection), logging.String("dir", dir))
		return summary, nil
	}

	s.logger.Info("found images needing metadata",
		logging.String("collection", collection),
		logging.Int("count", len(pending)),
	)

	take := b.Take(len(pending))
	for _, asset := range pending[:take] {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		s.logger.Info("tagging",
			logging.String("file", asset.Name),
			logging.String("collection", collection),
		)
		if err := s.enrichOne(ctx, asset); err != nil {
			summary.Failed++
			s.logger.Warn("tagging failed",
				logging.String("file", asset.Name),
				logging.Error(err),
			)
			continue
		}
		summary.Processed++
	}
	return summary, nil
}

func (s *Stage) enrichOne(ctx context.Context, asset catalog.Asset) error {
	raw := sidecar.ReadCaption(asset.Path)
	title, caption := sidecar.ParseCaption(raw, asset.Name, s.artist)

	result, err := s.service.TagCaption(ctx, title, caption, asset.Collection, s.maxTags)
	if err != nil {
		return err
	}

	meta := sidecar.Metadata{
		File:       asset.Name,
		Title:      title,
		Caption:    caption,
		Tags:       result.Tags,
		Characters: result.Characters,
		Kind:       asset.Collection,
		Slug:       sidecar.Slugify(title),
	}
	if err := sidecar.WriteMetadata(asset.Path, meta); err != nil {
		return err
	}
	s.logger.Info("metadata written",
		logging.String("file", asset.Name),
		logging.String("slug", meta.Slug),
		logging.Int("tags", len(meta.Tags)),
	)
	return nil
}
