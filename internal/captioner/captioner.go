// Package captioner implements the caption stage: vision-captioning images
// that have no caption sidecar yet. Existing non-empty sidecars are never
// touched, so repeated runs are idempotent.
package captioner

import (
	"context"
	"log/slog"

	"artsync/internal/budget"
	"artsync/internal/catalog"
	"artsync/internal/logging"
	"artsync/internal/services/openai"
	"artsync/internal/sidecar"
)

// Service is the captioning call the stage depends on.
type Service interface {
	CaptionImage(ctx context.Context, imagePath, kind string) (openai.Caption, error)
}

// Stage captions uncaptioned images in one collection at a time.
type Stage struct {
	service Service
	artist  string
	logger  *slog.Logger
}

// New constructs the caption stage.
func New(service Service, artist string, logger *slog.Logger) *Stage {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Stage{
		service: service,
		artist:  artist,
		logger:  logger.With(logging.String("component", "captioner")),
	}
}

// Summary reports what one Process call did.
type Summary struct {
	Collection string
	Pending    int
	Processed  int
	Failed     int
}

// Process captions up to the remaining budget of uncaptioned images in dir,
// newest first. Each attempted item consumes one budget unit whether or not
// the service call succeeds; failed items are logged and skipped, never
// retried within the run.
func (s *Stage) Process(ctx context.Context, dir, collection string, b *budget.Budget) (Summary, error) {
	summary := Summary{Collection: collection}

	pending, err := catalog.ListUncaptioned(dir, collection)
	if err != nil {
		return summary, err
	}
	summary.Pending = len(pending)
	if len(pending) == 0 {
		s.logger.Info("no uncaptioned images", logging.String("collection", collection), logging.String("dir", dir))
		return summary, nil
	}

	s.logger.Info("found uncaptioned images",
		logging.String("collection", collection),
		logging.Int("count", len(pending)),
	)

	take := b.Take(len(pending))
	for _, asset := range pending[:take] {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		s.logger.Info("captioning",
			logging.String("file", asset.Name),
			logging.String("collection", collection),
		)
		if err := s.captionOne(ctx, asset); err != nil {
			summary.Failed++
			s.logger.Warn("caption failed",
				logging.String("file", asset.Name),
				logging.Error(err),
			)
			continue
		}
		summary.Processed++
	}
	return summary, nil
}

func (s *Stage) captionOne(ctx context.Context, asset catalog.Asset) error {
	result, err := s.service.CaptionImage(ctx, asset.Path, asset.Collection)
	if err != nil {
		return err
	}

	title := result.Title
	caption := result.Caption
	if title == "" {
		title = sidecar.TitleFromFileName(asset.Name)
	}
	if caption == "" {
		caption = sidecar.FallbackCaption(title, s.artist)
	}

	if err := sidecar.WriteCaption(asset.Path, title, caption); err != nil {
		return err
	}
	s.logger.Info("caption written", logging.String("file", asset.Name), logging.String("title", title))
	return nil
}
