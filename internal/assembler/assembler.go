// Package assembler implements the site assembly stage: mirroring the
// source collections into the site tree, building HTML fragments from the
// enriched listing, and splicing them into marked regions of the site
// pages.
package assembler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"artsync/internal/catalog"
	"artsync/internal/config"
	"artsync/internal/logging"
)

const (
	homePage       = "index.html"
	galleryPage    = "characters.html"
	sketchbookPage = "sketchbook.html"
)

// Assembler mirrors collections and rewrites the marked page regions.
type Assembler struct {
	finishedDir   string
	sketchbookDir string
	siteDir       string
	featuredCount int
	artist        string
	logger        *slog.Logger
}

// New constructs the assembly stage from configuration.
func New(cfg *config.Config, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Assembler{
		finishedDir:   cfg.Paths.FinishedDir,
		sketchbookDir: cfg.Paths.SketchbookDir,
		siteDir:       cfg.Paths.SiteDir,
		featuredCount: cfg.Site.FeaturedCount,
		artist:        cfg.Site.Artist,
		logger:        logger.With(logging.String("component", "assembler")),
	}
}

// Summary reports what one Build call did.
type Summary struct {
	FinishedCopied   int
	SketchbookCopied int
	PagesUpdated     int
	PagesSkipped     int
}

// Build runs the full assembly pass. The finished collection and the home
// page are required; the sketchbook collection and the secondary pages
// degrade to warnings when absent. Marker failures abort before the
// affected page is written.
func (a *Assembler) Build(ctx context.Context) (Summary, error) {
	var summary Summary

	if _, err := os.Stat(a.finishedDir); err != nil {
		return summary, fmt.Errorf("finished collection missing: %s: %w", a.finishedDir, err)
	}

	finished, err := Mirror(a.finishedDir, filepath.Join(a.siteDir, "images", "finished"), catalog.Finished)
	if err != nil {
		return summary, err
	}
	summary.FinishedCopied = len(finished)
	a.logger.Info("mirrored finished collection", logging.Int("images", len(finished)))
	if len(finished) == 0 {
		a.logger.Warn("no images found in finished collection", logging.String("dir", a.finishedDir))
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	var sketches []Item
	if _, err := os.Stat(a.sketchbookDir); err == nil {
		sketches, err = Mirror(a.sketchbookDir, filepath.Join(a.siteDir, "images", "sketchbook"), catalog.Sketchbook)
		if err != nil {
			return summary, err
		}
		summary.SketchbookCopied = len(sketches)
		a.logger.Info("mirrored sketchbook collection", logging.Int("images", len(sketches)))
	} else {
		a.logger.Warn("sketchbook collection missing, skipping", logging.String("dir", a.sketchbookDir))
	}

	var hero *Item
	var featured []Item
	if len(finished) > 0 {
		hero = &finished[0]
		rest := finished[1:]
		if len(rest) > a.featuredCount {
			rest = rest[:a.featuredCount]
		}
		featured = rest
	}

	homeRegions := []Region{
		{Start: HeroStart, End: HeroEnd, Content: BuildHero(hero)},
		{Start: FeaturedStart, End: FeaturedEnd, Content: BuildFeatured(featured, a.artist)},
		{Start: SketchPreviewStart, End: SketchPreviewEnd, Content: BuildSketchPreview(sketches, a.artist)},
	}
	if err := a.updatePage(homePage, homeRegions, true, &summary); err != nil {
		return summary, err
	}

	galleryRegions := []Region{
		{Start: GalleryFinishedStart, End: GalleryFinishedEnd, Content: BuildGallery(finished, catalog.Finished, a.artist)},
	}
	if err := a.updatePage(galleryPage, galleryRegions, false, &summary); err != nil {
		return summary, err
	}

	sketchRegions := []Region{
		{Start: GallerySketchbookStart, End: GallerySketchbookEnd, Content: BuildGallery(sketches, catalog.Sketchbook, a.artist)},
	}
	if err := a.updatePage(sketchbookPage, sketchRegions, false, &summary); err != nil {
		return summary, err
	}

	return summary, nil
}

func (a *Assembler) updatePage(name string, regions []Region, required bool, summary *Summary) error {
	path := filepath.Join(a.siteDir, name)
	if _, err := os.Stat(path); err != nil {
		if required {
			return fmt.Errorf("page missing: %s: %w", path, err)
		}
		a.logger.Warn("page missing, skipping", logging.String("page", name))
		summary.PagesSkipped++
		return nil
	}

	backup := filepath.Join(a.siteDir, strings.TrimSuffix(name, ".html")+".backup.html")
	if err := UpdateDocument(path, backup, regions); err != nil {
		return err
	}
	summary.PagesUpdated++
	a.logger.Info("page updated", logging.String("page", name), logging.String("backup", filepath.Base(backup)))
	return nil
}
