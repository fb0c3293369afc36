package assembler_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"artsync/internal/assembler"
	"artsync/internal/catalog"
	"artsync/internal/config"
	"artsync/internal/logging"
	"artsync/internal/sidecar"
)

func writeImage(t *testing.T, dir, name, caption string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("png-bytes-"+name), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("set mtime: %v", err)
	}
	if caption != "" {
		if err := os.WriteFile(sidecar.CaptionPath(path), []byte(caption), 0o644); err != nil {
			t.Fatalf("write caption: %v", err)
		}
	}
	return path
}

func sitePage(t *testing.T, siteDir, name string, markers ...[2]string) {
	t.Helper()
	var b strings.Builder
	b.WriteString("<html><body>\n")
	for _, pair := range markers {
		b.WriteString(pair[0])
		b.WriteString("\nstale\n")
		b.WriteString(pair[1])
		b.WriteString("\n")
	}
	b.WriteString("</body></html>\n")
	if err := os.WriteFile(filepath.Join(siteDir, name), []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write page: %v", err)
	}
}

func testConfig(finished, sketchbook, site string) *config.Config {
	cfg := config.Default()
	cfg.Paths.FinishedDir = finished
	cfg.Paths.SketchbookDir = sketchbook
	cfg.Paths.SiteDir = site
	cfg.Site.FeaturedCount = 2
	cfg.Site.Artist = "Myles"
	return &cfg
}

func TestMirrorCopiesImagesAndReadsSidecars(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "images", "finished")
	now := time.Now().Truncate(time.Second)

	newest := writeImage(t, src, "new.png", "New — the newest piece.", now)
	writeImage(t, src, "old.png", "Old — the older piece.", now.Add(-time.Hour))
	meta := sidecar.Metadata{File: "new.png", Title: "New", Slug: "new", Kind: "finished"}
	if err := sidecar.WriteMetadata(newest, meta); err != nil {
		t.Fatalf("write metadata: %v", err)
	}
	// A stale file in the destination is cleared out.
	if err := os.MkdirAll(dest, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dest, "gone.png"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write stale: %v", err)
	}

	items, err := assembler.Mirror(src, dest, catalog.Finished)
	if err != nil {
		t.Fatalf("Mirror returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "new.png" || items[1].Name != "old.png" {
		t.Fatalf("expected newest-first order, got %v", []string{items[0].Name, items[1].Name})
	}
	if !items[0].HasMeta || items[0].Meta.Slug != "new" {
		t.Fatalf("metadata not carried: %+v", items[0])
	}
	if items[1].HasMeta {
		t.Fatalf("unexpected metadata on old item: %+v", items[1])
	}

	if _, err := os.Stat(filepath.Join(dest, "gone.png")); !os.IsNotExist(err) {
		t.Fatal("stale destination file was not removed")
	}
	info, err := os.Stat(filepath.Join(dest, "new.png"))
	if err != nil {
		t.Fatalf("stat copy: %v", err)
	}
	if !info.ModTime().Equal(now) {
		t.Fatalf("mtime not preserved: got %v want %v", info.ModTime(), now)
	}
}

func TestBuildUpdatesAllPages(t *testing.T) {
	finished := t.TempDir()
	sketchbook := t.TempDir()
	site := t.TempDir()
	now := time.Now()

	hero := writeImage(t, finished, "dragon.png", "Dragon Study — A coiled dragon.", now)
	writeImage(t, finished, "knight.png", "Knight — A knight at rest.", now.Add(-time.Hour))
	writeImage(t, finished, "witch.png", "Witch — A witch in moonlight.", now.Add(-2*time.Hour))
	if err := sidecar.WriteMetadata(hero, sidecar.Metadata{
		File: "dragon.png", Title: "Dragon Study", Slug: "dragon-study",
		Kind: "finished", Tags: []string{"ink", "dragon"},
	}); err != nil {
		t.Fatalf("write metadata: %v", err)
	}
	writeImage(t, sketchbook, "doodle.png", "Doodle — A quick doodle.", now)

	sitePage(t, site, "index.html",
		[2]string{assembler.HeroStart, assembler.HeroEnd},
		[2]string{assembler.FeaturedStart, assembler.FeaturedEnd},
		[2]string{assembler.SketchPreviewStart, assembler.SketchPreviewEnd},
	)
	sitePage(t, site, "characters.html",
		[2]string{assembler.GalleryFinishedStart, assembler.GalleryFinishedEnd})
	sitePage(t, site, "sketchbook.html",
		[2]string{assembler.GallerySketchbookStart, assembler.GallerySketchbookEnd})

	stage := assembler.New(testConfig(finished, sketchbook, site), logging.NewNop())
	summary, err := stage.Build(context.Background())
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if summary.FinishedCopied != 3 || summary.SketchbookCopied != 1 {
		t.Fatalf("unexpected copy counts: %+v", summary)
	}
	if summary.PagesUpdated != 3 || summary.PagesSkipped != 0 {
		t.Fatalf("unexpected page counts: %+v", summary)
	}

	home, err := os.ReadFile(filepath.Join(site, "index.html"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if !strings.Contains(string(home), `src="images/finished/dragon.png"`) {
		t.Fatalf("hero missing from index: %s", home)
	}
	if !strings.Contains(string(home), `data-tags="ink,dragon"`) {
		t.Fatalf("hero metadata attributes missing: %s", home)
	}
	// Featured holds the two pieces after the hero.
	if !strings.Contains(string(home), "knight.png") || !strings.Contains(string(home), "witch.png") {
		t.Fatalf("featured cards missing: %s", home)
	}
	if strings.Count(string(home), "Future sketch") != 3 {
		t.Fatalf("expected 3 preview placeholders: %s", home)
	}

	gallery, err := os.ReadFile(filepath.Join(site, "characters.html"))
	if err != nil {
		t.Fatalf("read gallery: %v", err)
	}
	if strings.Count(string(gallery), "gallery-card") != 3 {
		t.Fatalf("expected 3 gallery cards: %s", gallery)
	}

	for _, backup := range []string{"index.backup.html", "characters.backup.html", "sketchbook.backup.html"} {
		if _, err := os.Stat(filepath.Join(site, backup)); err != nil {
			t.Fatalf("missing backup %s: %v", backup, err)
		}
	}

	if _, err := os.Stat(filepath.Join(site, "images", "finished", "dragon.png")); err != nil {
		t.Fatalf("image not mirrored: %v", err)
	}
	if _, err := os.Stat(filepath.Join(site, "images", "sketchbook", "doodle.png")); err != nil {
		t.Fatalf("sketch not mirrored: %v", err)
	}
}

func TestBuildFailsWhenFinishedDirMissing(t *testing.T) {
	site := t.TempDir()
	cfg := testConfig(filepath.Join(site, "nope"), t.TempDir(), site)
	stage := assembler.New(cfg, logging.NewNop())
	if _, err := stage.Build(context.Background()); err == nil {
		t.Fatal("expected error for missing finished collection")
	}
}

func TestBuildSkipsMissingSketchbookAndPages(t *testing.T) {
	finished := t.TempDir()
	site := t.TempDir()
	writeImage(t, finished, "only.png", "Only — the only piece.", time.Now())

	sitePage(t, site, "index.html",
		[2]string{assembler.HeroStart, assembler.HeroEnd},
		[2]string{assembler.FeaturedStart, assembler.FeaturedEnd},
		[2]string{assembler.SketchPreviewStart, assembler.SketchPreviewEnd},
	)
	// No characters.html, no sketchbook.html, no sketchbook directory.

	cfg := testConfig(finished, filepath.Join(site, "no-sketchbook"), site)
	stage := assembler.New(cfg, logging.NewNop())
	summary, err := stage.Build(context.Background())
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if summary.PagesUpdated != 1 || summary.PagesSkipped != 2 {
		t.Fatalf("unexpected page counts: %+v", summary)
	}

	home, err := os.ReadFile(filepath.Join(site, "index.html"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if strings.Count(string(home), "Future sketch") != 4 {
		t.Fatalf("expected all placeholder preview cells: %s", home)
	}
}

func TestBuildAbortsOnMissingHomeMarkers(t *testing.T) {
	finished := t.TempDir()
	site := t.TempDir()
	writeImage(t, finished, "piece.png", "Piece — a piece.", time.Now())

	original := "<html><body>no markers</body></html>\n"
	if err := os.WriteFile(filepath.Join(site, "index.html"), []byte(original), 0o644); err != nil {
		t.Fatalf("write page: %v", err)
	}

	cfg := testConfig(finished, filepath.Join(site, "no-sketchbook"), site)
	stage := assembler.New(cfg, logging.NewNop())
	if _, err := stage.Build(context.Background()); err == nil {
		t.Fatal("expected marker error")
	}

	data, err := os.ReadFile(filepath.Join(site, "index.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	if string(data) != original {
		t.Fatalf("page mutated on marker failure: %q", string(data))
	}
}
