package catalog_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"artsync/internal/catalog"
)

func writeImage(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("png-bytes"), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("set mtime: %v", err)
	}
	return path
}

func writeSidecar(t *testing.T, imagePath, ext, content string) {
	t.Helper()
	path := imagePath[:len(imagePath)-len(filepath.Ext(imagePath))] + ext
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write sidecar: %v", err)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	writeImage(t, dir, "oldest.png", base)
	writeImage(t, dir, "middle.jpg", base.Add(time.Minute))
	writeImage(t, dir, "newest.webp", base.Add(2*time.Minute))
	writeImage(t, dir, "notes.txt", base) // not an image

	entries, err := catalog.List(dir, catalog.Finished)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Asset.Name)
	}
	want := []string{"newest.webp", "middle.jpg", "oldest.png"}
	if len(got) != len(want) {
		t.Fatalf("unexpected entries: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got %v want %v", got, want)
		}
	}
}

func TestListMissingDirectoryIsEmpty(t *testing.T) {
	entries, err := catalog.List(filepath.Join(t.TempDir(), "absent"), catalog.Finished)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(entries))
	}
}

func TestListAttachesCaptions(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	captioned := writeImage(t, dir, "batman.png", now)
	writeImage(t, dir, "uncaptioned.png", now.Add(-time.Minute))
	writeSidecar(t, captioned, ".txt", "Batman Profile — Batman stands tall.")

	entries, err := catalog.List(dir, catalog.Finished)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if entries[0].Caption != "Batman Profile — Batman stands tall." {
		t.Fatalf("unexpected caption: %q", entries[0].Caption)
	}
	if entries[1].Caption != "" {
		t.Fatalf("expected empty caption, got %q", entries[1].Caption)
	}
}

func TestListUncaptionedSelectsMissingAndEmptySidecars(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	missing := writeImage(t, dir, "missing.png", now)
	empty := writeImage(t, dir, "empty.png", now.Add(-time.Minute))
	done := writeImage(t, dir, "done.png", now.Add(-2*time.Minute))
	writeSidecar(t, empty, ".txt", "   \n")
	writeSidecar(t, done, ".txt", "Leo — Leonardo appears mid-strike.")

	pending, err := catalog.ListUncaptioned(dir, catalog.Sketchbook)
	if err != nil {
		t.Fatalf("ListUncaptioned returned error: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(pending))
	}
	if pending[0].Path != missing || pending[1].Path != empty {
		t.Fatalf("unexpected pending set: %+v", pending)
	}
}

func TestListPendingMetadataRequiresCaptionAndNoJSON(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	ready := writeImage(t, dir, "ready.png", now)
	writeSidecar(t, ready, ".txt", "Title — caption.")
	tagged := writeImage(t, dir, "tagged.png", now.Add(-time.Minute))
	writeSidecar(t, tagged, ".txt", "Title — caption.")
	writeSidecar(t, tagged, ".json", `{"title":"Title"}`)
	writeImage(t, dir, "uncaptioned.png", now.Add(-2*time.Minute))

	pending, err := catalog.ListPendingMetadata(dir, catalog.Finished)
	if err != nil {
		t.Fatalf("ListPendingMetadata returned error: %v", err)
	}
	if len(pending) != 1 || pending[0].Path != ready {
		t.Fatalf("unexpected pending set: %+v", pending)
	}
}

func TestCoverage(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	a := writeImage(t, dir, "a.png", now)
	b := writeImage(t, dir, "b.png", now)
	writeImage(t, dir, "c.png", now)
	writeSidecar(t, a, ".txt", "A — done.")
	writeSidecar(t, a, ".json", `{"title":"A"}`)
	writeSidecar(t, b, ".txt", "B — done.")

	stats, err := catalog.Coverage(dir, catalog.Finished)
	if err != nil {
		t.Fatalf("Coverage returned error: %v", err)
	}
	if stats.Images != 3 || stats.Captioned != 2 || stats.Tagged != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
