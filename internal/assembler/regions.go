package assembler

import (
	"fmt"
	"os"
	"strings"
)

// Marker pairs for the six named regions across the three site pages.
const (
	HeroStart = "<!-- START HERO -->"
	HeroEnd   = "<!-- END HERO -->"

	FeaturedStart = "<!-- START FEATURED -->"
	FeaturedEnd   = "<!-- END FEATURED -->"

	SketchPreviewStart = "<!-- START HOME_SKETCHES -->"
	SketchPreviewEnd   = "<!-- END HOME_SKETCHES -->"

	GalleryFinishedStart = "<!-- START GALLERY_FINISHED -->"
	GalleryFinishedEnd   = "<!-- END GALLERY_FINISHED -->"

	GallerySketchbookStart = "<!-- START GALLERY_SKETCHBOOK -->"
	GallerySketchbookEnd   = "<!-- END GALLERY_SKETCHBOOK -->"
)

// Region names one marker-delimited span and the content that replaces it.
type Region struct {
	Start   string
	End     string
	Content string
}

// ReplaceRegion replaces the span between the literal start and end markers
// with newContent, keeping the markers themselves. The match spans line
// breaks. A document without the marker pair is an error; nothing is
// replaced in that case.
func ReplaceRegion(doc, startMarker, endMarker, newContent string) (string, error) {
	start := strings.Index(doc, startMarker)
	if start < 0 {
		return "", fmt.Errorf("markers not found: %s .. %s", startMarker, endMarker)
	}
	afterStart := start + len(startMarker)
	endOffset := strings.Index(doc[afterStart:], endMarker)
	if endOffset < 0 {
		return "", fmt.Errorf("markers not found: %s .. %s", startMarker, endMarker)
	}
	end := afterStart + endOffset + len(endMarker)

	var b strings.Builder
	b.Grow(len(doc) - (end - start) + len(startMarker) + len(newContent) + len(endMarker) + 2)
	b.WriteString(doc[:start])
	b.WriteString(startMarker)
	b.WriteByte('\n')
	b.WriteString(newContent)
	b.WriteByte('\n')
	b.WriteString(endMarker)
	b.WriteString(doc[end:])
	return b.String(), nil
}

// UpdateDocument reads the document at path, persists a verbatim backup,
// applies every region to an in-memory copy, and writes the result back in
// one pass. Any missing marker aborts before the document is touched.
func UpdateDocument(path, backupPath string, regions []Region) error {
	original, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document %s: %w", path, err)
	}

	if err := os.WriteFile(backupPath, original, 0o644); err != nil {
		return fmt.Errorf("write backup %s: %w", backupPath, err)
	}

	updated := string(original)
	for _, region := range regions {
		updated, err = ReplaceRegion(updated, region.Start, region.End, region.Content)
		if err != nil {
			return fmt.Errorf("update document %s: %w", path, err)
		}
	}

	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("write document %s: %w", path, err)
	}
	return nil
}
