package sidecar

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Separator joins the title and caption inside a caption sidecar.
// The em dash is load-bearing: parsing splits on exactly this sequence.
const Separator = " — "

// CaptionPath returns the caption sidecar path for an image file.
func CaptionPath(imagePath string) string {
	return withExtension(imagePath, ".txt")
}

// MetadataPath returns the metadata sidecar path for an image file.
func MetadataPath(imagePath string) string {
	return withExtension(imagePath, ".json")
}

func withExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// WriteCaption writes the "<title> — <caption>" sidecar next to the image.
func WriteCaption(imagePath, title, caption string) error {
	combined := title + Separator + caption
	path := CaptionPath(imagePath)
	if err := os.WriteFile(path, []byte(combined), 0o644); err != nil {
		return fmt.Errorf("write caption sidecar: %w", err)
	}
	return nil
}

// ReadCaption returns the trimmed caption sidecar content for an image, or
// an empty string when the sidecar is missing or unreadable.
func ReadCaption(imagePath string) string {
	data, err := os.ReadFile(CaptionPath(imagePath))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// ParseCaption splits raw caption text into title and caption. When the
// separator is absent the title falls back to the file name and the whole
// text becomes the caption; empty fields are synthesized so callers always
// receive usable values.
func ParseCaption(raw, fileName, artist string) (title, caption string) {
	raw = strings.TrimSpace(raw)
	if before, after, found := strings.Cut(raw, Separator); found {
		title = strings.TrimSpace(before)
		caption = strings.TrimSpace(after)
	} else {
		caption = raw
	}
	if title == "" {
		title = TitleFromFileName(fileName)
	}
	if caption == "" {
		caption = FallbackCaption(title, artist)
	}
	return title, caption
}

// FallbackCaption synthesizes a caption when the service returned nothing.
func FallbackCaption(title, artist string) string {
	return fmt.Sprintf("%s%sillustration by %s.", title, Separator, artist)
}

var titleCaser = cases.Title(language.English)

// TitleFromFileName derives a display title from an image file name:
// extension stripped, underscores and hyphens become spaces, title-cased.
func TitleFromFileName(fileName string) string {
	stem := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	stem = strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	return titleCaser.String(strings.TrimSpace(stem))
}
