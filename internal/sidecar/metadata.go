package sidecar

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Metadata is the structured sidecar written by the enrichment stage and
// consumed during site assembly.
type Metadata struct {
	File       string   `json:"file"`
	Title      string   `json:"title"`
	Caption    string   `json:"caption"`
	Tags       []string `json:"tags"`
	Characters []string `json:"characters"`
	Kind       string   `json:"kind"`
	Slug       string   `json:"slug"`
}

// WriteMetadata writes the metadata sidecar next to the image.
func WriteMetadata(imagePath string, meta Metadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata sidecar: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(MetadataPath(imagePath), data, 0o644); err != nil {
		return fmt.Errorf("write metadata sidecar: %w", err)
	}
	return nil
}

// ReadMetadata loads the metadata sidecar for an image. A missing sidecar
// returns ok=false without error; a malformed one degrades the same way so
// assembly can proceed without attributes. Fields are normalized: blank
// list entries are dropped and an empty kind falls back to the collection.
func ReadMetadata(imagePath, fallbackKind string) (Metadata, bool) {
	meta := Metadata{Kind: fallbackKind}

	data, err := os.ReadFile(MetadataPath(imagePath))
	if err != nil {
		return meta, false
	}
	var decoded Metadata
	if err := json.Unmarshal(data, &decoded); err != nil {
		return meta, false
	}

	decoded.File = strings.TrimSpace(decoded.File)
	decoded.Title = strings.TrimSpace(decoded.Title)
	decoded.Caption = strings.TrimSpace(decoded.Caption)
	decoded.Slug = strings.TrimSpace(decoded.Slug)
	decoded.Tags = cleanList(decoded.Tags)
	decoded.Characters = cleanList(decoded.Characters)
	if strings.TrimSpace(decoded.Kind) == "" {
		decoded.Kind = fallbackKind
	}
	return decoded, true
}

// HasMetadata reports whether a metadata sidecar exists for the image.
func HasMetadata(imagePath string) bool {
	info, err := os.Stat(MetadataPath(imagePath))
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func cleanList(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
