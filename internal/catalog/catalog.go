package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"artsync/internal/sidecar"
)

// Collection names. Shared pipeline logic treats both the same; the name
// only flavors prompts, metadata kind, and image path prefixes.
const (
	Finished   = "finished"
	Sketchbook = "sketchbook"
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".gif":  {},
}

// IsImage reports whether the file name carries a recognized image extension.
func IsImage(name string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Asset is one image file in a source collection.
type Asset struct {
	Name       string
	Path       string
	ModTime    time.Time
	Collection string
}

// Entry pairs an asset with its current caption sidecar content (empty when
// the sidecar is missing or unreadable).
type Entry struct {
	Asset   Asset
	Caption string
}

// List returns every image in dir paired with its caption, newest first.
// A missing directory yields an empty list, not an error.
func List(dir, collection string) ([]Entry, error) {
	assets, err := scan(dir, collection)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(assets))
	for _, asset := range assets {
		entries = append(entries, Entry{
			Asset:   asset,
			Caption: sidecar.ReadCaption(asset.Path),
		})
	}
	return entries, nil
}

// ListUncaptioned returns images with no caption sidecar or an empty one,
// newest first.
func ListUncaptioned(dir, collection string) ([]Asset, error) {
	assets, err := scan(dir, collection)
	if err != nil {
		return nil, err
	}
	pending := make([]Asset, 0, len(assets))
	for _, asset := range assets {
		if sidecar.ReadCaption(asset.Path) == "" {
			pending = append(pending, asset)
		}
	}
	return pending, nil
}

// ListPendingMetadata returns images with a non-empty caption sidecar and no
// metadata sidecar, newest first.
func ListPendingMetadata(dir, collection string) ([]Asset, error) {
	assets, err := scan(dir, collection)
	if err != nil {
		return nil, err
	}
	pending := make([]Asset, 0, len(assets))
	for _, asset := range assets {
		if sidecar.ReadCaption(asset.Path) == "" {
			continue
		}
		if sidecar.HasMetadata(asset.Path) {
			continue
		}
		pending = append(pending, asset)
	}
	return pending, nil
}

// scan enumerates image files in dir sorted by modification time, newest
// first. Ties keep directory enumeration order.
func scan(dir, collection string) ([]Asset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list collection %s: %w", dir, err)
	}

	assets := make([]Asset, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsImage(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// The file vanished between listing and stat; curation moves
			// files around while the pipeline runs, so just skip it.
			continue
		}
		assets = append(assets, Asset{
			Name:       entry.Name(),
			Path:       filepath.Join(dir, entry.Name()),
			ModTime:    info.ModTime(),
			Collection: collection,
		})
	}

	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].ModTime.After(assets[j].ModTime)
	})
	return assets, nil
}

// Stats summarizes sidecar coverage for one collection.
type Stats struct {
	Images    int
	Captioned int
	Tagged    int
}

// Coverage counts images, caption sidecars, and metadata sidecars in dir.
func Coverage(dir, collection string) (Stats, error) {
	assets, err := scan(dir, collection)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Images: len(assets)}
	for _, asset := range assets {
		if sidecar.ReadCaption(asset.Path) != "" {
			stats.Captioned++
		}
		if sidecar.HasMetadata(asset.Path) {
			stats.Tagged++
		}
	}
	return stats, nil
}
