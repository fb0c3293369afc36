package assembler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"artsync/internal/catalog"
	"artsync/internal/sidecar"
)

// Item is one mirrored image with everything the fragment builders need.
type Item struct {
	Name    string
	Caption string
	Meta    sidecar.Metadata
	HasMeta bool
}

// Mirror copies the collection's images from srcDir into destDir and returns
// the mirrored items newest-first. Regular files already in destDir are
// removed first so the destination exactly reflects the current source
// listing; subdirectories are left alone. Copies preserve content and
// modification time. Metadata is read from the source sidecars, since the
// sidecars themselves are not mirrored.
func Mirror(srcDir, destDir, collection string) ([]Item, error) {
	entries, err := catalog.List(srcDir, collection)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create destination %s: %w", destDir, err)
	}
	if err := clearFiles(destDir); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		destPath := filepath.Join(destDir, entry.Asset.Name)
		if err := copyPreservingTimes(entry.Asset.Path, destPath); err != nil {
			return nil, fmt.Errorf("copy %s: %w", entry.Asset.Name, err)
		}
		meta, ok := sidecar.ReadMetadata(entry.Asset.Path, collection)
		items = append(items, Item{
			Name:    entry.Asset.Name,
			Caption: entry.Caption,
			Meta:    meta,
			HasMeta: ok,
		})
	}
	return items, nil
}

func clearFiles(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("list destination %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("clear destination file %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func copyPreservingTimes(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
