// Package export ships approved designs out of the workspace, either to
// a directory or to an S3 bucket, and records the destination on the
// design's metadata.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atelierhq/atelier/internal/handler"
	"github.com/atelierhq/atelier/internal/metadata"
)

// Destination stores one document body under the given name and returns
// the location it ended up at.
type Destination interface {
	Store(ctx context.Context, name string, body io.Reader) (string, error)
}

// ForTarget selects a destination from a target string: s3://bucket/prefix
// uses S3, anything else is treated as a directory path.
func ForTarget(ctx context.Context, target string) (Destination, error) {
	if strings.HasPrefix(target, s3Scheme) {
		return NewS3Destination(ctx, target)
	}
	return NewDirDestination(target), nil
}

// DirDestination copies documents into a local directory, creating it on
// first use.
type DirDestination struct {
	root string
}

func NewDirDestination(root string) *DirDestination {
	return &DirDestination{root: root}
}

func (d *DirDestination) Store(ctx context.Context, name string, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}

	dst := filepath.Join(d.root, name)
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, body); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dst, err)
	}
	if err := out.Sync(); err != nil {
		return "", fmt.Errorf("failed to sync %s: %w", dst, err)
	}
	return dst, nil
}

// Exporter runs exports against the workspace: it reads the design from
// wherever it lives, stores it at the destination, then marks the record
// exported with the destination location.
type Exporter struct {
	files *handler.FileHandler
	store *metadata.Store
}

func NewExporter(files *handler.FileHandler, store *metadata.Store) *Exporter {
	return &Exporter{files: files, store: store}
}

// Export ships one design to target and returns the stored location.
// The metadata update happens only after the destination write succeeds.
func (e *Exporter) Export(ctx context.Context, name, target string) (string, error) {
	path := e.files.DesignPath(name)
	if !e.files.Exists(name) {
		if !e.files.ExistsArchived(name) {
			return "", fmt.Errorf("design %s not found", name)
		}
		path = e.files.ArchivePath(name)
	}

	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer src.Close()

	dest, err := ForTarget(ctx, target)
	if err != nil {
		return "", err
	}

	location, err := dest.Store(ctx, name, src)
	if err != nil {
		return "", err
	}

	err = e.store.Update(name, func(rec *metadata.Record) {
		rec.Status = metadata.StatusExported
		rec.ExportedTo = location
	})
	if err != nil {
		return "", fmt.Errorf("exported to %s but failed to record it: %w", location, err)
	}
	return location, nil
}
