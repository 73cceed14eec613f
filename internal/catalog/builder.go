// Package catalog derives the canonical document list pushed to the
// presentation surface: the join of on-disk designs with their metadata
// records. The catalog is always rebuilt from its two sources of truth
// rather than patched incrementally, so racing mutations converge.
package catalog

import (
	"log"
	"os"
	"sort"
	"time"

	"github.com/atelierhq/atelier/internal/handler"
	"github.com/atelierhq/atelier/internal/metadata"
)

// Design is one catalog entry: a derived, presentation-ready view of a
// document joined with its metadata record. It is never persisted.
type Design struct {
	Name          string            `json:"name"`
	Path          string            `json:"path"`
	Body          string            `json:"body"`
	Size          int64             `json:"size"`
	ModTime       time.Time         `json:"modTime"`
	Viewport      Viewport          `json:"viewport"`
	Parent        string            `json:"parent,omitempty"`
	Status        metadata.Status   `json:"status"`
	DisplayStatus metadata.Status   `json:"displayStatus"`
	Tags          []string          `json:"tags,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	Version       int               `json:"version,omitempty"`
	Archived      bool              `json:"archived"`
}

// Builder produces catalogs. It reads the designs directory, the archive
// directory, and the metadata store; it never writes any of them.
type Builder struct {
	handler *handler.FileHandler
	store   *metadata.Store
}

func NewBuilder(h *handler.FileHandler, store *metadata.Store) *Builder {
	return &Builder{handler: h, store: store}
}

// Build returns every on-disk design joined with its metadata, newest
// first by modification time. Per-file read errors degrade that entry
// rather than failing the whole catalog.
func (b *Builder) Build() ([]Design, error) {
	active, err := b.handler.ListDesigns()
	if err != nil {
		return nil, err
	}
	archived, err := b.handler.ListArchived()
	if err != nil {
		return nil, err
	}

	records := b.store.All()

	designs := make([]Design, 0, len(active)+len(archived))
	for _, name := range active {
		designs = append(designs, b.buildOne(name, b.handler.DesignPath(name), records[name], false))
	}
	for _, name := range archived {
		designs = append(designs, b.buildOne(name, b.handler.ArchivePath(name), records[name], true))
	}

	sort.SliceStable(designs, func(i, j int) bool {
		return designs[i].ModTime.After(designs[j].ModTime)
	})

	return designs, nil
}

func (b *Builder) buildOne(name, path string, rec *metadata.Record, archived bool) Design {
	d := Design{
		Name:     name,
		Path:     path,
		Viewport: ClassifyViewport(name),
		Status:   metadata.StatusDraft,
		Archived: archived,
	}

	if info, err := os.Stat(path); err == nil {
		d.Size = info.Size()
		d.ModTime = info.ModTime()
	}

	if body, err := os.ReadFile(path); err == nil {
		dir := b.handler.DesignPath("")
		if archived {
			dir = b.handler.ArchivePath("")
		}
		d.Body = ApplyCompat(InlineStylesheets(string(body), dir))
	} else {
		// Transient read failure: ship the entry without a body; the next
		// rebuild trigger retries.
		log.Printf("catalog: failed to read %s: %v", path, err)
	}

	if rec != nil {
		d.Status = rec.Status
		d.Parent = rec.ParentDesign
		d.Tags = append([]string(nil), rec.Tags...)
		d.Notes = rec.Notes
		d.Version = rec.Version
	}

	// Presentation simplification only: exported designs share the
	// archived display bucket while the persisted value stays exported.
	d.DisplayStatus = d.Status
	if d.Status == metadata.StatusExported {
		d.DisplayStatus = metadata.StatusArchived
	}

	return d
}

// Find returns the design with the given name, if present.
func Find(designs []Design, name string) (Design, bool) {
	for _, d := range designs {
		if d.Name == name {
			return d, true
		}
	}
	return Design{}, false
}
