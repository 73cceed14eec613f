package handler

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileHandler owns every filesystem mutation under the designs directory.
// Moves are copy-then-delete so a failure mid-operation leaves the source
// intact rather than losing the document.
type FileHandler struct {
	designsDir string
	archiveDir string
	extension  string
}

func NewFileHandler(designsDir, archiveDir, extension string) *FileHandler {
	return &FileHandler{
		designsDir: designsDir,
		archiveDir: archiveDir,
		extension:  extension,
	}
}

// DesignPath returns the absolute path of an active (non-archived) design.
func (h *FileHandler) DesignPath(name string) string {
	return filepath.Join(h.designsDir, name)
}

// ArchivePath returns the absolute path a design occupies once archived.
func (h *FileHandler) ArchivePath(name string) string {
	return filepath.Join(h.archiveDir, name)
}

// ListDesigns returns the design filenames currently in the active
// directory, ignoring dotfiles, subdirectories, and foreign extensions.
func (h *FileHandler) ListDesigns() ([]string, error) {
	entries, err := os.ReadDir(h.designsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read designs directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), h.extension) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ListArchived returns the design filenames currently in the archive
// directory.
func (h *FileHandler) ListArchived() ([]string, error) {
	entries, err := os.ReadDir(h.archiveDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read archive directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), h.extension) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Archive relocates a design into the archive directory.
func (h *FileHandler) Archive(name string) error {
	return moveFile(h.DesignPath(name), h.ArchivePath(name))
}

// Unarchive relocates a design from the archive directory back into the
// active designs directory.
func (h *FileHandler) Unarchive(name string) error {
	return moveFile(h.ArchivePath(name), h.DesignPath(name))
}

// Delete permanently removes a design, wherever it currently lives.
// Deleting a file that is already gone is not an error; the watcher and
// user actions race and must converge on the same state.
func (h *FileHandler) Delete(name string) error {
	if err := os.Remove(h.DesignPath(name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(h.ArchivePath(name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists reports whether the design is present in the active directory.
func (h *FileHandler) Exists(name string) bool {
	info, err := os.Stat(h.DesignPath(name))
	return err == nil && !info.IsDir()
}

// ExistsArchived reports whether the design is present in the archive.
func (h *FileHandler) ExistsArchived(name string) bool {
	info, err := os.Stat(h.ArchivePath(name))
	return err == nil && !info.IsDir()
}

// moveFile copies src to dst and removes src only after the copy has been
// flushed. Never delete-then-copy: a crash between the two steps must not
// lose the document.
func moveFile(src, dst string) error {
	if src == dst {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}

	if err := os.Remove(src); err != nil {
		// The copy landed; a leftover source is recoverable, a lost file is
		// not. Surface the error so the caller can retry the cleanup.
		return errors.Join(fmt.Errorf("copied but failed to remove source %s", src), err)
	}

	return nil
}
