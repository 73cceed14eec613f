package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/atelierhq/atelier/internal/constants"
)

var (
	// ErrNotFound indicates no record exists for the requested design.
	ErrNotFound = errors.New("metadata: record not found")
	// ErrPersist wraps persistence I/O failures. The in-memory cache stays
	// untouched when persistence fails, so reads remain correct until the
	// mutation is retried.
	ErrPersist = errors.New("metadata: persist failed")
)

type table struct {
	Version     string             `json:"version"`
	LastUpdated FlexTime           `json:"lastUpdated"`
	Designs     map[string]*Record `json:"designs"`
}

func newTable() *table {
	return &table{
		Version: constants.MetadataSchemaVersion,
		Designs: make(map[string]*Record),
	}
}

func (t *table) clone() *table {
	dup := &table{
		Version:     t.Version,
		LastUpdated: t.LastUpdated,
		Designs:     make(map[string]*Record, len(t.Designs)),
	}
	for name, rec := range t.Designs {
		dup.Designs[name] = rec.Clone()
	}
	return dup
}

// Store is the cached, file-backed metadata table. It is the single source
// of truth for design status within the host process; all mutations
// read-modify-write the whole table and persist atomically.
type Store struct {
	path string

	mu     sync.Mutex
	cached *table
	now    func() time.Time
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// load returns the cached table, reading it from disk on first access.
// A missing or malformed file degrades to an empty table; it never fails.
func (s *Store) load() *table {
	if s.cached != nil {
		return s.cached
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("metadata: unreadable table at %s, starting fresh: %v", s.path, err)
		}
		s.cached = newTable()
		return s.cached
	}

	t := newTable()
	if err := json.Unmarshal(data, t); err != nil {
		log.Printf("metadata: malformed table at %s, starting fresh: %v", s.path, err)
		s.cached = newTable()
		return s.cached
	}
	if t.Designs == nil {
		t.Designs = make(map[string]*Record)
	}
	s.cached = t
	return s.cached
}

// Invalidate drops the cache so the next access reloads from disk. Called
// when an external edit to the table file is detected.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// persist writes the candidate table atomically (temp file + rename) and
// swaps it into the cache only on success.
func (s *Store) persist(candidate *table) error {
	candidate.LastUpdated = FlexTime{s.now()}

	data, err := json.MarshalIndent(candidate, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}

	tmp, err := os.CreateTemp(dir, ".designs-*.json")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}

	s.cached = candidate
	return nil
}

// touch refreshes UpdatedAt, keeping it monotonically non-decreasing even
// when the wall clock steps backwards.
func (s *Store) touch(rec *Record) {
	now := s.now()
	if !now.After(rec.UpdatedAt.Time) {
		now = rec.UpdatedAt.Add(time.Millisecond)
	}
	rec.UpdatedAt = FlexTime{now}
}

// Get returns a copy of the record for name, or ErrNotFound.
func (s *Store) Get(name string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.load().Designs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return rec.Clone(), nil
}

// Set stores the record for name and persists the whole table.
func (s *Store) Set(name string, rec *Record) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("metadata: design name cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := s.load().clone()
	stored := rec.Clone()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = FlexTime{s.now()}
	}
	s.touch(stored)
	candidate.Designs[name] = stored

	return s.persist(candidate)
}

// ApplyDefault creates a draft record for name if none exists. It reports
// whether a record was created.
func (s *Store) ApplyDefault(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.load().Designs[name]; ok {
		return false, nil
	}

	candidate := s.load().clone()
	candidate.Designs[name] = newRecord(s.now())

	if err := s.persist(candidate); err != nil {
		return false, err
	}
	return true, nil
}

// Update applies fn to the record for name (creating a default first if
// absent), refreshes UpdatedAt, bumps the version counter, and persists.
func (s *Store) Update(name string, fn func(*Record)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := s.load().clone()
	rec, ok := candidate.Designs[name]
	if !ok {
		rec = newRecord(s.now())
		candidate.Designs[name] = rec
	}

	fn(rec)
	rec.Version++
	s.touch(rec)

	return s.persist(candidate)
}

// SetStatus is a convenience wrapper over Update for the common mutation.
func (s *Store) SetStatus(name string, status Status) error {
	return s.Update(name, func(rec *Record) {
		rec.Status = status
	})
}

// Delete removes the record for name. Deleting an absent record is a no-op.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.load().Designs[name]; !ok {
		return nil
	}

	candidate := s.load().clone()
	delete(candidate.Designs, name)

	return s.persist(candidate)
}

// All returns a copy of every record keyed by design name.
func (s *Store) All() map[string]*Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]*Record)
	for name, rec := range s.load().Designs {
		out[name] = rec.Clone()
	}
	return out
}

// ListByStatus returns the names of designs currently in the given status,
// sorted for stable output.
func (s *Store) ListByStatus(status Status) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var names []string
	for name, rec := range s.load().Designs {
		if rec.Status == status {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ListByTag returns the names of designs carrying the tag.
func (s *Store) ListByTag(tag string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var names []string
	for name, rec := range s.load().Designs {
		if rec.HasTag(tag) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// AllTags returns the deduplicated union of every record's tags.
func (s *Store) AllTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	var tags []string
	for _, rec := range s.load().Designs {
		for _, tag := range rec.Tags {
			key := strings.ToLower(tag)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}

// ArchiveOlderThan marks every non-archived design whose last update is
// older than the cutoff as archived, and returns the affected names. The
// caller is responsible for relocating the underlying files.
func (s *Store) ArchiveOlderThan(days int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().AddDate(0, 0, -days)
	candidate := s.load().clone()

	var archived []string
	for name, rec := range candidate.Designs {
		if rec.Status == StatusArchived || rec.Status == StatusExported {
			continue
		}
		if rec.UpdatedAt.After(cutoff) {
			continue
		}
		rec.Status = StatusArchived
		rec.Version++
		s.touch(rec)
		archived = append(archived, name)
	}

	if len(archived) == 0 {
		return nil, nil
	}

	if err := s.persist(candidate); err != nil {
		return nil, err
	}
	sort.Strings(archived)
	return archived, nil
}

// DeleteAllArchived removes every archived record from the table and
// returns the affected names. The caller deletes the archived files.
func (s *Store) DeleteAllArchived() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := s.load().clone()

	var removed []string
	for name, rec := range candidate.Designs {
		if rec.Status != StatusArchived {
			continue
		}
		delete(candidate.Designs, name)
		removed = append(removed, name)
	}

	if len(removed) == 0 {
		return nil, nil
	}

	if err := s.persist(candidate); err != nil {
		return nil, err
	}
	sort.Strings(removed)
	return removed, nil
}
