package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op is the logical change reported for a design after coalescing.
type Op int

const (
	Created Op = iota
	Modified
	Deleted
)

func (op Op) String() string {
	switch op {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Event is one logical change notification for a single design file.
type Event struct {
	Name string
	Op   Op
}

// RecordSeeder is the slice of the metadata store the reconciliation pass
// needs: the ability to create a default record when none exists.
type RecordSeeder interface {
	ApplyDefault(name string) (bool, error)
}

// Monitor watches one directory for design-file changes and emits one
// coalesced logical event per affected file. A save that produces several
// low-level filesystem events within the coalescing window yields a single
// notification; an event is suppressed entirely when the net on-disk state
// matches what was last reported.
type Monitor struct {
	dir    string
	ext    string
	window time.Duration

	fsw    *fsnotify.Watcher
	events chan Event
	errs   chan error
	done   chan struct{}
	once   sync.Once

	mu       sync.Mutex
	pending  map[string]*time.Timer
	reported map[string]bool
}

func NewMonitor(dir, ext string, window time.Duration) (*Monitor, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("watch directory cannot be empty")
	}
	if window <= 0 {
		window = 250 * time.Millisecond
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	m := &Monitor{
		dir:      dir,
		ext:      ext,
		window:   window,
		fsw:      fsw,
		events:   make(chan Event, 64),
		errs:     make(chan error, 8),
		done:     make(chan struct{}),
		pending:  make(map[string]*time.Timer),
		reported: make(map[string]bool),
	}

	// Seed the reported set so only changes after startup fire events; the
	// initial catalog build covers the state at startup.
	m.seedReported()

	go m.run()

	return m, nil
}

// Events returns the coalesced notification channel.
func (m *Monitor) Events() <-chan Event {
	return m.events
}

// Errors returns watcher-level failures. These are transient by taxonomy;
// consumers log and carry on until the next rebuild trigger.
func (m *Monitor) Errors() <-chan error {
	return m.errs
}

func (m *Monitor) Close() error {
	var closeErr error
	m.once.Do(func() {
		close(m.done)
		closeErr = m.fsw.Close()

		m.mu.Lock()
		for _, timer := range m.pending {
			timer.Stop()
		}
		m.pending = map[string]*time.Timer{}
		m.mu.Unlock()
	})
	return closeErr
}

// Reconcile performs the startup pass: every on-disk design lacking a
// metadata record gets a default one. Records without a matching file are
// deliberately left in place; the file may only have moved to the archive
// and its tracked status must survive that move.
func (m *Monitor) Reconcile(seeder RecordSeeder) (int, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	seeded := 0
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !m.relevant(entry.Name()) {
			continue
		}
		created, err := seeder.ApplyDefault(entry.Name())
		if err != nil {
			return seeded, err
		}
		if created {
			seeded++
		}
	}
	return seeded, nil
}

func (m *Monitor) seedReported() {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if m.relevant(entry.Name()) {
			m.reported[entry.Name()] = true
		}
	}
}

func (m *Monitor) run() {
	for {
		select {
		case <-m.done:
			return
		case event, ok := <-m.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Base(event.Name)
			if !m.relevant(name) {
				continue
			}
			m.schedule(name)
		case err, ok := <-m.fsw.Errors:
			if !ok {
				return
			}
			if err != nil {
				select {
				case m.errs <- err:
				default:
				}
			}
		}
	}
}

func (m *Monitor) relevant(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), m.ext)
}

// schedule arms (or re-arms) the coalescing timer for a file. All raw
// events for the same file inside the window collapse into one flush.
func (m *Monitor) schedule(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if timer, ok := m.pending[name]; ok {
		timer.Reset(m.window)
		return
	}

	m.pending[name] = time.AfterFunc(m.window, func() {
		m.flush(name)
	})
}

// flush compares the net on-disk state with the last reported state and
// emits at most one logical event. A create immediately undone by a delete
// nets out to "absent": if absent was also the last report, nothing fires;
// if the file was previously reported present, a Deleted still fires.
func (m *Monitor) flush(name string) {
	select {
	case <-m.done:
		return
	default:
	}

	info, err := os.Stat(filepath.Join(m.dir, name))
	exists := err == nil && !info.IsDir()

	m.mu.Lock()
	delete(m.pending, name)
	last := m.reported[name]

	var event *Event
	switch {
	case exists && !last:
		event = &Event{Name: name, Op: Created}
	case exists && last:
		event = &Event{Name: name, Op: Modified}
	case !exists && last:
		event = &Event{Name: name, Op: Deleted}
	}

	if exists {
		m.reported[name] = true
	} else {
		delete(m.reported, name)
	}
	m.mu.Unlock()

	if event == nil {
		return
	}

	select {
	case m.events <- *event:
	case <-m.done:
	}
}
