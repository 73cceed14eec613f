// Package bridge is the only communication path between the host side
// (store, watcher, catalog builder) and the presentation surface. Both
// directions carry typed messages; neither side reaches into the other's
// state directly.
package bridge

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

const (
	requestBuffer      = 64
	notificationBuffer = 64

	// dedupeWindow bounds how many recent request IDs are remembered for
	// duplicate suppression.
	dedupeWindow = 256
)

// Bridge is a buffered, typed channel pair. Requests flow from the
// presentation surface to the host, notifications flow back. Duplicate
// request IDs inside the dedupe window are dropped so a retried submit
// cannot apply a mutation twice.
type Bridge struct {
	requests      chan Request
	notifications chan Notification

	mu     sync.Mutex
	seen   map[string]struct{}
	order  []string
	closed bool
}

func New() *Bridge {
	return &Bridge{
		requests:      make(chan Request, requestBuffer),
		notifications: make(chan Notification, notificationBuffer),
		seen:          make(map[string]struct{}, dedupeWindow),
	}
}

// Submit enqueues a request for the host. A missing EventID is assigned
// here so every request is individually traceable; the assigned ID is
// returned. Duplicates and submits after Close are dropped.
func (b *Bridge) Submit(req Request) string {
	req.Normalize()
	if req.EventID == "" {
		req.EventID = uuid.NewString()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return req.EventID
	}
	if _, dup := b.seen[req.EventID]; dup {
		log.Printf("bridge: dropping duplicate request %s (%s)", req.EventID, req.Kind)
		return req.EventID
	}
	b.remember(req.EventID)

	// The send stays under the lock: Close takes it too, so a submit can
	// never race the channel close.
	select {
	case b.requests <- req:
	default:
		log.Printf("bridge: request buffer full, dropping %s (%s)", req.EventID, req.Kind)
	}
	return req.EventID
}

// remember must be called with b.mu held.
func (b *Bridge) remember(id string) {
	b.seen[id] = struct{}{}
	b.order = append(b.order, id)
	if len(b.order) > dedupeWindow {
		oldest := b.order[0]
		b.order = b.order[1:]
		delete(b.seen, oldest)
	}
}

// Publish enqueues a notification for the presentation surface. A missing
// EventID is assigned. Publishing never blocks the host loop; if the
// presentation side has stalled the oldest pending notification is
// dropped in favor of the new one, because a later full catalog push
// always supersedes earlier state.
func (b *Bridge) Publish(n Notification) {
	if n.EventID == "" {
		n.EventID = uuid.NewString()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	// Like Submit, the sends stay under the lock so Close cannot slip in
	// between the closed check and a send. Every branch below is
	// non-blocking, so holding the lock here never stalls a submitter.
	for {
		select {
		case b.notifications <- n:
			return
		default:
		}
		select {
		case stale := <-b.notifications:
			log.Printf("bridge: notification buffer full, dropping stale %s", stale.Kind)
		default:
		}
	}
}

// Requests is the host-side receive channel.
func (b *Bridge) Requests() <-chan Request {
	return b.requests
}

// Notifications is the presentation-side receive channel.
func (b *Bridge) Notifications() <-chan Notification {
	return b.notifications
}

// Close tears down both directions. Safe to call once; submits and
// publishes after Close are no-ops.
func (b *Bridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.requests)
	close(b.notifications)
}
