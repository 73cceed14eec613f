package bridge

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/atelierhq/atelier/internal/catalog"
	"github.com/atelierhq/atelier/internal/handler"
	"github.com/atelierhq/atelier/internal/metadata"
	"github.com/atelierhq/atelier/internal/watcher"
)

// Host owns all mutable lifecycle state and serializes every mutation
// through a single event loop: watcher events and presentation requests
// are handled one at a time, and each mutation ends with a full catalog
// re-push.
type Host struct {
	store   *metadata.Store
	files   *handler.FileHandler
	builder *catalog.Builder
	bridge  *Bridge

	// Injection points so tests and headless commands can intercept the
	// side effects that would otherwise leave the process.
	writeClipboard func(string) error
	openExternal   func(string) error

	primary     string
	chatContext string

	// pendingConfirms maps confirmation tokens to the destructive request
	// awaiting an answer.
	pendingConfirms map[string]Request
}

func NewHost(store *metadata.Store, files *handler.FileHandler, builder *catalog.Builder, b *Bridge) *Host {
	return &Host{
		store:           store,
		files:           files,
		builder:         builder,
		bridge:          b,
		writeClipboard:  clipboard.WriteAll,
		openExternal:    OpenInBrowser,
		pendingConfirms: make(map[string]Request),
	}
}

// Run processes watcher events and presentation requests until the
// context is cancelled or both inputs close. It must be the only
// goroutine touching host state.
func (h *Host) Run(ctx context.Context, events <-chan watcher.Event) {
	requests := h.bridge.Requests()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			h.handleFileEvent(ev)
		case req, ok := <-requests:
			if !ok {
				return
			}
			h.handleRequest(req)
		}
	}
}

func (h *Host) handleFileEvent(ev watcher.Event) {
	switch ev.Op {
	case watcher.Created:
		if _, err := h.store.ApplyDefault(ev.Name); err != nil {
			log.Printf("host: failed to seed record for %s: %v", ev.Name, err)
		}
	case watcher.Deleted:
		// The record stays; external deletion may be a move the user will
		// undo, and the catalog mirrors disk regardless.
	}
	h.pushCatalog()
}

func (h *Host) handleRequest(req Request) {
	switch req.Kind {
	case RequestReady:
		h.pushCatalog()
	case RequestSetPrimary:
		h.primary = req.DesignID
		h.pushCatalog()
	case RequestSetChatContext:
		h.chatContext = req.DesignID
	case RequestConfirm:
		h.handleConfirm(req)
	case RequestAction:
		h.handleAction(req)
	default:
		log.Printf("host: ignoring unknown request kind %q", req.Kind)
	}
}

func (h *Host) handleAction(req Request) {
	if req.DesignID == "" {
		h.fail(req, fmt.Errorf("action %s requires a design", req.Action))
		return
	}

	switch req.Action {
	case ActionSetStatus:
		h.setStatus(req)
	case ActionArchive:
		h.archive(req)
	case ActionUnarchive:
		h.unarchive(req)
	case ActionDelete:
		h.requestDeleteConfirm(req)
	case ActionCopyPath:
		h.copyPath(req)
	case ActionCopyPrompt:
		h.copyPrompt(req)
	case ActionOpenExternal:
		h.open(req)
	default:
		h.fail(req, fmt.Errorf("unknown action %q", req.Action))
	}
}

func (h *Host) setStatus(req Request) {
	status, err := metadata.ParseStatus(req.Value)
	if err != nil {
		h.fail(req, err)
		return
	}

	// Setting archived is the archive operation: status and file location
	// change together or not at all.
	if status == metadata.StatusArchived {
		h.archive(req)
		return
	}

	if h.files.ExistsArchived(req.DesignID) && !h.files.Exists(req.DesignID) {
		h.unarchiveTo(req, status)
		return
	}

	if err := h.store.SetStatus(req.DesignID, status); err != nil {
		h.fail(req, err)
		return
	}
	h.bridge.Publish(Notification{Kind: NotifyStatusChanged, DesignID: req.DesignID, Status: status})
	h.pushCatalog()
}

func (h *Host) archive(req Request) {
	if h.files.Exists(req.DesignID) {
		if err := h.files.Archive(req.DesignID); err != nil {
			h.fail(req, err)
			return
		}
	} else if !h.files.ExistsArchived(req.DesignID) {
		h.fail(req, fmt.Errorf("design %s not found", req.DesignID))
		return
	}
	if err := h.store.SetStatus(req.DesignID, metadata.StatusArchived); err != nil {
		h.fail(req, err)
		return
	}
	h.bridge.Publish(Notification{Kind: NotifyStatusChanged, DesignID: req.DesignID, Status: metadata.StatusArchived})
	h.pushCatalog()
}

func (h *Host) unarchive(req Request) {
	// Restored designs re-enter the working set as drafts.
	h.unarchiveTo(req, metadata.StatusDraft)
}

func (h *Host) unarchiveTo(req Request, status metadata.Status) {
	if status == metadata.StatusArchived {
		status = metadata.StatusDraft
	}
	if h.files.ExistsArchived(req.DesignID) {
		if err := h.files.Unarchive(req.DesignID); err != nil {
			h.fail(req, err)
			return
		}
	} else if !h.files.Exists(req.DesignID) {
		h.fail(req, fmt.Errorf("design %s not found", req.DesignID))
		return
	}
	if err := h.store.SetStatus(req.DesignID, status); err != nil {
		h.fail(req, err)
		return
	}
	h.bridge.Publish(Notification{Kind: NotifyStatusChanged, DesignID: req.DesignID, Status: status})
	h.pushCatalog()
}

func (h *Host) requestDeleteConfirm(req Request) {
	token := req.EventID
	h.pendingConfirms[token] = req
	h.bridge.Publish(Notification{
		Kind:     NotifyConfirmRequested,
		DesignID: req.DesignID,
		Token:    token,
		Prompt:   fmt.Sprintf("Delete %s permanently? This removes the file and its metadata.", req.DesignID),
	})
}

func (h *Host) handleConfirm(req Request) {
	pending, ok := h.pendingConfirms[req.Token]
	if !ok {
		log.Printf("host: confirm for unknown token %q", req.Token)
		return
	}
	delete(h.pendingConfirms, req.Token)

	if !req.Accept {
		return
	}

	switch pending.Action {
	case ActionDelete:
		h.deleteDesign(pending)
	default:
		log.Printf("host: no confirmable handler for action %q", pending.Action)
	}
}

func (h *Host) deleteDesign(req Request) {
	if err := h.files.Delete(req.DesignID); err != nil {
		h.fail(req, err)
		return
	}
	if err := h.store.Delete(req.DesignID); err != nil {
		h.fail(req, err)
		return
	}
	if h.primary == req.DesignID {
		h.primary = ""
	}
	h.pushCatalog()
}

func (h *Host) copyPath(req Request) {
	path := h.files.DesignPath(req.DesignID)
	if !h.files.Exists(req.DesignID) && h.files.ExistsArchived(req.DesignID) {
		path = h.files.ArchivePath(req.DesignID)
	}
	if err := h.writeClipboard(path); err != nil {
		h.fail(req, err)
	}
}

func (h *Host) copyPrompt(req Request) {
	prompt := RefinementPrompt(h.files.DesignPath(req.DesignID), req.Value)
	if err := h.writeClipboard(prompt); err != nil {
		h.fail(req, err)
	}
}

func (h *Host) open(req Request) {
	path := h.files.DesignPath(req.DesignID)
	if err := h.openExternal(path); err != nil {
		h.fail(req, err)
	}
}

func (h *Host) fail(req Request, err error) {
	log.Printf("host: %s %s failed: %v", req.Kind, req.Action, err)
	h.bridge.Publish(Notification{
		Kind:     NotifyActionFailed,
		DesignID: req.DesignID,
		Err:      err.Error(),
	})
}

// pushCatalog rebuilds the full catalog from disk and the store, clears a
// dangling primary pointer, and publishes the result.
func (h *Host) pushCatalog() {
	designs, err := h.builder.Build()
	if err != nil {
		log.Printf("host: catalog rebuild failed: %v", err)
		h.bridge.Publish(Notification{Kind: NotifyActionFailed, Err: err.Error()})
		return
	}

	if h.primary != "" {
		if _, ok := catalog.Find(designs, h.primary); !ok {
			h.primary = ""
		}
	}

	h.bridge.Publish(Notification{
		Kind:    NotifyCatalog,
		Designs: designs,
		Primary: h.primary,
	})
}

// RefinementPrompt renders the agent instruction copied for a design.
// Extra guidance from the caller is appended when present.
func RefinementPrompt(path, extra string) string {
	prompt := fmt.Sprintf(
		"Refine the design mockup at %s. Keep the file self-contained: inline styles, no external build step. Preserve the existing layout structure and improve it in place.",
		path,
	)
	if extra != "" {
		prompt += "\n\nAdditional direction: " + extra
	}
	return prompt
}

// OpenInBrowser hands a file or URL to the platform opener.
func OpenInBrowser(target string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
	default:
		return exec.Command("xdg-open", target).Start()
	}
}
