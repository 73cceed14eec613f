package bridge

import (
	"strings"

	"github.com/atelierhq/atelier/internal/catalog"
	"github.com/atelierhq/atelier/internal/metadata"
)

// RequestKind identifies an intent sent from the presentation surface to
// the host. The presentation side never mutates host state directly; every
// mutation travels through one of these.
type RequestKind string

const (
	// RequestReady triggers a full catalog push.
	RequestReady RequestKind = "ready"
	// RequestSetPrimary moves or clears the single primary-design slot.
	RequestSetPrimary RequestKind = "setPrimary"
	// RequestAction performs a per-design action (see ActionKind).
	RequestAction RequestKind = "action"
	// RequestSetChatContext records the document the agent conversation is
	// currently anchored to.
	RequestSetChatContext RequestKind = "setChatContext"
	// RequestConfirm answers a pending destructive-action confirmation.
	RequestConfirm RequestKind = "confirm"
)

// ActionKind enumerates the per-design actions.
type ActionKind string

const (
	ActionSetStatus    ActionKind = "setStatus"
	ActionCopyPrompt   ActionKind = "copyPrompt"
	ActionCopyPath     ActionKind = "copyPath"
	ActionOpenExternal ActionKind = "openExternal"
	ActionArchive      ActionKind = "archive"
	ActionUnarchive    ActionKind = "unarchive"
	ActionDelete       ActionKind = "delete"
)

// Request is one typed message from the presentation surface.
type Request struct {
	EventID  string      `json:"eventId"`
	Kind     RequestKind `json:"kind"`
	DesignID string      `json:"designId,omitempty"`
	Action   ActionKind  `json:"action,omitempty"`
	Value    string      `json:"value,omitempty"`

	// Confirm fields: Token echoes the ConfirmRequested notification,
	// Accept carries the user's decision.
	Token  string `json:"token,omitempty"`
	Accept bool   `json:"accept,omitempty"`
}

// Normalize trims identifier fields before validation or dispatch.
func (r *Request) Normalize() {
	r.EventID = strings.TrimSpace(r.EventID)
	r.DesignID = strings.TrimSpace(r.DesignID)
	r.Token = strings.TrimSpace(r.Token)
}

// NotificationKind identifies a fact pushed from the host to the
// presentation surface.
type NotificationKind string

const (
	// NotifyCatalog carries the full ordered design list. Every mutation
	// of catalog-visible state is followed by one of these; the
	// presentation side never reconciles partial updates.
	NotifyCatalog NotificationKind = "catalogUpdated"
	// NotifyStatusChanged reports a single status transition, in addition
	// to (never instead of) the catalog re-push.
	NotifyStatusChanged NotificationKind = "statusChanged"
	// NotifyActionFailed reports a failed user-initiated action.
	NotifyActionFailed NotificationKind = "actionFailed"
	// NotifyConfirmRequested asks the presentation surface to confirm a
	// destructive action before the host touches the filesystem.
	NotifyConfirmRequested NotificationKind = "confirmRequested"
)

// Notification is one typed message from the host.
type Notification struct {
	EventID string           `json:"eventId"`
	Kind    NotificationKind `json:"kind"`

	Designs []catalog.Design `json:"designs,omitempty"`
	Primary string           `json:"primary,omitempty"`

	DesignID string          `json:"designId,omitempty"`
	Status   metadata.Status `json:"status,omitempty"`

	Err    string `json:"err,omitempty"`
	Prompt string `json:"prompt,omitempty"`
	Token  string `json:"token,omitempty"`
}
