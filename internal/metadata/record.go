package metadata

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Status is the lifecycle position of a tracked design. Transitions are
// unconstrained except that StatusArchived implies the file has been
// relocated to the archive directory.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusReview   Status = "review"
	StatusApproved Status = "approved"
	StatusArchived Status = "archived"
	StatusExported Status = "exported"
)

// ValidStatuses lists every persistable status, in lifecycle order.
var ValidStatuses = []Status{
	StatusDraft,
	StatusReview,
	StatusApproved,
	StatusArchived,
	StatusExported,
}

// ParseStatus normalizes user input into a Status.
func ParseStatus(s string) (Status, error) {
	candidate := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range ValidStatuses {
		if candidate == valid {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (valid: draft, review, approved, archived, exported)", s)
}

// FlexTime is a time.Time that unmarshals leniently. Metadata tables are
// occasionally hand-edited or written by other tooling, and a single odd
// timestamp format must not invalidate the whole table.
type FlexTime struct {
	time.Time
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		// Numbers (unix seconds) show up in tables written by older tools.
		var unix int64
		if numErr := json.Unmarshal(data, &unix); numErr == nil {
			t.Time = time.Unix(unix, 0).UTC()
			return nil
		}
		t.Time = time.Time{}
		return nil
	}

	if strings.TrimSpace(raw) == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := dateparse.ParseAny(raw)
	if err != nil {
		t.Time = time.Time{}
		return nil
	}

	t.Time = parsed.UTC()
	return nil
}

// Record is the persisted lifecycle metadata for one design, keyed by
// filename in the table.
type Record struct {
	Status       Status   `json:"status"`
	CreatedAt    FlexTime `json:"createdAt"`
	UpdatedAt    FlexTime `json:"updatedAt"`
	ParentDesign string   `json:"parentDesign,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	ExportedTo   string   `json:"exportedTo,omitempty"`
	Version      int      `json:"version,omitempty"`
}

// Clone returns a deep copy so cached records are never aliased by callers.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	dup := *r
	if r.Tags != nil {
		dup.Tags = append([]string(nil), r.Tags...)
	}
	return &dup
}

// HasTag reports whether the record carries the tag, case-insensitively.
func (r *Record) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// AddTags merges tags into the record's set, deduplicating case-insensitively
// and keeping the result sorted for stable persistence.
func (r *Record) AddTags(tags ...string) {
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" || r.HasTag(trimmed) {
			continue
		}
		r.Tags = append(r.Tags, trimmed)
	}
	sort.Strings(r.Tags)
}

func newRecord(now time.Time) *Record {
	return &Record{
		Status:    StatusDraft,
		CreatedAt: FlexTime{now},
		UpdatedAt: FlexTime{now},
		Version:   1,
	}
}
