package designs

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// Session is the on-disk mirror of the view state. It is a convenience
// only: a missing or corrupt file means a fresh gallery, never an error.
type Session struct {
	View      ViewState `json:"view"`
	SortField int       `json:"sortField"`
	SortOrder int       `json:"sortOrder"`
}

// LoadSession restores a saved session. Any failure degrades to the
// default view state.
func LoadSession(path string) Session {
	fresh := Session{View: *NewViewState()}

	data, err := os.ReadFile(path)
	if err != nil {
		return fresh
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("session: ignoring corrupt session file %s: %v", path, err)
		return fresh
	}
	if s.View.Mode == "" {
		s.View.Mode = ModeGallery
	}
	// A hand-edited session must not bypass the compare cap. Keep the
	// newest members, matching ToggleCompare's eviction order.
	if len(s.View.CompareSet) > maxCompare {
		s.View.CompareSet = s.View.CompareSet[len(s.View.CompareSet)-maxCompare:]
	}
	return s
}

// SaveSession persists the session mirror. Failures are logged and
// swallowed; losing a session is not worth failing the exit path.
func SaveSession(path string, s Session) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("session: failed to create dir for %s: %v", path, err)
		return
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		log.Printf("session: failed to encode session: %v", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("session: failed to write %s: %v", path, err)
	}
}
