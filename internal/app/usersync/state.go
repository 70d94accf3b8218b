package usersync

import dom "usermgmt/internal/domain/user"

type View string

const (
	ViewForm View = "form"
	ViewList View = "list"
)

func ParseView(s string) (View, bool) {
	switch View(s) {
	case ViewForm:
		return ViewForm, true
	case ViewList:
		return ViewList, true
	}
	return "", false
}

// State is everything one UI session knows about the users collection.
// Editing is only ever set while View is ViewForm.
type State struct {
	View    View       `json:"view"`
	Users   []dom.User `json:"users"`
	Editing *dom.User  `json:"editing,omitempty"`

	// LastError is the most recent remote failure, cleared by the next success.
	LastError string `json:"lastError,omitempty"`
	// Generation is the change-feed generation Users was fetched at.
	Generation uint64 `json:"generation"`
}

// NewState returns the state of a fresh session: an empty form, nothing loaded.
func NewState() State {
	return State{View: ViewForm, Users: []dom.User{}}
}

// EditingID is the id of the record being edited, or "".
func (s *State) EditingID() string {
	if s.Editing == nil {
		return ""
	}
	return s.Editing.ID
}

func (s *State) indexOf(id string) int {
	for i, u := range s.Users {
		if u.ID == id {
			return i
		}
	}
	return -1
}
