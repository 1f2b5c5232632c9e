package reviewflow

import (
	"errors"

	"skillport/internal/domain/catalog"
	"skillport/internal/domain/review"
)

var (
	ErrNoSelection     = errors.New("no items selected")
	ErrNoEmployee      = errors.New("no employee selected")
	ErrUnknownEmployee = errors.New("unknown employee")
)

// Dialog is the modal the reviewer currently has open, if any.
type Dialog string

const (
	DialogNone           Dialog = ""
	DialogConfirmApprove Dialog = "confirm-approve"
	DialogReject         Dialog = "reject"
)

// Session is one reviewer's state over the pending-request groups: the
// open employee, the item selection set, and any pending dialog. Mutated
// optimistically on commit; discarded and refetched on the next load.
type Session struct {
	ID       string         `json:"id"`
	Reviewer string         `json:"reviewer"`
	Kind     catalog.Kind   `json:"kind"`
	Groups   []review.Group `json:"groups"`
	ActiveID string         `json:"activeId,omitempty"`
	Selected []string       `json:"selected,omitempty"`
	Dialog   Dialog         `json:"dialog,omitempty"`
	Dirty    bool           `json:"dirty,omitempty"`
}

// Active returns the open employee's group.
func (s *Session) Active() (*review.Group, bool) {
	for i := range s.Groups {
		if s.Groups[i].ID == s.ActiveID {
			return &s.Groups[i], true
		}
	}
	return nil, false
}

// SetActive opens an employee and clears the item selection.
func (s *Session) SetActive(groupID string) error {
	for i := range s.Groups {
		if s.Groups[i].ID == groupID {
			s.ActiveID = groupID
			s.Selected = nil
			s.Dialog = DialogNone
			return nil
		}
	}
	return ErrUnknownEmployee
}

// SelectItem toggles one pending item for the active employee.
func (s *Session) SelectItem(itemID string) error {
	g, ok := s.Active()
	if !ok {
		return ErrNoEmployee
	}
	pending := false
	for _, it := range g.Items {
		if it.ItemID == itemID && it.PendingExpert() {
			pending = true
			break
		}
	}
	if !pending {
		return review.ErrNotFound
	}
	for i, id := range s.Selected {
		if id == itemID {
			s.Selected = append(s.Selected[:i], s.Selected[i+1:]...)
			return nil
		}
	}
	s.Selected = append(s.Selected, itemID)
	return nil
}

// SelectAllPendingExpert selects every pending expert item for the active
// employee, or clears the selection when everything is already selected.
func (s *Session) SelectAllPendingExpert() error {
	g, ok := s.Active()
	if !ok {
		return ErrNoEmployee
	}
	all := g.PendingExpertIDs()
	if len(s.Selected) == len(all) && len(all) > 0 {
		s.Selected = nil
		return nil
	}
	s.Selected = all
	return nil
}

func (s *Session) isSelected(id string) bool {
	for _, v := range s.Selected {
		if v == id {
			return true
		}
	}
	return false
}

// SelectedAllPending reports whether the selection covers every pending
// expert item of the active employee, the condition that requires an
// explicit confirmation before a bulk approve.
func (s *Session) SelectedAllPending() bool {
	g, ok := s.Active()
	if !ok {
		return false
	}
	total := g.PendingExpertCount()
	return total > 0 && len(s.Selected) == total
}

// SidebarEntry is one employee line in the pending-requests sidebar.
type SidebarEntry struct {
	ID           string `json:"id"`
	Employee     string `json:"employee"`
	PendingCount int    `json:"pendingCount"`
}

// Sidebar lists employees with at least one pending expert item. The
// currently open employee stays listed even when fully reviewed, so the
// panel is not yanked out from under the reviewer mid-review.
func (s *Session) Sidebar() []SidebarEntry {
	var out []SidebarEntry
	for _, g := range s.Groups {
		n := g.PendingExpertCount()
		if n == 0 && g.ID != s.ActiveID {
			continue
		}
		out = append(out, SidebarEntry{ID: g.ID, Employee: g.Employee, PendingCount: n})
	}
	return out
}

// apply performs the optimistic local flip after a commit was sent.
func (s *Session) apply(action review.Action, itemIDs []string, reason string) error {
	g, ok := s.Active()
	if !ok {
		return ErrNoEmployee
	}
	return g.Apply(action, itemIDs, reason)
}

// reset clears the selection set and closes any open dialog.
func (s *Session) reset() {
	s.Selected = nil
	s.Dialog = DialogNone
}
