package selection

import "errors"

var (
	ErrInvalidLevel      = errors.New("invalid proficiency level")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Level is a proficiency tier. L3 (expert) is the only tier that goes
// through the manager review workflow.
type Level string

const (
	LevelBasic        Level = "L1"
	LevelIntermediate Level = "L2"
	LevelExpert       Level = "L3"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBasic, LevelIntermediate, LevelExpert:
		return true
	}
	return false
}

// Status is the review state of a claimed skill. Historically free-form
// strings upstream; modeled here as a closed enumeration with the only
// legal transitions Pending→Approved and Pending→Rejected, both terminal.
type Status string

const (
	StatusNone        Status = ""
	StatusPending     Status = "Pending"
	StatusApproved    Status = "Approved"
	StatusPreApproved Status = "Pre-Approved"
	StatusRejected    Status = "Rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNone, StatusPending, StatusApproved, StatusPreApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further review transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusPreApproved
}

// CanTransition guards the review state machine at the boundary.
func (s Status) CanTransition(to Status) bool {
	if s != StatusPending {
		return false
	}
	return to == StatusApproved || to == StatusRejected
}

// Transition returns the new status or ErrInvalidTransition.
func (s Status) Transition(to Status) (Status, error) {
	if !s.CanTransition(to) {
		return s, ErrInvalidTransition
	}
	return to, nil
}

// Entry is one employee skill claim, keyed by the master item's hashId.
// Status and RejectReason are server-origin metadata merged in on load;
// only Level is edited locally.
type Entry struct {
	Level        Level  `json:"Level,omitempty"`
	Status       Status `json:"Status,omitempty"`
	RejectReason string `json:"RejectReason,omitempty"`
}

// CertEntry caches the fields the save payload needs for a selected
// certificate.
type CertEntry struct {
	ApprovalStatus string `json:"approvalStatus,omitempty"`
	CertProvider   string `json:"certProvider,omitempty"`
	CertName       string `json:"certName,omitempty"`
	CertLevel      string `json:"certLevel,omitempty"`
}

// Preselection is the employee's prior server-confirmed choices, merged
// into local selection state at load. A first-time employee has an empty
// preselection (the upstream 404 case).
type Preselection struct {
	Skills map[string]Entry     `json:"skills,omitempty"`
	Certs  map[string]CertEntry `json:"certificates,omitempty"`
}
