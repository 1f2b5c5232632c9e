package upstream

import (
	"context"
	"errors"
	"io"

	"skillport/internal/domain/catalog"
	"skillport/internal/domain/review"
	"skillport/internal/domain/selection"
)

var (
	// ErrUnavailable wraps transport-level failures. State is left
	// last-known-good; the caller may retry.
	ErrUnavailable = errors.New("upstream unavailable")
	// ErrRejected wraps upstream 4xx responses other than the
	// 404-means-no-data-yet case.
	ErrRejected = errors.New("upstream rejected request")
)

// SkillClaim is one saved skill selection in the save payload.
type SkillClaim struct {
	HashID string          `json:"hashId"`
	Level  selection.Level `json:"Level"`
}

// SaveRequest carries an employee's full selection set upstream.
type SaveRequest struct {
	Email        string                `json:"email"`
	ManagerEmail string                `json:"managerEmail,omitempty"`
	Kind         catalog.Kind          `json:"-"`
	Skills       []SkillClaim          `json:"skills,omitempty"`
	Certificates []selection.CertEntry `json:"certificates,omitempty"`
}

// ReviewRequest commits reviewer decisions upstream.
type ReviewRequest struct {
	ReviewerEmail string        `json:"approvedByEmail"`
	Action        review.Action `json:"action"`
	Reason        string        `json:"reason,omitempty"`
	ItemIDs       []string      `json:"-"`
}

// Gateway is the stable boundary to the remote portal API. The wire
// format is owned by the backend; this interface only promises the five
// collaborator calls plus the two byte-stream passthroughs.
type Gateway interface {
	// FetchMaster loads a master catalog, already normalized.
	FetchMaster(ctx context.Context, kind catalog.Kind) ([]catalog.Item, error)
	// FetchEmployee loads prior selections. A 404 means "no data yet"
	// and returns an empty preselection, not an error.
	FetchEmployee(ctx context.Context, email string, kind catalog.Kind) (selection.Preselection, error)
	// SaveEmployee persists the selection set.
	SaveEmployee(ctx context.Context, req SaveRequest) error
	// FetchPendingRequests loads the reviewer's request groups.
	FetchPendingRequests(ctx context.Context, reviewerEmail string, kind catalog.Kind) ([]review.Group, error)
	// Review commits approve/reject decisions.
	Review(ctx context.Context, req ReviewRequest) error
	// MasterFile streams the master export; the caller closes the reader.
	MasterFile(ctx context.Context, kind catalog.Kind) (io.ReadCloser, string, error)
	// UploadCV forwards a CV byte stream.
	UploadCV(ctx context.Context, email, filename string, body io.Reader) error
}
