package reviewflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"skillport/internal/domain/catalog"
	"skillport/internal/domain/review"
	"skillport/internal/infrastructure/sessionstore"
	"skillport/internal/upstream"
	"skillport/pkg/id"
)

const defaultSessionTTL = 2 * time.Hour

// Usecase drives reviewer sessions: open, employee/item selection, and
// the confirm-gated approve / reason-gated reject commits.
type Usecase struct {
	gw    upstream.Gateway
	store sessionstore.Store
	log   *logrus.Logger
	ttl   time.Duration
}

func NewUsecase(gw upstream.Gateway, store sessionstore.Store, log *logrus.Logger) *Usecase {
	return &Usecase{gw: gw, store: store, log: log, ttl: defaultSessionTTL}
}

// SetSessionTTL overrides how long an idle review session is kept.
func (u *Usecase) SetSessionTTL(d time.Duration) {
	if d > 0 {
		u.ttl = d
	}
}

// Open fetches the reviewer's pending request groups and starts a session.
func (u *Usecase) Open(ctx context.Context, reviewer string, kind catalog.Kind) (*Session, error) {
	groups, err := u.gw.FetchPendingRequests(ctx, reviewer, kind)
	if err != nil {
		return nil, err
	}
	s := &Session{
		ID:       id.NewID32(),
		Reviewer: strings.ToLower(reviewer),
		Kind:     kind,
		Groups:   groups,
	}
	if err := u.save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Refresh refetches the request groups, reconciling any divergence left
// by a failed optimistic commit. Selection and dialogs are discarded; the
// open employee is kept when still present.
func (u *Usecase) Refresh(ctx context.Context, sessionID string) (*Session, error) {
	s, err := u.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	groups, err := u.gw.FetchPendingRequests(ctx, s.Reviewer, s.Kind)
	if err != nil {
		return nil, err
	}
	s.Groups = groups
	s.reset()
	s.Dirty = false
	if _, ok := s.Active(); !ok {
		s.ActiveID = ""
	}
	return s, u.save(ctx, s)
}

// Get loads a session without mutating it.
func (u *Usecase) Get(ctx context.Context, sessionID string) (*Session, error) {
	return u.load(ctx, sessionID)
}

// SetEmployee opens an employee's request group.
func (u *Usecase) SetEmployee(ctx context.Context, sessionID, groupID string) (*Session, error) {
	return u.mutate(ctx, sessionID, func(s *Session) error {
		return s.SetActive(groupID)
	})
}

// SelectItem toggles one item in the selection set.
func (u *Usecase) SelectItem(ctx context.Context, sessionID, itemID string) (*Session, error) {
	return u.mutate(ctx, sessionID, func(s *Session) error {
		return s.SelectItem(itemID)
	})
}

// SelectAll selects (or clears) every pending expert item for the active
// employee.
func (u *Usecase) SelectAll(ctx context.Context, sessionID string) (*Session, error) {
	return u.mutate(ctx, sessionID, func(s *Session) error {
		return s.SelectAllPendingExpert()
	})
}

// Approve commits the selected items, unless the selection covers every
// pending expert item for the employee, in which case it opens the
// confirmation dialog and commits nothing yet.
func (u *Usecase) Approve(ctx context.Context, sessionID string) (*Session, bool, error) {
	s, err := u.load(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	if len(s.Selected) == 0 {
		return nil, false, ErrNoSelection
	}
	if s.SelectedAllPending() && s.Dialog != DialogConfirmApprove {
		s.Dialog = DialogConfirmApprove
		return s, true, u.save(ctx, s)
	}
	err = u.commit(ctx, s, review.ActionApprove, "")
	return s, false, err
}

// ConfirmApprove commits after the confirmation dialog was acknowledged.
func (u *Usecase) ConfirmApprove(ctx context.Context, sessionID string) (*Session, error) {
	s, err := u.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(s.Selected) == 0 {
		return nil, ErrNoSelection
	}
	return s, u.commit(ctx, s, review.ActionApprove, "")
}

// Reject commits a rejection. A reason is mandatory; without one the
// commit is blocked before any upstream call and the reject dialog stays
// open.
func (u *Usecase) Reject(ctx context.Context, sessionID, reason string) (*Session, error) {
	s, err := u.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(s.Selected) == 0 {
		return nil, ErrNoSelection
	}
	if strings.TrimSpace(reason) == "" {
		s.Dialog = DialogReject
		if err := u.save(ctx, s); err != nil {
			return nil, err
		}
		return s, review.ErrReasonRequired
	}
	return s, u.commit(ctx, s, review.ActionReject, reason)
}

// commit sends the decision upstream and flips local state optimistically.
// On upstream failure the local flip is not rolled back: the session is
// marked dirty and reconciled by the next Refresh.
func (u *Usecase) commit(ctx context.Context, s *Session, action review.Action, reason string) error {
	if action == review.ActionReject && strings.TrimSpace(reason) == "" {
		reason = review.DefaultRejectReason
	}
	ids := append([]string(nil), s.Selected...)

	upErr := u.gw.Review(ctx, upstream.ReviewRequest{
		ReviewerEmail: s.Reviewer,
		Action:        action,
		Reason:        reason,
		ItemIDs:       ids,
	})

	if err := s.apply(action, ids, reason); err != nil {
		return err
	}
	s.reset()
	if upErr != nil {
		s.Dirty = true
		u.log.WithError(upErr).WithFields(logrus.Fields{
			"session": s.ID,
			"action":  action,
		}).Warn("review commit failed upstream; local state kept")
	}
	if err := u.save(ctx, s); err != nil {
		return err
	}
	return upErr
}

func (u *Usecase) load(ctx context.Context, sessionID string) (*Session, error) {
	var s Session
	if err := u.store.Get(ctx, "review:"+sessionID, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (u *Usecase) save(ctx context.Context, s *Session) error {
	if err := u.store.Put(ctx, "review:"+s.ID, s, u.ttl); err != nil {
		return fmt.Errorf("persist review session: %w", err)
	}
	return nil
}

func (u *Usecase) mutate(ctx context.Context, sessionID string, fn func(*Session) error) (*Session, error) {
	s, err := u.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	return s, u.save(ctx, s)
}
