package portal

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"skillport/internal/domain/catalog"
	"skillport/internal/domain/selection"
	"skillport/internal/infrastructure/sessionstore"
	"skillport/internal/upstream"
	"skillport/internal/usecase/tableview"
	"skillport/pkg/id"
)

var (
	ErrBadKind         = errors.New("unknown table kind")
	ErrManagerRequired = errors.New("manager email required for new expert skills")
	ErrOwnManagerEmail = errors.New("manager email cannot be your own email")
	ErrNoMasterData    = errors.New("master data unavailable")
)

const defaultSessionTTL = 2 * time.Hour

// CatalogCache is the local fallback copy of the master catalogs, used
// when the upstream fetch fails so a session can still open over the
// last-known-good list.
type CatalogCache interface {
	GetMaster(ctx context.Context, kind catalog.Kind) ([]catalog.Item, error)
	PutMaster(ctx context.Context, kind catalog.Kind, items []catalog.Item) error
}

// Usecase drives employee table sessions over the upstream portal API.
type Usecase struct {
	gw    upstream.Gateway
	store sessionstore.Store
	cache CatalogCache
	log   *logrus.Logger
	ttl   time.Duration
}

func NewUsecase(gw upstream.Gateway, store sessionstore.Store, cache CatalogCache, log *logrus.Logger) *Usecase {
	return &Usecase{gw: gw, store: store, cache: cache, log: log, ttl: defaultSessionTTL}
}

// SetSessionTTL overrides how long an idle table session is kept.
func (u *Usecase) SetSessionTTL(d time.Duration) {
	if d > 0 {
		u.ttl = d
	}
}

// Open loads the master list and the employee's prior selections and
// starts a table session. An upstream 404 on the employee fetch means
// first-time use and seeds nothing.
func (u *Usecase) Open(ctx context.Context, kind catalog.Kind, email string) (*tableview.Session, error) {
	if !kind.Valid() {
		return nil, ErrBadKind
	}
	email = strings.ToLower(email)

	items, err := u.master(ctx, kind)
	if err != nil {
		return nil, err
	}
	pre, err := u.gw.FetchEmployee(ctx, email, kind)
	if err != nil {
		return nil, err
	}

	s := tableview.New(id.NewID32(), kind, email, items, pre)
	return s, u.save(ctx, s)
}

func (u *Usecase) master(ctx context.Context, kind catalog.Kind) ([]catalog.Item, error) {
	items, err := u.gw.FetchMaster(ctx, kind)
	if err == nil {
		if u.cache != nil {
			if cerr := u.cache.PutMaster(ctx, kind, items); cerr != nil {
				u.log.WithError(cerr).Warn("master cache write failed")
			}
		}
		return items, nil
	}
	u.log.WithError(err).WithField("kind", kind).Warn("master fetch failed, trying cache")
	if u.cache != nil {
		cached, cerr := u.cache.GetMaster(ctx, kind)
		if cerr == nil && len(cached) > 0 {
			return cached, nil
		}
	}
	return nil, err
}

// Reload refetches master data and preselections and reseeds the session,
// reconciling any divergence left by a failed save.
func (u *Usecase) Reload(ctx context.Context, sessionID string) (*tableview.Session, error) {
	s, err := u.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	items, err := u.master(ctx, s.Kind)
	if err != nil {
		return nil, err
	}
	pre, err := u.gw.FetchEmployee(ctx, s.Employee, s.Kind)
	if err != nil {
		return nil, err
	}
	s.Seed(items, pre)
	s.Dirty = false
	return s, u.save(ctx, s)
}

// View composes the currently visible page.
func (u *Usecase) View(ctx context.Context, sessionID string) (tableview.View, error) {
	s, err := u.load(ctx, sessionID)
	if err != nil {
		return tableview.View{}, err
	}
	return s.View(), nil
}

// Options returns the cascading filter options for a column.
func (u *Usecase) Options(ctx context.Context, sessionID string, col catalog.Column) ([]string, error) {
	s, err := u.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.Options(col)
}

// Mutate applies a state change to a stored session and persists it.
func (u *Usecase) Mutate(ctx context.Context, sessionID string, fn func(*tableview.Session) error) (*tableview.Session, error) {
	s, err := u.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	return s, u.save(ctx, s)
}

// Save pushes the session's selections upstream. Newly claimed expert
// skills require a manager on file: when the session has none, the
// caller must supply a manager email that differs from the employee's
// own. On upstream failure the session is marked dirty and left
// last-known-good for a later Reload.
func (u *Usecase) Save(ctx context.Context, sessionID, managerEmail string) (*tableview.Session, error) {
	s, err := u.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	managerEmail = strings.ToLower(strings.TrimSpace(managerEmail))

	if len(s.NewExpertSkills()) > 0 && s.ManagerEmail == "" && managerEmail == "" {
		return s, ErrManagerRequired
	}
	if managerEmail != "" && managerEmail == s.Employee {
		return s, ErrOwnManagerEmail
	}
	if managerEmail != "" {
		s.ManagerEmail = managerEmail
	}

	req := upstream.SaveRequest{
		Email:        s.Employee,
		ManagerEmail: s.ManagerEmail,
		Kind:         s.Kind,
	}
	if s.Kind == catalog.KindCertificates {
		for _, e := range s.Certs {
			req.Certificates = append(req.Certificates, e)
		}
	} else {
		for hashID, e := range s.Skills {
			req.Skills = append(req.Skills, upstream.SkillClaim{HashID: hashID, Level: e.Level})
		}
	}

	if err := u.gw.SaveEmployee(ctx, req); err != nil {
		s.Dirty = true
		if serr := u.save(ctx, s); serr != nil {
			u.log.WithError(serr).Warn("persist dirty session failed")
		}
		return s, err
	}

	// refresh server-origin status metadata (new expert claims come back
	// Pending)
	pre, err := u.gw.FetchEmployee(ctx, s.Employee, s.Kind)
	if err == nil {
		s.Skills = map[string]selection.Entry{}
		s.Certs = map[string]selection.CertEntry{}
		s.Cleared = map[string]bool{}
		s.RowSig = ""
		s.Seed(s.Items, pre)
	} else {
		u.log.WithError(err).Warn("post-save refetch failed")
	}
	return s, u.save(ctx, s)
}

func (u *Usecase) load(ctx context.Context, sessionID string) (*tableview.Session, error) {
	var s tableview.Session
	if err := u.store.Get(ctx, "table:"+sessionID, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (u *Usecase) save(ctx context.Context, s *tableview.Session) error {
	return u.store.Put(ctx, "table:"+s.ID, s, u.ttl)
}
