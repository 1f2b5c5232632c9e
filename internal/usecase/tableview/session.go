package tableview

import (
	"errors"
	"sort"
	"strings"

	"skillport/internal/domain/catalog"
	"skillport/internal/domain/selection"
)

var (
	ErrUnknownRow      = errors.New("unknown row")
	ErrBadPageSize     = errors.New("unsupported page size")
	ErrColumnNotOfKind = errors.New("column does not belong to this table")
)

// PageSizes are the selectable page sizes, matching the portal UI.
var PageSizes = []int{5, 10, 20, 50, 100}

const DefaultPageSize = 20

// Session is the full client-side state of one data table: column
// filters, row selections, search, pagination and the unselected-only
// toggle. It is a plain value so it round-trips through the session store
// as JSON; the taxonomy index is rebuilt lazily after a load.
type Session struct {
	ID             string                         `json:"id"`
	Kind           catalog.Kind                   `json:"kind"`
	Employee       string                         `json:"employee"`
	ManagerEmail   string                         `json:"managerEmail,omitempty"`
	Items          []catalog.Item                 `json:"items"`
	RowSig         string                         `json:"rowSig"`
	Filters        catalog.FilterState            `json:"filters"`
	Skills         map[string]selection.Entry     `json:"skills,omitempty"`
	Certs          map[string]selection.CertEntry `json:"certs,omitempty"`
	Cleared        map[string]bool                `json:"cleared,omitempty"`
	Search         string                         `json:"search"`
	UnselectedOnly bool                           `json:"unselectedOnly"`
	Page           int                            `json:"page"`
	PageSize       int                            `json:"pageSize"`
	ScrollOffset   int                            `json:"scrollOffset"`
	Dirty          bool                           `json:"dirty"`
	Pre            selection.Preselection         `json:"pre"`

	index *catalog.Index
}

// New builds a session over the master list and seeds it from the
// employee's prior server-confirmed selections.
func New(id string, kind catalog.Kind, employee string, items []catalog.Item, pre selection.Preselection) *Session {
	s := &Session{
		ID:       id,
		Kind:     kind,
		Employee: employee,
		Filters:  catalog.FilterState{},
		Skills:   map[string]selection.Entry{},
		Certs:    map[string]selection.CertEntry{},
		Cleared:  map[string]bool{},
		Page:     1,
		PageSize: DefaultPageSize,
	}
	s.Seed(items, pre)
	return s
}

// Seed merges server-supplied prior selections into local state. Local
// edits made after an earlier seed are never overwritten unless the
// underlying row set itself changed, in which case local state is rebuilt
// from the preselection.
func (s *Session) Seed(items []catalog.Item, pre selection.Preselection) {
	sig := rowSignature(items)
	rowsChanged := sig != s.RowSig
	if rowsChanged {
		s.Items = items
		s.RowSig = sig
		s.index = nil
		s.Skills = map[string]selection.Entry{}
		s.Certs = map[string]selection.CertEntry{}
		s.Cleared = map[string]bool{}
	}

	present := make(map[string]bool, len(s.Items))
	for _, it := range s.Items {
		present[it.HashID] = true
	}

	for id, e := range pre.Skills {
		if !present[id] || s.Cleared[id] {
			continue
		}
		if _, edited := s.Skills[id]; edited && !rowsChanged {
			continue
		}
		s.Skills[id] = e
	}
	for id, e := range pre.Certs {
		if !present[id] || s.Cleared[id] {
			continue
		}
		if _, edited := s.Certs[id]; edited && !rowsChanged {
			continue
		}
		s.Certs[id] = e
	}
	s.Pre = pre
}

func rowSignature(items []catalog.Item) string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.HashID)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// Index returns the taxonomy index, rebuilding it after deserialization.
func (s *Session) Index() *catalog.Index {
	if s.index == nil {
		s.index = catalog.BuildIndex(s.Kind, s.Items)
	}
	return s.index
}

// Options computes the cascading filter option set for a column.
func (s *Session) Options(col catalog.Column) ([]string, error) {
	if !s.ownsColumn(col) {
		return nil, ErrColumnNotOfKind
	}
	return s.Index().OptionsFor(col, s.Filters)
}

func (s *Session) ownsColumn(col catalog.Column) bool {
	for _, c := range catalog.Columns(s.Kind) {
		if c == col {
			return true
		}
	}
	return false
}

// SetSearch sets the free-text search term. A non-empty term suppresses
// the column filters wholesale, so they are cleared, matching the portal.
// Resets pagination.
func (s *Session) SetSearch(term string) {
	s.Search = strings.TrimSpace(term)
	if s.Search != "" {
		s.Filters = catalog.FilterState{}
	}
	s.Page = 1
}

// ToggleFilter flips membership of value in the column's selected set and
// clears every strictly-dependent descendant column. Resets pagination.
func (s *Session) ToggleFilter(col catalog.Column, value string) error {
	if !s.ownsColumn(col) {
		return ErrColumnNotOfKind
	}
	current := s.Filters.Selected(col)
	updated := make([]string, 0, len(current)+1)
	found := false
	for _, v := range current {
		if v == value {
			found = true
			continue
		}
		updated = append(updated, v)
	}
	if !found {
		updated = append(updated, value)
	}
	s.Filters[col] = updated
	s.clearDescendants(col)
	s.Page = 1
	return nil
}

// SelectAllFilter toggles a column between the full option set and empty,
// based on whether every option is currently selected. Resets pagination.
func (s *Session) SelectAllFilter(col catalog.Column) error {
	all, err := s.Options(col)
	if err != nil {
		return err
	}
	if len(s.Filters.Selected(col)) == len(all) && len(all) > 0 {
		s.Filters[col] = nil
	} else {
		s.Filters[col] = all
	}
	s.clearDescendants(col)
	s.Page = 1
	return nil
}

func (s *Session) clearDescendants(col catalog.Column) {
	cols := catalog.Columns(s.Kind)
	clearing := false
	for _, c := range cols {
		if clearing {
			s.Filters[c] = nil
		}
		if c == col {
			clearing = true
		}
	}
}

// SetUnselectedOnly flips the "show unselected only" toggle. Resets
// pagination.
func (s *Session) SetUnselectedOnly(on bool) {
	s.UnselectedOnly = on
	s.Page = 1
}

// SetPageSize switches the page size; only the fixed options are allowed.
func (s *Session) SetPageSize(n int) error {
	for _, ps := range PageSizes {
		if ps == n {
			s.PageSize = n
			s.Page = 1
			return nil
		}
	}
	return ErrBadPageSize
}

// SetPage moves to a page; out-of-range values clamp in View.
func (s *Session) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	s.Page = n
}

// SetScroll records the visible scroll offset. Selection mutations leave
// it untouched so the caller can restore it after the next paint.
func (s *Session) SetScroll(offset int) {
	if offset < 0 {
		offset = 0
	}
	s.ScrollOffset = offset
}

// SetLevel sets exactly one active level for a skill row, overwriting any
// prior level (radio semantics). Does not reset pagination or scroll.
func (s *Session) SetLevel(hashID string, level selection.Level) error {
	if !level.Valid() {
		return selection.ErrInvalidLevel
	}
	if !s.hasRow(hashID) {
		return ErrUnknownRow
	}
	s.Skills[hashID] = selection.Entry{Level: level}
	delete(s.Cleared, hashID)
	return nil
}

// ToggleCert adds or removes a certificate from the selected set. The
// toggle is idempotent and order-independent.
func (s *Session) ToggleCert(hashID string) error {
	if !s.hasRow(hashID) {
		return ErrUnknownRow
	}
	if _, ok := s.Certs[hashID]; ok {
		delete(s.Certs, hashID)
		s.Cleared[hashID] = true
		return nil
	}
	it, _ := s.row(hashID)
	s.Certs[hashID] = selection.CertEntry{
		CertProvider: it.CertProvider,
		CertName:     it.CertName,
		CertLevel:    it.CertLevel,
	}
	delete(s.Cleared, hashID)
	return nil
}

// ClearRow removes the row from selection entirely. Distinct from the
// server-origin approved/rejected status, which only a reseed restores.
func (s *Session) ClearRow(hashID string) error {
	if !s.hasRow(hashID) {
		return ErrUnknownRow
	}
	delete(s.Skills, hashID)
	delete(s.Certs, hashID)
	s.Cleared[hashID] = true
	return nil
}

// Selected reports whether the row carries an active selection.
func (s *Session) Selected(hashID string) bool {
	if _, ok := s.Skills[hashID]; ok {
		return true
	}
	_, ok := s.Certs[hashID]
	return ok
}

func (s *Session) hasRow(hashID string) bool {
	_, ok := s.row(hashID)
	return ok
}

func (s *Session) row(hashID string) (catalog.Item, bool) {
	for _, it := range s.Items {
		if it.HashID == hashID {
			return it, true
		}
	}
	return catalog.Item{}, false
}

// NewExpertSkills lists rows whose expert level was newly claimed in this
// session, i.e. not already expert in the seeded preselection. These are
// the claims that need a manager on file before saving.
func (s *Session) NewExpertSkills() []catalog.Item {
	var out []catalog.Item
	for _, it := range s.Items {
		e, ok := s.Skills[it.HashID]
		if !ok || e.Level != selection.LevelExpert {
			continue
		}
		if p, had := s.Pre.Skills[it.HashID]; had && p.Level == selection.LevelExpert {
			continue
		}
		out = append(out, it)
	}
	return out
}
