package tableview

import (
	"sort"
	"strings"

	"skillport/internal/domain/catalog"
	"skillport/internal/domain/selection"
)

// Row is a visible table row: the master item enriched with the session's
// selection state.
type Row struct {
	catalog.Item
	SelectedLevel selection.Level  `json:"selectedLevel,omitempty"`
	Status        selection.Status `json:"Status,omitempty"`
	RejectReason  string           `json:"RejectReason,omitempty"`
	Selected      bool             `json:"selected"`
}

// View is one composed, paginated result set.
type View struct {
	Rows         []Row `json:"rows"`
	Page         int   `json:"page"`
	PageSize     int   `json:"pageSize"`
	TotalRows    int   `json:"totalRows"`
	TotalPages   int   `json:"totalPages"`
	ScrollOffset int   `json:"scrollOffset"`
}

// Compose produces the full visible row list under the precedence rules:
// selected rows are always included; a non-empty search suppresses the
// column filters entirely; otherwise active filters apply conjunctively;
// with neither, only selected rows show. The unselected-only toggle then
// removes selected rows, duplicates collapse by hashId, and the selected
// group sorts ahead of the rest.
func (s *Session) Compose() []Row {
	enriched := make([]Row, 0, len(s.Items))
	for _, it := range s.Items {
		enriched = append(enriched, s.enrich(it))
	}

	var selected []Row
	for _, r := range enriched {
		if r.Selected {
			selected = append(selected, r)
		}
	}

	var rest []Row
	switch {
	case s.Search != "":
		term := strings.ToLower(s.Search)
		for _, r := range enriched {
			if s.matchesSearch(r.Item, term) {
				rest = append(rest, r)
			}
		}
	case s.Filters.Active():
		for _, r := range enriched {
			if s.Filters.Matches(r.Item) {
				rest = append(rest, r)
			}
		}
	}

	selectedSet := make(map[string]bool, len(selected))
	for _, r := range selected {
		selectedSet[r.HashID] = true
	}

	sortRows(s.Kind, selected)

	deduped := rest[:0]
	seen := map[string]bool{}
	for _, r := range rest {
		if selectedSet[r.HashID] || seen[r.HashID] {
			continue
		}
		seen[r.HashID] = true
		deduped = append(deduped, r)
	}
	sortRows(s.Kind, deduped)

	final := append(selected, deduped...)

	if s.UnselectedOnly {
		kept := final[:0]
		for _, r := range final {
			if !r.Selected {
				kept = append(kept, r)
			}
		}
		final = kept
	}
	return final
}

// View composes and paginates, clamping the page into range.
func (s *Session) View() View {
	rows := s.Compose()
	total := len(rows)
	size := s.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	page := s.Page
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return View{
		Rows:         rows[start:end],
		Page:         page,
		PageSize:     size,
		TotalRows:    total,
		TotalPages:   pages,
		ScrollOffset: s.ScrollOffset,
	}
}

func (s *Session) enrich(it catalog.Item) Row {
	r := Row{Item: it}
	if e, ok := s.Skills[it.HashID]; ok {
		r.Selected = true
		r.SelectedLevel = e.Level
		r.Status = e.Status
		r.RejectReason = e.RejectReason
	}
	if _, ok := s.Certs[it.HashID]; ok {
		r.Selected = true
	}
	return r
}

func (s *Session) matchesSearch(it catalog.Item, lowerTerm string) bool {
	for _, col := range catalog.Columns(s.Kind) {
		if strings.Contains(strings.ToLower(it.Field(col)), lowerTerm) {
			return true
		}
	}
	return false
}

// sortRows orders rows by the classification fields in hierarchical order,
// case-insensitive ascending. For certificates the synthetic
// Other/Other/Other bucket sorts last regardless of alphabet.
func sortRows(kind catalog.Kind, rows []Row) {
	cols := catalog.Columns(kind)
	if kind == catalog.KindCertificates {
		cols = cols[:3] // validYears does not participate in ordering
	}
	less := func(i, j int) bool {
		a, b := rows[i].Item, rows[j].Item
		if kind == catalog.KindCertificates {
			if ao, bo := a.IsOtherBucket(), b.IsOtherBucket(); ao != bo {
				return bo
			}
		}
		for _, c := range cols {
			av := strings.ToLower(a.Field(c))
			bv := strings.ToLower(b.Field(c))
			if av != bv {
				return av < bv
			}
		}
		return false
	}
	sort.SliceStable(rows, less)
}
