package tableview

import (
	"testing"

	"github.com/stretchr/testify/require"

	"skillport/internal/domain/catalog"
	"skillport/internal/domain/selection"
	"skillport/internal/testutil/fixtures"
)

func newSkillSession(t *testing.T) *Session {
	t.Helper()
	return New("s1", catalog.KindSkills, "jane.doe@corp.example", fixtures.SkillItems(), selection.Preselection{})
}

func newCertSession(t *testing.T) *Session {
	t.Helper()
	return New("c1", catalog.KindCertificates, "jane.doe@corp.example", fixtures.CertItems(), selection.Preselection{})
}

func TestToggleFilter_ClearsDescendants(t *testing.T) {
	s := newSkillSession(t)
	require.NoError(t, s.ToggleFilter(catalog.ColCategory, "Engineering"))
	require.NoError(t, s.ToggleFilter(catalog.ColSubCategory, "Backend"))
	require.NoError(t, s.ToggleFilter(catalog.ColTools, "Go"))

	// flipping the parent again clears everything downstream of it
	require.NoError(t, s.ToggleFilter(catalog.ColCategory, "Design"))
	require.Empty(t, s.Filters.Selected(catalog.ColSubCategory))
	require.Empty(t, s.Filters.Selected(catalog.ColTools))
	// the toggled column itself keeps both values
	require.ElementsMatch(t, []string{"Engineering", "Design"}, s.Filters.Selected(catalog.ColCategory))
	require.Equal(t, 1, s.Page)
}

func TestToggleFilter_OptionsNeverOfferDanglingDescendants(t *testing.T) {
	s := newSkillSession(t)
	require.NoError(t, s.ToggleFilter(catalog.ColCategory, "Design"))

	opts, err := s.Options(catalog.ColSubCategory)
	require.NoError(t, err)
	require.Equal(t, []string{"UX"}, opts)
}

func TestSetSearch_SuppressesAndClearsFilters(t *testing.T) {
	s := newSkillSession(t)
	require.NoError(t, s.ToggleFilter(catalog.ColCategory, "Engineering"))
	s.SetPage(3)

	s.SetSearch("fig")
	require.False(t, s.Filters.Active(), "search must clear column filters")
	require.Equal(t, 1, s.Page)

	rows := s.Compose()
	require.Len(t, rows, 1)
	require.Equal(t, "Figma", rows[0].Tools)
}

func TestCompose_SelectedRowsAlwaysVisible(t *testing.T) {
	s := newSkillSession(t)
	// select a Design row, then filter to Engineering only
	require.NoError(t, s.SetLevel("d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4", selection.LevelBasic))
	require.NoError(t, s.ToggleFilter(catalog.ColCategory, "Engineering"))

	rows := s.Compose()
	var sawSelected bool
	for _, r := range rows {
		if r.HashID == "d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4" {
			sawSelected = true
			require.True(t, r.Selected)
		}
	}
	require.True(t, sawSelected, "selected row must survive a non-matching filter")

	// and the selected group sorts ahead of the filtered rest
	require.Equal(t, "d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4", rows[0].HashID)
}

func TestCompose_NoFilterNoSearchShowsOnlySelected(t *testing.T) {
	s := newSkillSession(t)
	require.Empty(t, s.Compose())

	require.NoError(t, s.SetLevel("a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1", selection.LevelExpert))
	rows := s.Compose()
	require.Len(t, rows, 1)
	require.Equal(t, selection.LevelExpert, rows[0].SelectedLevel)
}

func TestSetLevel_RadioSemantics(t *testing.T) {
	s := newSkillSession(t)
	id := "a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1"
	require.NoError(t, s.SetLevel(id, selection.LevelBasic))
	require.NoError(t, s.SetLevel(id, selection.LevelExpert))
	require.Equal(t, selection.LevelExpert, s.Skills[id].Level)

	require.ErrorIs(t, s.SetLevel(id, "L9"), selection.ErrInvalidLevel)
	require.ErrorIs(t, s.SetLevel("ffffffffffffffffffffffffffffffff", selection.LevelBasic), ErrUnknownRow)
}

func TestToggleCert_Idempotent(t *testing.T) {
	s := newCertSession(t)
	id := "f6f6f6f6f6f6f6f6f6f6f6f6f6f6f6f6"

	require.NoError(t, s.ToggleCert(id))
	require.True(t, s.Selected(id))
	require.Equal(t, "AWS", s.Certs[id].CertProvider)

	require.NoError(t, s.ToggleCert(id))
	require.False(t, s.Selected(id))

	// toggle twice more: back to selected, same cached fields
	require.NoError(t, s.ToggleCert(id))
	require.NoError(t, s.ToggleCert(id))
	require.False(t, s.Selected(id))
}

func TestUnselectedOnly_MutuallyExclusiveWithSelected(t *testing.T) {
	s := newSkillSession(t)
	require.NoError(t, s.SetLevel("a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1", selection.LevelBasic))
	require.NoError(t, s.ToggleFilter(catalog.ColCategory, "Engineering"))

	s.SetUnselectedOnly(true)
	for _, r := range s.Compose() {
		require.False(t, r.Selected, "unselected-only view leaked a selected row")
	}
}

func TestSeed_PreservesLocalEditsUntilRowsChange(t *testing.T) {
	items := fixtures.SkillItems()
	pre := selection.Preselection{Skills: map[string]selection.Entry{
		"a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1": {Level: selection.LevelBasic, Status: selection.StatusApproved},
	}}
	s := New("s1", catalog.KindSkills, "jane.doe@corp.example", items, pre)
	require.Equal(t, selection.LevelBasic, s.Skills["a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1"].Level)

	// local edit, then an identical reseed: the edit must survive
	require.NoError(t, s.SetLevel("a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1", selection.LevelExpert))
	s.Seed(items, pre)
	require.Equal(t, selection.LevelExpert, s.Skills["a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1"].Level)

	// a changed row set rebuilds local state from the preselection
	s.Seed(items[:3], pre)
	require.Equal(t, selection.LevelBasic, s.Skills["a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1"].Level)
}

func TestSeed_ClearedRowsStayCleared(t *testing.T) {
	items := fixtures.SkillItems()
	pre := selection.Preselection{Skills: map[string]selection.Entry{
		"a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1": {Level: selection.LevelBasic},
	}}
	s := New("s1", catalog.KindSkills, "jane.doe@corp.example", items, pre)
	require.NoError(t, s.ClearRow("a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1"))

	s.Seed(items, pre)
	require.False(t, s.Selected("a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1"), "cleared row resurrected by reseed")
}

func TestNewExpertSkills_OnlyNewClaims(t *testing.T) {
	items := fixtures.SkillItems()
	pre := selection.Preselection{Skills: map[string]selection.Entry{
		"a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1": {Level: selection.LevelExpert, Status: selection.StatusApproved},
	}}
	s := New("s1", catalog.KindSkills, "jane.doe@corp.example", items, pre)

	// seeded expert claim does not count
	require.Empty(t, s.NewExpertSkills())

	require.NoError(t, s.SetLevel("b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2", selection.LevelExpert))
	claims := s.NewExpertSkills()
	require.Len(t, claims, 1)
	require.Equal(t, "b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2", claims[0].HashID)
}

func TestSetPageSize_OnlyFixedOptions(t *testing.T) {
	s := newSkillSession(t)
	require.NoError(t, s.SetPageSize(50))
	require.Equal(t, 50, s.PageSize)
	require.ErrorIs(t, s.SetPageSize(7), ErrBadPageSize)
}

func TestSetScroll_ClampsNegative(t *testing.T) {
	s := newSkillSession(t)
	s.SetScroll(-10)
	require.Zero(t, s.ScrollOffset)
	s.SetScroll(480)
	require.Equal(t, 480, s.ScrollOffset)
}
