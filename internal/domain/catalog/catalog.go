package catalog

import (
	"errors"
	"strings"
)

var ErrUnknownColumn = errors.New("unknown column")

// Kind selects which master catalog a session operates on.
type Kind string

const (
	KindSkills       Kind = "skills"
	KindCertificates Kind = "certificates"
)

func (k Kind) Valid() bool { return k == KindSkills || k == KindCertificates }

// Column is a canonical classification column name. The upstream payloads
// use several spellings ("Sub Category", "Sub-Category", ...); Normalize
// collapses them once at load time so nothing downstream guesses keys.
type Column string

const (
	ColCategory       Column = "Category"
	ColSubCategory    Column = "Sub-Category"
	ColSubSubCategory Column = "Sub-Sub-Category"
	ColTools          Column = "Tools"

	ColCertProvider Column = "certProvider"
	ColCertName     Column = "certName"
	ColCertLevel    Column = "certLevel"
	ColValidYears   Column = "validYears"
)

var (
	skillColumns = []Column{ColCategory, ColSubCategory, ColSubSubCategory, ColTools}
	certColumns  = []Column{ColCertProvider, ColCertName, ColCertLevel, ColValidYears}
)

// Columns returns the filter columns for a kind in strict parent→child
// order. Selecting a value in a column clears everything after it.
func Columns(kind Kind) []Column {
	if kind == KindCertificates {
		return append([]Column(nil), certColumns...)
	}
	return append([]Column(nil), skillColumns...)
}

// OtherBucket is the literal bucket for missing classification fields.
const OtherBucket = "Other"

// Item is one master catalog entry, immutable within a session. Skill
// entries populate the hierarchy and level-requirement fields; certificate
// entries populate the cert* fields.
type Item struct {
	HashID string `json:"hashId"`

	Category       string `json:"Category,omitempty"`
	SubCategory    string `json:"Sub-Category,omitempty"`
	SubSubCategory string `json:"Sub-Sub-Category,omitempty"`
	Tools          string `json:"Tools,omitempty"`
	L1             string `json:"L1,omitempty"`
	L2             string `json:"L2,omitempty"`
	L3             string `json:"L3,omitempty"`

	CertProvider string `json:"certProvider,omitempty"`
	CertName     string `json:"certName,omitempty"`
	CertLevel    string `json:"certLevel,omitempty"`
	ValidYears   string `json:"validYears,omitempty"`
}

// Field reads a classification column off the item. Unknown columns read
// as empty, which the taxonomy treats as the Other bucket.
func (it Item) Field(c Column) string {
	switch c {
	case ColCategory:
		return it.Category
	case ColSubCategory:
		return it.SubCategory
	case ColSubSubCategory:
		return it.SubSubCategory
	case ColTools:
		return it.Tools
	case ColCertProvider:
		return it.CertProvider
	case ColCertName:
		return it.CertName
	case ColCertLevel:
		return it.CertLevel
	case ColValidYears:
		return it.ValidYears
	}
	return ""
}

// IsOtherBucket reports whether a certificate row belongs to the synthetic
// Other/Other/Other bucket that sorts last regardless of alphabet.
func (it Item) IsOtherBucket() bool {
	other := strings.ToLower(OtherBucket)
	return strings.ToLower(it.CertProvider) == other &&
		strings.ToLower(it.CertName) == other &&
		(it.CertLevel == "" || strings.ToLower(it.CertLevel) == other)
}

// Empty reports whether every field of the row (besides the id) is blank.
// The upstream master file occasionally carries fully blank rows.
func (it Item) Empty() bool {
	for _, c := range append(Columns(KindSkills), Columns(KindCertificates)...) {
		if strings.TrimSpace(it.Field(c)) != "" {
			return false
		}
	}
	return strings.TrimSpace(it.L1) == "" &&
		strings.TrimSpace(it.L2) == "" &&
		strings.TrimSpace(it.L3) == ""
}

// DisplayName maps a canonical column to the label the business uses.
func DisplayName(c Column) string {
	switch c {
	case ColCategory:
		return "Domain"
	case ColSubCategory:
		return "Discipline"
	case ColSubSubCategory:
		return "Skill Area"
	case ColTools:
		return "Framework"
	case ColCertProvider:
		return "Cert. Provider"
	case ColCertName:
		return "Certificate Name"
	case ColCertLevel:
		return "Cert. Level"
	case ColValidYears:
		return "Validity (in yrs)"
	}
	return string(c)
}

// FilterState maps a column to the set of selected discrete values. An
// absent or empty entry means "no constraint" for that column.
type FilterState map[Column][]string

// Selected returns the chosen values for a column, nil when unconstrained.
func (f FilterState) Selected(c Column) []string {
	if f == nil {
		return nil
	}
	return f[c]
}

// Active reports whether any column carries a non-empty selection.
func (f FilterState) Active() bool {
	for _, vals := range f {
		if len(vals) > 0 {
			return true
		}
	}
	return false
}

// Contains reports membership of value in the column's selected set.
func (f FilterState) Contains(c Column, value string) bool {
	for _, v := range f.Selected(c) {
		if v == value {
			return true
		}
	}
	return false
}

// Matches applies every active column constraint conjunctively.
func (f FilterState) Matches(it Item) bool {
	for col, vals := range f {
		if len(vals) == 0 {
			continue
		}
		if !f.Contains(col, it.Field(col)) {
			return false
		}
	}
	return true
}

// Clone deep-copies the state so callers can mutate safely.
func (f FilterState) Clone() FilterState {
	out := make(FilterState, len(f))
	for c, vals := range f {
		out[c] = append([]string(nil), vals...)
	}
	return out
}
