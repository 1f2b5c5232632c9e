package catalog

import (
	"fmt"
	"strings"
)

// aliasSets lists the spellings the upstream API has been observed using
// for each canonical column. Matching is case-insensitive.
var aliasSets = map[Column][]string{
	ColCategory:       {"Category"},
	ColSubCategory:    {"Sub-Category", "Sub Category"},
	ColSubSubCategory: {"Sub-Sub-Category", "Sub Sub Category"},
	ColTools:          {"Tools"},
	ColCertProvider:   {"certProvider"},
	ColCertName:       {"certName"},
	ColCertLevel:      {"certLevel"},
	ColValidYears:     {"validYears"},
}

// Normalize converts raw upstream rows into canonical Items. Key
// resolution happens once, against the first row, so per-row logic never
// re-guesses field names. Rows without a hashId are rejected; fully blank
// rows are dropped.
func Normalize(kind Kind, rows []map[string]any) ([]Item, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	keys := resolveKeys(rows[0])

	items := make([]Item, 0, len(rows))
	for i, row := range rows {
		id := str(row["hashId"])
		if id == "" {
			return nil, fmt.Errorf("row %d: missing hashId", i)
		}
		it := Item{HashID: id}
		switch kind {
		case KindCertificates:
			it.CertProvider = str(row[keys[ColCertProvider]])
			it.CertName = str(row[keys[ColCertName]])
			it.CertLevel = str(row[keys[ColCertLevel]])
			it.ValidYears = str(row[keys[ColValidYears]])
		default:
			it.Category = str(row[keys[ColCategory]])
			it.SubCategory = str(row[keys[ColSubCategory]])
			it.SubSubCategory = str(row[keys[ColSubSubCategory]])
			it.Tools = str(row[keys[ColTools]])
			it.L1 = str(row["L1"])
			it.L2 = str(row["L2"])
			it.L3 = str(row["L3"])
		}
		if it.Empty() {
			continue
		}
		items = append(items, it)
	}
	return items, nil
}

// resolveKeys maps each canonical column to the key actually present in
// the payload, falling back to the canonical spelling.
func resolveKeys(first map[string]any) map[Column]string {
	out := make(map[Column]string, len(aliasSets))
	for col, aliases := range aliasSets {
		out[col] = string(col)
		for _, alias := range aliases {
			if _, ok := first[alias]; ok {
				out[col] = alias
				break
			}
		}
		if _, ok := first[out[col]]; ok {
			continue
		}
		// last resort: case-insensitive scan
		for k := range first {
			for _, alias := range aliases {
				if strings.EqualFold(k, alias) {
					out[col] = k
				}
			}
		}
	}
	return out
}

func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		// JSON numbers; validYears arrives as a number in some payloads
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}
