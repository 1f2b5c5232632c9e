package fixtures

import (
	"strings"

	"skillport/internal/domain/catalog"
	"skillport/internal/domain/review"
	"skillport/internal/domain/selection"
)

// SkillItems is a small master skill catalog spanning two category
// branches, enough to exercise cascading filters and sorting.
func SkillItems() []catalog.Item {
	return []catalog.Item{
		{HashID: "a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1", Category: "Engineering", SubCategory: "Backend", SubSubCategory: "API", Tools: "Go"},
		{HashID: "b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2", Category: "Engineering", SubCategory: "Backend", SubSubCategory: "API", Tools: "Python"},
		{HashID: "c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3", Category: "Engineering", SubCategory: "Data", SubSubCategory: "Pipelines", Tools: "Spark"},
		{HashID: "d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4", Category: "Design", SubCategory: "UX", SubSubCategory: "Research", Tools: "Figma"},
		{HashID: "e5e5e5e5e5e5e5e5e5e5e5e5e5e5e5e5", Category: "Design", SubCategory: "UX", SubSubCategory: "Research", Tools: "Miro"},
	}
}

// CertItems includes a fully-catalogued certificate plus one missing
// provider and name, which the taxonomy buckets under Other.
func CertItems() []catalog.Item {
	return []catalog.Item{
		{HashID: "f6f6f6f6f6f6f6f6f6f6f6f6f6f6f6f6", CertProvider: "AWS", CertName: "Solutions Architect", CertLevel: "Associate", ValidYears: "3"},
		{HashID: "a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7", CertProvider: "AWS", CertName: "Solutions Architect", CertLevel: "Professional", ValidYears: "3"},
		{HashID: "b8b8b8b8b8b8b8b8b8b8b8b8b8b8b8b8", CertProvider: "Google", CertName: "Cloud Engineer", CertLevel: "Associate", ValidYears: "2"},
		{HashID: "c9c9c9c9c9c9c9c9c9c9c9c9c9c9c9c9"},
	}
}

// PendingGroup builds a reviewer group for one employee with the given
// number of pending-expert items.
func PendingGroup(email string, pending int) review.Group {
	g := review.Group{ID: "grp-" + email, Employee: "Test Person", Email: email}
	const hex = "0123456789abcdef"
	for i := 0; i < pending; i++ {
		id := strings.Repeat(string(hex[i%len(hex)]), 32)
		g.Items = append(g.Items, review.Item{
			ItemID:   id,
			HashID:   id,
			Category: "Engineering",
			Tools:    "Go",
			Level:    selection.LevelExpert,
			Status:   selection.StatusPending,
		})
	}
	return g
}
