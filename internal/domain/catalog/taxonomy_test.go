package catalog

import (
	"reflect"
	"testing"
)

func skillItems() []Item {
	return []Item{
		{HashID: "r1", Category: "Engineering", SubCategory: "Backend", SubSubCategory: "API", Tools: "Go"},
		{HashID: "r2", Category: "Engineering", SubCategory: "Backend", SubSubCategory: "API", Tools: "Python"},
		{HashID: "r3", Category: "Engineering", SubCategory: "Data", SubSubCategory: "Pipelines", Tools: "Spark"},
		{HashID: "r4", Category: "Design", SubCategory: "UX", SubSubCategory: "Research", Tools: "Figma"},
	}
}

func TestOptionsFor_RootUnrestricted(t *testing.T) {
	ix := BuildIndex(KindSkills, skillItems())
	got, err := ix.OptionsFor(ColCategory, FilterState{ColCategory: {"Design"}})
	if err != nil {
		t.Fatalf("OptionsFor: %v", err)
	}
	// the root column always lists every value, even while filtered
	want := []string{"Design", "Engineering"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("root options: got %v want %v", got, want)
	}
}

func TestOptionsFor_RestrictedByAncestor(t *testing.T) {
	ix := BuildIndex(KindSkills, skillItems())
	got, err := ix.OptionsFor(ColSubCategory, FilterState{ColCategory: {"Engineering"}})
	if err != nil {
		t.Fatalf("OptionsFor: %v", err)
	}
	want := []string{"Backend", "Data"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("restricted options: got %v want %v", got, want)
	}
}

func TestOptionsFor_UnselectedAncestorUnionsAll(t *testing.T) {
	ix := BuildIndex(KindSkills, skillItems())
	got, err := ix.OptionsFor(ColTools, FilterState{})
	if err != nil {
		t.Fatalf("OptionsFor: %v", err)
	}
	want := []string{"Figma", "Go", "Python", "Spark"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("union options: got %v want %v", got, want)
	}
}

func TestOptionsFor_MissingFieldsBucketAsOther(t *testing.T) {
	items := []Item{
		{HashID: "c1", CertProvider: "AWS", CertName: "SA", CertLevel: "Associate", ValidYears: "3"},
		{HashID: "c2"}, // everything missing
	}
	ix := BuildIndex(KindCertificates, items)
	got, err := ix.OptionsFor(ColCertProvider, FilterState{})
	if err != nil {
		t.Fatalf("OptionsFor: %v", err)
	}
	want := []string{"AWS", "Other"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("other bucket options: got %v want %v", got, want)
	}
}

func TestOptionsFor_UnknownColumn(t *testing.T) {
	ix := BuildIndex(KindSkills, skillItems())
	if _, err := ix.OptionsFor(ColCertProvider, FilterState{}); err != ErrUnknownColumn {
		t.Fatalf("want ErrUnknownColumn, got %v", err)
	}
}

func TestFilterState_Matches(t *testing.T) {
	f := FilterState{
		ColCategory:    {"Engineering"},
		ColSubCategory: {"Backend"},
	}
	it := skillItems()[0]
	if !f.Matches(it) {
		t.Fatalf("expected %+v to match %v", it, f)
	}
	other := skillItems()[2] // Data branch
	if f.Matches(other) {
		t.Fatalf("expected %+v not to match %v", other, f)
	}
}

func TestIsOtherBucket(t *testing.T) {
	if !(Item{CertProvider: "Other", CertName: "other"}).IsOtherBucket() {
		t.Fatal("mixed-case Other bucket not detected")
	}
	if (Item{CertProvider: "AWS", CertName: "Other"}).IsOtherBucket() {
		t.Fatal("partial Other must not count as bucket")
	}
}
