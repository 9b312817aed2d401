package domain

import "testing"

func TestIsIrrelevantName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"Tokyo Ramen Bar", false},
		{"Culinary School of Arts", true},
		{"SCHOOL of rock", true},
		{"Pine Training Center", true},
		{"Golf course resort", true},
		{"Education First", true},
		{"Royal Academy", true},
		{"Design Institute", true},
		// Extended-list terms are NOT in the base list.
		{"City Hospital", false},
		{"Downtown Clinic", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsIrrelevantName(tt.name); got != tt.want {
				t.Errorf("IsIrrelevantName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsIrrelevantRecommendation(t *testing.T) {
	t.Parallel()

	// The extended list covers everything in the base list plus medical venues.
	for _, name := range []string{"Culinary School", "City Hospital", "Apex Diagnostic Lab", "Skin Clinic"} {
		if !IsIrrelevantRecommendation(name) {
			t.Errorf("IsIrrelevantRecommendation(%q) = false, want true", name)
		}
	}
	if IsIrrelevantRecommendation("Seaside Bistro") {
		t.Error("IsIrrelevantRecommendation(Seaside Bistro) = true, want false")
	}
}

func TestContextualEntities_HasSignals(t *testing.T) {
	t.Parallel()

	var empty ContextualEntities
	if empty.HasSignals() {
		t.Error("empty set should have no signals")
	}
	if !empty.IsEmpty() {
		t.Error("empty set should report IsEmpty")
	}

	withPlace := ContextualEntities{Places: []CategorizedEntity{{ID: "p1", Name: "Kyoto", Type: "urn:entity:place"}}}
	if !withPlace.HasSignals() {
		t.Error("set with a place should have signals")
	}

	// Entertainment-only sets cannot seed recommendations.
	entOnly := ContextualEntities{Entertainment: []CategorizedEntity{{ID: "m1", Name: "Lost in Translation", Type: "urn:entity:movie"}}}
	if entOnly.HasSignals() {
		t.Error("entertainment-only set should have no signals")
	}
	if entOnly.IsEmpty() {
		t.Error("entertainment-only set should not report IsEmpty")
	}
}
