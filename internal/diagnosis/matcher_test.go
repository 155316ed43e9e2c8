package diagnosis

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

var sortStrings = cmpopts.SortSlices(func(a, b string) bool { return a < b })

func TestMatchDiseases_FeverAnywhere(t *testing.T) {
	inputs := []string{
		"fever",
		"FEVER",
		"high Fever since monday",
		"rash, feverish",
		"cough,fever",
	}
	for _, in := range inputs {
		got := MatchDiseases(in)
		for _, want := range []string{"Common Cold", "Flu", "Malaria"} {
			assert.Contains(t, got, want, in)
		}
		assertNoDuplicates(t, got)
	}
}

func TestMatchDiseases_Union(t *testing.T) {
	got := MatchDiseases("fever, headache")
	want := []string{"Common Cold", "Flu", "Malaria", "Migraine", "Tension Headache", "Cluster Headache"}
	if diff := cmp.Diff(want, got, sortStrings); diff != "" {
		t.Errorf("MatchDiseases mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchDiseases_SharedDiseaseDeduplicated(t *testing.T) {
	got := MatchDiseases("fever, cough")
	want := []string{"Common Cold", "Flu", "Malaria", "Bronchitis", "Pneumonia"}
	if diff := cmp.Diff(want, got, sortStrings); diff != "" {
		t.Errorf("MatchDiseases mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchDiseases_NoMatch(t *testing.T) {
	for _, in := range []string{"rash", "", " , ,", "fe ver"} {
		got := MatchDiseases(in)
		assert.NotNil(t, got, in)
		assert.Empty(t, got, in)
	}
}

func TestMatchDiseases_KeywordMustSitInsideOneToken(t *testing.T) {
	// "nau" and "sea" are split across tokens
	assert.Empty(t, MatchDiseases("nau,sea"))
	assert.Contains(t, MatchDiseases("mild nausea after meals"), "Gastritis")
}

func TestMatchDiseases_Sorted(t *testing.T) {
	got := MatchDiseases("nausea, headache, cough, fever")
	assert.IsIncreasing(t, got)
	assert.Len(t, got, 11)
}

func TestKeywords(t *testing.T) {
	assert.Equal(t, []string{"cough", "fever", "headache", "nausea"}, Keywords())
}

func TestSplitSymptoms(t *testing.T) {
	assert.Equal(t, []string{"fever", " headache"}, SplitSymptoms("fever, headache"))
	assert.Equal(t, []string{""}, SplitSymptoms(""))
}

func assertNoDuplicates(t *testing.T, list []string) {
	t.Helper()
	seen := map[string]bool{}
	for _, s := range list {
		if seen[s] {
			t.Errorf("duplicate %q in %s", s, strings.Join(list, ","))
		}
		seen[s] = true
	}
}
