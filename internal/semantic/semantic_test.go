package semantic

import (
	"math"
	"testing"
)

func buildTestIndex() *Index {
	ix := NewIndex()
	ix.Build(
		[]string{"doc1", "doc2", "doc3"},
		[]string{
			"climate policy and emissions targets for the next decade",
			"quantum computing hardware reaches a new milestone",
			"climate adaptation funding for coastal cities",
		},
	)
	return ix
}

func TestSimilaritySelf(t *testing.T) {
	ix := buildTestIndex()
	text := "climate policy and emissions targets"
	if got := ix.Similarity(text, text); math.Abs(got-1) > 1e-9 {
		t.Errorf("Similarity(a,a) = %v, want 1", got)
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	ix := buildTestIndex()
	a := "climate policy targets"
	b := "emissions policy for cities"
	ab, ba := ix.Similarity(a, b), ix.Similarity(b, a)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("Similarity not symmetric: %v vs %v", ab, ba)
	}
}

func TestSimilarityBounds(t *testing.T) {
	ix := buildTestIndex()
	pairs := [][2]string{
		{"climate policy", "climate policy emissions"},
		{"quantum computing", "coastal funding"},
		{"", "climate policy"},
		{"", ""},
	}
	for _, p := range pairs {
		got := ix.Similarity(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Similarity(%q, %q) = %v, want in [0,1]", p[0], p[1], got)
		}
	}
}

func TestSimilarityEmptyIsZero(t *testing.T) {
	ix := buildTestIndex()
	if got := ix.Similarity("", "climate policy"); got != 0 {
		t.Errorf("Similarity with empty text = %v, want 0", got)
	}
}

func TestSearchRanksOnTopic(t *testing.T) {
	ix := buildTestIndex()
	matches := ix.Search("climate policy emissions", 3)

	if len(matches) == 0 {
		t.Fatal("no matches returned")
	}
	if matches[0].ID != "doc1" {
		t.Errorf("top match = %q, want doc1", matches[0].ID)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Similarity > matches[i-1].Similarity {
			t.Errorf("matches not sorted at index %d", i)
		}
	}
}

func TestSearchTopK(t *testing.T) {
	ix := buildTestIndex()
	if matches := ix.Search("climate", 2); len(matches) > 2 {
		t.Errorf("Search returned %d matches, want at most 2", len(matches))
	}
}

func TestRebuildUpdatesIDF(t *testing.T) {
	ix := NewIndex()
	ix.Build([]string{"a"}, []string{"climate policy"})
	before := ix.Similarity("climate", "climate policy")

	// Adding documents that also mention "climate" dilutes its weight.
	ix.Build(
		[]string{"a", "b", "c"},
		[]string{"climate policy", "climate science", "climate data"},
	)
	after := ix.Similarity("climate", "climate policy")

	if before == 0 || after == 0 {
		t.Fatal("expected non-zero similarities")
	}
	if ix.Len() != 3 {
		t.Errorf("Len = %d, want 3", ix.Len())
	}
	if math.Abs(before-after) < 1e-12 {
		t.Error("rebuild did not change corpus weights")
	}
}
