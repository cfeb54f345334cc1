package graph

import (
	"reflect"
	"testing"
)

func TestBuildCounts(t *testing.T) {
	g := Build([][]string{
		{"Alice", "Bob"},
		{"Alice", "Carol"},
		{"Alice", "Bob", "Carol"},
	})

	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", g.NodeCount())
	}
	nodes := g.Nodes()
	if nodes[0].Entity != "Alice" || nodes[0].Count != 3 {
		t.Errorf("top node = %+v, want Alice with count 3", nodes[0])
	}
	if got := g.Weight("Alice", "Bob"); got != 2 {
		t.Errorf("Weight(Alice, Bob) = %d, want 2", got)
	}
	if got := g.Weight("Bob", "Alice"); got != 2 {
		t.Errorf("Weight is not order-independent: got %d", got)
	}
	if got := g.Weight("Bob", "Dave"); got != 0 {
		t.Errorf("Weight for unlinked pair = %d, want 0", got)
	}
}

func TestBuildIdempotent(t *testing.T) {
	sets := [][]string{
		{"Alice", "Bob", "Carol"},
		{"Bob", "Dave"},
		{"Alice", "Dave"},
	}
	a := Build(sets)
	b := Build(sets)

	if !reflect.DeepEqual(a.Nodes(), b.Nodes()) {
		t.Error("rebuild produced different nodes")
	}
	if !reflect.DeepEqual(a.Edges(), b.Edges()) {
		t.Error("rebuild produced different edges")
	}
}

func TestDuplicateEntityInDocumentCountsOnce(t *testing.T) {
	g := Build([][]string{{"Alice", "Alice", "Bob"}})

	nodes := g.Nodes()
	for _, n := range nodes {
		if n.Entity == "Alice" && n.Count != 1 {
			t.Errorf("Alice count = %d, want 1", n.Count)
		}
	}
	if got := g.Weight("Alice", "Bob"); got != 1 {
		t.Errorf("Weight(Alice, Bob) = %d, want 1", got)
	}
	// No self-edge from the duplicate.
	if got := g.Weight("Alice", "Alice"); got != 0 {
		t.Errorf("self edge weight = %d, want 0", got)
	}
}

func TestNeighborsMinWeight(t *testing.T) {
	g := Build([][]string{
		{"Alice", "Bob"},
		{"Alice", "Bob"},
		{"Alice", "Carol"},
	})

	all := g.Neighbors("Alice", 1)
	if !reflect.DeepEqual(all, []string{"Bob", "Carol"}) {
		t.Errorf("Neighbors(Alice, 1) = %v", all)
	}
	strong := g.Neighbors("Alice", 2)
	if !reflect.DeepEqual(strong, []string{"Bob"}) {
		t.Errorf("Neighbors(Alice, 2) = %v", strong)
	}
}

func TestEdgesSorted(t *testing.T) {
	g := Build([][]string{
		{"Alice", "Bob"},
		{"Alice", "Bob"},
		{"Carol", "Dave"},
	})
	edges := g.Edges()
	if len(edges) != 2 {
		t.Fatalf("EdgeCount = %d, want 2", len(edges))
	}
	if edges[0].From != "Alice" || edges[0].To != "Bob" || edges[0].Weight != 2 {
		t.Errorf("heaviest edge = %+v", edges[0])
	}
}
