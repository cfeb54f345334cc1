// Package graph builds a knowledge graph from per-document entity sets.
// Nodes are entities; an edge links every pair of entities co-occurring in
// the same document, weighted by how many documents they share. Entities
// compare by exact string equality only; no alias resolution.
package graph

import "sort"

// Node is one entity with its document occurrence count.
type Node struct {
	Entity string `json:"entity"`
	Count  int    `json:"count"`
}

// Edge links two entities that co-occur in at least one document. From is
// lexicographically smaller than To so each pair has one canonical edge.
type Edge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int    `json:"weight"`
}

// Graph is a knowledge graph. Build is a pure fold: the same entity sets in
// any order always produce the same graph.
type Graph struct {
	nodes map[string]int
	edges map[[2]string]int
}

func New() *Graph {
	return &Graph{
		nodes: make(map[string]int),
		edges: make(map[[2]string]int),
	}
}

// Build folds each document's entity set into a fresh graph.
func Build(entitySets [][]string) *Graph {
	g := New()
	for _, entities := range entitySets {
		g.AddDocument(entities)
	}
	return g
}

// AddDocument increments nodes for each entity and edges for each pair.
// Duplicate entities within one document count once.
func (g *Graph) AddDocument(entities []string) {
	uniq := make([]string, 0, len(entities))
	seen := make(map[string]bool, len(entities))
	for _, e := range entities {
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		uniq = append(uniq, e)
	}
	sort.Strings(uniq)

	for _, e := range uniq {
		g.nodes[e]++
	}
	for i := 0; i < len(uniq); i++ {
		for j := i + 1; j < len(uniq); j++ {
			g.edges[[2]string{uniq[i], uniq[j]}]++
		}
	}
}

// Nodes returns all nodes sorted by count descending, then entity.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodes))
	for entity, count := range g.nodes {
		out = append(out, Node{Entity: entity, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Entity < out[j].Entity
	})
	return out
}

// Edges returns all edges sorted by weight descending, then endpoints.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for pair, weight := range g.edges {
		out = append(out, Edge{From: pair[0], To: pair[1], Weight: weight})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// NodeCount returns the number of distinct entities.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct entity pairs.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Neighbors returns the entities adjacent to e with edge weight >= minWeight,
// sorted. Used by community detection and influence ranking.
func (g *Graph) Neighbors(e string, minWeight int) []string {
	var out []string
	for pair, weight := range g.edges {
		if weight < minWeight {
			continue
		}
		if pair[0] == e {
			out = append(out, pair[1])
		} else if pair[1] == e {
			out = append(out, pair[0])
		}
	}
	sort.Strings(out)
	return out
}

// Weight returns the edge weight between a and b, zero when unlinked.
func (g *Graph) Weight(a, b string) int {
	if a > b {
		a, b = b, a
	}
	return g.edges[[2]string{a, b}]
}
