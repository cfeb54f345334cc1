// Package osint derives cross-document intelligence from the accumulated
// result set and knowledge graph. Every analysis is a pure function of its
// inputs and can be invoked independently at any time.
package osint

import (
	"sort"

	"github.com/avwhitaker/scout/internal/graph"
)

const (
	influenceDamping    = 0.85
	influenceIterations = 20
)

// InfluenceScore ranks one entity by propagated centrality.
type InfluenceScore struct {
	Entity string  `json:"entity"`
	Score  float64 `json:"score"`
}

// Influence runs a propagation-style centrality pass over the graph: each
// node's score is redistributed to neighbors in proportion to edge weight,
// repeated for a fixed number of iterations, then normalized so the top
// entity scores 1.
func Influence(g *graph.Graph) []InfluenceScore {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return nil
	}

	entities := make([]string, len(nodes))
	for i, n := range nodes {
		entities[i] = n.Entity
	}
	sort.Strings(entities)

	// Total outgoing weight per node, for proportional redistribution.
	outWeight := make(map[string]float64, len(entities))
	for _, e := range entities {
		total := 0.0
		for _, nb := range g.Neighbors(e, 1) {
			total += float64(g.Weight(e, nb))
		}
		outWeight[e] = total
	}

	scores := make(map[string]float64, len(entities))
	for _, e := range entities {
		scores[e] = 1.0
	}

	for i := 0; i < influenceIterations; i++ {
		next := make(map[string]float64, len(entities))
		for _, e := range entities {
			score := 1 - influenceDamping
			for _, nb := range g.Neighbors(e, 1) {
				if outWeight[nb] > 0 {
					share := float64(g.Weight(e, nb)) / outWeight[nb]
					score += influenceDamping * scores[nb] * share
				}
			}
			next[e] = score
		}
		scores = next
	}

	maxScore := 0.0
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	if maxScore == 0 {
		maxScore = 1
	}

	out := make([]InfluenceScore, 0, len(scores))
	for e, s := range scores {
		out = append(out, InfluenceScore{Entity: e, Score: s / maxScore})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Entity < out[j].Entity
	})
	return out
}

// Communities groups entities into connected components over edges with
// weight >= minWeight, via iterative depth-first traversal. Components of a
// single entity are dropped. Output order is by size descending, then by
// first member, and members within a community are sorted.
func Communities(g *graph.Graph, minWeight int) [][]string {
	if minWeight < 1 {
		minWeight = 1
	}

	nodes := g.Nodes()
	entities := make([]string, len(nodes))
	for i, n := range nodes {
		entities[i] = n.Entity
	}
	sort.Strings(entities)

	visited := make(map[string]bool, len(entities))
	var communities [][]string

	for _, start := range entities {
		if visited[start] {
			continue
		}
		var community []string
		stack := []string{start}
		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[node] {
				continue
			}
			visited[node] = true
			community = append(community, node)
			for _, nb := range g.Neighbors(node, minWeight) {
				if !visited[nb] {
					stack = append(stack, nb)
				}
			}
		}
		if len(community) > 1 {
			sort.Strings(community)
			communities = append(communities, community)
		}
	}

	sort.Slice(communities, func(i, j int) bool {
		if len(communities[i]) != len(communities[j]) {
			return len(communities[i]) > len(communities[j])
		}
		return communities[i][0] < communities[j][0]
	})
	return communities
}
