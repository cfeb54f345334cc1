// Package semantic builds a TF-IDF index over the current corpus and
// answers cosine-similarity queries against it. The index is rebuilt on
// demand rather than updated incrementally, so similarity scores are only
// valid against the index state at query time.
package semantic

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"
)

var tokenRe = regexp.MustCompile(`[a-z0-9][a-z0-9'-]*`)

func tokenize(text string) []string {
	return tokenRe.FindAllString(strings.ToLower(text), -1)
}

// Match is one similarity hit.
type Match struct {
	ID         string  `json:"id"`
	Similarity float64 `json:"similarity"`
}

// Index holds term frequencies and IDF weights for a document corpus.
// Safe for concurrent use; Build replaces the whole index atomically.
type Index struct {
	mu   sync.RWMutex
	docs []string             // document IDs in index order
	tf   []map[string]float64 // per-document normalized term frequency
	idf  map[string]float64
}

func NewIndex() *Index {
	return &Index{idf: make(map[string]float64)}
}

// Build replaces the index with one computed over the given documents.
// IDF weights are recomputed across the entire corpus.
func (ix *Index) Build(ids []string, texts []string) {
	n := len(ids)
	tf := make([]map[string]float64, n)
	docFreq := make(map[string]int)

	for i, text := range texts {
		counts := make(map[string]int)
		tokens := tokenize(text)
		for _, tok := range tokens {
			counts[tok]++
		}
		freqs := make(map[string]float64, len(counts))
		for term, c := range counts {
			freqs[term] = float64(c) / float64(len(tokens))
			docFreq[term]++
		}
		tf[i] = freqs
	}

	idf := make(map[string]float64, len(docFreq))
	for term, df := range docFreq {
		idf[term] = math.Log(float64(n+1)/float64(df+1)) + 1
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.docs = append([]string(nil), ids...)
	ix.tf = tf
	ix.idf = idf
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

func (ix *Index) vector(text string) map[string]float64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, tok := range tokens {
		counts[tok]++
	}
	vec := make(map[string]float64, len(counts))
	for term, c := range counts {
		idf, ok := ix.idf[term]
		if !ok {
			idf = 1 // unseen term: neutral weight
		}
		vec[term] = float64(c) / float64(len(tokens)) * idf
	}
	return vec
}

// Similarity returns the cosine similarity between two texts under the
// current index weights. Symmetric; 1 for identical non-empty texts.
func (ix *Index) Similarity(a, b string) float64 {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return cosine(ix.vector(a), ix.vector(b))
}

// Search ranks indexed documents by similarity to the query and returns the
// top k. Ties break by index order for stable output.
func (ix *Index) Search(query string, k int) []Match {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	qvec := ix.vector(query)
	if len(qvec) == 0 || len(ix.docs) == 0 {
		return nil
	}

	matches := make([]Match, len(ix.docs))
	for i, id := range ix.docs {
		dvec := make(map[string]float64, len(ix.tf[i]))
		for term, freq := range ix.tf[i] {
			dvec[term] = freq * ix.idf[term]
		}
		matches[i] = Match{ID: id, Similarity: cosine(qvec, dvec)}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

func cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for term, av := range a {
		normA += av * av
		if bv, ok := b[term]; ok {
			dot += av * bv
		}
	}
	for _, bv := range b {
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Guard against float drift pushing past 1.
	if sim > 1 {
		return 1
	}
	if sim < 0 {
		return 0
	}
	return sim
}
