package index

import "github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/terms"

// TermFrequencies maps each term to occurrences/len(ids).
func TermFrequencies(ids []terms.ID) map[terms.ID]float64 {
	counts := make(map[terms.ID]int, len(ids))
	for _, id := range ids {
		counts[id]++
	}
	freqs := make(map[terms.ID]float64, len(counts))
	for id, n := range counts {
		freqs[id] = float64(n) / float64(len(ids))
	}
	return freqs
}
