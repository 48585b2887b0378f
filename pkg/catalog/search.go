package catalog

import "go.uber.org/atomic"

// Result is the outcome of one submitted search.
type Result struct {
	Seq    uint64
	Query  string
	Groups []Group
}

// Searcher runs searches off the caller's goroutine. Each submission gets a
// sequence number; only the result of the latest submission is current.
type Searcher struct {
	index *Index
	seq   *atomic.Uint64
}

// NewSearcher returns a Searcher over index.
func NewSearcher(index *Index) *Searcher {
	return &Searcher{index: index, seq: atomic.NewUint64(0)}
}

// Submit starts a search for query and returns its sequence number together
// with a channel that receives exactly one Result.
func (s *Searcher) Submit(query string) (uint64, <-chan Result) {
	seq := s.seq.Inc()
	out := make(chan Result, 1)
	go func() {
		out <- Result{Seq: seq, Query: query, Groups: s.index.Search(query)}
	}()
	return seq, out
}

// IsCurrent reports whether seq belongs to the most recent submission.
// Results for which it returns false are stale and should be dropped.
func (s *Searcher) IsCurrent(seq uint64) bool {
	return seq == s.seq.Load()
}

// Index returns the index being searched.
func (s *Searcher) Index() *Index {
	return s.index
}
