package catalog

import (
	"sync"

	"github.com/starsoft-labs/nft-market-api/models"
)

// Session pins the aggregator for the listing query currently in view. A
// changed query replaces the aggregator wholesale, so a fetch started under
// the old query can never merge into the new listing.
type Session struct {
	fetcher PageFetcher

	mu    sync.Mutex
	query models.ListQuery
	agg   *Aggregator
}

func NewSession(fetcher PageFetcher, defaults models.ListQuery) *Session {
	return &Session{
		fetcher: fetcher,
		query:   defaults,
		agg:     NewAggregator(fetcher, defaults, 0),
	}
}

// Aggregator returns the aggregator serving the given query, building a
// fresh one when the query differs from the one in view.
func (s *Session) Aggregator(query models.ListQuery) *Aggregator {
	s.mu.Lock()
	defer s.mu.Unlock()
	if query != s.query {
		s.query = query
		s.agg = NewAggregator(s.fetcher, query, 0)
	}
	return s.agg
}

// Current returns the aggregator for the query currently in view.
func (s *Session) Current() *Aggregator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agg
}
