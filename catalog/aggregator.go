package catalog

import (
	"context"
	"math"
	"sync"

	"github.com/starsoft-labs/nft-market-api/models"
)

// PageFetcher fetches one page of the upstream listing. Pages are requested
// in increasing order starting at 1.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int, query models.ListQuery) (models.Page, error)
}

// Accumulate folds pages left to right into a visible set where each id
// appears at most once. The first page an id shows up in wins its field
// values; later duplicates are dropped silently, even when their fields
// differ.
func Accumulate(pages []models.Page) []models.Item {
	seen := make(map[string]bool)
	var visible []models.Item
	for _, page := range pages {
		for _, item := range page.Items {
			if seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			visible = append(visible, item)
		}
	}
	return visible
}

// TotalCount trusts only the first page's reported total, so a total that
// drifts on later pages cannot shrink or grow the listing mid-session.
// Before any page has loaded the caller-supplied initial total is used.
func TotalCount(pages []models.Page, initialTotal int) int {
	if len(pages) > 0 {
		return pages[0].Count
	}
	if initialTotal > 0 {
		return initialTotal
	}
	return 0
}

// Progress is the share of the collection already visible, as a whole
// percentage clamped to [0, 100].
func Progress(visibleCount, totalCount int) int {
	if totalCount <= 0 {
		return 0
	}
	pct := int(math.Round(float64(visibleCount) / float64(totalCount) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// HasViewedAll reports whether paging should stop. The numeric total and the
// pager's own no-more-pages signal can disagree transiently, so either one
// being true is enough.
func HasViewedAll(visibleCount, totalCount int, noMorePages bool) bool {
	return (totalCount > 0 && visibleCount >= totalCount) || noMorePages
}

// noMorePages mirrors the pager's next-page rule: the next page number must
// not exceed the page count implied by the most recently reported total.
func noMorePages(pages []models.Page, rows int) bool {
	if len(pages) == 0 || rows < 1 {
		return false
	}
	last := pages[len(pages)-1]
	totalPages := (last.Count + rows - 1) / rows
	if totalPages < 1 {
		totalPages = 1
	}
	return len(pages)+1 > totalPages
}

// Snapshot is the view-facing state derived from the pages fetched so far.
type Snapshot struct {
	Items            []models.Item
	TotalCount       int
	Progress         int
	HasViewedAll     bool
	IsInitialLoading bool
	IsLoadingMore    bool
	IsEmpty          bool
	ErrorMessage     string
}

// Aggregator folds the pages of one listing query into a deduplicated,
// insertion-ordered visible set and tracks the load state the view needs.
// One aggregator serves exactly one query; when the query changes the caller
// builds a fresh aggregator and discards this one.
type Aggregator struct {
	fetcher PageFetcher
	query   models.ListQuery

	mu           sync.Mutex
	pages        []models.Page
	initialTotal int
	inFlight     bool
	errMsg       string
}

// NewAggregator builds an aggregator for one query. initialTotal seeds the
// total before the first page has loaded (0 when unknown).
func NewAggregator(fetcher PageFetcher, query models.ListQuery, initialTotal int) *Aggregator {
	return &Aggregator{fetcher: fetcher, query: query, initialTotal: initialTotal}
}

// Query returns the listing query this aggregator serves.
func (a *Aggregator) Query() models.ListQuery {
	return a.query
}

// Snapshot derives the current view state.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

// LoadNext fetches the next page unless everything is already visible or a
// fetch is still in flight; in both cases it returns the current state
// untouched. Page N+1 is never requested before page N's result has been
// applied. A failed fetch keeps everything already visible, records the
// error, and leaves the same page eligible for a retry.
func (a *Aggregator) LoadNext(ctx context.Context) Snapshot {
	a.mu.Lock()
	current := a.snapshotLocked()
	if a.inFlight || current.HasViewedAll {
		a.mu.Unlock()
		return current
	}
	a.inFlight = true
	a.errMsg = ""
	next := len(a.pages) + 1
	a.mu.Unlock()

	page, err := a.fetcher.FetchPage(ctx, next, a.query)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.inFlight = false
	if err != nil {
		a.errMsg = err.Error()
	} else {
		a.pages = append(a.pages, page)
	}
	return a.snapshotLocked()
}

// EnsureLoaded loads the first page if nothing has been fetched yet;
// otherwise it just reports the current state. A failed first load is
// retried on the next call.
func (a *Aggregator) EnsureLoaded(ctx context.Context) Snapshot {
	a.mu.Lock()
	empty := len(a.pages) == 0 && !a.inFlight
	a.mu.Unlock()

	if empty {
		return a.LoadNext(ctx)
	}
	return a.Snapshot()
}

func (a *Aggregator) snapshotLocked() Snapshot {
	visible := Accumulate(a.pages)
	total := TotalCount(a.pages, a.initialTotal)
	return Snapshot{
		Items:            visible,
		TotalCount:       total,
		Progress:         Progress(len(visible), total),
		HasViewedAll:     HasViewedAll(len(visible), total, noMorePages(a.pages, a.query.Rows)),
		IsInitialLoading: a.inFlight && len(a.pages) == 0,
		IsLoadingMore:    a.inFlight && len(a.pages) > 0,
		IsEmpty:          !a.inFlight && a.errMsg == "" && len(a.pages) > 0 && len(visible) == 0,
		ErrorMessage:     a.errMsg,
	}
}
