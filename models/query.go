package models

// Sort directions accepted by the upstream products API.
const (
	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

// ListQuery identifies one catalog listing: page size plus sort field and
// direction. The page number is not part of the query; it is tracked by the
// aggregator that folds the fetched pages.
type ListQuery struct {
	Rows    int
	SortBy  string
	OrderBy string
}
