package catalogControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/starsoft-labs/nft-market-api/catalog"
	"github.com/starsoft-labs/nft-market-api/models"
)

// Listing defaults, matching what the storefront requests on first load.
const (
	defaultRows   = 8
	defaultSortBy = "name"
)

// GetCatalog returns the visible set for the requested listing query,
// loading the first page if nothing has been fetched yet. Changing rows,
// sortBy or orderBy resets the listing to a fresh aggregator.
//
// GET /catalog?rows=&sortBy=&orderBy=
func GetCatalog(session *catalog.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := parseListQuery(c)
		snap := session.Aggregator(query).EnsureLoaded(c.Request.Context())
		respondSnapshot(c, snap)
	}
}

// LoadMore advances the current listing by one page. It is a no-op when
// everything is already visible or a page fetch is still in flight.
//
// POST /catalog/load-more
func LoadMore(session *catalog.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := session.Current().LoadNext(c.Request.Context())
		respondSnapshot(c, snap)
	}
}

func parseListQuery(c *gin.Context) models.ListQuery {
	rows, err := strconv.Atoi(c.DefaultQuery("rows", strconv.Itoa(defaultRows)))
	if err != nil || rows < 1 {
		rows = defaultRows
	}

	orderBy := strings.ToUpper(c.DefaultQuery("orderBy", models.OrderAsc))
	if orderBy != models.OrderAsc && orderBy != models.OrderDesc {
		orderBy = models.OrderAsc
	}

	return models.ListQuery{
		Rows:    rows,
		SortBy:  c.DefaultQuery("sortBy", defaultSortBy),
		OrderBy: orderBy,
	}
}

func respondSnapshot(c *gin.Context, snap catalog.Snapshot) {
	// A failed first page with nothing to show is a hard error; a failure
	// after pages have loaded keeps the partial listing visible.
	if snap.ErrorMessage != "" && len(snap.Items) == 0 {
		c.JSON(http.StatusBadGateway, gin.H{"error": snap.ErrorMessage})
		return
	}

	items := snap.Items
	if items == nil {
		items = []models.Item{}
	}
	c.JSON(http.StatusOK, gin.H{
		"items":         items,
		"count":         snap.TotalCount,
		"progress":      snap.Progress,
		"hasViewedAll":  snap.HasViewedAll,
		"isLoadingMore": snap.IsLoadingMore,
		"isEmpty":       snap.IsEmpty,
		"error":         snap.ErrorMessage,
	})
}
