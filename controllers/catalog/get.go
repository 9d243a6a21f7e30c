package catalogControllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/starsoft-labs/nft-market-api/models"
)

// ItemFetcher fetches a single catalog item for the detail view.
type ItemFetcher interface {
	FetchItemByID(ctx context.Context, id string) (*models.Item, error)
}

// GetItemByID returns a single item fetched straight from the upstream.
// URL param: /catalog/:id
func GetItemByID(fetcher ItemFetcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Item ID is required"})
			return
		}

		item, err := fetcher.FetchItemByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to retrieve item"})
			return
		}
		if item == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}
