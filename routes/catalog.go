package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/starsoft-labs/nft-market-api/catalog"
	catalogControllers "github.com/starsoft-labs/nft-market-api/controllers/catalog"
	"github.com/starsoft-labs/nft-market-api/middleware"
	"github.com/starsoft-labs/nft-market-api/upstream"
)

// SetupCatalogRoutes registers all "/catalog/*" endpoints.
func SetupCatalogRoutes(r *gin.Engine, session *catalog.Session, items *upstream.Client) {
	catalogGroup := r.Group("/catalog")
	{
		catalogGroup.GET("/", catalogControllers.GetCatalog(session))                                        // GET /catalog
		catalogGroup.POST("/load-more", catalogControllers.LoadMore(session))                                // POST /catalog/load-more
		catalogGroup.GET("/export", middleware.ValidateAPIKey, catalogControllers.ExportCatalogToExcel(session)) // GET /catalog/export
		catalogGroup.GET("/:id", catalogControllers.GetItemByID(items))                                      // GET /catalog/:id
	}
}
