package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/starsoft-labs/nft-market-api/catalog"
	"github.com/starsoft-labs/nft-market-api/storage"
	"github.com/starsoft-labs/nft-market-api/upstream"
)

// SetupRoutes is the single entry-point that wires up the Auth, Catalog, and
// Cart route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, session *catalog.Session, items *upstream.Client, carts *storage.Manager) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Public catalog routes (export is API-key-protected)
	SetupCatalogRoutes(r, session, items)

	// Guest cart routes (JWT-protected)
	SetupCartRoutes(r, carts)
}
