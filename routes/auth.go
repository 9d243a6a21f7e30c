package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/starsoft-labs/nft-market-api/auth"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/guest", auth.CreateGuestUser(db))
	}
}
