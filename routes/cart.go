package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/starsoft-labs/nft-market-api/controllers/cart"
	"github.com/starsoft-labs/nft-market-api/middleware"
	"github.com/starsoft-labs/nft-market-api/storage"
)

// SetupCartRoutes registers all "/guest/cart/*" endpoints. Requires the
// guest JWT middleware.
func SetupCartRoutes(r *gin.Engine, carts *storage.Manager) {
	guestGroup := r.Group("/guest")
	guestGroup.Use(middleware.ValidateToken)
	{
		cartGroup := guestGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetCart(carts))                               // GET /guest/cart
			cartGroup.POST("/items", cartControllers.AddCartItem(carts))                     // POST /guest/cart/items
			cartGroup.DELETE("/items/:item_id", cartControllers.DeleteCartItem(carts))       // DELETE /guest/cart/items/:item_id
			cartGroup.POST("/items/:item_id/increase", cartControllers.IncreaseCartItem(carts)) // POST /guest/cart/items/:item_id/increase
			cartGroup.POST("/items/:item_id/decrease", cartControllers.DecreaseCartItem(carts)) // POST /guest/cart/items/:item_id/decrease
			cartGroup.DELETE("/", cartControllers.ClearCart(carts))                          // DELETE /guest/cart
			cartGroup.GET("/ws", cartControllers.CartWebSocket(carts))                       // GET /guest/cart/ws
		}
	}
}
