package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/starsoft-labs/nft-market-api/cart"
	"github.com/starsoft-labs/nft-market-api/models"
	"github.com/starsoft-labs/nft-market-api/storage"
)

type AddItemInput struct {
	ID          string  `json:"id" binding:"required"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Quantity    float64 `json:"quantity"`
}

// guestStore resolves the guest identity set by the auth middleware to that
// guest's cart store.
func guestStore(c *gin.Context, carts *storage.Manager) (*cart.Store, bool) {
	guestIDVal, exists := c.Get("guest_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	guestID, ok := guestIDVal.(string)
	if !ok || guestID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return carts.Cart(guestID), true
}

func respondCart(c *gin.Context, store *cart.Store) {
	items := store.Items()
	if items == nil {
		items = []models.CartLine{}
	}
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": store.Count(),
		"total": store.TotalValue(),
	})
}

// GET /guest/cart
func GetCart(carts *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := guestStore(c, carts)
		if !ok {
			return
		}
		respondCart(c, store)
	}
}

// POST /guest/cart/items
//
// Invalid payloads (blank id, negative price) leave the cart unchanged by
// design; the response is simply the current cart either way.
func AddCartItem(carts *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := guestStore(c, carts)
		if !ok {
			return
		}

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		store.AddItem(models.Item{
			ID:          input.ID,
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Image:       input.Image,
		}, input.Quantity)

		respondCart(c, store)
	}
}

// DELETE /guest/cart/items/:item_id
func DeleteCartItem(carts *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := guestStore(c, carts)
		if !ok {
			return
		}
		store.RemoveItem(c.Param("item_id"))
		respondCart(c, store)
	}
}

// POST /guest/cart/items/:item_id/increase
func IncreaseCartItem(carts *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := guestStore(c, carts)
		if !ok {
			return
		}
		store.IncreaseQuantity(c.Param("item_id"))
		respondCart(c, store)
	}
}

// POST /guest/cart/items/:item_id/decrease
func DecreaseCartItem(carts *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := guestStore(c, carts)
		if !ok {
			return
		}
		store.DecreaseQuantity(c.Param("item_id"))
		respondCart(c, store)
	}
}

// DELETE /guest/cart
func ClearCart(carts *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := guestStore(c, carts)
		if !ok {
			return
		}
		store.Clear()
		respondCart(c, store)
	}
}
