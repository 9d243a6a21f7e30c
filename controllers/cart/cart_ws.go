// cart_ws.go
package cartControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/starsoft-labs/nft-market-api/models"
	"github.com/starsoft-labs/nft-market-api/storage"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type cartEvent struct {
	Items []models.CartLine `json:"items"`
	Count int               `json:"count"`
	Total float64           `json:"total"`
}

// CartWebSocket streams the guest's cart to the client: one message on
// connect, then one per cart change. The token travels as a query param
// because browsers cannot set headers on websocket upgrades.
//
// GET /guest/cart/ws?token=...
func CartWebSocket(carts *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := guestStore(c, carts)
		if !ok {
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// Listener callbacks can fire concurrently with the initial send.
		// Each frame re-reads the store rather than trusting the
		// notification snapshot, so overlapping notifications cannot leave
		// an older state on the wire as the final frame.
		var writeMu sync.Mutex
		send := func([]models.CartLine) {
			lines := store.Items()
			event := cartEvent{Items: lines, Count: 0, Total: 0}
			if event.Items == nil {
				event.Items = []models.CartLine{}
			}
			for _, line := range lines {
				event.Count += line.Quantity
				event.Total += line.Price * float64(line.Quantity)
			}
			data, err := json.Marshal(event)
			if err != nil {
				return
			}
			writeMu.Lock()
			conn.WriteMessage(websocket.TextMessage, data)
			writeMu.Unlock()
		}

		unsubscribe := store.Subscribe(send)
		defer unsubscribe()

		send(nil)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
