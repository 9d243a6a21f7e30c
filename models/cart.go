package models

// CartLine is one entry in a guest cart: an item plus a quantity.
// Quantity is always >= 1; a line decremented to zero is removed from the
// cart rather than kept around empty.
type CartLine struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Quantity    int     `json:"quantity"`
}
