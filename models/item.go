package models

// Item is a single catalog entry as shown in the listing and detail views.
// Prices are plain numbers; "ETH" is only a display label, no chain logic
// exists anywhere in this service.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

// Page is one upstream fetch result: an ordered batch of items plus the
// total collection size as the upstream reported it at fetch time.
type Page struct {
	Items []Item `json:"items"`
	Count int    `json:"count"`
}
