// internal/cart/domain.go
package cart

// Item is one cart line. Price, subtotal and availableStock come from the
// backend's stock ledger; the console displays them verbatim and never
// recomputes anything locally.
type Item struct {
	ProductID      int     `json:"productId"`
	ProductTitle   string  `json:"productTitle"`
	ProductType    string  `json:"productType"`
	Quantity       int     `json:"quantity"`
	Price          float64 `json:"price"`
	Subtotal       float64 `json:"subtotal"`
	AvailableStock int     `json:"availableStock"`
	Available      *bool   `json:"available,omitempty"`
}

// Cart is the authenticated user's cart as the backend returns it. Totals
// (including VAT and weight, which feed the shipping fee) are server-side
// computations.
type Cart struct {
	ID           int     `json:"id"`
	Items        []Item  `json:"items"`
	Subtotal     float64 `json:"subtotal"`
	TotalWithVAT float64 `json:"totalWithVAT"`
	TotalWeight  float64 `json:"totalWeight"`
}
