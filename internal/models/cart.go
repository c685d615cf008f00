package models

// CartItem is one line of the client-held cart. It embeds the product it
// was added from so the persisted record flattens to the product fields
// plus a quantity, and the cart can render without a re-fetch.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}
