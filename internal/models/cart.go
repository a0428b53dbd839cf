package models

// Product carries the shipping-relevant attributes of a catalogue item.
// Weight and dimensions are expressed in the store's configured units; the
// package builder converts them to the carrier's units.
type Product struct {
	ID      string  `json:"id" validate:"required"`
	Name    string  `json:"name"`
	Weight  float64 `json:"weight" validate:"gte=0"`
	Length  float64 `json:"length" validate:"gte=0"`
	Width   float64 `json:"width" validate:"gte=0"`
	Height  float64 `json:"height" validate:"gte=0"`
	Price   float64 `json:"price" validate:"gte=0"`
	Virtual bool    `json:"virtual"`
}

// NeedsShipping reports whether the product is a physical good.
func (p Product) NeedsShipping() bool {
	return !p.Virtual
}

// CartItem is one line of the cart: a product and a quantity.
type CartItem struct {
	Product  Product `json:"product" validate:"required"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
}

// Cart is the opaque checkout input: the lines to be quoted.
type Cart struct {
	Items []CartItem `json:"items" validate:"required,min=1,dive"`
}
