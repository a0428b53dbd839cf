package models

// Address identifies one end of a shipment.
type Address struct {
	AddressLine1 string `json:"address_line_1"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country" validate:"required,len=2"`
}

// ShipmentContext carries the shipment-level inputs owned by the checkout
// flow. The rate pipeline only reads it.
type ShipmentContext struct {
	Destination Address `json:"destination" validate:"required"`
}

// CalculateRatesRequest is the inbound payload for a rate calculation.
type CalculateRatesRequest struct {
	Cart        Cart    `json:"cart" validate:"required"`
	Destination Address `json:"destination" validate:"required"`
}
