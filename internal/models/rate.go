package models

// PartyDetails is one side of the shipment in the carrier request DTO.
type PartyDetails struct {
	PostalCode   string `json:"postalCode"`
	CityName     string `json:"cityName"`
	CountryCode  string `json:"countryCode"`
	ProvinceCode string `json:"provinceCode,omitempty"`
	AddressLine1 string `json:"addressLine1,omitempty"`
	AddressType  string `json:"addressType,omitempty"`
}

// CustomerDetails groups shipper and receiver for the carrier request DTO.
type CustomerDetails struct {
	ShipperDetails  PartyDetails `json:"shipperDetails"`
	ReceiverDetails PartyDetails `json:"receiverDetails"`
}

// Account references the shipper's carrier account.
type Account struct {
	TypeCode string `json:"typeCode"`
	Number   string `json:"number"`
}

// MonetaryAmount is the request-level declared value block.
type MonetaryAmount struct {
	TypeCode     string  `json:"typeCode"`
	Value        float64 `json:"value"`
	CurrencyCode string  `json:"currencyCode"`
}

// RateRequest is the carrier rate request DTO. Building it must be
// deterministic for identical inputs within a calendar day, because the
// response cache key is derived from its serialization.
type RateRequest struct {
	CustomerDetails              CustomerDetails  `json:"customerDetails"`
	Accounts                     []Account        `json:"accounts"`
	ProductCode                  string           `json:"productCode,omitempty"`
	PlannedShippingDateAndTime   string           `json:"plannedShippingDateAndTime"`
	UnitOfMeasurement            string           `json:"unitOfMeasurement"`
	IsCustomsDeclarable          bool             `json:"isCustomsDeclarable"`
	MonetaryAmount               []MonetaryAmount `json:"monetaryAmount"`
	RequestAllValueAddedServices bool             `json:"requestAllValueAddedServices"`
	ReturnStandardProductsOnly   bool             `json:"returnStandardProductsOnly"`
	NextBusinessDay              bool             `json:"nextBusinessDay"`
	Packages                     []PackageRequest `json:"packages"`
}

// PriceSegment is one component of a quote's total price (base, fuel,
// surcharges). Segments are combined additively.
type PriceSegment struct {
	Price         float64 `json:"price"`
	PriceCurrency string  `json:"priceCurrency"`
}

// ServiceQuote is one priced shipping product in the carrier response.
type ServiceQuote struct {
	ProductCode string         `json:"productCode"`
	ProductName string         `json:"productName"`
	TotalPrice  []PriceSegment `json:"totalPrice"`
}

// RateResponse is the parsed carrier rate response.
type RateResponse struct {
	Products []ServiceQuote `json:"products"`
}

// PackedBoxDetail records what was actually quoted for one parcel; it rides
// along as rate metadata for support and debugging.
type PackedBoxDetail struct {
	Box        int                `json:"box"`
	Dimensions *PackageDimensions `json:"dimensions,omitempty"`
	Weight     PackageWeight      `json:"weight"`
}

// Rate is a priced, labeled shipping option ready for the checkout surface.
// ID is stable for a given (service code, method instance) so the checkout
// UI can re-render without duplicating options.
type Rate struct {
	ID    string            `json:"id"`
	Label string            `json:"label"`
	Cost  float64           `json:"cost"`
	Sort  int               `json:"sort"`
	Meta  []PackedBoxDetail `json:"meta_data,omitempty"`
}
