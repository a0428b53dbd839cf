package models

// PackageDimensions are the rounded, carrier-unit dimensions of one parcel.
// Values are strings because the rate API expects whole numbers serialized
// as strings.
type PackageDimensions struct {
	Length            string `json:"length"`
	Width             string `json:"width"`
	Height            string `json:"height"`
	UnitOfMeasurement string `json:"unitOfMeasurement"`
}

// PackageWeight is the formatted, carrier-unit weight of one parcel. A
// parcel is only quotable with a weight greater than zero.
type PackageWeight struct {
	Value             string `json:"value"`
	UnitOfMeasurement string `json:"unitOfMeasurement"`
}

// DeclaredValue is the insured value of a parcel's contents.
type DeclaredValue struct {
	Value        string `json:"value"`
	CurrencyCode string `json:"currencyCode"`
}

// PackageRequest describes one physical parcel to be quoted. Dimensions are
// omitted entirely when unknown; the carrier then rates by weight alone.
// Instances are immutable once built and live only for one rate request.
type PackageRequest struct {
	Dimensions    *PackageDimensions `json:"dimensions,omitempty"`
	Weight        PackageWeight      `json:"weight"`
	DeclaredValue *DeclaredValue     `json:"declaredValue,omitempty"`
}
