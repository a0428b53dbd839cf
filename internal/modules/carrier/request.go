package carrier

import (
	"fmt"
	"time"

	"shipping-rates/internal/models"
)

// RequestBuilder assembles the carrier rate request DTO. Building is pure:
// identical inputs on the same calendar day produce an identical request,
// which the client relies on for cache-key stability. The planned shipping
// date is tomorrow at a fixed time of day, so the cache busts daily rather
// than per call.
type RequestBuilder struct {
	cfg Settings
	now func() time.Time
}

// NewRequestBuilder creates a builder for the given settings.
func NewRequestBuilder(cfg Settings) *RequestBuilder {
	return &RequestBuilder{cfg: cfg, now: time.Now}
}

// Build creates the rate request for the given shipment and parcels. A
// non-empty serviceCode restricts the quote to that product.
func (b *RequestBuilder) Build(shipment models.ShipmentContext, packages []models.PackageRequest, serviceCode string) models.RateRequest {
	origin := b.cfg.Origin
	dest := shipment.Destination

	shipper := models.PartyDetails{
		PostalCode:   origin.PostalCode,
		CityName:     origin.City,
		CountryCode:  origin.Country,
		ProvinceCode: origin.State,
		AddressLine1: origin.AddressLine1,
	}

	receiver := models.PartyDetails{
		PostalCode:   dest.PostalCode,
		CityName:     dest.City,
		CountryCode:  dest.Country,
		ProvinceCode: dest.State,
		AddressLine1: dest.AddressLine1,
	}
	if b.cfg.Residential {
		receiver.AddressType = "residential"
	}

	req := models.RateRequest{
		CustomerDetails: models.CustomerDetails{
			ShipperDetails:  shipper,
			ReceiverDetails: receiver,
		},
		Accounts: []models.Account{
			{TypeCode: "shipper", Number: b.cfg.ShipperNumber},
		},
		ProductCode:                serviceCode,
		PlannedShippingDateAndTime: b.plannedShippingDate(),
		UnitOfMeasurement:          b.cfg.UnitSystem(),
		IsCustomsDeclarable:        false,
		// Placeholder declared value; real values ride on the individual
		// packages when insurance is enabled.
		MonetaryAmount: []models.MonetaryAmount{
			{TypeCode: "declaredValue", Value: 0, CurrencyCode: b.cfg.StoreCurrency},
		},
		RequestAllValueAddedServices: true,
		ReturnStandardProductsOnly:   false,
		NextBusinessDay:              false,
		Packages:                     packages,
	}

	return req
}

// plannedShippingDate is tomorrow 08:00 UTC. Pinning the time of day keeps
// request serialization byte-identical within a calendar day.
func (b *RequestBuilder) plannedShippingDate() string {
	next := b.now().UTC().AddDate(0, 0, 1)
	t := time.Date(next.Year(), next.Month(), next.Day(), 8, 0, 0, 0, time.UTC)
	return fmt.Sprintf("%s GMT%s", t.Format("2006-01-02T15:04:05"), t.Format("-07:00"))
}
