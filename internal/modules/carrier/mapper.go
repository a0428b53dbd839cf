package carrier

import (
	"fmt"

	"shipping-rates/internal/models"
	"shipping-rates/pkg/logger"
)

// Mapper turns carrier service quotes into priced, labeled rates. It filters
// by the enabled-service set, enforces currency consistency, applies cost
// adjustments and attaches per-package metadata. It does not sort: offer
// policy is the caller's decision.
type Mapper struct {
	cfg Settings
	log *logger.Logger
}

// NewMapper creates a response mapper for the given settings.
func NewMapper(cfg Settings, log *logger.Logger) *Mapper {
	return &Mapper{cfg: cfg, log: log.WithComponent("rate_mapper")}
}

// Map converts quotes into rates. Quotes for disabled services are skipped;
// an empty enabled set means no rates are configured and nothing passes.
// Quotes in a currency other than the store's are dropped with a diagnostic,
// never converted.
func (m *Mapper) Map(quotes []models.ServiceQuote, packages []models.PackageRequest) []models.Rate {
	meta := packedBoxDetails(packages)

	var rates []models.Rate
	seen := make(map[string]bool)

	for _, quote := range quotes {
		code := quote.ProductCode
		svc, enabled := m.cfg.Services[code]
		if !enabled || !svc.Enabled {
			continue
		}

		id := m.RateID(code)
		if seen[id] {
			continue
		}

		label := svc.Name
		if label == "" {
			label = quote.ProductName
		}
		if label == "" {
			label = ServiceName(code)
		}

		currency := m.cfg.StoreCurrency
		if len(quote.TotalPrice) > 0 && quote.TotalPrice[0].PriceCurrency != "" {
			currency = quote.TotalPrice[0].PriceCurrency
		}
		if currency != m.cfg.StoreCurrency {
			m.log.Error(fmt.Sprintf("carrier returned the %s currency for the %s rate but the store uses %s", currency, label, m.cfg.StoreCurrency))
			continue
		}

		seen[id] = true
		rates = append(rates, models.Rate{
			ID:    id,
			Label: label,
			Cost:  m.adjustedCost(quote, svc),
			Sort:  svc.Order,
			Meta:  meta,
		})
	}

	return rates
}

// RateID is the deterministic composite of carrier, service code and method
// instance; stable across calls so the checkout UI can diff options.
func (m *Mapper) RateID(code string) string {
	return fmt.Sprintf("dhl_%s_%d", code, m.cfg.InstanceID)
}

// adjustedCost sums all price segments (base, fuel, surcharges combine
// additively) and applies the percentage adjustment before the flat one.
func (m *Mapper) adjustedCost(quote models.ServiceQuote, svc ServiceSetting) float64 {
	var cost float64
	for _, segment := range quote.TotalPrice {
		cost += segment.Price
	}

	if svc.AdjustmentPercent != 0 {
		cost += cost * (svc.AdjustmentPercent / 100)
	}
	if svc.Adjustment != 0 {
		cost += svc.Adjustment
	}

	return cost
}

// packedBoxDetails records the dimensions and weight actually quoted per
// parcel, numbered from 1. Parcels without full dimensions contribute
// weight-only entries.
func packedBoxDetails(packages []models.PackageRequest) []models.PackedBoxDetail {
	var details []models.PackedBoxDetail
	for i, pkg := range packages {
		details = append(details, models.PackedBoxDetail{
			Box:        i + 1,
			Dimensions: pkg.Dimensions,
			Weight:     pkg.Weight,
		})
	}
	return details
}
