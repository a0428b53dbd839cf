// Package quotes is the inbound surface of the rate pipeline: it turns a
// cart plus destination into the sorted, filtered list of shipping options a
// checkout can show.
package quotes

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"shipping-rates/internal/models"
	"shipping-rates/internal/modules/carrier"
	"shipping-rates/pkg/logger"
	"shipping-rates/pkg/notify"
)

// PackageBuilder is the packing capability (strategy over cart contents).
type PackageBuilder interface {
	Build(cart models.Cart) []models.PackageRequest
}

// RateSource fetches carrier quotes for a set of parcels.
type RateSource interface {
	GetRates(ctx context.Context, shipment models.ShipmentContext, packages []models.PackageRequest) ([]models.ServiceQuote, error)
}

// QuoteMapper turns carrier quotes into rates.
type QuoteMapper interface {
	Map(quotes []models.ServiceQuote, packages []models.PackageRequest) []models.Rate
	RateID(code string) string
}

// AddressChecker is the optional pre-checkout address validation.
type AddressChecker interface {
	Validate(ctx context.Context, address models.Address) carrier.ValidationResult
}

// CredentialChecker verifies the configured carrier credentials.
type CredentialChecker interface {
	ValidateCredentials(ctx context.Context) bool
}

// RateTransform is a post-mapping extension point: an ordered, pure rewrite
// of the rate list before policy is applied.
type RateTransform func([]models.Rate) []models.Rate

// Offer policies.
const (
	OfferAll      = "all"
	OfferCheapest = "cheapest"
)

// Settings is the caller-level rate policy configuration.
type Settings struct {
	Title             string   `mapstructure:"title"`
	OfferRates        string   `mapstructure:"offer_rates"` // all or cheapest
	Fallback          *float64 `mapstructure:"fallback"`    // nil disables the fallback rate
	AddressValidation bool     `mapstructure:"address_validation"`
}

// Service orchestrates a rate calculation end to end. It never propagates a
// failure out of a checkout calculation: every failure path yields an empty
// (or fallback) rate list plus diagnostics.
type Service struct {
	cfg         Settings
	builder     PackageBuilder
	rates       RateSource
	mapper      QuoteMapper
	addresses   AddressChecker
	credentials CredentialChecker
	transforms  []RateTransform
	notifier    notify.Notifier
	log         *logger.Logger
}

// NewService wires the rate-calculation service. addresses and credentials
// may be nil when the corresponding features are disabled.
func NewService(cfg Settings, builder PackageBuilder, rates RateSource, mapper QuoteMapper, addresses AddressChecker, credentials CredentialChecker, notifier notify.Notifier, log *logger.Logger, transforms ...RateTransform) *Service {
	return &Service{
		cfg:         cfg,
		builder:     builder,
		rates:       rates,
		mapper:      mapper,
		addresses:   addresses,
		credentials: credentials,
		transforms:  transforms,
		notifier:    notifier,
		log:         log.WithComponent("quotes"),
	}
}

// CalculateRates computes the shipping options for a cart. The returned
// error is reserved for programming mistakes; carrier and configuration
// failures are reported through logs and operator notices and produce an
// empty or fallback rate list.
func (s *Service) CalculateRates(ctx context.Context, cart models.Cart, shipment models.ShipmentContext) ([]models.Rate, error) {
	if s.cfg.AddressValidation && s.addresses != nil {
		result := s.addresses.Validate(ctx, shipment.Destination)
		if result == carrier.AddressInvalid {
			s.log.Info("destination address failed validation, returning no rates")
			return nil, nil
		}
		// Indeterminate never blocks a purchase.
	}

	packages := s.builder.Build(cart)
	if len(packages) == 0 {
		s.log.Info("no packages to ship")
		return nil, nil
	}

	quotes, err := s.rates.GetRates(ctx, shipment, packages)
	if err != nil {
		s.log.WithError(err).Error("cannot retrieve rates")
		s.maybeNotifyOperator(ctx, err)
		return s.fallbackRates(), nil
	}

	rates := s.mapper.Map(quotes, packages)
	for _, transform := range s.transforms {
		rates = transform(rates)
	}

	if len(rates) == 0 {
		s.log.Info("carrier returned no usable rates")
		return s.fallbackRates(), nil
	}

	sort.SliceStable(rates, func(i, j int) bool {
		if rates[i].Sort != rates[j].Sort {
			return rates[i].Sort < rates[j].Sort
		}
		return rates[i].Cost < rates[j].Cost
	})

	if s.cfg.OfferRates == OfferCheapest {
		rates = []models.Rate{cheapest(rates)}
	}

	return rates, nil
}

// CheckCredentials reports whether the configured carrier credentials are
// accepted, for the settings surface.
func (s *Service) CheckCredentials(ctx context.Context) bool {
	if s.credentials == nil {
		return false
	}
	return s.credentials.ValidateCredentials(ctx)
}

// maybeNotifyOperator raises configuration problems to the store owner;
// shoppers only ever see an empty rate list.
func (s *Service) maybeNotifyOperator(ctx context.Context, err error) {
	if s.notifier == nil {
		return
	}
	switch {
	case errors.Is(err, models.ErrMissingCredentials):
		s.notify(ctx, "Shipping credentials missing", err.Error())
	case errors.Is(err, models.ErrRateLimited):
		s.notify(ctx, "Carrier rate limit reached", err.Error())
	}
}

func (s *Service) notify(ctx context.Context, subject, message string) {
	if err := s.notifier.Notify(ctx, subject, message); err != nil {
		s.log.Warn("failed to deliver operator notice", "error", err)
	}
}

// fallbackRates returns the configured flat rate, or nothing. The fallback
// is a deliberate caller decision for the whole-call-empty case, never an
// automatic substitute for individual dropped quotes.
func (s *Service) fallbackRates() []models.Rate {
	if s.cfg.Fallback == nil {
		return nil
	}
	label := s.cfg.Title
	if label == "" {
		label = "Flat rate"
	}
	return []models.Rate{{
		ID:    s.mapper.RateID("fallback"),
		Label: label,
		Cost:  *s.cfg.Fallback,
	}}
}

// cheapest keeps the minimum-cost rate; ties keep the first encountered.
func cheapest(rates []models.Rate) models.Rate {
	best := rates[0]
	for _, rate := range rates[1:] {
		if rate.Cost < best.Cost {
			best = rate
		}
	}
	return best
}

// Fallback builds the optional fallback setting from a config string: empty
// disables it.
func Fallback(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid fallback rate %q: %w", raw, err)
	}
	return &v, nil
}
