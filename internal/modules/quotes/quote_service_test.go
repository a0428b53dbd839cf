package quotes

import (
	"context"
	"testing"

	"shipping-rates/internal/models"
	"shipping-rates/internal/modules/carrier"
	"shipping-rates/internal/modules/packing"
	"shipping-rates/pkg/logger"
)

type fakeBuilder struct {
	packages []models.PackageRequest
	calls    int
}

func (b *fakeBuilder) Build(models.Cart) []models.PackageRequest {
	b.calls++
	return b.packages
}

type fakeRateSource struct {
	quotes []models.ServiceQuote
	err    error
	calls  int
}

func (r *fakeRateSource) GetRates(context.Context, models.ShipmentContext, []models.PackageRequest) ([]models.ServiceQuote, error) {
	r.calls++
	return r.quotes, r.err
}

type stubMapper struct {
	rates []models.Rate
}

func (m stubMapper) Map([]models.ServiceQuote, []models.PackageRequest) []models.Rate {
	return m.rates
}

func (m stubMapper) RateID(code string) string {
	return "dhl_" + code + "_1"
}

type fixedAddressChecker carrier.ValidationResult

func (r fixedAddressChecker) Validate(context.Context, models.Address) carrier.ValidationResult {
	return carrier.ValidationResult(r)
}

type fakeNotifier struct {
	subjects []string
}

func (n *fakeNotifier) Notify(_ context.Context, subject, _ string) error {
	n.subjects = append(n.subjects, subject)
	return nil
}

func testCart() models.Cart {
	return models.Cart{Items: []models.CartItem{{
		Product:  models.Product{ID: "p1", Weight: 2, Price: 30},
		Quantity: 1,
	}}}
}

func testShipment() models.ShipmentContext {
	return models.ShipmentContext{Destination: models.Address{
		City: "Berlin", PostalCode: "10115", Country: "DE",
	}}
}

func onePackage() []models.PackageRequest {
	return []models.PackageRequest{{
		Weight: models.PackageWeight{Value: "2", UnitOfMeasurement: "KG"},
	}}
}

func TestCalculateRatesSortsByConfiguredOrder(t *testing.T) {
	mapper := stubMapper{rates: []models.Rate{
		{ID: "b", Cost: 20, Sort: 2},
		{ID: "a", Cost: 50, Sort: 1},
	}}
	svc := NewService(Settings{OfferRates: OfferAll}, &fakeBuilder{packages: onePackage()},
		&fakeRateSource{quotes: []models.ServiceQuote{{ProductCode: "N"}}}, mapper, nil, nil, nil, logger.Discard())

	rates, err := svc.CalculateRates(context.Background(), testCart(), testShipment())
	if err != nil {
		t.Fatalf("CalculateRates: %v", err)
	}
	if len(rates) != 2 || rates[0].ID != "a" || rates[1].ID != "b" {
		t.Errorf("expected rates sorted by configured order, got %+v", rates)
	}
}

func TestCalculateRatesCheapestTiesKeepFirst(t *testing.T) {
	mapper := stubMapper{rates: []models.Rate{
		{ID: "first", Cost: 10, Sort: 1},
		{ID: "second", Cost: 10, Sort: 2},
		{ID: "expensive", Cost: 25, Sort: 3},
	}}
	svc := NewService(Settings{OfferRates: OfferCheapest}, &fakeBuilder{packages: onePackage()},
		&fakeRateSource{quotes: []models.ServiceQuote{{ProductCode: "N"}}}, mapper, nil, nil, nil, logger.Discard())

	rates, err := svc.CalculateRates(context.Background(), testCart(), testShipment())
	if err != nil {
		t.Fatalf("CalculateRates: %v", err)
	}
	if len(rates) != 1 || rates[0].ID != "first" {
		t.Errorf("cheapest with ties keeps the first, got %+v", rates)
	}
}

func TestCalculateRatesInvalidAddressShortCircuits(t *testing.T) {
	builder := &fakeBuilder{packages: onePackage()}
	source := &fakeRateSource{}
	svc := NewService(Settings{AddressValidation: true}, builder, source, stubMapper{},
		fixedAddressChecker(carrier.AddressInvalid), nil, nil, logger.Discard())

	rates, err := svc.CalculateRates(context.Background(), testCart(), testShipment())
	if err != nil {
		t.Fatalf("CalculateRates: %v", err)
	}
	if rates != nil {
		t.Errorf("invalid destination yields no rates, got %+v", rates)
	}
	if builder.calls != 0 || source.calls != 0 {
		t.Error("invalid destination must not reach packing or the carrier")
	}
}

func TestCalculateRatesIndeterminateAddressProceeds(t *testing.T) {
	source := &fakeRateSource{quotes: []models.ServiceQuote{{ProductCode: "N"}}}
	mapper := stubMapper{rates: []models.Rate{{ID: "a", Cost: 10}}}
	svc := NewService(Settings{AddressValidation: true}, &fakeBuilder{packages: onePackage()},
		source, mapper, fixedAddressChecker(carrier.AddressIndeterminate), nil, nil, logger.Discard())

	rates, err := svc.CalculateRates(context.Background(), testCart(), testShipment())
	if err != nil {
		t.Fatalf("CalculateRates: %v", err)
	}
	if len(rates) != 1 {
		t.Errorf("an undecidable address must not block checkout, got %+v", rates)
	}
}

func TestCalculateRatesNothingToShip(t *testing.T) {
	source := &fakeRateSource{}
	svc := NewService(Settings{}, &fakeBuilder{}, source, stubMapper{}, nil, nil, nil, logger.Discard())

	rates, err := svc.CalculateRates(context.Background(), testCart(), testShipment())
	if err != nil {
		t.Fatalf("CalculateRates: %v", err)
	}
	if rates != nil {
		t.Errorf("expected no rates, got %+v", rates)
	}
	if source.calls != 0 {
		t.Error("an empty parcel list must not reach the carrier")
	}
}

func TestCalculateRatesCarrierFailureYieldsFallback(t *testing.T) {
	fallback := 9.95
	source := &fakeRateSource{err: models.ErrRateLimited}
	notifier := &fakeNotifier{}
	svc := NewService(Settings{Title: "DHL Express", Fallback: &fallback},
		&fakeBuilder{packages: onePackage()}, source, stubMapper{}, nil, nil, notifier, logger.Discard())

	rates, err := svc.CalculateRates(context.Background(), testCart(), testShipment())
	if err != nil {
		t.Fatalf("CalculateRates: %v", err)
	}
	if len(rates) != 1 || rates[0].Cost != 9.95 || rates[0].Label != "DHL Express" {
		t.Errorf("expected the fallback rate, got %+v", rates)
	}
	if rates[0].ID != "dhl_fallback_1" {
		t.Errorf("unexpected fallback rate id %q", rates[0].ID)
	}
	if len(notifier.subjects) != 1 {
		t.Errorf("expected one operator notice, got %v", notifier.subjects)
	}
}

func TestCalculateRatesCarrierFailureWithoutFallback(t *testing.T) {
	source := &fakeRateSource{err: models.ErrCarrier}
	notifier := &fakeNotifier{}
	svc := NewService(Settings{}, &fakeBuilder{packages: onePackage()}, source, stubMapper{},
		nil, nil, notifier, logger.Discard())

	rates, err := svc.CalculateRates(context.Background(), testCart(), testShipment())
	if err != nil {
		t.Fatalf("CalculateRates: %v", err)
	}
	if rates != nil {
		t.Errorf("expected no rates, got %+v", rates)
	}
	// Plain carrier errors are diagnostics, not operator notices.
	if len(notifier.subjects) != 0 {
		t.Errorf("expected no operator notice, got %v", notifier.subjects)
	}
}

func TestCalculateRatesMissingCredentialsNotifies(t *testing.T) {
	source := &fakeRateSource{err: models.ErrMissingCredentials}
	notifier := &fakeNotifier{}
	svc := NewService(Settings{}, &fakeBuilder{packages: onePackage()}, source, stubMapper{},
		nil, nil, notifier, logger.Discard())

	if _, err := svc.CalculateRates(context.Background(), testCart(), testShipment()); err != nil {
		t.Fatalf("CalculateRates: %v", err)
	}
	if len(notifier.subjects) != 1 {
		t.Fatalf("expected one operator notice, got %v", notifier.subjects)
	}
}

func TestCalculateRatesEmptyMappingYieldsFallback(t *testing.T) {
	fallback := 5.0
	source := &fakeRateSource{quotes: []models.ServiceQuote{{ProductCode: "X"}}}
	svc := NewService(Settings{Fallback: &fallback}, &fakeBuilder{packages: onePackage()},
		source, stubMapper{}, nil, nil, nil, logger.Discard())

	rates, err := svc.CalculateRates(context.Background(), testCart(), testShipment())
	if err != nil {
		t.Fatalf("CalculateRates: %v", err)
	}
	if len(rates) != 1 || rates[0].Cost != 5.0 || rates[0].Label != "Flat rate" {
		t.Errorf("expected the default-labeled fallback, got %+v", rates)
	}
}

func TestCalculateRatesAppliesTransforms(t *testing.T) {
	mapper := stubMapper{rates: []models.Rate{{ID: "a", Cost: 10}}}
	double := func(rates []models.Rate) []models.Rate {
		for i := range rates {
			rates[i].Cost *= 2
		}
		return rates
	}
	svc := NewService(Settings{}, &fakeBuilder{packages: onePackage()},
		&fakeRateSource{quotes: []models.ServiceQuote{{ProductCode: "N"}}}, mapper,
		nil, nil, nil, logger.Discard(), double)

	rates, err := svc.CalculateRates(context.Background(), testCart(), testShipment())
	if err != nil {
		t.Fatalf("CalculateRates: %v", err)
	}
	if len(rates) != 1 || rates[0].Cost != 20 {
		t.Errorf("expected the transform applied, got %+v", rates)
	}
}

// TestCalculateRatesEndToEnd runs a real package builder and mapper against
// a scripted carrier: a 2 kg item quoted at 50 with a 10% markup lands at
// 55.
func TestCalculateRatesEndToEnd(t *testing.T) {
	carrierCfg := carrier.Settings{
		StoreCurrency: "USD",
		InstanceID:    7,
		Services: map[string]carrier.ServiceSetting{
			"P": {Enabled: true, AdjustmentPercent: 10},
		},
	}
	packCfg := packing.Settings{
		Method:             packing.PerItem,
		WeightUnit:         "KG",
		DimensionUnit:      "cm",
		StoreWeightUnit:    "kg",
		StoreDimensionUnit: "cm",
		StoreCurrency:      "USD",
	}

	source := &fakeRateSource{quotes: []models.ServiceQuote{{
		ProductCode: "P",
		ProductName: "EXPRESS WORLDWIDE",
		TotalPrice:  []models.PriceSegment{{Price: 50, PriceCurrency: "USD"}},
	}}}

	svc := NewService(Settings{OfferRates: OfferAll},
		packing.NewBuilder(packCfg, nil, logger.Discard()),
		source,
		carrier.NewMapper(carrierCfg, logger.Discard()),
		nil, nil, nil, logger.Discard())

	rates, err := svc.CalculateRates(context.Background(), testCart(), testShipment())
	if err != nil {
		t.Fatalf("CalculateRates: %v", err)
	}
	if len(rates) != 1 {
		t.Fatalf("expected 1 rate, got %d", len(rates))
	}
	rate := rates[0]
	if rate.ID != "dhl_P_7" || rate.Label != "EXPRESS WORLDWIDE" || rate.Cost != 55 {
		t.Errorf("unexpected rate: %+v", rate)
	}
	if len(rate.Meta) != 1 || rate.Meta[0].Weight.Value != "2" {
		t.Errorf("unexpected packed-box metadata: %+v", rate.Meta)
	}
}

type fixedCredentialChecker bool

func (r fixedCredentialChecker) ValidateCredentials(context.Context) bool {
	return bool(r)
}

func TestCheckCredentials(t *testing.T) {
	svc := NewService(Settings{}, &fakeBuilder{}, &fakeRateSource{}, stubMapper{},
		nil, fixedCredentialChecker(true), nil, logger.Discard())
	if !svc.CheckCredentials(context.Background()) {
		t.Error("expected accepted credentials")
	}

	svc = NewService(Settings{}, &fakeBuilder{}, &fakeRateSource{}, stubMapper{},
		nil, nil, nil, logger.Discard())
	if svc.CheckCredentials(context.Background()) {
		t.Error("expected failure without a checker")
	}
}

func TestFallbackParsing(t *testing.T) {
	if v, err := Fallback(""); err != nil || v != nil {
		t.Errorf("empty input disables the fallback, got %v, %v", v, err)
	}
	if v, err := Fallback("12.5"); err != nil || v == nil || *v != 12.5 {
		t.Errorf("expected 12.5, got %v, %v", v, err)
	}
	if _, err := Fallback("not-a-number"); err == nil {
		t.Error("expected a parse error")
	}
	// A numeric prefix with trailing garbage is still invalid.
	if _, err := Fallback("12abc"); err == nil {
		t.Error("expected a parse error for trailing garbage")
	}
}
