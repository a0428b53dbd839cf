package carrier

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"shipping-rates/internal/models"
)

// fakeDoer is a scripted transport: it records every request and replays the
// queued responses in order, repeating the last one.
type fakeDoer struct {
	responses []*http.Response
	requests  []*http.Request
	err       error
}

func (d *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	d.requests = append(d.requests, req)
	if d.err != nil {
		return nil, d.err
	}
	resp := d.responses[0]
	if len(d.responses) > 1 {
		d.responses = d.responses[1:]
	}
	return resp, nil
}

func (d *fakeDoer) calls() int {
	return len(d.requests)
}

func httpResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

// staticToken always hands out the same Authorization header value.
type staticToken string

func (t staticToken) AuthHeader(context.Context) (string, error) {
	return string(t), nil
}

// failingToken simulates an unusable credential source.
type failingToken struct{}

func (failingToken) AuthHeader(context.Context) (string, error) {
	return "", models.ErrMissingCredentials
}

// recordingStore is an in-memory cache.Store that counts writes, so tests
// can observe re-mints and cache fills.
type recordingStore struct {
	values map[string]string
	sets   int
}

func newRecordingStore() *recordingStore {
	return &recordingStore{values: make(map[string]string)}
}

func (s *recordingStore) Get(_ context.Context, key string) (string, bool, error) {
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *recordingStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	s.values[key] = value
	s.sets++
	return nil
}

func (s *recordingStore) Delete(_ context.Context, key string) error {
	delete(s.values, key)
	return nil
}

func testSettings() Settings {
	return Settings{
		Environment:   "test",
		Credentials:   Credentials{User: "api-user", Key: "api-key"},
		ShipperNumber: "123456789",
		WeightUnit:    "KG",
		DimensionUnit: "cm",
		StoreCurrency: "USD",
		InstanceID:    3,
		Origin: models.Address{
			AddressLine1: "1 Warehouse Way",
			City:         "Portland",
			State:        "OR",
			PostalCode:   "97201",
			Country:      "US",
		},
		Services: map[string]ServiceSetting{
			"N": {Enabled: true},
			"P": {Enabled: true},
		},
	}
}

func testShipment() models.ShipmentContext {
	return models.ShipmentContext{
		Destination: models.Address{
			AddressLine1: "42 Main St",
			City:         "Berlin",
			PostalCode:   "10115",
			Country:      "DE",
		},
	}
}

func testPackages() []models.PackageRequest {
	return []models.PackageRequest{{
		Weight: models.PackageWeight{Value: "2", UnitOfMeasurement: "KG"},
	}}
}
