// Package carrier implements the DHL Express-style REST rate pipeline:
// token management, rate request building, the rate client with caching and
// rate-limit backoff, response mapping and address validation. Everything
// network-facing goes through an injected HTTPDoer so tests run against
// fakes.
package carrier

import (
	"crypto/md5"
	"encoding/hex"
	"sort"

	"shipping-rates/internal/models"
)

// Credentials are the carrier API user and key.
type Credentials struct {
	User string `mapstructure:"api_user"`
	Key  string `mapstructure:"api_key"`
}

// Empty reports whether no usable credentials are configured.
func (c Credentials) Empty() bool {
	return c.User == "" || c.Key == ""
}

// ServiceSetting is the per-service configuration: whether the service is
// offered, an optional custom label, sort order and cost adjustments.
type ServiceSetting struct {
	Enabled           bool    `mapstructure:"enabled"`
	Name              string  `mapstructure:"name"`
	Order             int     `mapstructure:"order"`
	AdjustmentPercent float64 `mapstructure:"adjustment_percent"`
	Adjustment        float64 `mapstructure:"adjustment"`
}

// Settings is the externally supplied configuration the carrier components
// consume. It is injected explicitly; nothing here reads global state.
type Settings struct {
	Environment   string                    `mapstructure:"environment"` // test or production
	Credentials   Credentials               `mapstructure:",squash"`
	AuthMode      string                    `mapstructure:"auth_mode"` // basic or oauth
	TokenURL      string                    `mapstructure:"token_url"` // oauth only
	ShipperNumber string                    `mapstructure:"shipper_number"`
	WeightUnit    string                    `mapstructure:"weight_unit"`    // KG or LBS
	DimensionUnit string                    `mapstructure:"dimension_unit"` // cm or in
	Residential   bool                      `mapstructure:"residential"`
	InsuredValue  bool                      `mapstructure:"insured_value"`
	StoreCurrency string                    `mapstructure:"store_currency"`
	Origin        models.Address            `mapstructure:"origin"`
	Services      map[string]ServiceSetting `mapstructure:"services"`
	InstanceID    int                       `mapstructure:"instance_id"`
}

// UnitSystem maps the configured weight unit onto the carrier's request
// flag.
func (s Settings) UnitSystem() string {
	if s.WeightUnit == "KG" || s.WeightUnit == "kg" {
		return "metric"
	}
	return "imperial"
}

// EnabledServiceCodes returns the sorted set of service codes the store
// offers. An empty result means no rates are configured, which is a valid,
// explicit outcome.
func (s Settings) EnabledServiceCodes() []string {
	var codes []string
	for code, svc := range s.Services {
		if svc.Enabled {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// hashKey derives a stable cache-key fragment from arbitrary input.
func hashKey(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
