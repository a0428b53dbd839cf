package carrier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"shipping-rates/internal/models"
	"shipping-rates/pkg/logger"
)

// ValidationResult is the outcome of an address-validation call.
type ValidationResult int

const (
	// AddressIndeterminate means the validator could not decide (API or
	// transport failure). Callers must let checkout proceed: availability
	// beats false rejection.
	AddressIndeterminate ValidationResult = iota
	AddressValid
	AddressInvalid
)

func (r ValidationResult) String() string {
	switch r {
	case AddressValid:
		return "valid"
	case AddressInvalid:
		return "invalid"
	default:
		return "indeterminate"
	}
}

// AddressValidator performs the optional pre-checkout address validation
// call against the carrier.
type AddressValidator struct {
	cfg    Settings
	http   HTTPDoer
	tokens TokenSource
	log    *logger.Logger
}

// NewAddressValidator wires an address validator.
func NewAddressValidator(cfg Settings, doer HTTPDoer, tokens TokenSource, log *logger.Logger) *AddressValidator {
	return &AddressValidator{
		cfg:    cfg,
		http:   doer,
		tokens: tokens,
		log:    log.WithComponent("address_validator"),
	}
}

type validationResponse struct {
	MatchLevel        string `json:"matchLevel"`
	CapabilityDetails []struct {
		PickupCapability bool `json:"pickupCapability"`
	} `json:"capabilityDetails"`
}

// Validate checks whether the carrier can deliver to the address. A match
// level other than "none", or any evidenced pickup capability, is Valid; an
// explicit no-match is Invalid; any failure along the way is Indeterminate.
func (v *AddressValidator) Validate(ctx context.Context, address models.Address) ValidationResult {
	authHeader, err := v.tokens.AuthHeader(ctx)
	if err != nil {
		v.log.Error("address validation auth failed", "error", err)
		return AddressIndeterminate
	}

	query := url.Values{}
	query.Set("type", "delivery")
	query.Set("postalCode", address.PostalCode)
	query.Set("cityName", address.City)
	query.Set("countryCode", address.Country)
	if address.State != "" {
		query.Set("provinceCode", address.State)
	}
	if address.AddressLine1 != "" {
		query.Set("addressLine1", address.AddressLine1)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	endpoint := v.apiURL() + "/address-validate?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return AddressIndeterminate
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", authHeader)

	resp, err := v.http.Do(req)
	if err != nil {
		v.log.Error("address validation transport failure", "error", err)
		return AddressIndeterminate
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return AddressIndeterminate
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		v.log.Error("address validation API failure", "status", resp.StatusCode)
		return AddressIndeterminate
	}

	var parsed validationResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return AddressIndeterminate
	}

	if parsed.MatchLevel != "" && parsed.MatchLevel != "none" {
		return AddressValid
	}
	for _, capability := range parsed.CapabilityDetails {
		if capability.PickupCapability {
			return AddressValid
		}
	}
	return AddressInvalid
}

func (v *AddressValidator) apiURL() string {
	if u, ok := endpoints[v.cfg.Environment]; ok {
		return u
	}
	return endpoints["test"]
}
