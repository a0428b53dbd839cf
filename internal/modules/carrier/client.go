package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"shipping-rates/internal/models"
	"shipping-rates/pkg/cache"
	"shipping-rates/pkg/logger"
)

const apiVersion = "2.12.0"

var endpoints = map[string]string{
	"test":       "https://express.api.dhl.com/mydhlapi/test",
	"production": "https://express.api.dhl.com/mydhlapi",
}

const (
	requestTimeout = 30 * time.Second

	// responseCacheTTL is deliberately long: quote staleness is traded for
	// API quota. Any change to the request inputs changes the cache key.
	responseCacheTTL = 30 * 24 * time.Hour

	rateLimitTTL = 5 * time.Minute
	rateLimitKey = "carrier:rate_limited"

	quoteCachePrefix = "carrier:quote:"
)

// HTTPDoer is the injected transport capability.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DebugEntry is a request/response pair handed to the debug sink.
type DebugEntry struct {
	ID      string      `json:"id"`
	Kind    string      `json:"kind"`
	Payload interface{} `json:"payload"`
}

// DebugSink receives diagnostics. It is fire-and-forget: a panicking or slow
// sink must never affect the rate call.
type DebugSink func(entry DebugEntry)

// RequestTransform is a pre-send extension point: an ordered, pure rewrite
// of the rate request. It replaces ad-hoc mutation hooks.
type RequestTransform func(models.RateRequest) models.RateRequest

// Client fetches rate quotes from the carrier, honoring the response cache
// and the cooperative rate-limit flag.
type Client struct {
	cfg        Settings
	http       HTTPDoer
	tokens     TokenSource
	store      cache.Store
	builder    *RequestBuilder
	transforms []RequestTransform
	debug      DebugSink
	log        *logger.Logger
}

// NewClient wires a rate client from its injected collaborators.
func NewClient(cfg Settings, doer HTTPDoer, tokens TokenSource, store cache.Store, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		cfg:     cfg,
		http:    doer,
		tokens:  tokens,
		store:   store,
		builder: NewRequestBuilder(cfg),
		log:     log.WithComponent("rate_client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithDebugSink attaches a diagnostics sink.
func WithDebugSink(sink DebugSink) ClientOption {
	return func(c *Client) { c.debug = sink }
}

// WithRequestTransforms appends pre-send request transforms, applied in
// order.
func WithRequestTransforms(transforms ...RequestTransform) ClientOption {
	return func(c *Client) { c.transforms = append(c.transforms, transforms...) }
}

func (c *Client) apiURL() string {
	if url, ok := endpoints[c.cfg.Environment]; ok {
		return url
	}
	return endpoints["test"]
}

// GetRates returns the carrier's quotes for the given parcels. An empty
// parcel list means nothing to ship and yields an empty result, not an
// error.
func (c *Client) GetRates(ctx context.Context, shipment models.ShipmentContext, packages []models.PackageRequest) ([]models.ServiceQuote, error) {
	if len(packages) == 0 {
		return nil, nil
	}
	if len(c.cfg.EnabledServiceCodes()) == 0 {
		// Nothing could pass the enabled-service filter; skip the API call.
		c.log.Info("no services enabled, skipping rate request")
		return nil, nil
	}

	req := c.builder.Build(shipment, packages, "")
	for _, transform := range c.transforms {
		req = transform(req)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	c.emitDebug("rate_request", req)

	cacheKey := quoteCachePrefix + hashKey(body)
	if cached, ok, err := c.store.Get(ctx, cacheKey); err == nil && ok {
		c.log.Debug("using cached rate response")
		return c.parseQuotes([]byte(cached))
	}

	raw, err := c.postRateRequest(ctx, body)
	if err != nil {
		return nil, err
	}

	// Cache the raw body before parsing so even a response we fail to parse
	// does not cost another API call.
	if err := c.store.Set(ctx, cacheKey, string(raw), responseCacheTTL); err != nil {
		c.log.Warn("failed to cache rate response", "error", err)
	}

	return c.parseQuotes(raw)
}

func (c *Client) postRateRequest(ctx context.Context, body []byte) ([]byte, error) {
	if limited, _, err := c.store.Get(ctx, rateLimitKey); err == nil && limited != "" {
		return nil, models.ErrRateLimited
	}

	authHeader, err := c.tokens.AuthHeader(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL()+"/rates", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(httpReq, authHeader)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.WithError(err).Error("rate request transport failure")
		return nil, fmt.Errorf("%w: %v", models.ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransport, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		// Block further requests for the backoff window; concurrent callers
		// fail fast instead of queueing.
		if err := c.store.Set(ctx, rateLimitKey, "1", rateLimitTTL); err != nil {
			c.log.Warn("failed to set rate-limit flag", "error", err)
		}
		c.log.Error("carrier rate limit exceeded")
		return nil, models.ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := carrierErrorMessage(respBody, resp.StatusCode)
		c.log.Error("carrier returned an error", "status", resp.StatusCode, "message", msg)
		return nil, fmt.Errorf("%w: %s", models.ErrCarrier, msg)
	}

	c.emitDebug("rate_response", json.RawMessage(respBody))
	return respBody, nil
}

func (c *Client) setHeaders(req *http.Request, authHeader string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-version", apiVersion)
	req.Header.Set("Authorization", authHeader)
}

func (c *Client) parseQuotes(body []byte) ([]models.ServiceQuote, error) {
	var response models.RateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: malformed rate response: %v", models.ErrCarrier, err)
	}
	return response.Products, nil
}

// carrierErrorMessage extracts the carrier's error message, or synthesizes
// one from the status code.
func carrierErrorMessage(body []byte, status int) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return fmt.Sprintf("carrier returned HTTP status %d", status)
}

func (c *Client) emitDebug(kind string, payload interface{}) {
	if c.debug == nil {
		return
	}
	defer func() {
		// A broken debug sink must not fail the call.
		_ = recover()
	}()
	c.debug(DebugEntry{ID: uuid.NewString(), Kind: kind, Payload: payload})
}

// ValidateCredentials makes a lightweight address-validation call to check
// that the configured credentials are accepted by the carrier.
func (c *Client) ValidateCredentials(ctx context.Context) bool {
	authHeader, err := c.tokens.AuthHeader(ctx)
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL()+"/address-validate?countryCode=US&type=delivery", nil)
	if err != nil {
		return false
	}
	c.setHeaders(httpReq, authHeader)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
