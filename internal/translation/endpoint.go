package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"codeberg.org/snonux/libretranslator/internal/language"
)

// SuccessCode is the only application-level code treated as success
const SuccessCode = 200

const translatePath = "/v2/translate"

// Endpoint is a DeepL-compatible translation proxy (e.g. DeepLX)
type Endpoint struct {
	url           string
	authorization string
	client        *http.Client
	timeout       time.Duration
}

// EndpointOption configures an Endpoint
type EndpointOption func(*Endpoint)

// WithHTTPClient replaces the default HTTP client. A nil client keeps the
// default.
func WithHTTPClient(c *http.Client) EndpointOption {
	return func(e *Endpoint) {
		if c != nil {
			e.client = c
		}
	}
}

// WithTimeout sets a transport timeout. Zero leaves requests unbounded. The
// timeout is applied to a copy of the client, never to a caller's client.
func WithTimeout(d time.Duration) EndpointOption {
	return func(e *Endpoint) {
		e.timeout = d
	}
}

// NewEndpoint creates a client for baseURL. The authorization value is sent
// verbatim in the Authorization header.
func NewEndpoint(baseURL, authorization string, opts ...EndpointOption) (*Endpoint, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("translation endpoint URL is required")
	}
	full, err := url.JoinPath(baseURL, translatePath)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint URL %q: %w", baseURL, err)
	}

	e := &Endpoint{
		url:           full,
		authorization: authorization,
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        4,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.timeout > 0 {
		c := *e.client
		c.Timeout = e.timeout
		e.client = &c
	}
	return e, nil
}

// Name returns the provider name
func (e *Endpoint) Name() string { return "deepl" }

// URL returns the full translate URL
func (e *Endpoint) URL() string { return e.url }

type endpointRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
	SourceLang string `json:"source_lang,omitempty"`
}

type endpointResponse struct {
	Code    int    `json:"code"`
	Data    string `json:"data"`
	Message string `json:"message,omitempty"`
}

// newRequestBody builds the JSON payload. source_lang is omitted for AUTO.
func newRequestBody(req Request) endpointRequest {
	body := endpointRequest{
		Text:       req.Text,
		TargetLang: string(req.Target),
	}
	if req.Source != language.Auto && req.Source != "" {
		body.SourceLang = string(req.Source)
	}
	return body
}

// Translate posts the request and interprets the {code, data} answer. The
// HTTP status is ignored; only the body's code decides success.
func (e *Endpoint) Translate(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", ErrEmptyInput
	}

	payload, err := json.Marshal(newRequestBody(req))
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(payload))
	if err != nil {
		return "", &TransportError{Op: "build request", Err: err}
	}
	httpReq.Header.Set("Authorization", e.authorization)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return "", &TransportError{Op: "post " + e.url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Op: "read response", Err: err}
	}

	var result endpointResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", &TransportError{Op: "decode response", Err: err}
	}

	if result.Code != SuccessCode {
		return "", &ApplicationError{Code: result.Code, Message: result.Message}
	}

	return result.Data, nil
}
