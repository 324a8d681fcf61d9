package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-fortune/internal/config"
)

// FortuneAPI defines the contract of the prediction backend.
// This interface allows for mocking in tests and decoupling the UI from the network layer.
type FortuneAPI interface {
	Predict(ctx context.Context, req FortuneRequest) (*Prediction, error)
	Share(ctx context.Context, predictionID string) (*ShareLink, error)
	SharedPrediction(ctx context.Context, shareID string) (*Prediction, error)
}

// ErrEmptyPredictionID is returned by Share before any request is made.
var ErrEmptyPredictionID = errors.New(config.ErrEmptyPredID)

// ErrEmptyShareID is returned by SharedPrediction and ParseShareID for blank input.
var ErrEmptyShareID = errors.New(config.ErrEmptyShareID)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	// Message is the backend's "error" field, when it sent one.
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %d %s", config.ErrBackendStatus, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s: %d %s", config.ErrBackendStatus, e.StatusCode, e.Message)
}

// HTTPClient implements FortuneAPI over JSON/HTTP.
type HTTPClient struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPClient validates baseURL and returns a client with the default timeout.
func NewHTTPClient(baseURL string) (*HTTPClient, error) {
	if err := ValidateBaseURL(baseURL); err != nil {
		return nil, err
	}
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}, nil
}

// ValidateBaseURL accepts absolute http and https URLs only.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return fmt.Errorf("%s: %q", config.ErrProtocol, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s: missing host", config.ErrInvalidURL)
	}
	return nil
}

// Predict posts the form and returns the prediction.
func (c *HTTPClient) Predict(ctx context.Context, req FortuneRequest) (*Prediction, error) {
	var p Prediction
	if err := c.do(ctx, http.MethodPost, config.APIPathPredict, req, &p); err != nil {
		return nil, err
	}
	slog.Info(config.MsgPredictDone,
		config.LogKeyComponent, config.CompClient,
		config.LogKeyID, p.ID,
	)
	return &p, nil
}

// Share creates a share link for a stored prediction.
func (c *HTTPClient) Share(ctx context.Context, predictionID string) (*ShareLink, error) {
	if strings.TrimSpace(predictionID) == "" {
		return nil, ErrEmptyPredictionID
	}

	body := struct {
		PredictionID string `json:"prediction_id"`
	}{predictionID}

	var link ShareLink
	if err := c.do(ctx, http.MethodPost, config.APIPathShare, body, &link); err != nil {
		return nil, err
	}
	slog.Info(config.MsgShareDone,
		config.LogKeyComponent, config.CompClient,
		config.LogKeyID, link.ShareID,
	)
	return &link, nil
}

// SharedPrediction loads the prediction behind a share id.
func (c *HTTPClient) SharedPrediction(ctx context.Context, shareID string) (*Prediction, error) {
	shareID = strings.TrimSpace(shareID)
	if shareID == "" {
		return nil, ErrEmptyShareID
	}

	var p Prediction
	if err := c.do(ctx, http.MethodGet, config.APIPathShare+"/"+url.PathEscape(shareID), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// do sends one request and decodes the JSON answer into out.
// Bodies are limited to config.MaxHTTPResponseSize.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	start := time.Now()
	requestID := uuid.NewString()

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompClient),
		slog.String(config.LogKeyRequestID, requestID),
		slog.String(config.LogKeyMethod, method),
		slog.String(config.LogKeyPath, path),
	)

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrEncodeRequest, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.MimeJSON)
	req.Header.Set(config.HeaderRequestID, requestID)
	if in != nil {
		req.Header.Set(config.HeaderContentType, config.MimeJSON)
	}

	log.Debug(config.MsgRequestStart)

	resp, err := c.Client.Do(req)
	if err != nil {
		log.Warn(config.MsgRequestFailed, config.LogKeyError, err)
		return fmt.Errorf("%s: %w", config.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	limited := io.LimitReader(resp.Body, config.MaxHTTPResponseSize)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(limited).Decode(&payload) == nil {
			apiErr.Message = payload.Error
		}
		log.Warn(config.MsgRequestFailed,
			slog.Int(config.LogKeyStatus, resp.StatusCode),
			slog.String(config.LogKeyError, apiErr.Message),
		)
		return apiErr
	}

	if err := json.NewDecoder(limited).Decode(out); err != nil {
		return fmt.Errorf("%s: %w", config.ErrDecodeResponse, err)
	}

	log.Debug(config.MsgRequestDone,
		slog.Int(config.LogKeyStatus, resp.StatusCode),
		slog.Int64(config.LogKeyDuration, time.Since(start).Milliseconds()),
	)
	return nil
}
