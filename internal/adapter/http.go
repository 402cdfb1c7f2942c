package adapter

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/voltgrid/battsync/internal/config"
	"github.com/voltgrid/battsync/internal/logger"
	"github.com/voltgrid/battsync/internal/utils"
	"github.com/voltgrid/battsync/models"
)

type httpTransport struct {
	client *utils.HTTPClient

	hashKey string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPTransport constructs an HTTP/REST implementation of [Transport].
// It normalises and validates the base URL from adapterCfg.HTTPAddress,
// configures the underlying HTTP client with the resolved base URL and
// request timeout, and initialises the shared HMAC hasher pool used for
// transport integrity hashes.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPTransport(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (Transport, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	utils.InitHasherPool(appCfg.HashKey)

	return &httpTransport{client: client, hashKey: appCfg.HashKey, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [Transport]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent requests. A full
// "Bearer x" header value is accepted and unwrapped. An expired token is
// still stored; staleness is logged so the hosting application can
// re-authenticate.
func (h *httpTransport) SetToken(token string) {
	token = strings.TrimSpace(token)
	if bare, err := utils.ParseBearerToken(token); err == nil {
		token = bare
	}

	if exp, err := utils.TokenExpiry(token); err == nil && !exp.IsZero() && exp.Before(time.Now()) {
		h.logger.Warn().Time("expired_at", exp).Msg("stored bearer token is already expired")
	}

	h.mu.Lock()
	h.token = token
	h.mu.Unlock()
}

// Token implements [Transport]. It returns the bearer token currently held
// by the adapter, or an empty string if none has been set.
func (h *httpTransport) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// GetRemoteMetadata implements [Transport]. It GETs
// /api/sync/{collection}/metadata and decodes the response into a
// [models.CollectionMetadata]. Returns an error if the request, response
// mapping, or JSON decoding fails.
func (h *httpTransport) GetRemoteMetadata(ctx context.Context, collection string) (models.CollectionMetadata, error) {
	resp, err := h.authedRequest(ctx).
		Get("/api/sync/" + url.PathEscape(collection) + "/metadata")
	if err != nil {
		return models.CollectionMetadata{}, fmt.Errorf("get remote metadata request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CollectionMetadata{}, err
	}

	var meta models.CollectionMetadata
	if err = json.Unmarshal(resp.Body(), &meta); err != nil {
		return models.CollectionMetadata{}, fmt.Errorf("decode remote metadata response: %w", err)
	}

	if meta.ServerTime != nil {
		h.logger.Debug().
			Str("collection", collection).
			Time("server_time", *meta.ServerTime).
			Msg("remote metadata fetched")
	}

	return meta, nil
}

// Pull implements [Transport]. It GETs /api/sync/{collection}/records and
// decodes the full remote record set. Returns an error if the request,
// response mapping, or JSON decoding fails.
func (h *httpTransport) Pull(ctx context.Context, collection string) ([]models.Record, error) {
	resp, err := h.authedRequest(ctx).
		Get("/api/sync/" + url.PathEscape(collection) + "/records")
	if err != nil {
		return nil, fmt.Errorf("pull request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var records []models.Record
	if err = json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("decode pull response: %w", err)
	}

	return records, nil
}

// Push implements [Transport]. It computes a transport integrity hash over
// the record batch, sets the batch length, and POSTs the request to
// /api/sync/{collection}/records. Returns the set of accepted ids. Returns
// [ErrConflict] (wrapped) on HTTP 409.
func (h *httpTransport) Push(ctx context.Context, collection string, records []models.Record) (models.PushResponse, error) {
	req := models.PushRequest{
		Collection: collection,
		Records:    records,
		Length:     len(records),
	}
	req.Hash = computeTransportHash(req.Records)

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/sync/" + url.PathEscape(collection) + "/records")
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("push request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PushResponse{}, err
	}

	var pushResp models.PushResponse
	if err = json.Unmarshal(resp.Body(), &pushResp); err != nil {
		return models.PushResponse{}, fmt.Errorf("decode push response: %w", err)
	}

	return pushResp, nil
}

// GetDeletedIDs implements [Transport]. It GETs
// /api/sync/{collection}/deleted, narrowing the tombstone list with a
// "since" query parameter when a non-nil instant is supplied.
func (h *httpTransport) GetDeletedIDs(ctx context.Context, collection string, since *time.Time) ([]string, error) {
	req := h.authedRequest(ctx)
	if since != nil {
		req.SetQueryParam("since", since.UTC().Format(time.RFC3339Nano))
	}

	resp, err := req.Get("/api/sync/" + url.PathEscape(collection) + "/deleted")
	if err != nil {
		return nil, fmt.Errorf("get deleted ids request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var dr models.DeletedIDsResponse
	if err = json.Unmarshal(resp.Body(), &dr); err != nil {
		return nil, fmt.Errorf("decode deleted ids response: %w", err)
	}

	return dr.DeletedIDs, nil
}

func (h *httpTransport) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func computeTransportHash(v any) string {
	payload, err := json.Marshal(v)
	if err != nil {
		return ""
	}

	return hex.EncodeToString(utils.Hash(payload))
}
