package api

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

	"artesapos/internal/metrics"
	"artesapos/internal/store"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Collection names exposed by the backend.
const (
	TableMenuItems    = "menu_items"
	TableOrders       = "orders"
	TableTransactions = "transactions"
	TableWaiters      = "waiters"
	TableCashClosures = "cash_closures"
	TableConfig       = "config"
)

// Client talks to the POS backend: GET /{table}, POST /{table} with a
// JSON array, PUT /{table}/{id}, DELETE /{table}/{id}. Reads and
// single-item writes fail fast; bulk saves retry per the RetryPolicy.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      RetryPolicy
	limiter    *rate.Limiter
	cache      store.Store
	logger     *zerolog.Logger
}

// NewClient constructs a client. The timeout is enforced per request.
func NewClient(baseURL string, timeout time.Duration, retry RetryPolicy, logger *zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		retry:      retry,
		logger:     logger,
	}
}

// UseCache makes the client persist collection snapshots to a local
// store after successful reads. The store is opportunistic: failures
// are logged and ignored, the backend stays authoritative.
func (c *Client) UseCache(s store.Store) {
	c.cache = s
}

// UseRateLimit throttles outgoing requests.
func (c *Client) UseRateLimit(rps float64, burst int) {
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// GetAll fetches a whole collection and decodes the response body into
// out. On a non-2xx status or transport failure it returns a FetchError
// without retrying.
func (c *Client) GetAll(ctx context.Context, table string, out any) error {
	body, status, err := c.do(ctx, http.MethodGet, c.collectionURL(table), nil)
	if err != nil {
		metrics.IncRequest(table, "get_all", "error")
		fetchErr := &FetchError{Table: table, Status: status, Err: err}
		c.logger.Error().Err(err).Str("table", table).Int("status", status).Msg("collection fetch failed")
		return fetchErr
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			metrics.IncRequest(table, "get_all", "error")
			fetchErr := &FetchError{Table: table, Status: status, Err: fmt.Errorf("decode body: %w", err)}
			c.logger.Error().Err(err).Str("table", table).Msg("collection decode failed")
			return fetchErr
		}
	}

	metrics.IncRequest(table, "get_all", "ok")
	c.writeCache(ctx, "collection:"+table, json.RawMessage(body))
	return nil
}

// Save bulk-creates the item sequence via POST. Failures are retried up
// to MaxRetries extra times with a linearly growing delay in between;
// only after the last attempt fails does it return a SaveError. Success
// returns the server's response body.
func (c *Client) Save(ctx context.Context, table string, items any) (json.RawMessage, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return nil, &SaveError{Table: table, Err: fmt.Errorf("encode items: %w", err)}
	}

	attempts := c.retry.MaxRetries + 1
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		body, status, err := c.do(ctx, http.MethodPost, c.collectionURL(table), payload)
		if err == nil {
			metrics.IncRequest(table, "save", "ok")
			return body, nil
		}
		lastErr = err

		if attempt == attempts {
			break
		}
		metrics.IncRetry(table)
		delay := c.retry.NextDelay(attempt)
		c.logger.Warn().Err(err).Str("table", table).Int("status", status).
			Int("attempt", attempt).Dur("retry_in", delay).Msg("bulk save failed, retrying")
		if werr := wait(ctx, delay); werr != nil {
			lastErr = werr
			break
		}
	}

	metrics.IncRequest(table, "save", "error")
	saveErr := &SaveError{Table: table, Attempts: attempts, Err: lastErr}
	c.logger.Error().Err(lastErr).Str("table", table).Int("attempts", attempts).Msg("bulk save exhausted retries")
	return nil, saveErr
}

// Update replaces a single record via PUT. No retry.
func (c *Client) Update(ctx context.Context, table, id string, item any) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return &UpdateError{Table: table, ID: id, Err: fmt.Errorf("encode item: %w", err)}
	}

	_, status, err := c.do(ctx, http.MethodPut, c.itemURL(table, id), payload)
	if err != nil {
		metrics.IncRequest(table, "update", "error")
		updateErr := &UpdateError{Table: table, ID: id, Status: status, Err: err}
		c.logger.Error().Err(err).Str("table", table).Str("id", id).Int("status", status).Msg("update failed")
		return updateErr
	}

	metrics.IncRequest(table, "update", "ok")
	return nil
}

// Delete removes a single record. No retry.
func (c *Client) Delete(ctx context.Context, table, id string) error {
	_, status, err := c.do(ctx, http.MethodDelete, c.itemURL(table, id), nil)
	if err != nil {
		metrics.IncRequest(table, "delete", "error")
		deleteErr := &DeleteError{Table: table, ID: id, Status: status, Err: err}
		c.logger.Error().Err(err).Str("table", table).Str("id", id).Int("status", status).Msg("delete failed")
		return deleteErr
	}

	metrics.IncRequest(table, "delete", "ok")
	return nil
}

func (c *Client) collectionURL(table string) string {
	return c.baseURL + "/" + url.PathEscape(table)
}

func (c *Client) itemURL(table, id string) string {
	return c.baseURL + "/" + url.PathEscape(table) + "/" + url.PathEscape(id)
}

// do issues one request and returns body, status and error. A non-2xx
// status is reported as an error with the body preserved.
func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, int, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, err
		}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, 0, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, resp.StatusCode, fmt.Errorf("http %d", resp.StatusCode)
	}
	return body, resp.StatusCode, nil
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, key, val); err != nil {
		c.logger.Debug().Err(err).Str("key", key).Msg("cache write skipped")
	}
}
