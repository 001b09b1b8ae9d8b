// Package dispatch sends searches to the backend and turns its answers into
// results the renderer understands.
package dispatch

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cristianoliveira/railsql/internal/config"
	"github.com/cristianoliveira/railsql/internal/domain"
	"github.com/cristianoliveira/railsql/internal/errors"
	"github.com/cristianoliveira/railsql/internal/logging"
	"github.com/google/uuid"
)

// SearchPath is the backend endpoint searches are posted to.
const SearchPath = "/search"

// RequestIDHeader carries the id of each dispatched search.
const RequestIDHeader = "X-Request-ID"

const maxResponseBytes = 64 << 20

// Body is the JSON payload of a search. Query is base64 encoded so any SQL
// text survives the trip unchanged.
type Body struct {
	Query string `json:"query"`
}

// EncodeQuery encodes query text for the request body.
func EncodeQuery(query string) string {
	return base64.StdEncoding.EncodeToString([]byte(query))
}

// DecodeQuery reverses EncodeQuery.
func DecodeQuery(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", fmt.Errorf("decoding query: %w", err)
	}
	return string(raw), nil
}

// Dispatcher posts searches to a backend.
type Dispatcher struct {
	client    *http.Client
	serverURL string
	timeout   time.Duration
	logger    logging.Logger
	newID     func() string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Dispatcher) { d.client = c }
}

// WithTimeout bounds each search. Zero means no limit.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) { d.timeout = timeout }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithRequestIDs replaces the request id generator.
func WithRequestIDs(next func() string) Option {
	return func(d *Dispatcher) { d.newID = next }
}

// New creates a Dispatcher for the backend at serverURL.
func New(serverURL string, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		client:    http.DefaultClient,
		serverURL: strings.TrimRight(serverURL, "/"),
		logger:    logging.GetGlobal(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("component", "dispatch")
	return d
}

// NewFromConfig creates a Dispatcher from server_url and search_timeout.
func NewFromConfig(opts ...Option) *Dispatcher {
	base := []Option{WithTimeout(config.GetDuration("search_timeout", 30*time.Second))}
	return New(config.Get("server_url", "http://localhost:8200"), append(base, opts...)...)
}

// URL returns the endpoint req is posted to.
func (d *Dispatcher) URL(req domain.SearchRequest) string {
	q := req.Address().Query()
	if q == "" {
		return d.serverURL + SearchPath
	}
	return d.serverURL + SearchPath + "?" + q
}

// Dispatch runs req and always returns a result; failures of any kind
// become a failed result carrying the message to show.
func (d *Dispatcher) Dispatch(ctx context.Context, req domain.SearchRequest) domain.SearchResult {
	results, err := d.Do(ctx, req)
	if err != nil {
		return domain.Failure(errors.UserMessage(err))
	}
	return results.SearchResult()
}

// Do posts req and decodes the response body. A response carrying an error
// field, a non-2xx status, a transport failure or a malformed body all
// return a *errors.SearchError.
func (d *Dispatcher) Do(ctx context.Context, req domain.SearchRequest) (domain.Results, error) {
	if err := req.Validate(); err != nil {
		return domain.Results{}, &errors.SearchError{Message: err.Error(), Err: err}
	}
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	id := d.newID()
	log := d.logger.With("request_id", id, "window", req.Window.String())

	payload, err := json.Marshal(Body{Query: EncodeQuery(req.QueryText)})
	if err != nil {
		return domain.Results{}, &errors.SearchError{Message: err.Error(), Err: err}
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.URL(req), bytes.NewReader(payload))
	if err != nil {
		return domain.Results{}, &errors.SearchError{Message: err.Error(), Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, id)

	started := time.Now()
	resp, err := d.client.Do(httpReq)
	if err != nil {
		log.Warn("search request failed", "error", err)
		return domain.Results{}, &errors.SearchError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Warn("reading search response failed", "status", resp.StatusCode, "error", err)
		return domain.Results{}, &errors.SearchError{Status: resp.StatusCode, Message: err.Error(), Err: err}
	}

	results, err := decode(resp.StatusCode, raw)
	if err != nil {
		log.Warn("search rejected", "status", resp.StatusCode, "error", err)
		return results, err
	}
	log.Debug("search completed", "status", resp.StatusCode, "rows", len(results.Rows), "elapsed", time.Since(started))
	return results, nil
}

func decode(status int, raw []byte) (domain.Results, error) {
	var results domain.Results
	if err := json.Unmarshal(raw, &results); err != nil {
		if status >= http.StatusBadRequest {
			msg := strings.TrimSpace(string(raw))
			if msg == "" {
				msg = http.StatusText(status)
			}
			return domain.Results{}, &errors.SearchError{Status: status, Message: msg}
		}
		return domain.Results{}, &errors.SearchError{Status: status, Message: fmt.Sprintf("malformed response: %v", err), Err: err}
	}
	if results.Error != "" {
		return results, &errors.SearchError{Status: status, Message: results.Error}
	}
	if status >= http.StatusBadRequest {
		return results, &errors.SearchError{Status: status, Message: http.StatusText(status)}
	}
	return results, nil
}
