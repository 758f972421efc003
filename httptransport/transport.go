// Package httptransport reaches the panel service through its JSON gateway:
// every operation is a POST to <endpoint>/<operation> carrying the ordered
// parameters, answered by a JSON object with ResultCode and ResultData.
package httptransport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/caarlos0/sync/cio"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	totalconnect "github.com/caarlos0/homekit-totalconnect"
)

const (
	DefaultTimeout = 30 * time.Second
	maxReplySize   = 4 << 20
)

type Transport struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
	limiter  *rate.Limiter
}

type Option func(*Transport)

func WithHTTPClient(client *http.Client) Option {
	return func(t *Transport) {
		if client != nil {
			t.client = client
		}
	}
}

// WithTimeout bounds how long reading a reply may take.
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithRateLimit limits how many calls per second reach the service.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(t *Transport) {
		t.limiter = rate.NewLimiter(limit, burst)
	}
}

type request struct {
	Params []any `json:"params"`
}

func New(endpoint string, opts ...Option) (*Transport, error) {
	u, err := url.ParseRequestURI(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint: unsupported scheme %q", u.Scheme)
	}

	t := &Transport{
		endpoint: strings.TrimSuffix(u.String(), "/"),
		client:   &http.Client{},
		timeout:  DefaultTimeout,
		limiter:  rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *Transport) Call(ctx context.Context, operation string, params ...any) (totalconnect.RawResult, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return totalconnect.RawResult{}, fmt.Errorf("%s: rate limit: %w", operation, err)
	}

	if params == nil {
		params = []any{}
	}
	body, err := sonic.Marshal(request{Params: params})
	if err != nil {
		return totalconnect.RawResult{}, fmt.Errorf("%s: could not encode request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		t.endpoint+"/"+url.PathEscape(operation),
		bytes.NewReader(body),
	)
	if err != nil {
		return totalconnect.RawResult{}, fmt.Errorf("%s: could not create request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := t.client.Do(req)
	if err != nil {
		return totalconnect.RawResult{}, fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return totalconnect.RawResult{}, fmt.Errorf("%s: unexpected status: %s", operation, resp.Status)
	}

	reply, err := io.ReadAll(io.LimitReader(cio.TimeoutReader(resp.Body, t.timeout), maxReplySize))
	if err != nil {
		return totalconnect.RawResult{}, fmt.Errorf("%s: could not read reply: %w", operation, err)
	}

	res, err := totalconnect.ParseRawResult(reply)
	if err != nil {
		return totalconnect.RawResult{}, fmt.Errorf("%s: %w", operation, err)
	}
	return res, nil
}
