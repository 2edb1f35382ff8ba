package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"pulse-insights-go/internal/store"
	"pulse-insights-go/internal/types"
)

const DefaultEntityPath = "/api/v1/entries"

type Options struct {
	BaseURL    string
	EntityPath string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Log        logrus.FieldLogger
}

// Client talks to an external entity-storage service. List and Create are
// one-shot: failures come back as *store.Error without retry.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	log        logrus.FieldLogger
}

type envelope[T any] struct {
	Data  T      `json:"data"`
	Error string `json:"error,omitempty"`
}

func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("remote store: base url not set")
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("remote store: base url: %w", err)
	}
	path := opts.EntityPath
	if path == "" {
		path = DefaultEntityPath
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 12 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		endpoint:   strings.TrimRight(opts.BaseURL, "/") + "/" + strings.TrimLeft(path, "/"),
		apiKey:     opts.APIKey,
		httpClient: hc,
		log:        log.WithField("component", "store.remote"),
	}, nil
}

func (c *Client) List(ctx context.Context, opts store.ListOptions) ([]types.PulseEntry, error) {
	if err := opts.Validate(); err != nil {
		return nil, store.Wrap("list", err)
	}
	u, _ := url.Parse(c.endpoint)
	q := u.Query()
	sort := opts.Sort
	if sort == "" {
		sort = store.SortNewestFirst
	}
	q.Set("sort", sort)
	// always sent: 0 asks for every entry instead of the server's default page
	limit := opts.Limit
	if limit < 0 {
		limit = 0
	}
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, store.Wrap("list", err)
	}
	var resp envelope[[]types.PulseEntry]
	if err := c.doJSON(req, &resp); err != nil {
		c.log.WithError(err).Warn("list entries failed")
		return nil, store.Wrap("list", err)
	}
	return resp.Data, nil
}

func (c *Client) Create(ctx context.Context, entry types.PulseEntry) (types.PulseEntry, error) {
	body, err := json.Marshal(entry)
	if err != nil {
		return types.PulseEntry{}, store.Wrap("create", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return types.PulseEntry{}, store.Wrap("create", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp envelope[types.PulseEntry]
	if err := c.doJSON(req, &resp); err != nil {
		c.log.WithError(err).Warn("create entry failed")
		return types.PulseEntry{}, store.Wrap("create", err)
	}
	if resp.Data.ID == "" {
		return types.PulseEntry{}, store.Wrap("create", errors.New("response carried no entry id"))
	}
	return resp.Data, nil
}

// WaitReady polls the list endpoint with exponential backoff until it answers
// or maxElapsed passes. It is meant for startup, not for the request path.
func (c *Client) WaitReady(ctx context.Context, maxElapsed time.Duration) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxElapsed
	attempt := 0
	op := func() error {
		attempt++
		_, err := c.List(ctx, store.ListOptions{Limit: 1})
		if err != nil {
			c.log.WithField("attempt", attempt).WithError(err).Info("entry store not ready")
		}
		return err
	}
	return backoff.Retry(op, backoff.WithContext(bo, ctx))
}

func (c *Client) doJSON(req *http.Request, target any) error {
	if c.apiKey != "" {
		req.Header.Set("api_key", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, snippet(body))
	}
	if len(body) == 0 {
		return errors.New("empty body")
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("json decode error: %v body=%s", err, snippet(body))
	}
	return nil
}

func snippet(b []byte) string {
	const max = 256
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
