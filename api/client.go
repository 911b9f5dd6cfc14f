// Package api is the HTTP client for the streaming service's /api/v1 endpoints.
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

	"github.com/kinoteka-cli/kinoteka/auth"
	"github.com/kinoteka-cli/kinoteka/config"
	"github.com/kinoteka-cli/kinoteka/constant"
	"github.com/kinoteka-cli/kinoteka/key"
	"github.com/kinoteka-cli/kinoteka/log"
	"github.com/kinoteka-cli/kinoteka/network"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

const apiPath = "api/v1/"

// maxErrorBody bounds how much of an error response is read for its detail.
const maxErrorBody = 64 << 10

// Options configures a Client.
type Options struct {
	// BaseURL is the service root, e.g. https://kino.example.com.
	BaseURL string

	// Origin is sent as the Referer of state-changing requests.
	// Defaults to scheme://host of BaseURL.
	Origin string

	// HTTPClient must carry a cookie jar for sessions to work.
	HTTPClient *http.Client

	Session mo.Option[auth.Session]
}

// Client talks to the service.
type Client struct {
	base   *url.URL
	origin string
	http   *http.Client
}

// New returns a client for the service at options.BaseURL.
func New(options Options) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(options.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http(s), got %q", options.BaseURL)
	}

	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	base = base.ResolveReference(&url.URL{Path: apiPath})

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = network.NewClient(network.Options{})
	}

	origin := strings.TrimSuffix(options.Origin, "/")
	if origin == "" {
		origin = base.Scheme + "://" + base.Host
	}

	c := &Client{base: base, origin: origin, http: httpClient}

	if session, ok := options.Session.Get(); ok && httpClient.Jar != nil {
		httpClient.Jar.SetCookies(c.base, session.Cookies())
	}

	return c, nil
}

// NewFromConfig builds a client from the configuration and the stored session.
func NewFromConfig() (*Client, error) {
	base, err := config.ServerURL()
	if err != nil {
		return nil, err
	}

	session := mo.None[auth.Session]()
	if s, err := auth.GetSession(); err == nil {
		session = mo.Some(s)
	} else if err != auth.ErrNoSession {
		log.Warnf("api: session unavailable: %s", err)
	}

	return New(Options{
		BaseURL: base.String(),
		Origin:  config.Origin(),
		HTTPClient: network.NewClient(network.Options{
			Timeout:     config.Timeout(),
			Impersonate: viper.GetBool(key.NetworkImpersonate),
		}),
		Session: session,
	})
}

// Origin returns the site origin embedded players are told about.
func (c *Client) Origin() string {
	return c.origin
}

// endpoint resolves a path below /api/v1/.
func (c *Client) endpoint(path string, query url.Values) *url.URL {
	u := c.base.ResolveReference(&url.URL{Path: strings.TrimPrefix(path, "/")})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u
}

func (c *Client) csrfToken() string {
	if c.http.Jar == nil {
		return ""
	}

	for _, cookie := range c.http.Jar.Cookies(c.base) {
		if cookie.Name == auth.CSRFCookie {
			return cookie.Value
		}
	}
	return ""
}

func (c *Client) get(ctx context.Context, path string, query url.Values, target any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, target)
}

func (c *Client) post(ctx context.Context, path string, body, target any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, target)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, target any) error {
	u := c.endpoint(path, query)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constant.UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("X-CSRFToken", c.csrfToken())
		req.Header.Set("Referer", c.origin+"/")
	}

	entry := log.WithField("endpoint", method+" "+u.Path)

	resp, err := c.http.Do(req)
	if err != nil {
		entry.Warnf("request failed: %s", err)
		return networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Code: resp.StatusCode, Detail: errorDetail(resp.Body)}
		entry.Warnf("unexpected status: %s", statusErr)
		return statusErr
	}

	if target == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		entry.Warnf("decode: %s", err)
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return nil
}

// errorDetail extracts detail, reason or error from a JSON error body.
func errorDetail(body io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
		Reason string `json:"reason"`
		Error  string `json:"error"`
	}

	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || json.Unmarshal(data, &payload) != nil {
		return ""
	}

	return firstNonEmpty(payload.Detail, payload.Reason, payload.Error)
}
