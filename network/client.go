// Package network provides the tuned HTTP clients used to talk to the streaming service.
package network

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Client is the shared cookie-less client for requests outside the service session,
// such as release checks.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

// Options tunes a session client.
type Options struct {
	Timeout time.Duration

	// Impersonate routes TLS connections through a browser fingerprint.
	Impersonate bool
}

// NewClient returns a client with its own cookie jar, so session cookies
// received from the service are replayed on later requests.
func NewClient(options Options) *http.Client {
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	var transport http.RoundTripper = newTransport()
	if options.Impersonate {
		transport = newImpersonatingTransport()
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		Jar:       jar,
	}
}

// newTransport initializes a tuned http.Transport with pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 20
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 5 * time.Second
	return t
}
