// Package network provides the tuned HTTP clients used to talk to the streaming service.
package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/kinoteka-cli/kinoteka/log"
	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

const dialTimeout = 30 * time.Second

// impersonatingTransport presents a Chrome ClientHello. It prefers HTTP/2 and
// falls back to an HTTP/1.1-only handshake when h2 negotiation fails.
type impersonatingTransport struct {
	h2 *http2.Transport
	h1 *http.Transport
}

func newImpersonatingTransport() *impersonatingTransport {
	return &impersonatingTransport{
		h2: &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialTLS(ctx, network, addr, nil)
			},
		},
		h1: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialTLS(ctx, network, addr, []string{"http/1.1"})
			},
		},
	}
}

// RoundTrip implements http.RoundTripper.
func (t *impersonatingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return t.h1.RoundTrip(req)
	}

	resp, err := t.h2.RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	// The body may have been consumed by the failed attempt.
	retry := req.Clone(req.Context())
	if req.Body != nil {
		if req.GetBody == nil {
			return nil, err
		}
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			return nil, bodyErr
		}
		retry.Body = body
	}

	log.Debugf("h2 round trip to %s failed, retrying over http/1.1: %v", req.URL.Host, err)
	return t.h1.RoundTrip(retry)
}

// dialTLS opens a TLS connection mimicking Chrome's fingerprint.
// A nil alpn keeps the fingerprint's own protocol list (h2 and http/1.1).
func dialTLS(ctx context.Context, network, addr string, alpn []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: alpn,
	}, utls.HelloChrome_120)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
