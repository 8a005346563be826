package authenticator

import (
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

// headerTransport adds the provider default headers to outbound requests.
// Because Accept-Encoding is set explicitly, net/http no longer decompresses
// responses, so the transport does it.
type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
	debug   bool

	// tokenURL requests sent with POST carry clientAuth instead of the
	// Authorization header x/oauth2 builds
	tokenURL   string
	clientAuth http.Header
}

// newHTTPClient returns a copy of client whose transport is t wrapping the
// client's own transport
func newHTTPClient(client *http.Client, t *headerTransport) *http.Client {
	if client == nil {
		client = http.DefaultClient
	}
	t.base = client.Transport
	if t.base == nil {
		t.base = http.DefaultTransport
	}

	wrapped := *client
	wrapped.Transport = t
	return &wrapped
}

// RoundTrip implements http.RoundTripper
func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for key, values := range t.headers {
		if req.Header.Get(key) == "" {
			req.Header[key] = append([]string(nil), values...)
		}
	}
	if t.isTokenRequest(req) {
		for key, values := range t.clientAuth {
			req.Header[key] = append([]string(nil), values...)
		}
	}

	if t.debug {
		log.Printf("sign2pay: %s %s", req.Method, req.URL.Redacted())
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if t.debug {
		log.Printf("sign2pay: %s %s -> %d", req.Method, req.URL.Path, resp.StatusCode)
	}

	if err := decodeBody(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

// isTokenRequest reports whether req is a token grant sent by x/oauth2
func (t *headerTransport) isTokenRequest(req *http.Request) bool {
	if t.tokenURL == "" || req.Method != http.MethodPost {
		return false
	}
	endpoint := *req.URL
	endpoint.RawQuery = ""
	endpoint.Fragment = ""
	return endpoint.String() == t.tokenURL
}

// decodeBody replaces a gzip or deflate (zlib) encoded body with its decoded stream
func decodeBody(resp *http.Response) error {
	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	if encoding != "gzip" && encoding != "deflate" {
		return nil
	}
	if resp.Body == nil || resp.Body == http.NoBody || resp.ContentLength == 0 {
		resp.Header.Del("Content-Encoding")
		return nil
	}

	var reader io.ReadCloser
	switch encoding {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read gzip response: %w", err)
		}
		reader = gz
	case "deflate":
		zr, err := zlib.NewReader(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read deflate response: %w", err)
		}
		reader = zr
	}

	resp.Body = &decodedBody{ReadCloser: reader, raw: resp.Body}
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true
	return nil
}

// decodedBody closes both the decoder and the underlying body
type decodedBody struct {
	io.ReadCloser
	raw io.Closer
}

func (b *decodedBody) Close() error {
	err := b.ReadCloser.Close()
	if rawErr := b.raw.Close(); err == nil {
		err = rawErr
	}
	return err
}
