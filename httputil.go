package trailing

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// contains http utils to deal with remote services

// diskCache implements a simple disk cache for HTTP responses.
//
// Entries are keyed by the current month: monthly market data does not change before the
// month does, so the cache expires every month.
type diskCache struct {
	base   http.RoundTripper
	dir    string
	now    func() time.Time
	accept func(body []byte) bool // nil accepts every successful response
}

// NewCachingClient returns an http.Client that caches successful responses in dir (os.TempDir() if empty).
//
// accept, if not nil, filters responses worth caching. It lets providers that report errors
// with a 200 status avoid caching them.
func NewCachingClient(dir string, accept func(body []byte) bool) *http.Client {
	if dir == "" {
		dir = os.TempDir()
	}
	client := new(http.Client)
	client.Transport = &diskCache{base: http.DefaultTransport, dir: dir, now: time.Now, accept: accept}
	return client
}

func (c *diskCache) key(req *http.Request) string {
	key := fmt.Sprintf("%s %s %s", MonthOf(c.now()), req.Method, req.URL.String())
	return fmt.Sprintf("trailing-%x", sha1.Sum([]byte(key)))
}

// RoundTrip implements the http.RoundTripper interface.
func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	key := c.key(req)
	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		log.Debug().Str("url", req.URL.Host+req.URL.Path).Msg("cache hit")
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("method", req.Method).Str("url", req.URL.Host+req.URL.Path).Str("status", resp.Status).Msg("http")
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if c.accept != nil && !c.accept(body) {
		return resp, nil
	}
	// otherwise attempt to store it in cache
	if err := c.put(key, resp); err != nil {
		log.Warn().Err(err).Msg("cache write error (ignored)")
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o644)
}

// GetJSON performs an HTTP GET request and unmarshals the JSON response into the provided data structure.
func GetJSON(ctx context.Context, client *http.Client, addr string, data any) error {
	body, err := Get(ctx, client, addr)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}

// Get performs an HTTP GET request and returns the body of a 200 response.
func Get(ctx context.Context, client *http.Client, addr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
