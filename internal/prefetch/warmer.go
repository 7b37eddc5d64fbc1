// Package prefetch warms the image catalog. It serves two callers with
// different contracts: the controller's startup warm (fire-and-forget,
// outcomes unobserved) and the CLI's explicit fetch (bounded
// concurrency, per-ref outcomes reported back).
package prefetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"backdrop/internal/cache"
	"backdrop/internal/domain"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

const (
	// defaultLimit bounds concurrent fetches in Fetch.
	defaultLimit = 4

	// defaultFreshTTL is how long a cached image counts as warm.
	defaultFreshTTL = 24 * time.Hour

	fetchTimeout = 30 * time.Second
)

// TokenFunc returns the bearer token for an asset host, if one is
// stored. Used when a ref resolves to a URL on a protected host.
type TokenFunc func(host string) (string, bool)

// Warmer fetches image references into the local cache.
type Warmer struct {
	client    *http.Client
	cache     *cache.Cache
	token     TokenFunc
	assetHost string
	limit     int
	ttl       time.Duration
	logger    *log.Logger
}

// Option configures a Warmer.
type Option func(*Warmer)

// WithClient replaces the HTTP client.
func WithClient(c *http.Client) Option { return func(w *Warmer) { w.client = c } }

// WithCache replaces the image cache (nil disables caching).
func WithCache(c *cache.Cache) Option { return func(w *Warmer) { w.cache = c } }

// WithTokenFunc supplies bearer tokens for protected hosts.
func WithTokenFunc(fn TokenFunc) Option { return func(w *Warmer) { w.token = fn } }

// WithAssetHost sets the base URL site-relative refs resolve against,
// e.g. "https://assets.example.com". When empty, relative refs are
// treated as local file paths.
func WithAssetHost(host string) Option {
	return func(w *Warmer) { w.assetHost = strings.TrimSuffix(host, "/") }
}

// WithLimit bounds concurrent fetches in Fetch.
func WithLimit(n int) Option { return func(w *Warmer) { w.limit = n } }

// WithFreshTTL overrides how long cached entries count as warm.
func WithFreshTTL(ttl time.Duration) Option { return func(w *Warmer) { w.ttl = ttl } }

// WithLogger replaces the logger.
func WithLogger(l *log.Logger) Option { return func(w *Warmer) { w.logger = l } }

// New builds a warmer with the default client and cache.
func New(opts ...Option) *Warmer {
	w := &Warmer{
		client: &http.Client{Timeout: fetchTimeout},
		cache:  cache.NewDefault(),
		limit:  defaultLimit,
		ttl:    defaultFreshTTL,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// --- Outcomes ---

// Outcome is the result of fetching one reference.
type Outcome struct {
	Ref      domain.ImageRef `json:"ref"`
	OK       bool            `json:"ok"`
	Cached   bool            `json:"cached"`
	Bytes    int64           `json:"bytes,omitempty"`
	Err      string          `json:"error,omitempty"`
	Duration time.Duration   `json:"-"`
}

// Report aggregates per-ref outcomes, in input order.
type Report struct {
	Outcomes []Outcome `json:"outcomes"`
}

// Failed returns how many refs did not warm.
func (r Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.OK {
			n++
		}
	}
	return n
}

// --- Warming ---

// Warm fires one goroutine per ref and returns immediately. Outcomes
// are unobserved: a failed load is debug-logged and otherwise dropped,
// with no retry. This is the controller's startup path.
func (w *Warmer) Warm(ctx context.Context, refs []domain.ImageRef) {
	for _, ref := range refs {
		ref := ref
		go func() {
			out := w.fetchOne(ctx, ref)
			if !out.OK {
				w.logger.Debug("prefetch miss", "ref", ref, "error", out.Err)
			}
		}()
	}
}

// Fetch warms every ref with bounded concurrency and reports per-ref
// outcomes. A failed ref does not cancel the others.
func (w *Warmer) Fetch(ctx context.Context, refs []domain.ImageRef) Report {
	outcomes := make([]Outcome, len(refs))

	var g errgroup.Group
	g.SetLimit(w.limit)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			outcomes[i] = w.fetchOne(ctx, ref)
			return nil
		})
	}
	_ = g.Wait()

	return Report{Outcomes: outcomes}
}

// fetchOne fetches a single ref: cache check, then one attempt, no
// retries.
func (w *Warmer) fetchOne(ctx context.Context, ref domain.ImageRef) Outcome {
	start := time.Now()
	out := Outcome{Ref: ref}

	key := string(ref)
	if w.cache.Has(key, w.ttl) {
		out.OK = true
		out.Cached = true
		out.Duration = time.Since(start)
		return out
	}

	url, isRemote := w.resolveURL(ref)
	if isRemote {
		n, err := w.fetchRemote(ctx, url, key)
		out.Bytes = n
		if err != nil {
			out.Err = err.Error()
		} else {
			out.OK = true
		}
		out.Duration = time.Since(start)
		return out
	}

	// Local ref: an existence check is all the warm an on-disk asset needs.
	info, err := os.Stat(string(ref))
	if err != nil {
		out.Err = err.Error()
	} else {
		out.OK = true
		out.Bytes = info.Size()
	}
	out.Duration = time.Since(start)
	return out
}

// resolveURL maps a ref to a fetchable URL. Absolute http(s) refs pass
// through; site-relative refs are joined to the asset host when one is
// configured.
func (w *Warmer) resolveURL(ref domain.ImageRef) (url string, isRemote bool) {
	s := string(ref)
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s, true
	}
	if w.assetHost != "" && strings.HasPrefix(s, "/") {
		return w.assetHost + s, true
	}
	return "", false
}

func (w *Warmer) fetchRemote(ctx context.Context, url, key string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	if w.token != nil {
		if host := hostOf(url); host != "" {
			if token, ok := w.token(host); ok {
				req.Header.Set("Authorization", "Bearer "+token)
			}
		}
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return 0, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return int64(len(body)), err
	}

	if err := w.cache.Put(key, body); err != nil {
		// The image arrived; failing to cache it only costs the next warm.
		w.logger.Debug("cache write failed", "ref", key, "error", err)
	}
	return int64(len(body)), nil
}

// hostOf extracts the host (without port) from an http(s) URL.
func hostOf(url string) string {
	rest := strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
