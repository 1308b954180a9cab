package upstream

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"golang.org/x/time/rate"

	drepo "PortfolioPulse/internal/domain/repository"
	"PortfolioPulse/internal/service/cache"
	httpkit "PortfolioPulse/pkg/http"
	"PortfolioPulse/pkg/logger"
	"PortfolioPulse/pkg/metrics"
)

// Decoder interprets a raw upstream response. A nil error marks the body as cacheable.
type Decoder func(raw *httpkit.RawResponse) error

// Caller performs upstream GETs for one provider with a per-call timeout,
// an optional rate limiter and an optional response cache. It never retries.
type Caller struct {
	provider string
	http     *httpkit.Client
	timeout  time.Duration
	limiter  *rate.Limiter
	cache    cache.BytesCache
	cacheTTL time.Duration
	metrics  drepo.Metrics
	log      *logger.Logger
}

type Option func(*Caller)

// WithRatePerMinute limits outgoing calls. n <= 0 disables limiting.
func WithRatePerMinute(n int) Option {
	return func(c *Caller) {
		if n <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), 1)
	}
}

// WithCache stores successful bodies for ttl. A nil cache or ttl <= 0 disables caching.
func WithCache(bc cache.BytesCache, ttl time.Duration) Option {
	return func(c *Caller) {
		c.cache = bc
		c.cacheTTL = ttl
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Caller) { c.timeout = d }
}

func WithHTTPClient(hc *httpkit.Client) Option {
	return func(c *Caller) { c.http = hc }
}

func WithMetrics(m drepo.Metrics) Option {
	return func(c *Caller) {
		if m != nil {
			c.metrics = m
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Caller) {
		if l != nil {
			c.log = l
		}
	}
}

func New(provider string, opts ...Option) *Caller {
	c := &Caller{
		provider: provider,
		timeout:  10 * time.Second,
		metrics:  metrics.Nop{},
		log:      logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpkit.NewClient()
	}
	return c
}

// Provider returns the provider label used in metrics and logs.
func (c *Caller) Provider() string { return c.provider }

// Get calls baseURL with params and hands the response to decode.
// secretParams are excluded from the cache key and from logs.
func (c *Caller) Get(ctx context.Context, baseURL string, params map[string][]string, decode Decoder, secretParams ...string) error {
	redacted := httpkit.RedactedURL(baseURL, params, secretParams...)
	key := c.cacheKey(redacted)

	if c.cacheEnabled() {
		if b, ok, err := c.cache.GetBytes(ctx, key); err != nil {
			c.log.Warn("cache read failed", logger.String("provider", c.provider), logger.Error(err))
		} else if ok {
			if err := decode(&httpkit.RawResponse{StatusCode: 200, Body: b}); err == nil {
				c.metrics.RecordUpstreamCall(c.provider, "cached")
				return nil
			}
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.metrics.RecordUpstreamCall(c.provider, "error")
			return err
		}
	}

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := c.http.Fetch(callCtx, &httpkit.RequestOptions{
		Method:      httpkit.MethodGet,
		URL:         baseURL,
		QueryParams: params,
	})
	c.metrics.RecordLatency("upstream_"+c.provider, time.Since(start).Seconds())
	if err != nil {
		c.metrics.RecordUpstreamCall(c.provider, "error")
		c.log.Debug("upstream request failed", logger.String("provider", c.provider), logger.String("url", redacted), logger.Error(err))
		return err
	}

	if err := decode(raw); err != nil {
		c.metrics.RecordUpstreamCall(c.provider, "error")
		c.log.Debug("upstream response rejected",
			logger.String("provider", c.provider),
			logger.String("url", redacted),
			logger.Int("status", raw.StatusCode),
			logger.Error(err),
		)
		return err
	}
	c.metrics.RecordUpstreamCall(c.provider, "ok")

	if c.cacheEnabled() && raw.OK() {
		if err := c.cache.SetBytes(ctx, key, raw.Body, c.cacheTTL); err != nil {
			c.log.Warn("cache write failed", logger.String("provider", c.provider), logger.Error(err))
		}
	}
	return nil
}

func (c *Caller) cacheEnabled() bool {
	return c.cache != nil && c.cacheTTL > 0
}

func (c *Caller) cacheKey(redacted string) string {
	sum := sha256.Sum256([]byte(redacted))
	return c.provider + ":" + hex.EncodeToString(sum[:])
}
