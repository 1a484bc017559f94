// Package dap implements the query client of the Instructure Data Access Platform.
package dap

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jonboulle/clockwork"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/build"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/filesystem"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/log"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/query"
	urlutil "github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/url"
)

const (
	RequestTimeout     = 5 * time.Minute
	HTTPTimeout        = 30 * time.Second
	IdleConnTimeout    = 90 * time.Second
	KeepAlive          = 30 * time.Second
	MaxIdleConns       = 32
	RetryCount         = 5
	RetryWaitTime      = 500 * time.Millisecond
	RetryWaitTimeMax   = 10 * time.Second
	DefaultConcurrency = 4
	TokenHeader        = "x-instauth" // nolint: gosec
	jsonContentType    = "application/json"
)

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	// Concurrency is the maximum number of parallel object downloads.
	Concurrency int
	// VerboseAPI enables logging of each HTTP request.
	VerboseAPI bool
}

type Option func(c *clientConfig)

type clientConfig struct {
	clock      clockwork.Clock
	httpClient *http.Client
	progress   io.Writer
	retryCount int
}

// WithClock sets the clock used by the job polling and the token expiration.
func WithClock(clock clockwork.Clock) Option {
	return func(c *clientConfig) {
		c.clock = clock
	}
}

// WithHTTPClient replaces the default HTTP client, for example by a mocked one.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = httpClient
	}
}

// WithProgress enables the download progress bar, it is written to the writer.
func WithProgress(w io.Writer) Option {
	return func(c *clientConfig) {
		c.progress = w
	}
}

func WithRetryCount(count int) Option {
	return func(c *clientConfig) {
		c.retryCount = count
	}
}

// Client of the DAP API, it implements query.Client.
type Client struct {
	config      Config
	logger      log.Logger
	fs          filesystem.Fs
	clock       clockwork.Clock
	http        *resty.Client
	progress    io.Writer
	tokenLock   sync.Mutex
	accessToken *accessToken
}

var _ query.Client = (*Client)(nil)

func New(cfg Config, logger log.Logger, fs filesystem.Fs, opts ...Option) *Client {
	c := clientConfig{clock: clockwork.NewRealClock(), retryCount: RetryCount}
	for _, o := range opts {
		o(&c)
	}

	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	client := &Client{
		config:   cfg,
		logger:   logger.WithComponent("dap"),
		fs:       fs,
		clock:    c.clock,
		progress: c.progress,
	}
	client.http = createHTTPClient(client.logger, c, cfg)
	return client
}

func createHTTPClient(logger log.Logger, c clientConfig, cfg Config) *resty.Client {
	var r *resty.Client
	if c.httpClient != nil {
		r = resty.NewWithClient(c.httpClient)
	} else {
		r = resty.New()
		r.SetTransport(createTransport())
	}

	r.SetLogger(&restyLogger{logger: logger})
	r.SetBaseURL(cfg.BaseURL)
	r.SetHeader("User-Agent", "dapq/"+build.BuildVersion)
	r.SetHeader("Accept", "application/json")
	r.SetTimeout(RequestTimeout)
	r.SetRetryCount(c.retryCount)
	r.SetRetryWaitTime(RetryWaitTime)
	r.SetRetryMaxWaitTime(RetryWaitTimeMax)
	r.AddRetryCondition(func(response *resty.Response, err error) bool {
		if response == nil {
			return err != nil
		}
		switch response.StatusCode() {
		case
			http.StatusRequestTimeout,
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	})

	if cfg.VerboseAPI {
		r.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
			req := res.Request
			logger.Debugf(req.Context(), `HTTP %s "%s" | %d | %s`, req.Method, urlutil.SanitizeURLString(req.URL), res.StatusCode(), res.Time())
			return nil
		})
	}

	return r
}

func createTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   HTTPTimeout,
		KeepAlive: KeepAlive,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          MaxIdleConns,
		MaxIdleConnsPerHost:   MaxIdleConns,
		IdleConnTimeout:       IdleConnTimeout,
		TLSHandshakeTimeout:   HTTPTimeout,
		ResponseHeaderTimeout: HTTPTimeout,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// restyLogger forwards resty internal messages, for example retries, to the logger.
type restyLogger struct {
	logger log.Logger
}

func (l *restyLogger) Errorf(format string, v ...any) {
	l.logger.Errorf(context.Background(), format, v...)
}

func (l *restyLogger) Warnf(format string, v ...any) {
	l.logger.Warnf(context.Background(), format, v...)
}

func (l *restyLogger) Debugf(format string, v ...any) {
	l.logger.Debugf(context.Background(), format, v...)
}
