package network

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrRequestFailed = errors.New("request failed")

const (
	defaultUserAgent = "suitlink-cli"
	RequestIDHeader  = "X-Request-ID"
)

// Options configures the API transport.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	Proxy       string
	CookiesPath string
	UserAgent   string
	Logger      zerolog.Logger
}

// Client sends requests to the SuitLink API and keeps the session cookies.
type Client struct {
	http      tls_client.HttpClient
	base      *url.URL
	store     *CookieStore
	userAgent string
	logger    zerolog.Logger

	mu  sync.Mutex
	jar *fhttpcookiejar.Jar
}

func NewClient(opts Options) (*Client, error) {
	base, err := ParseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	jar, _ := fhttpcookiejar.New(nil)

	timeout := int(opts.Timeout / time.Second)
	if timeout <= 0 {
		timeout = 30
	}
	options := []tls_client.HttpClientOption{
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(timeout),
		tls_client.WithCookieJar(jar),
	}
	if proxy := strings.TrimSpace(opts.Proxy); proxy != "" {
		options = append(options, tls_client.WithProxyUrl(proxy))
	}

	client, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, err
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	c := &Client{
		http:      client,
		base:      base,
		userAgent: userAgent,
		logger:    opts.Logger,
		jar:       jar,
	}

	if opts.CookiesPath != "" {
		c.store = NewCookieStore(opts.CookiesPath)
		saved, err := c.store.Load()
		if err != nil {
			c.logger.Warn().Err(err).Str("path", opts.CookiesPath).Msg("ignoring unreadable cookie file")
		} else if len(saved) > 0 {
			jar.SetCookies(base, saved)
		}
	}

	return c, nil
}

// ParseBaseURL validates an API root such as http://localhost:8888/api/v1.
func ParseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return nil, fmt.Errorf("base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http or https: %s", raw)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("base url has no host: %s", raw)
	}
	return base, nil
}

// URL resolves an API path against the base URL.
func (c *Client) URL(path string, query url.Values) string {
	return JoinURL(c.base, path, query)
}

func JoinURL(base *url.URL, path string, query url.Values) string {
	u := *base
	u.Path = strings.TrimRight(base.Path, "/") + "/" + strings.TrimLeft(path, "/")
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	requestID := req.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
		req.Header.Set(RequestIDHeader, requestID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Str("request_id", requestID).
			Msg("request failed")
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", requestID).
		Msg("request")

	if len(resp.Cookies()) > 0 {
		c.persistCookies()
	}
	return resp, nil
}

// SessionCookie returns the value of the named cookie for the API host.
func (c *Client) SessionCookie(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cookie := range c.jar.Cookies(c.base) {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

// ClearSession drops every cookie, in memory and on disk.
func (c *Client) ClearSession() error {
	jar, _ := fhttpcookiejar.New(nil)

	c.mu.Lock()
	c.jar = jar
	c.http.SetCookieJar(jar)
	c.mu.Unlock()

	if c.store == nil {
		return nil
	}
	return c.store.Clear()
}

func (c *Client) persistCookies() {
	if c.store == nil {
		return
	}
	c.mu.Lock()
	cookies := c.jar.Cookies(c.base)
	c.mu.Unlock()

	if err := c.store.Save(cookies); err != nil {
		c.logger.Warn().Err(err).Msg("failed to persist session cookies")
	}
}
