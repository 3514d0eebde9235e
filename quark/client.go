package quark

import (
	"context"
	"crypto/tls"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/vaultsync/quarkdrive/internal/errs"
	"github.com/vaultsync/quarkdrive/pkg/cookie"
	"github.com/vaultsync/quarkdrive/pkg/utils"
)

var DefaultTimeout = time.Second * 30

// Client talks to one drive account. Instances are independent of each
// other; inside a client the cookie and conf are the only shared state,
// guarded because the service rotates the __puus cookie on responses and
// callers may patch conf at runtime.
type Client struct {
	mu     sync.RWMutex
	conf   Conf
	cookie string

	transport http.RoundTripper
	resty     *resty.Client
	http      *http.Client
	auther    UploadAuther
}

type Option func(*Client)

// WithConf overrides protocol constants for this client.
func WithConf(o Conf) Option {
	return func(c *Client) { c.conf = c.conf.With(o) }
}

// WithUploadAuther replaces the remote signing backend, mainly so tests
// can return deterministic tokens without network access.
func WithUploadAuther(a UploadAuther) Option {
	return func(c *Client) { c.auther = a }
}

// WithTransport replaces the HTTP transport used by every leg of the
// protocol, drive API and object storage alike.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.transport = rt }
}

func New(cookieStr string, opts ...Option) *Client {
	c := &Client{
		conf:   DefaultConf(),
		cookie: cookieStr,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = &http.Transport{TLSClientConfig: &tls.Config{}}
	}
	// No client timeout on the object-storage legs: a part PUT on a slow
	// link can exceed any fixed bound.
	c.http = &http.Client{Transport: c.transport}
	c.resty = resty.New().
		SetTransport(c.transport).
		SetTimeout(DefaultTimeout)
	if c.auther == nil {
		c.auther = &apiAuther{c: c}
	}
	return c
}

// SetCookie replaces the credential string.
func (c *Client) SetCookie(v string) {
	c.mu.Lock()
	c.cookie = v
	c.mu.Unlock()
}

// Cookie returns the current credential string, including any rotation
// the service applied since construction.
func (c *Client) Cookie() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cookie
}

// SetConf patches protocol constants at runtime. Zero fields of o keep
// their current values.
func (c *Client) SetConf(o Conf) {
	c.mu.Lock()
	c.conf = c.conf.With(o)
	c.mu.Unlock()
}

func (c *Client) getConf() Conf {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conf
}

type ReqCallback func(req *resty.Request)

// request issues one drive API call and unwraps the response envelope.
func (c *Client) request(ctx context.Context, pathname, method string, callback ReqCallback, resp any) ([]byte, error) {
	conf := c.getConf()
	u := conf.API + pathname
	req := c.resty.R().SetContext(ctx)
	req.SetHeaders(map[string]string{
		"Cookie":     c.Cookie(),
		"Accept":     "application/json, text/plain, */*",
		"Referer":    conf.Referer,
		"Origin":     conf.Referer,
		"User-Agent": conf.UA,
	})
	req.SetQueryParam("pr", conf.Pr)
	req.SetQueryParam("fr", "pc")
	if callback != nil {
		callback(req)
	}
	res, err := req.Execute(method, u)
	if err != nil {
		return nil, &errs.NetworkError{Err: err}
	}
	body := res.Body()
	var e Resp
	if err := utils.Json.Unmarshal(body, &e); err != nil {
		return nil, &errs.ProtocolError{Message: "unexpected response: " + truncate(string(body), 200)}
	}
	if e.Status >= 400 || !e.Success() {
		msg := e.Message
		if msg == "" {
			msg = "request failed"
		}
		return nil, &errs.ProtocolError{Code: e.Code, Message: msg}
	}
	if puus := cookie.GetCookie(res.Cookies(), "__puus"); puus != nil {
		c.mu.Lock()
		c.cookie = cookie.SetStr(c.cookie, "__puus", puus.Value)
		c.mu.Unlock()
	}
	if resp != nil {
		if err := utils.Json.Unmarshal(body, resp); err != nil {
			return nil, &errs.ProtocolError{Message: "unexpected response: " + truncate(string(body), 200)}
		}
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
