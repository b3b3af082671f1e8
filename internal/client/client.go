package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strconv"
	"strings"

	"reloadtrigger/internal/common"
	"reloadtrigger/internal/xrf"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const XrfHeader = "X-Qlik-Xrfkey"

// TokenSource hands out one anti-forgery key per request.
type TokenSource interface {
	Token() string
}

// Response is the raw answer of the control-plane API. Non-2xx answers are
// returned as-is, never as errors.
type Response struct {
	StatusCode int
	StatusText string
	Body       string
}

func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

type Options struct {
	ServerURL string
	ReadPath  string
	TLS       common.TLSConfig
	Session   common.SessionConfig
	Headers   map[string]string
	Tokens    TokenSource
	Logger    *zap.Logger
}

type Client struct {
	serverURL  string
	readPath   string
	headers    map[string]string
	tokens     TokenSource
	httpClient *http.Client
	logger     *zap.Logger
}

func NewFromConfig(cfg common.Config, logger *zap.Logger) (*Client, error) {
	return New(Options{
		ServerURL: cfg.ServerURL,
		ReadPath:  cfg.ReadPath,
		TLS:       cfg.TLS,
		Session:   cfg.Session,
		Headers:   cfg.Headers,
		Logger:    logger,
	})
}

func New(opts Options) (*Client, error) {
	if opts.Tokens == nil {
		opts.Tokens = xrf.NewDefaultGenerator()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ReadPath == "" {
		opts.ReadPath = common.ReadPathReloadTask
	}

	transport, err := createTransport(opts.TLS, opts.Logger)
	if err != nil {
		return nil, err
	}
	jar, err := createCookieJar(opts.ServerURL, opts.Session)
	if err != nil {
		return nil, err
	}

	return &Client{
		serverURL: strings.TrimRight(opts.ServerURL, "/"),
		readPath:  opts.ReadPath,
		headers:   opts.Headers,
		tokens:    opts.Tokens,
		// no Timeout: a request waits on the transport and the caller's context
		httpClient: &http.Client{
			Transport: transport,
			Jar:       jar,
		},
		logger: opts.Logger,
	}, nil
}

// HTTPClient exposes the underlying client, e.g. to intercept it in tests.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// StartTask asks the control plane to start the task.
func (c *Client) StartTask(ctx context.Context, prefix, taskID string) (*Response, error) {
	return c.Request(ctx, prefix, fmt.Sprintf("/task/%s/start", taskID), http.MethodPost, nil)
}

// ReadTask fetches the task record holding its last execution.
func (c *Client) ReadTask(ctx context.Context, prefix, taskID string) (*Response, error) {
	return c.Request(ctx, prefix, fmt.Sprintf("/%s/%s", c.readPath, taskID), http.MethodGet, nil)
}

// Request issues one call against the control plane with a fresh xrfkey.
// Transport failures come back as a NetworkErr ErrNo.
func (c *Client) Request(ctx context.Context, basePathPrefix, endpointPath, method string, headers map[string]string) (*Response, error) {
	token := c.tokens.Token()
	req, err := c.CreateRequest(ctx, method, BuildURL(c.serverURL+basePathPrefix, endpointPath, token), token, headers)
	if err != nil {
		return nil, common.WrapErrNo(common.ServiceErr, err, "create request")
	}

	c.logger.Debug("control-plane request", zap.String("method", method), zap.String("path", basePathPrefix+endpointPath))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("control-plane request failed", zap.String("method", method), zap.String("path", endpointPath), zap.Error(err))
		return nil, common.WrapErrNo(common.NetworkErr, err, method+" "+basePathPrefix+endpointPath)
	}
	defer resp.Body.Close()

	body, err := ReadResponseBody(resp)
	if err != nil {
		return nil, common.WrapErrNo(common.NetworkErr, err, method+" "+basePathPrefix+endpointPath)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Info("control-plane request answered non-2xx", zap.String("path", endpointPath), zap.Int("status", resp.StatusCode))
	}
	return &Response{
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
		Body:       string(body),
	}, nil
}

// CreateRequest builds the request with the xrfkey header, the JSON accept
// header and disabled caching. Configured headers and then the per-call
// headers are applied on top; the last write wins on a key collision.
func (c *Client) CreateRequest(ctx context.Context, method, rawURL, token string, headers map[string]string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(XrfHeader, token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// BuildURL appends the xrfkey query parameter to base+path.
func BuildURL(base, path, token string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return base + path + sep + "xrfkey=" + token
}

func ReadResponseBody(resp *http.Response) ([]byte, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}
	if resp.Body == nil {
		return nil, fmt.Errorf("response body is nil")
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}
	return body, nil
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}

func createTransport(cfg common.TLSConfig, logger *zap.Logger) (*http.Transport, error) {
	tlsConfig := &tls.Config{}

	if cfg.CACert != "" {
		caCert, err := os.ReadFile(cfg.CACert)
		if err != nil {
			return nil, errors.Wrap(err, "read ca cert")
		}
		caCertPool := x509.NewCertPool()
		if caCertPool.AppendCertsFromPEM(caCert) {
			tlsConfig.RootCAs = caCertPool
		} else {
			logger.Warn("fail to parse ca cert, use system default cert pool", zap.String("path", cfg.CACert))
		}
	}
	if cfg.ClientCert != "" && cfg.ClientKey != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, errors.Wrap(err, "load client certificate")
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if base, ok := http.DefaultTransport.(*http.Transport); ok {
		transport = base.Clone()
	}
	transport.TLSClientConfig = tlsConfig
	return transport, nil
}

func createCookieJar(serverURL string, session common.SessionConfig) (http.CookieJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	if session.CookieName == "" || session.CookieValue == "" {
		return jar, nil
	}
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse server url")
	}
	jar.SetCookies(u, []*http.Cookie{{Name: session.CookieName, Value: session.CookieValue, Path: "/"}})
	return jar, nil
}
