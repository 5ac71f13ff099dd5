package rest

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/keyfob-dev/keyfob/build"

	"github.com/vmihailenco/msgpack/v5"
)

type RESTClient struct {
	baseURL     *url.URL
	token       string
	tokenKey    string
	tokenFormat string
	userAgent   string
	contentType string
	accept      string
	HTTPClient  *http.Client
}

func NewClient(baseURL string, token string, insecureSkipVerify bool) (*RESTClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %s, error: %v", baseURL, err)
	}

	restClient := &RESTClient{
		baseURL:     parsed,
		token:       token,
		tokenKey:    "Authorization",
		tokenFormat: "Bearer %s",
		userAgent:   "keyfob v" + build.Version,
		contentType: ContentTypeJSON,
		accept:      ContentTypeJSON + ", " + ContentTypeMsgPack,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	restClient.HTTPClient.Transport = &http.Transport{
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: insecureSkipVerify},
		MaxConnsPerHost:     32 * 2,
		MaxIdleConns:        32 * 2,
		MaxIdleConnsPerHost: 32,
		IdleConnTimeout:     30 * time.Second,
	}

	return restClient, nil
}

func (c *RESTClient) Close() {
	c.HTTPClient.CloseIdleConnections()
}

func (c *RESTClient) SetTimeout(timeout time.Duration) *RESTClient {
	c.HTTPClient.Timeout = timeout
	return c
}

func (c *RESTClient) SetContentType(contentType string) *RESTClient {
	c.contentType = contentType
	return c
}

func (c *RESTClient) SetAccept(accept string) *RESTClient {
	c.accept = accept
	return c
}

func (c *RESTClient) SetUserAgent(userAgent string) *RESTClient {
	c.userAgent = userAgent
	return c
}

func (c *RESTClient) SetAuthToken(token string) *RESTClient {
	c.token = token
	return c
}

func (c *RESTClient) SetTokenKey(key string) *RESTClient {
	c.tokenKey = key
	return c
}

func (c *RESTClient) SetTokenFormat(format string) *RESTClient {
	c.tokenFormat = format
	return c
}

func (c *RESTClient) setHeaders(req *http.Request) {
	req.Header.Set("Accept", c.accept)
	req.Header.Set("Content-Type", c.contentType)
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set(c.tokenKey, fmt.Sprintf(c.tokenFormat, c.token))
	}
}

func (c *RESTClient) decodeBody(resp *http.Response, response interface{}) error {
	if strings.Contains(resp.Header.Get("Content-Type"), ContentTypeMsgPack) {
		return msgpack.NewDecoder(resp.Body).Decode(response)
	}
	return json.NewDecoder(resp.Body).Decode(response)
}

func (c *RESTClient) Get(ctx context.Context, path string, response interface{}) (int, error) {
	rel, err := url.Parse(path)
	if err != nil {
		return 0, fmt.Errorf("invalid path: %s, error: %v", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.ResolveReference(rel).String(), nil)
	if err != nil {
		return 0, err
	}

	c.setHeaders(req)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if response != nil {
		err = c.decodeBody(resp, response)
	}
	return resp.StatusCode, err
}

// SendData sends a request body and decodes the response. successCode 0
// accepts any status below 400, a positive value requires that exact status
// and a negative value disables status checking so callers can interpret
// failure bodies themselves.
func (c *RESTClient) SendData(ctx context.Context, method string, path string, request interface{}, response interface{}, successCode int) (int, error) {
	rel, err := url.Parse(path)
	if err != nil {
		return 0, fmt.Errorf("invalid path: %s, error: %v", path, err)
	}

	var data []byte
	if c.contentType == ContentTypeMsgPack {
		data, err = msgpack.Marshal(request)
	} else {
		data, err = json.Marshal(request)
	}
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.ResolveReference(rel).String(), bytes.NewReader(data))
	if err != nil {
		return 0, err
	}

	c.setHeaders(req)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if (successCode == 0 && resp.StatusCode >= http.StatusBadRequest) || (successCode > 0 && resp.StatusCode != successCode) {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, fmt.Errorf("unexpected status code: %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if response != nil {
		if err = c.decodeBody(resp, response); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

func (c *RESTClient) Post(ctx context.Context, path string, request interface{}, response interface{}, successCode int) (int, error) {
	return c.SendData(ctx, http.MethodPost, path, request, response, successCode)
}

func (c *RESTClient) Put(ctx context.Context, path string, request interface{}, response interface{}, successCode int) (int, error) {
	return c.SendData(ctx, http.MethodPut, path, request, response, successCode)
}

func (c *RESTClient) Delete(ctx context.Context, path string, request interface{}, response interface{}, successCode int) (int, error) {
	return c.SendData(ctx, http.MethodDelete, path, request, response, successCode)
}
