package apiclient

import (
	"time"

	"github.com/keyfob-dev/keyfob/internal/util/rest"
)

// ApiClient is a typed client for the keyfob HTTP API.
type ApiClient struct {
	httpClient *rest.RESTClient
}

func NewClient(baseURL string, token string, insecureSkipVerify bool) (*ApiClient, error) {
	httpClient, err := rest.NewClient(baseURL, token, insecureSkipVerify)
	if err != nil {
		return nil, err
	}

	return &ApiClient{
		httpClient: httpClient,
	}, nil
}

func (c *ApiClient) SetAuthToken(token string) *ApiClient {
	c.httpClient.SetAuthToken(token)
	return c
}

func (c *ApiClient) SetTimeout(timeout time.Duration) *ApiClient {
	c.httpClient.SetTimeout(timeout)
	return c
}

func (c *ApiClient) UseMsgPack() *ApiClient {
	c.httpClient.SetContentType(rest.ContentTypeMsgPack)
	c.httpClient.SetAccept(rest.ContentTypeMsgPack)
	return c
}

func (c *ApiClient) Close() {
	c.httpClient.Close()
}
