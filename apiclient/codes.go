package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

type CodeRequest struct {
	Secret string `json:"secret" msgpack:"secret"`
	Window uint   `json:"window,omitempty" msgpack:"window"`
}

type CodeResponse struct {
	Code             string `json:"code" msgpack:"code"`
	SecondsRemaining uint   `json:"seconds_remaining" msgpack:"seconds_remaining"`
	Window           uint   `json:"window" msgpack:"window"`
}

type CheckSecretRequest struct {
	Secret string `json:"secret" msgpack:"secret"`
}

type CheckSecretResponse struct {
	Valid bool `json:"valid" msgpack:"valid"`
}

// GenerateCode asks the server for the current code for a secret. The
// returned code may be one of the sentinel strings INVALID or ERROR; the
// corresponding HTTP failure statuses are surfaced in the response rather
// than as an error so callers keep the three-way distinction.
func (c *ApiClient) GenerateCode(ctx context.Context, request CodeRequest) (*CodeResponse, error) {
	response := CodeResponse{}

	statusCode, err := c.httpClient.Post(ctx, "/api/codes", request, &response, -1)
	if err != nil {
		return nil, err
	}

	switch statusCode {
	case http.StatusOK, http.StatusUnprocessableEntity, http.StatusInternalServerError:
		return &response, nil
	default:
		return nil, fmt.Errorf("unexpected status code: %d", statusCode)
	}
}

// CheckSecret runs the strict secret validation on the server.
func (c *ApiClient) CheckSecret(ctx context.Context, secret string) (bool, error) {
	response := CheckSecretResponse{}

	_, err := c.httpClient.Post(ctx, "/api/secrets/check", CheckSecretRequest{Secret: secret}, &response, http.StatusOK)
	if err != nil {
		return false, err
	}

	return response.Valid, nil
}
