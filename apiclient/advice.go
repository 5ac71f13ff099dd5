package apiclient

import (
	"context"
	"errors"
	"net/http"
)

var ErrAdvisorDisabled = errors.New("advisor is not enabled on the server")

type AdviceRequest struct {
	Topic string `json:"topic,omitempty" msgpack:"topic"`
}

type AdviceResponse struct {
	Advice string `json:"advice" msgpack:"advice"`
}

// Advice requests advisory text on an OTP security topic.
func (c *ApiClient) Advice(ctx context.Context, topic string) (string, error) {
	response := AdviceResponse{}

	statusCode, err := c.httpClient.Post(ctx, "/api/advice", AdviceRequest{Topic: topic}, &response, -1)
	if err != nil {
		return "", err
	}

	switch statusCode {
	case http.StatusOK:
		return response.Advice, nil
	case http.StatusServiceUnavailable:
		return "", ErrAdvisorDisabled
	default:
		return "", errors.New("invalid status code")
	}
}
