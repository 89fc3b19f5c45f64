package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/devlog/internal/client/models"
)

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	data, err := c.send(ctx, http.MethodPost, "/login", nil, req)
	if err != nil {
		return nil, err
	}

	var resp models.LoginResponse
	if err := decode(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns the server's confirmation text,
// which may be empty.
func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	data, err := c.send(ctx, http.MethodPost, "/register", nil, req)
	if err != nil {
		return "", err
	}

	var resp struct {
		Message string `json:"message"`
	}
	// The body is informational only.
	_ = decode(data, &resp)
	return resp.Message, nil
}
