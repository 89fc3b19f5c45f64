package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/devlog/internal/client/models"
)

const snippetsPath = "/api/v1/snippets"

func (c *HTTPClient) ListSnippets(ctx context.Context) ([]models.Snippet, error) {
	data, err := c.send(ctx, http.MethodGet, snippetsPath, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeCollection[models.Snippet](data, "snippets")
}

func (c *HTTPClient) SearchSnippets(ctx context.Context, query string) ([]models.Snippet, error) {
	data, err := c.send(ctx, http.MethodGet, snippetsPath+"/search", url.Values{"q": {query}}, nil)
	if err != nil {
		return nil, err
	}
	return decodeCollection[models.Snippet](data, "snippets")
}

func (c *HTTPClient) FilterSnippets(ctx context.Context, kind models.FilterKind, value string) ([]models.Snippet, error) {
	path := snippetsPath + "/filter/" + segment(string(kind)) + "/" + segment(value)
	data, err := c.send(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeCollection[models.Snippet](data, "snippets")
}

func (c *HTTPClient) CreateSnippet(ctx context.Context, in models.SnippetInput) error {
	_, err := c.send(ctx, http.MethodPost, snippetsPath, nil, in)
	return err
}

// GetSnippet fetches one snippet. The body may be the snippet itself or an
// object holding it under "snippet".
func (c *HTTPClient) GetSnippet(ctx context.Context, id models.ID) (*models.Snippet, error) {
	data, err := c.send(ctx, http.MethodGet, snippetsPath+"/"+segment(id.String()), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeItem[models.Snippet](data, "snippet")
}

func (c *HTTPClient) UpdateSnippet(ctx context.Context, id models.ID, in models.SnippetInput) error {
	_, err := c.send(ctx, http.MethodPatch, snippetsPath, nil, models.SnippetUpdate{ID: id, SnippetInput: in})
	return err
}

func (c *HTTPClient) DeleteSnippet(ctx context.Context, id models.ID) error {
	_, err := c.send(ctx, http.MethodDelete, snippetsPath+"/"+segment(id.String()), nil, nil)
	return err
}
