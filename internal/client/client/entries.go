package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/devlog/internal/client/models"
)

const entriesPath = "/api/v1/entries"

func (c *HTTPClient) ListEntries(ctx context.Context) ([]models.Entry, error) {
	data, err := c.send(ctx, http.MethodGet, entriesPath, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeCollection[models.Entry](data, "entries")
}

func (c *HTTPClient) SearchEntries(ctx context.Context, query string) ([]models.Entry, error) {
	data, err := c.send(ctx, http.MethodGet, entriesPath+"/search", url.Values{"q": {query}}, nil)
	if err != nil {
		return nil, err
	}
	return decodeCollection[models.Entry](data, "entries")
}

func (c *HTTPClient) FilterEntries(ctx context.Context, kind models.FilterKind, value string) ([]models.Entry, error) {
	path := entriesPath + "/filter/" + segment(string(kind)) + "/" + segment(value)
	data, err := c.send(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeCollection[models.Entry](data, "entries")
}

func (c *HTTPClient) CreateEntry(ctx context.Context, in models.EntryInput) error {
	_, err := c.send(ctx, http.MethodPost, entriesPath, nil, in)
	return err
}

// UpdateEntry sends the full field set, changed or not.
func (c *HTTPClient) UpdateEntry(ctx context.Context, id models.ID, in models.EntryInput) error {
	_, err := c.send(ctx, http.MethodPatch, entriesPath, nil, models.EntryUpdate{ID: id, EntryInput: in})
	return err
}

func (c *HTTPClient) DeleteEntry(ctx context.Context, id models.ID) error {
	_, err := c.send(ctx, http.MethodDelete, entriesPath+"/"+segment(id.String()), nil, nil)
	return err
}

// GetEntry fetches one entry, bare or wrapped under "entry".
func (c *HTTPClient) GetEntry(ctx context.Context, id models.ID) (*models.Entry, error) {
	data, err := c.send(ctx, http.MethodGet, entriesPath+"/"+segment(id.String()), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeItem[models.Entry](data, "entry")
}

func (c *HTTPClient) GenerateTitle(ctx context.Context, content string) (string, error) {
	data, err := c.send(ctx, http.MethodPost, "/autogen/title", nil, map[string]string{"content": content})
	if err != nil {
		return "", err
	}

	var resp struct {
		Title          string `json:"title"`
		GeneratedTitle string `json:"generated_title"`
	}
	if err := decode(data, &resp); err != nil {
		return "", err
	}
	if resp.Title != "" {
		return resp.Title, nil
	}
	return resp.GeneratedTitle, nil
}

// GenerateTags returns the generated tags as comma-separated text. A JSON
// array answer is joined with ", ".
func (c *HTTPClient) GenerateTags(ctx context.Context, content string) (string, error) {
	data, err := c.send(ctx, http.MethodPost, "/autogen/tags", nil, map[string]string{"content": content})
	if err != nil {
		return "", err
	}

	var resp struct {
		Tags          json.RawMessage `json:"tags"`
		GeneratedTags json.RawMessage `json:"generated_tags"`
	}
	if err := decode(data, &resp); err != nil {
		return "", err
	}

	raw := resp.Tags
	if len(raw) == 0 || string(raw) == "null" {
		raw = resp.GeneratedTags
	}
	return tagsText(raw)
}

func tagsText(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var list []string
	if err := decode(raw, &list); err != nil {
		return "", err
	}
	return strings.Join(list, ", "), nil
}

// Export downloads the per-resource export file.
func (c *HTTPClient) Export(ctx context.Context, kind models.ResourceKind, id models.ID, format models.ExportFormat) ([]byte, error) {
	path := "/export-" + string(kind) + "-" + format.PathSuffix() + "/v1/" + segment(id.String())
	return c.send(ctx, http.MethodGet, path, nil, nil)
}
