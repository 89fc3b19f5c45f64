package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/devlog/internal/client/models"
	"github.com/dmitrijs2005/devlog/internal/common"
)

const (
	MsgSnippetRequired = "Title, code and language are required"
	MsgFilterValue     = "Please enter a filter value"
)

type SnippetsAPI interface {
	ListSnippets(ctx context.Context) ([]models.Snippet, error)
	SearchSnippets(ctx context.Context, query string) ([]models.Snippet, error)
	FilterSnippets(ctx context.Context, kind models.FilterKind, value string) ([]models.Snippet, error)
	GetSnippet(ctx context.Context, id models.ID) (*models.Snippet, error)
	CreateSnippet(ctx context.Context, in models.SnippetInput) error
	UpdateSnippet(ctx context.Context, id models.ID, in models.SnippetInput) error
	DeleteSnippet(ctx context.Context, id models.ID) error
	GenerateTitle(ctx context.Context, content string) (string, error)
	GenerateTags(ctx context.Context, content string) (string, error)
}

// SnippetService lists and edits code snippets. Search and filter follow the
// same rules as for entries, with "lang" as an extra filter kind.
type SnippetService interface {
	List(ctx context.Context) ([]models.Snippet, error)
	Search(ctx context.Context, query string) ([]models.Snippet, error)
	Filter(ctx context.Context, kind models.FilterKind, value string) ([]models.Snippet, error)
	Get(ctx context.Context, id models.ID) (*models.Snippet, error)
	Create(ctx context.Context, in models.SnippetInput) error
	Update(ctx context.Context, id models.ID, in models.SnippetInput) error
	Delete(ctx context.Context, id models.ID) error
	// Autofill generates the title and tags left empty, from the code.
	Autofill(ctx context.Context, in models.SnippetInput) (models.SnippetInput, error)
}

type snippetService struct {
	api SnippetsAPI
}

func NewSnippetService(api SnippetsAPI) SnippetService {
	return &snippetService{api: api}
}

func (s *snippetService) List(ctx context.Context) ([]models.Snippet, error) {
	return s.api.ListSnippets(ctx)
}

func (s *snippetService) Search(ctx context.Context, query string) ([]models.Snippet, error) {
	if query == "" {
		return s.List(ctx)
	}
	return s.api.SearchSnippets(ctx, query)
}

func (s *snippetService) Filter(ctx context.Context, kind models.FilterKind, value string) ([]models.Snippet, error) {
	switch kind {
	case models.FilterAll, "":
		return s.Search(ctx, value)
	case models.FilterTag, models.FilterTitle, models.FilterLang:
	default:
		return nil, common.Invalid(fmt.Sprintf("Unsupported filter kind %q", kind))
	}

	if value == "" {
		return nil, common.Invalid(MsgFilterValue)
	}
	return s.api.FilterSnippets(ctx, kind, value)
}

func (s *snippetService) Get(ctx context.Context, id models.ID) (*models.Snippet, error) {
	return s.api.GetSnippet(ctx, id)
}

func (s *snippetService) Create(ctx context.Context, in models.SnippetInput) error {
	if err := checkSnippet(in); err != nil {
		return err
	}
	return s.api.CreateSnippet(ctx, in)
}

// Update sends the full field set of snippet id.
func (s *snippetService) Update(ctx context.Context, id models.ID, in models.SnippetInput) error {
	if err := checkSnippet(in); err != nil {
		return err
	}
	return s.api.UpdateSnippet(ctx, id, in)
}

// Autofill stops at the first failed generation and returns what it has so
// far. Without code there is nothing to generate from and in is returned as is.
func (s *snippetService) Autofill(ctx context.Context, in models.SnippetInput) (models.SnippetInput, error) {
	if in.Code == "" {
		return in, nil
	}
	if in.Title == "" {
		title, err := s.api.GenerateTitle(ctx, in.Code)
		if err != nil {
			return in, fmt.Errorf("generate title: %w", err)
		}
		in.Title = title
	}
	if in.Tags == "" {
		tags, err := s.api.GenerateTags(ctx, in.Code)
		if err != nil {
			return in, fmt.Errorf("generate tags: %w", err)
		}
		in.Tags = tags
	}
	return in, nil
}

func checkSnippet(in models.SnippetInput) error {
	if in.Title == "" || in.Code == "" || in.Language == "" {
		return common.Invalid(MsgSnippetRequired)
	}
	return nil
}

func (s *snippetService) Delete(ctx context.Context, id models.ID) error {
	return s.api.DeleteSnippet(ctx, id)
}
