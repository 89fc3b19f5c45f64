package models

// Snippet is a code record. The server names the code body "snippets".
type Snippet struct {
	ID        ID     `json:"id"`
	Title     string `json:"title"`
	Code      string `json:"snippets"`
	Language  string `json:"language"`
	Tags      string `json:"tags"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func (s Snippet) TagList() []string {
	return splitTags(s.Tags)
}

type SnippetInput struct {
	Title    string `json:"title"`
	Code     string `json:"snippets"`
	Language string `json:"language"`
	Tags     string `json:"tags"`
}

// SnippetUpdate is the PATCH body: the full field set addressed by id.
type SnippetUpdate struct {
	ID ID `json:"id"`
	SnippetInput
}
