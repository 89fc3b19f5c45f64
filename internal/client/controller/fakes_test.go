package controller

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/devlog/internal/client/models"
)

type fakeSession struct{ authed bool }

func (s *fakeSession) IsAuthenticated() bool { return s.authed }

// fakeAPI records every call by name. Handlers can be overridden per test.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	entries []models.Entry
	listErr error

	list    func(ctx context.Context) ([]models.Entry, error)
	search  func(ctx context.Context, q string) ([]models.Entry, error)
	filter  func(ctx context.Context, k models.FilterKind, v string) ([]models.Entry, error)
	create  func(in models.EntryInput) error
	update  func(id models.ID, in models.EntryInput) error
	delete  func(id models.ID) error
	genText func(ctx context.Context, what, content string) (string, error)

	lastCreate models.EntryInput
	lastUpdate models.EntryUpdate
	lastQuery  string
	lastKind   models.FilterKind
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeAPI) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeAPI) ListEntries(ctx context.Context) ([]models.Entry, error) {
	f.record("list")
	if f.list != nil {
		return f.list(ctx)
	}
	return f.entries, f.listErr
}

func (f *fakeAPI) SearchEntries(ctx context.Context, q string) ([]models.Entry, error) {
	f.record("search")
	f.lastQuery = q
	if f.search != nil {
		return f.search(ctx, q)
	}
	return f.entries, nil
}

func (f *fakeAPI) FilterEntries(ctx context.Context, k models.FilterKind, v string) ([]models.Entry, error) {
	f.record("filter")
	f.lastKind, f.lastQuery = k, v
	if f.filter != nil {
		return f.filter(ctx, k, v)
	}
	return f.entries, nil
}

func (f *fakeAPI) CreateEntry(_ context.Context, in models.EntryInput) error {
	f.record("create")
	f.lastCreate = in
	if f.create != nil {
		return f.create(in)
	}
	return nil
}

func (f *fakeAPI) UpdateEntry(_ context.Context, id models.ID, in models.EntryInput) error {
	f.record("update")
	f.lastUpdate = models.EntryUpdate{ID: id, EntryInput: in}
	if f.update != nil {
		return f.update(id, in)
	}
	return nil
}

func (f *fakeAPI) DeleteEntry(_ context.Context, id models.ID) error {
	f.record("delete")
	if f.delete != nil {
		return f.delete(id)
	}
	return nil
}

func (f *fakeAPI) GenerateTitle(ctx context.Context, content string) (string, error) {
	f.record("gentitle")
	return f.genText(ctx, "title", content)
}

func (f *fakeAPI) GenerateTags(ctx context.Context, content string) (string, error) {
	f.record("gentags")
	return f.genText(ctx, "tags", content)
}

type fakeExporter struct {
	path string
	err  error
	kind models.ResourceKind
}

func (e *fakeExporter) Export(_ context.Context, kind models.ResourceKind, _ models.ID, _ models.ExportFormat) (string, error) {
	e.kind = kind
	return e.path, e.err
}

func answer(yes bool) Option {
	return WithConfirmer(ConfirmFunc(func(context.Context, string) (bool, error) { return yes, nil }))
}
