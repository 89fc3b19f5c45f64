package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/devlog/internal/client/client"
	"github.com/dmitrijs2005/devlog/internal/client/config"
	"github.com/dmitrijs2005/devlog/internal/client/controller"
	"github.com/dmitrijs2005/devlog/internal/client/models"
	"github.com/dmitrijs2005/devlog/internal/client/services"
	"github.com/dmitrijs2005/devlog/internal/client/session"
	"github.com/dmitrijs2005/devlog/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp wires an App against j with input as the whole of stdin.
func newTestApp(t *testing.T, j *journal, input string) (*App, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	store := session.NewStore(nil)
	a := &App{
		config:  &config.Config{ExportDir: t.TempDir()},
		session: store,
		reader:  bufio.NewReader(strings.NewReader(input)),
		out:     out,
		view:    NewRenderer(out, false),
	}

	url := j.serve(t)
	return a.assemble(client.NewHTTPClient(url, store)), out
}

func loggedIn(t *testing.T, a *App) {
	t.Helper()
	require.NoError(t, a.session.Set(context.Background(), testToken, "alice"))
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func sampleEntries() []models.Entry {
	return []models.Entry{
		{ID: "2", Title: "Goroutines", Content: "channels *everywhere*", Tags: "go, concurrency"},
		{ID: "1", Title: "Deploy notes", Content: "ran the migration", Tags: "ops"},
	}
}

func TestRoot_GuardsCommandsWhileLoggedOut(t *testing.T) {
	j := newJournal(sampleEntries()...)
	a, out := newTestApp(t, j, "list\nsnippets\nexit\n")

	a.Root(context.Background())

	assert.Equal(t, 2, strings.Count(out.String(), authRequired))
	assert.Contains(t, out.String(), "Bye!")
	assert.Empty(t, j.seen(), "no request may be sent without a session")
}

func TestRoot_HelpFollowsSession(t *testing.T) {
	j := newJournal()

	a, out := newTestApp(t, j, "help\n")
	a.Root(context.Background())
	assert.Contains(t, out.String(), "login")
	assert.Contains(t, out.String(), "register")
	assert.NotContains(t, out.String(), "logout")

	a, out = newTestApp(t, j, "help\n")
	loggedIn(t, a)
	a.Root(context.Background())
	assert.Contains(t, out.String(), "logout")
	assert.Contains(t, out.String(), "gentitle")
	assert.NotContains(t, out.String(), "register")
}

func TestRoot_RestoredSessionShowsEntries(t *testing.T) {
	j := newJournal(sampleEntries()...)
	a, out := newTestApp(t, j, "")
	loggedIn(t, a)

	a.Root(context.Background())

	assert.Contains(t, out.String(), "Logged in as alice")
	assert.Contains(t, out.String(), "Loading entries...\n")
	assert.Contains(t, out.String(), "Goroutines")
	assert.Contains(t, out.String(), "devlog (alice)> ")
	assert.Equal(t, []string{"GET /api/v1/entries"}, j.seen())
}

func TestLogin_StoresSessionAndShowsEntries(t *testing.T) {
	stubPassword(t, testPassword)
	j := newJournal(sampleEntries()...)
	a, out := newTestApp(t, j, "login\nalice\nexit\n")

	a.Root(context.Background())

	assert.Contains(t, out.String(), "✓ Logged in as alice")
	assert.Contains(t, out.String(), "Deploy notes")
	assert.Equal(t, testToken, a.session.Token())
	assert.Equal(t, "alice", a.session.Username())
	assert.Equal(t, []string{"POST /login", "GET /api/v1/entries"}, j.seen())
}

func TestLogin_ShowsServerMessageOnFailure(t *testing.T) {
	stubPassword(t, "wrong")
	j := newJournal()
	a, out := newTestApp(t, j, "login\nalice@example.com\nlist\n")

	a.Root(context.Background())

	assert.Contains(t, out.String(), "✗ Invalid credentials")
	assert.Contains(t, out.String(), authRequired)
	assert.False(t, a.session.IsAuthenticated())
}

func TestRegister_ThenLogsIn(t *testing.T) {
	stubPassword(t, testPassword)
	j := newJournal()
	a, out := newTestApp(t, j, "register\nbob@example.com\nbob\nbob\n")

	a.Root(context.Background())

	assert.Contains(t, out.String(), "✓ "+services.MsgRegistered)
	assert.Contains(t, out.String(), "✓ Logged in as bob")
	assert.Equal(t, []string{"POST /register", "POST /login", "GET /api/v1/entries"}, j.seen())
}

func TestAddAndSave_CreatesEntry(t *testing.T) {
	j := newJournal()
	a, out := newTestApp(t, j, "add\nFirst day\nset up the repo\nwrote tests\n\ngo\nsave\n")
	loggedIn(t, a)

	a.Root(context.Background())

	require.Len(t, j.entries, 1)
	assert.Equal(t, "First day", j.entries[0].Title)
	assert.Equal(t, "set up the repo\nwrote tests", j.entries[0].Content)
	assert.Equal(t, "go", j.entries[0].Tags)
	assert.Contains(t, out.String(), controller.MsgCreated)
	assert.Empty(t, a.entries.Snapshot().Fields)
}

func TestSave_EmptyFormIsRejectedLocally(t *testing.T) {
	j := newJournal()
	a, out := newTestApp(t, j, "save\n")
	loggedIn(t, a)

	a.Root(context.Background())

	assert.Contains(t, out.String(), "✗ "+controller.MsgRequired)
	for _, r := range j.seen() {
		assert.NotEqual(t, "POST /api/v1/entries", r)
	}
}

func TestEdit_UpdatesEntry(t *testing.T) {
	j := newJournal(sampleEntries()...)
	// Keep title, replace content, keep tags.
	a, out := newTestApp(t, j, "edit 1\n\nrolled back\n\n\nsave\n")
	loggedIn(t, a)

	a.Root(context.Background())

	assert.Contains(t, out.String(), "Editing entry 1")
	assert.Contains(t, out.String(), controller.MsgUpdated)
	assert.Equal(t, "Deploy notes", j.entries[1].Title)
	assert.Equal(t, "rolled back", j.entries[1].Content)
	assert.Equal(t, "ops", j.entries[1].Tags)
	assert.False(t, a.entries.Snapshot().Mode.IsEditing())
}

func TestGenTitle_NeedsContent(t *testing.T) {
	j := newJournal()
	a, out := newTestApp(t, j, "gentitle\n")
	loggedIn(t, a)

	a.Root(context.Background())

	assert.Contains(t, out.String(), controller.MsgContentFirst+"title")
	for _, r := range j.seen() {
		assert.NotEqual(t, "POST /autogen/title", r)
	}
}

func TestGenerate_FillsForm(t *testing.T) {
	j := newJournal()
	a, out := newTestApp(t, j, "add\n\nsome content\n\n\ngentitle\ngentags\n")
	loggedIn(t, a)

	a.Root(context.Background())

	f := a.entries.Snapshot().Fields
	assert.Equal(t, "Generated title", f.Title)
	assert.Equal(t, "go, cli", f.Tags)
	assert.Contains(t, out.String(), controller.MsgTitleGenerated)
	assert.Contains(t, out.String(), controller.MsgTagsGenerated)
}

func TestDelete_DeclinedKeepsEntry(t *testing.T) {
	j := newJournal(sampleEntries()...)
	a, out := newTestApp(t, j, "delete 1\nn\n")
	loggedIn(t, a)

	a.Root(context.Background())

	assert.Contains(t, out.String(), controller.ConfirmDeletePrompt)
	assert.Contains(t, out.String(), "Cancelled.")
	assert.Len(t, j.entries, 2)
}

func TestDelete_ConfirmedRemovesEntry(t *testing.T) {
	j := newJournal(sampleEntries()...)
	a, out := newTestApp(t, j, "delete 1\ny\n")
	loggedIn(t, a)

	a.Root(context.Background())

	assert.Contains(t, out.String(), controller.MsgDeleted)
	assert.Len(t, j.entries, 1)
	assert.Len(t, a.entries.Snapshot().Entries, 1)
}

func TestSearchFilterAndClear(t *testing.T) {
	j := newJournal(sampleEntries()...)
	a, out := newTestApp(t, j, "search migration\nfilter tag go\nfilter title\nclear\n")
	loggedIn(t, a)

	a.Root(context.Background())

	assert.Contains(t, out.String(), `Results for "migration" (all)`)
	assert.Contains(t, out.String(), `Results for "go" (tag)`)
	assert.Contains(t, out.String(), controller.MsgFilterValue)
	assert.Equal(t, 4, strings.Count(out.String(), "Loading entries..."), "one per list request")
	assert.Equal(t, []string{
		"GET /api/v1/entries",
		"GET /api/v1/entries/search",
		"GET /api/v1/entries/filter/tag/go",
		"GET /api/v1/entries",
	}, j.seen())
	assert.Len(t, a.entries.Snapshot().Entries, 2)
}

func TestShow_TogglesExpandedEntry(t *testing.T) {
	j := newJournal(sampleEntries()...)
	a, out := newTestApp(t, j, "show 2\n")
	loggedIn(t, a)

	a.Root(context.Background())

	assert.Contains(t, out.String(), "channels *everywhere*")
	assert.True(t, a.entries.Snapshot().IsExpanded("2"))
}

func TestShow_FetchesEntryOutsideList(t *testing.T) {
	j := newJournal(sampleEntries()...)
	a, out := newTestApp(t, j, "search Goroutines\nshow 1\nshow 9\n")
	loggedIn(t, a)

	a.Root(context.Background())

	assert.Contains(t, out.String(), "ran the migration")
	assert.Contains(t, out.String(), "✗ Entry not found")
	assert.Len(t, a.entries.Snapshot().Entries, 1, "the list is left as it was")
	assert.Contains(t, j.seen(), "GET /api/v1/entries/1")
}

func TestExport_WritesFile(t *testing.T) {
	j := newJournal(sampleEntries()...)
	a, out := newTestApp(t, j, "export 1\nexport 2 json\nexport 1 pdf\n")
	loggedIn(t, a)

	a.Root(context.Background())

	data, err := os.ReadFile(filepath.Join(a.config.ExportDir, "Entry-1.md"))
	require.NoError(t, err)
	assert.Equal(t, "# entry 1", string(data))
	assert.FileExists(t, filepath.Join(a.config.ExportDir, "Entry-2.json"))
	assert.Contains(t, out.String(), "Exported to ")
	assert.Contains(t, out.String(), "Usage: export <id> [md|json]")
}

func TestSnippets_AddListShowDelete(t *testing.T) {
	j := newJournal()
	a, out := newTestApp(t, j, strings.Join([]string{
		"snippets add", "Hello", "go", `fmt.Println("hi")`, "", "basics",
		"snippets list",
		"snippets show 101",
		"snippets delete 101", "y",
		"snippets export 101",
	}, "\n")+"\n")
	loggedIn(t, a)

	a.Root(context.Background())

	assert.Contains(t, out.String(), "Snippet created successfully!")
	assert.Contains(t, out.String(), "[101]  Hello  go  basics")
	assert.Contains(t, out.String(), "```go\nfmt.Println(\"hi\")\n```")
	assert.Contains(t, out.String(), "Snippet deleted successfully!")
	assert.Empty(t, j.snippets)
	assert.FileExists(t, filepath.Join(a.config.ExportDir, "Snippet-101.md"))
}

func TestSnippets_AddGeneratesEmptyFields(t *testing.T) {
	j := newJournal()
	a, out := newTestApp(t, j, "snippets add\n\ngo\n    for {}\n\n\n")
	loggedIn(t, a)

	a.Root(context.Background())

	require.Len(t, j.snippets, 1)
	assert.Equal(t, "Generated title", j.snippets[0].Title)
	assert.Equal(t, "go, cli", j.snippets[0].Tags)
	assert.Equal(t, "    for {}", j.snippets[0].Code)
	assert.Contains(t, out.String(), "Generated title: Generated title")
}

func TestSnippets_EditKeepsAndRegenerates(t *testing.T) {
	j := newJournal()
	j.snippets = []models.Snippet{{ID: "7", Title: "Old", Code: "x := 1", Language: "go", Tags: "vars"}}
	// Keep title, change language, keep code, regenerate tags.
	a, out := newTestApp(t, j, "snippets edit 7\n\ngolang\n\nauto\nsnippets show 7\nsnippets edit 8\n")
	loggedIn(t, a)

	a.Root(context.Background())

	assert.Equal(t, models.Snippet{ID: "7", Title: "Old", Code: "x := 1", Language: "golang", Tags: "go, cli"}, j.snippets[0])
	assert.Contains(t, out.String(), "Snippet updated successfully!")
	assert.Contains(t, out.String(), "```golang\nx := 1\n```")
	assert.Contains(t, out.String(), "✗ Snippet not found")
	assert.NotContains(t, j.seen(), "POST /autogen/title")
}

func TestSnippets_MissingFieldsRejected(t *testing.T) {
	j := newJournal()
	a, out := newTestApp(t, j, "snippets add\nOnly title\n\n\n\n")
	loggedIn(t, a)

	a.Root(context.Background())

	assert.Contains(t, out.String(), "Title, code and language are required")
	assert.Empty(t, j.snippets)
}

func TestWhoami_ReadsTokenClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": exp.Unix(),
	}).SignedString([]byte("server-key"))
	require.NoError(t, err)

	j := newJournal()
	j.token = signed
	a, out := newTestApp(t, j, "whoami\n")
	require.NoError(t, a.session.Set(context.Background(), signed, "alice"))

	a.Root(context.Background())

	assert.Contains(t, out.String(), "Username: alice")
	assert.Contains(t, out.String(), "Subject:  7")
	assert.Contains(t, out.String(), "(valid)")
}

func TestLogout_ClearsSessionAndScreen(t *testing.T) {
	j := newJournal(sampleEntries()...)
	a, out := newTestApp(t, j, "logout\nlist\n")
	loggedIn(t, a)

	a.Root(context.Background())

	assert.Contains(t, out.String(), "✓ Logged out")
	assert.Contains(t, out.String(), authRequired)
	assert.False(t, a.session.IsAuthenticated())
	assert.Equal(t, controller.Unauthenticated, a.entries.Snapshot().Phase)
}

func TestFailureText(t *testing.T) {
	assert.Equal(t, "Nope", failureText(&client.APIError{Status: 400, Message: "Nope"}, "fallback"))
	assert.Equal(t, "fallback", failureText(&client.APIError{Status: 500}, "fallback"))
	assert.Equal(t, "Title is required", failureText(common.Invalid("Title is required"), "fallback"))
	assert.Equal(t, "Error: boom", failureText(errors.New("boom"), "fallback"))
}
