package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/devlog/internal/client/client"
	"github.com/dmitrijs2005/devlog/internal/client/config"
	"github.com/dmitrijs2005/devlog/internal/client/controller"
	"github.com/dmitrijs2005/devlog/internal/client/export"
	"github.com/dmitrijs2005/devlog/internal/client/models"
	"github.com/dmitrijs2005/devlog/internal/client/repositories"
	"github.com/dmitrijs2005/devlog/internal/client/services"
	"github.com/dmitrijs2005/devlog/internal/client/session"
	"github.com/dmitrijs2005/devlog/internal/common"
	"github.com/dmitrijs2005/devlog/internal/logging"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	repos    *repositories.Repositories
	session  *session.Store
	auth     services.AuthService
	snippets services.SnippetService
	entries  *controller.Controller
	saver    *export.Saver
	reader   *bufio.Reader
	out      io.Writer
	view     *Renderer

	// entryByID fetches a single entry for "show" when it is not listed.
	entryByID func(ctx context.Context, id models.ID) (*models.Entry, error)
}

// NewApp opens the session database, restores the stored session and wires
// the API client, services and entries controller.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(c.LogLevel, os.Stderr)

	repos, err := repositories.Open(ctx, c.SessionDB)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.SessionDB, "error", err)
		return nil, err
	}

	store := session.NewStore(repos.Metadata)
	if err := store.Hydrate(ctx); err != nil {
		_ = repos.Close()
		return nil, err
	}

	a := &App{
		config:  c,
		log:     log,
		repos:   repos,
		session: store,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		view:    NewRenderer(os.Stdout, true),
	}

	api := client.NewHTTPClient(c.APIBaseURL, store, client.WithLogger(log.With("component", "api")))
	return a.assemble(api), nil
}

// assemble builds everything that talks to the API. The App must already
// have its config, session, reader, writer and renderer.
func (a *App) assemble(api *client.HTTPClient) *App {
	if a.log == nil {
		a.log = logging.Discard()
	}
	a.auth = services.NewAuthService(api, a.session)
	a.snippets = services.NewSnippetService(api)
	a.entryByID = api.GetEntry
	a.saver = export.NewSaver(api, a.config.ExportDir)
	a.entries = controller.New(api, a.session,
		controller.WithConfirmer(controller.ConfirmFunc(a.confirm)),
		controller.WithExporter(a.saver),
		controller.WithLogger(a.log.With("component", "entries")),
	)
	return a
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() error {
	return a.repos.Close()
}

// Root greets the user, shows the entries screen when a session was
// restored, and runs the REPL until exit.
func (a *App) Root(ctx context.Context) {
	a.view.Println("Welcome to devlog (type 'help' for commands)")

	if a.session.IsAuthenticated() {
		a.view.Println("Logged in as " + a.session.Username())
		_ = a.showEntries(ctx)
	}

	r := &repl{
		reader:   a.reader,
		out:      a.out,
		commands: a.commands(),
		loggedIn: a.session.IsAuthenticated,
		prompt:   a.prompt,
		log:      a.log,
	}
	r.run(ctx)
}

func (a *App) prompt() string {
	if name := a.session.Username(); name != "" && a.session.IsAuthenticated() {
		return fmt.Sprintf("devlog (%s)> ", name)
	}
	return "devlog> "
}

func (a *App) confirm(_ context.Context, prompt string) (bool, error) {
	return Confirm(a.reader, prompt, a.out)
}

func (a *App) commands() []command {
	return []command{
		{name: "exit", aliases: []string{"quit"}, help: "leave the program", run: func(context.Context, []string) error { return errExit }},
		{name: "register", help: "create an account", access: accessGuest, run: a.cmdRegister},
		{name: "login", help: "log in with username or email", access: accessGuest, run: a.cmdLogin},

		{name: "list", aliases: []string{"l", "entries"}, help: "list all entries", access: accessAuth, run: a.cmdList},
		{name: "search", args: "<text>", help: "search entries", access: accessAuth, run: a.cmdSearch},
		{name: "filter", args: "<all|tag|title> <value>", help: "filter entries by tag or title", access: accessAuth, run: a.cmdFilter},
		{name: "clear", help: "clear search and list all entries", access: accessAuth, run: a.cmdClear},
		{name: "show", args: "<id>", help: "expand or collapse an entry, or fetch one not listed", access: accessAuth, run: a.cmdShow},
		{name: "add", help: "fill the form for a new entry", access: accessAuth, run: a.cmdAdd},
		{name: "edit", args: "<id>", help: "load an entry into the form", access: accessAuth, run: a.cmdEdit},
		{name: "form", help: "show the form", access: accessAuth, run: a.cmdForm},
		{name: "save", help: "submit the form", access: accessAuth, run: a.cmdSave},
		{name: "cancel", help: "clear the form and stop editing", access: accessAuth, run: a.cmdCancel},
		{name: "gentitle", help: "generate the title from the content", access: accessAuth, run: a.cmdGenTitle},
		{name: "gentags", help: "generate tags from the content", access: accessAuth, run: a.cmdGenTags},
		{name: "delete", aliases: []string{"rm"}, args: "<id>", help: "delete an entry", access: accessAuth, run: a.cmdDelete},
		{name: "export", args: "<id> [md|json]", help: "save an entry to the export directory", access: accessAuth, run: a.cmdExport},
		{name: "snippets", aliases: []string{"sn"}, args: "[list|search|filter|show|add|edit|delete|export] ...", help: "work with code snippets", access: accessAuth, run: a.cmdSnippets},
		{name: "whoami", help: "show the current session", access: accessAuth, run: a.cmdWhoami},
		{name: "logout", help: "log out", access: accessAuth, run: a.cmdLogout},
	}
}

// failureText is the user-facing text of a failed request: the server's own
// message (or fallback), the validation text, or "Error: " and the cause.
func failureText(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.MessageOr(fallback)
	}
	var ve *common.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return "Error: " + err.Error()
}
