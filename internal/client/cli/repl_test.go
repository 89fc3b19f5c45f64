package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/devlog/internal/logging"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	loggedIn bool
	calls    []string
}

func (r *recorder) cmd(name string, access access, err error) command {
	return command{
		name:   name,
		access: access,
		args:   "<x>",
		help:   name + " things",
		run: func(_ context.Context, args []string) error {
			r.calls = append(r.calls, name+":"+strings.Join(args, ","))
			return err
		},
	}
}

func newTestREPL(rec *recorder, input string, out *bytes.Buffer) *repl {
	return &repl{
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    out,
		commands: []command{
			{name: "exit", aliases: []string{"quit"}, run: func(context.Context, []string) error { return errExit }},
			rec.cmd("open", accessAny, nil),
			rec.cmd("login", accessGuest, nil),
			rec.cmd("secret", accessAuth, nil),
			rec.cmd("broken", accessAny, errUsage),
			rec.cmd("failing", accessAny, errors.New("boom")),
		},
		loggedIn: func() bool { return rec.loggedIn },
		prompt:   func() string { return "> " },
		log:      logging.Discard(),
	}
}

func TestREPL_DispatchesWithArguments(t *testing.T) {
	rec := &recorder{}
	var out bytes.Buffer

	newTestREPL(rec, "open a b\n\n   \nfailing\nopen\n", &out).run(context.Background())

	assert.Equal(t, []string{"open:a,b", "failing:", "open:"}, rec.calls)
}

func TestREPL_GuardsAuthCommands(t *testing.T) {
	rec := &recorder{}
	var out bytes.Buffer

	newTestREPL(rec, "secret\n", &out).run(context.Background())
	assert.Empty(t, rec.calls)
	assert.Contains(t, out.String(), authRequired)

	rec.loggedIn = true
	out.Reset()
	newTestREPL(rec, "secret now\n", &out).run(context.Background())
	assert.Equal(t, []string{"secret:now"}, rec.calls)
	assert.NotContains(t, out.String(), authRequired)
}

func TestREPL_UsageAndUnknown(t *testing.T) {
	rec := &recorder{}
	var out bytes.Buffer

	newTestREPL(rec, "broken\nnope\n", &out).run(context.Background())

	assert.Contains(t, out.String(), "Usage: broken <x>")
	assert.Contains(t, out.String(), "Unknown command: nope")
}

func TestREPL_ExitStopsReading(t *testing.T) {
	rec := &recorder{}
	var out bytes.Buffer

	newTestREPL(rec, "quit\nopen\n", &out).run(context.Background())

	assert.Empty(t, rec.calls)
	assert.Contains(t, out.String(), "Bye!")
}

func TestREPL_LastLineWithoutNewline(t *testing.T) {
	rec := &recorder{}
	var out bytes.Buffer

	newTestREPL(rec, "open x", &out).run(context.Background())

	assert.Equal(t, []string{"open:x"}, rec.calls)
}

func TestREPL_StopsOnCancelledContext(t *testing.T) {
	rec := &recorder{}
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	newTestREPL(rec, "open\n", &out).run(ctx)

	assert.Empty(t, rec.calls)
}

func TestREPL_HelpDependsOnSession(t *testing.T) {
	rec := &recorder{}
	var out bytes.Buffer

	newTestREPL(rec, "help\n", &out).run(context.Background())
	assert.Contains(t, out.String(), "login things")
	assert.NotContains(t, out.String(), "secret things")

	rec.loggedIn = true
	out.Reset()
	newTestREPL(rec, "?\n", &out).run(context.Background())
	assert.Contains(t, out.String(), "secret things")
	assert.NotContains(t, out.String(), "login things")
	assert.Contains(t, out.String(), "open <x>")
}
