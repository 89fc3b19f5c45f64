package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/devlog/internal/logging"
)

const authRequired = "Authentication Required: please login first (type 'login')"

var (
	errExit  = errors.New("exit")
	errUsage = errors.New("usage")
)

type access int

const (
	accessAny access = iota
	// accessGuest commands are offered in help only while logged out.
	accessGuest
	// accessAuth commands need a session; the REPL refuses them otherwise.
	accessAuth
)

// command is one route of the REPL.
type command struct {
	name    string
	aliases []string
	args    string
	help    string
	access  access
	run     func(ctx context.Context, args []string) error
}

func (c command) matches(name string) bool {
	if c.name == name {
		return true
	}
	for _, a := range c.aliases {
		if a == name {
			return true
		}
	}
	return false
}

func (c command) usage() string {
	if c.args == "" {
		return c.name
	}
	return c.name + " " + c.args
}

type repl struct {
	reader   *bufio.Reader
	out      io.Writer
	commands []command
	loggedIn func() bool
	prompt   func() string
	log      logging.Logger
}

// run reads commands until EOF, "exit" or ctx cancellation. Handler errors do
// not stop the loop; handlers print their own user-facing messages.
func (r *repl) run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprint(r.out, r.prompt())
		line, readErr := r.reader.ReadString('\n')
		if line == "" && readErr != nil {
			fmt.Fprintln(r.out)
			return
		}

		parts := strings.Fields(line)
		if len(parts) > 0 && r.dispatch(ctx, parts[0], parts[1:]) {
			return
		}
		if readErr != nil {
			return
		}
	}
}

// dispatch runs one command and reports whether the REPL should stop.
func (r *repl) dispatch(ctx context.Context, name string, args []string) bool {
	if name == "help" || name == "?" {
		r.help()
		return false
	}

	cmd, ok := r.find(name)
	if !ok {
		fmt.Fprintln(r.out, "Unknown command:", name)
		return false
	}

	if cmd.access == accessAuth && !r.loggedIn() {
		fmt.Fprintln(r.out, authRequired)
		return false
	}

	err := cmd.run(ctx, args)
	switch {
	case errors.Is(err, errExit):
		fmt.Fprintln(r.out, "Bye!")
		return true
	case errors.Is(err, errUsage):
		fmt.Fprintln(r.out, "Usage:", cmd.usage())
	case err != nil:
		r.log.Debug(ctx, "command failed", "command", cmd.name, "error", err)
	}
	return false
}

func (r *repl) find(name string) (command, bool) {
	for _, c := range r.commands {
		if c.matches(name) {
			return c, true
		}
	}
	return command{}, false
}

// help lists the commands available in the current session state.
func (r *repl) help() {
	loggedIn := r.loggedIn()

	fmt.Fprintln(r.out, "Available commands:")
	fmt.Fprintf(r.out, "  %-28s %s\n", "help", "show this help")
	for _, c := range r.commands {
		if (c.access == accessAuth && !loggedIn) || (c.access == accessGuest && loggedIn) {
			continue
		}
		fmt.Fprintf(r.out, "  %-28s %s\n", c.usage(), c.help)
	}
}
