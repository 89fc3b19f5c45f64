package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/dmitrijs2005/devlog/internal/client/controller"
	"github.com/dmitrijs2005/devlog/internal/client/models"
	"github.com/fatih/color"
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

// Renderer prints screen state to the terminal.
type Renderer struct {
	out      io.Writer
	markdown bool
}

// NewRenderer returns a renderer writing to out. With markdown off, entry
// bodies are printed as they are.
func NewRenderer(out io.Writer, markdown bool) *Renderer {
	return &Renderer{out: out, markdown: markdown}
}

func (r *Renderer) Println(a ...any) {
	fmt.Fprintln(r.out, a...)
}

func (r *Renderer) Success(msg string) {
	fmt.Fprintln(r.out, green("✓ ")+msg)
}

func (r *Renderer) Error(msg string) {
	fmt.Fprintln(r.out, red("✗ ")+msg)
}

func (r *Renderer) Message(m controller.Message) {
	switch {
	case m.Empty():
	case m.Kind == controller.MessageError:
		r.Error(m.Text)
	case m.Kind == controller.MessageSuccess:
		r.Success(m.Text)
	default:
		r.Println(m.Text)
	}
}

// Markdown renders text with glamour, falling back to the raw text.
func (r *Renderer) Markdown(text string) string {
	if !r.markdown {
		return text
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return text
	}
	out, err := tr.Render(text)
	if err != nil {
		return text
	}
	return out
}

// Loading prints the list-area indicator shown while entries are fetched.
func (r *Renderer) Loading() {
	fmt.Fprintln(r.out, faint("Loading entries..."))
}

// Entries prints the list with the expanded entry shown in full, followed by
// the current message. A snapshot taken mid-request shows the loading
// indicator above the previous list.
func (r *Renderer) Entries(s controller.State) {
	if s.Phase == controller.Loading {
		r.Loading()
	}
	if s.Query != "" {
		kind := s.FilterKind
		if kind == "" {
			kind = models.FilterAll
		}
		fmt.Fprintf(r.out, "%s %q (%s)\n", faint("Results for"), s.Query, kind)
	}

	if len(s.Entries) == 0 {
		fmt.Fprintln(r.out, faint("No entries."))
	}

	for _, e := range s.Entries {
		r.entryLine(e, s.Mode)
		if s.IsExpanded(e.ID) {
			r.entryBody(e)
		}
	}
	r.Message(s.Message)
}

func (r *Renderer) entryLine(e models.Entry, mode controller.Mode) {
	var sb strings.Builder

	marker := " "
	if mode.IsEditing() && mode.EditID() == e.ID {
		marker = "*"
	}
	fmt.Fprintf(&sb, "%s %s  %s", marker, faint("["+e.ID.String()+"]"), bold(e.Title))

	if tags := e.TagList(); len(tags) > 0 {
		fmt.Fprintf(&sb, "  %s", cyan(strings.Join(tags, ", ")))
	}
	if e.CreatedAt != "" {
		fmt.Fprintf(&sb, "  %s", faint(e.CreatedAt))
	}
	fmt.Fprintln(r.out, sb.String())
}

func (r *Renderer) entryBody(e models.Entry) {
	fmt.Fprintln(r.out, separator())
	fmt.Fprintln(r.out, strings.TrimRight(r.Markdown(e.Content), "\n"))
	if e.UpdatedAt != "" {
		fmt.Fprintf(r.out, "%s %s\n", faint("Updated:"), faint(e.UpdatedAt))
	}
	fmt.Fprintln(r.out, separator())
}

// Entry prints one entry with its body.
func (r *Renderer) Entry(e models.Entry) {
	r.entryLine(e, controller.Creating())
	r.entryBody(e)
}

// Form prints the working copy of the create/edit form.
func (r *Renderer) Form(s controller.State) {
	header := "New entry"
	if s.Mode.IsEditing() {
		header = "Editing entry " + s.Mode.EditID().String()
	}
	fmt.Fprintln(r.out, bold(header))
	fmt.Fprintf(r.out, "  %s %s\n", faint("Title:  "), s.Fields.Title)
	fmt.Fprintf(r.out, "  %s %s\n", faint("Tags:   "), s.Fields.Tags)
	fmt.Fprintf(r.out, "  %s\n", faint("Content:"))
	for _, line := range strings.Split(s.Fields.Content, "\n") {
		fmt.Fprintf(r.out, "    %s\n", line)
	}

	var busy []string
	if s.GeneratingTitle {
		busy = append(busy, "title")
	}
	if s.GeneratingTags {
		busy = append(busy, "tags")
	}
	if len(busy) > 0 {
		fmt.Fprintf(r.out, "  %s\n", faint("generating "+strings.Join(busy, " and ")+"..."))
	}
}

func (r *Renderer) Snippets(items []models.Snippet) {
	if len(items) == 0 {
		fmt.Fprintln(r.out, faint("No snippets."))
		return
	}
	for _, s := range items {
		line := fmt.Sprintf("  %s  %s  %s", faint("["+s.ID.String()+"]"), bold(s.Title), cyan(s.Language))
		if tags := s.TagList(); len(tags) > 0 {
			line += "  " + faint(strings.Join(tags, ", "))
		}
		fmt.Fprintln(r.out, line)
	}
}

// Snippet prints one snippet with its code as a fenced block.
func (r *Renderer) Snippet(s models.Snippet) {
	fmt.Fprintf(r.out, "%s  %s\n", bold(s.Title), faint("["+s.ID.String()+"]"))
	fence := "```" + s.Language + "\n" + s.Code + "\n```\n"
	fmt.Fprintln(r.out, strings.TrimRight(r.Markdown(fence), "\n"))
}

func separator() string {
	return faint(strings.Repeat("─", 50))
}
