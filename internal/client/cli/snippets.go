package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/devlog/internal/client/export"
	"github.com/dmitrijs2005/devlog/internal/client/models"
	"github.com/dmitrijs2005/devlog/internal/common"
)

const confirmDeleteSnippet = "Are you sure you want to delete this snippet?"

func (a *App) cmdSnippets(ctx context.Context, args []string) error {
	sub, rest := "list", []string(nil)
	if len(args) > 0 {
		sub, rest = args[0], args[1:]
	}

	switch sub {
	case "list", "ls":
		return a.listSnippets(ctx, "Failed to fetch snippets", func() ([]models.Snippet, error) {
			return a.snippets.List(ctx)
		})
	case "search":
		q := strings.Join(rest, " ")
		return a.listSnippets(ctx, "Search failed", func() ([]models.Snippet, error) {
			return a.snippets.Search(ctx, q)
		})
	case "filter":
		if len(rest) == 0 {
			return errUsage
		}
		kind, err := models.ParseFilterKind(rest[0])
		if err != nil {
			a.view.Error(err.Error())
			return errUsage
		}
		value := strings.Join(rest[1:], " ")
		return a.listSnippets(ctx, "Filter failed", func() ([]models.Snippet, error) {
			return a.snippets.Filter(ctx, kind, value)
		})
	case "show":
		return a.showSnippet(ctx, rest)
	case "add":
		return a.addSnippet(ctx)
	case "edit":
		return a.editSnippet(ctx, rest)
	case "delete", "rm":
		return a.deleteSnippet(ctx, rest)
	case "export":
		return a.exportSnippet(ctx, rest)
	default:
		return errUsage
	}
}

func (a *App) listSnippets(_ context.Context, fallback string, fetch func() ([]models.Snippet, error)) error {
	items, err := fetch()
	if err != nil {
		a.view.Error(failureText(err, fallback))
		return err
	}
	a.view.Snippets(items)
	return nil
}

func (a *App) showSnippet(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	sn, err := a.snippets.Get(ctx, models.ID(args[0]))
	if err != nil {
		a.view.Error(failureText(err, "Snippet not found"))
		return err
	}
	a.view.Snippet(*sn)
	return nil
}

// addSnippet prompts for a new snippet. A title or tags left empty are
// generated from the code.
func (a *App) addSnippet(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title (leave empty to generate)", a.out)
	if err != nil {
		return err
	}
	language, err := getSimpleText(a.reader, "Language", a.out)
	if err != nil {
		return err
	}
	code, err := GetMultiline(a.reader, "Code", a.out)
	if err != nil {
		return err
	}
	tags, err := getSimpleText(a.reader, "Tags, comma-separated (leave empty to generate)", a.out)
	if err != nil {
		return err
	}

	in := a.autofill(ctx, models.SnippetInput{Title: title, Code: code, Language: language, Tags: tags})
	if err := a.snippets.Create(ctx, in); err != nil {
		a.view.Error(failureText(err, "Failed to create snippet"))
		return err
	}
	a.view.Success("Snippet created successfully!")
	return nil
}

// editSnippet loads a snippet and prompts for each field with the current
// value as default. Typing "auto" for the title or tags regenerates it.
func (a *App) editSnippet(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id := models.ID(args[0])

	cur, err := a.snippets.Get(ctx, id)
	if err != nil {
		a.view.Error(failureText(err, "Snippet not found"))
		return err
	}
	a.view.Snippet(*cur)

	title, err := GetTextWithDefault(a.reader, "Title", cur.Title, a.out)
	if err != nil {
		return err
	}
	language, err := GetTextWithDefault(a.reader, "Language", cur.Language, a.out)
	if err != nil {
		return err
	}
	code, err := GetMultiline(a.reader, "Code (leave empty to keep current)", a.out)
	if err != nil {
		return err
	}
	if code == "" {
		code = cur.Code
	}
	tags, err := GetTextWithDefault(a.reader, "Tags", cur.Tags, a.out)
	if err != nil {
		return err
	}

	in := models.SnippetInput{Title: title, Code: code, Language: language, Tags: tags}
	if in.Title == autoValue {
		in.Title = ""
	}
	if in.Tags == autoValue {
		in.Tags = ""
	}
	in = a.autofill(ctx, in)

	if err := a.snippets.Update(ctx, id, in); err != nil {
		a.view.Error(failureText(err, "Failed to update snippet"))
		return err
	}
	a.view.Success("Snippet updated successfully!")
	return nil
}

const autoValue = "auto"

// autofill fills empty title and tags. A failed generation is reported and
// the snippet goes on with what it has.
func (a *App) autofill(ctx context.Context, in models.SnippetInput) models.SnippetInput {
	out, err := a.snippets.Autofill(ctx, in)
	if err != nil {
		a.view.Error(failureText(err, "Failed to generate snippet fields"))
	}
	if out.Title != in.Title {
		a.view.Println("Generated title:", out.Title)
	}
	if out.Tags != in.Tags {
		a.view.Println("Generated tags:", out.Tags)
	}
	return out
}

func (a *App) deleteSnippet(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	ok, err := Confirm(a.reader, confirmDeleteSnippet, a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.view.Println("Cancelled.")
		return common.ErrDeclined
	}

	if err := a.snippets.Delete(ctx, models.ID(args[0])); err != nil {
		a.view.Error(failureText(err, "Failed to delete snippet"))
		return err
	}
	a.view.Success("Snippet deleted successfully!")
	return nil
}

func (a *App) exportSnippet(ctx context.Context, args []string) error {
	id, format, err := exportArgs(args)
	if err != nil {
		return err
	}

	path, err := a.saver.Export(ctx, models.KindSnippet, id, format)
	if err != nil {
		a.view.Error(export.FailureMessage(err))
		return err
	}
	a.view.Success(export.SuccessMessage(path))
	return nil
}
