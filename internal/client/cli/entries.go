package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/devlog/internal/client/controller"
	"github.com/dmitrijs2005/devlog/internal/client/models"
)

const formHint = "Type 'save' to submit, 'gentitle' or 'gentags' to generate fields, 'cancel' to discard."

// showEntries enters the entries screen: it fetches the list and prints it.
func (a *App) showEntries(ctx context.Context) error {
	a.view.Loading()
	err := a.entries.Mount(ctx)
	a.report(err)
	return err
}

// report prints the outcome of a controller call: only the message for a
// local rejection, the whole list otherwise.
func (a *App) report(err error) {
	s := a.entries.Snapshot()
	switch {
	case errors.Is(err, controller.ErrValidation),
		errors.Is(err, controller.ErrNotFound),
		errors.Is(err, controller.ErrBusy):
		a.view.Message(s.Message)
	case errors.Is(err, controller.ErrUnauthenticated):
		a.view.Println(authRequired)
	default:
		a.view.Entries(s)
	}
}

func (a *App) cmdList(ctx context.Context, _ []string) error {
	a.view.Loading()
	err := a.entries.FetchAll(ctx)
	a.report(err)
	return err
}

func (a *App) cmdSearch(ctx context.Context, args []string) error {
	a.entries.SetFilterKind(models.FilterAll)
	a.entries.SetQuery(strings.Join(args, " "))
	a.view.Loading()
	err := a.entries.Search(ctx)
	a.report(err)
	return err
}

func (a *App) cmdFilter(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	kind, err := models.ParseFilterKind(args[0])
	if err != nil {
		a.view.Error(err.Error())
		return errUsage
	}

	a.entries.SetFilterKind(kind)
	a.entries.SetQuery(strings.Join(args[1:], " "))
	if kind == models.FilterAll || len(args) > 1 {
		a.view.Loading()
	}
	err = a.entries.Filter(ctx)
	a.report(err)
	return err
}

func (a *App) cmdClear(ctx context.Context, _ []string) error {
	a.view.Loading()
	err := a.entries.ClearSearch(ctx)
	a.report(err)
	return err
}

// cmdShow toggles a listed entry. An entry outside the current list is
// fetched and printed in full without changing the list.
func (a *App) cmdShow(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id := models.ID(args[0])
	if _, ok := a.entries.Snapshot().Entry(id); ok {
		a.entries.ToggleExpand(id)
		a.view.Entries(a.entries.Snapshot())
		return nil
	}

	e, err := a.entryByID(ctx, id)
	if err != nil {
		a.view.Error(failureText(err, "Entry not found"))
		return err
	}
	a.view.Entry(*e)
	return nil
}

// cmdAdd starts a new entry and fills the form from prompts.
func (a *App) cmdAdd(_ context.Context, _ []string) error {
	a.entries.CancelEdit()

	title, err := getSimpleText(a.reader, "Title (leave empty to generate later)", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content (markdown)", a.out)
	if err != nil {
		return err
	}
	tags, err := getSimpleText(a.reader, "Tags, comma-separated", a.out)
	if err != nil {
		return err
	}

	a.entries.SetFields(controller.Fields{Title: title, Content: content, Tags: tags})
	a.view.Form(a.entries.Snapshot())
	a.view.Println(formHint)
	return nil
}

// cmdEdit loads an entry into the form. Each prompt defaults to the current
// value.
func (a *App) cmdEdit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id := models.ID(args[0])

	if _, ok := a.entries.Snapshot().Entry(id); !ok {
		// A search or filter may be hiding it.
		if err := a.entries.FetchAll(ctx); err != nil {
			a.report(err)
			return err
		}
	}
	if err := a.entries.StartEdit(id); err != nil {
		a.report(err)
		return err
	}

	f := a.entries.Snapshot().Fields
	title, err := GetTextWithDefault(a.reader, "Title", f.Title, a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content (leave empty to keep current)", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		content = f.Content
	}
	tags, err := GetTextWithDefault(a.reader, "Tags", f.Tags, a.out)
	if err != nil {
		return err
	}

	a.entries.SetFields(controller.Fields{Title: title, Content: content, Tags: tags})
	a.view.Form(a.entries.Snapshot())
	a.view.Println(formHint)
	return nil
}

func (a *App) cmdForm(_ context.Context, _ []string) error {
	a.view.Form(a.entries.Snapshot())
	return nil
}

func (a *App) cmdSave(ctx context.Context, _ []string) error {
	err := a.entries.Submit(ctx)
	a.report(err)
	return err
}

func (a *App) cmdCancel(_ context.Context, _ []string) error {
	a.entries.CancelEdit()
	a.view.Println("Form cleared.")
	return nil
}

func (a *App) cmdGenTitle(ctx context.Context, _ []string) error {
	return a.generated(a.entries.GenerateTitle(ctx))
}

func (a *App) cmdGenTags(ctx context.Context, _ []string) error {
	return a.generated(a.entries.GenerateTags(ctx))
}

func (a *App) generated(err error) error {
	s := a.entries.Snapshot()
	a.view.Message(s.Message)
	if err == nil {
		a.view.Form(s)
	}
	return err
}

func (a *App) cmdDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	err := a.entries.Delete(ctx, models.ID(args[0]))
	if errors.Is(err, controller.ErrDeclined) {
		a.view.Println("Cancelled.")
		return err
	}
	a.report(err)
	return err
}

func (a *App) cmdExport(ctx context.Context, args []string) error {
	id, format, err := exportArgs(args)
	if err != nil {
		return err
	}

	_, err = a.entries.Export(ctx, id, format)
	a.view.Message(a.entries.Snapshot().Message)
	return err
}

// exportArgs parses "<id> [md|json]"; the format defaults to markdown.
func exportArgs(args []string) (models.ID, models.ExportFormat, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", "", errUsage
	}
	format := models.FormatMarkdown
	if len(args) == 2 {
		f, err := models.ParseExportFormat(args[1])
		if err != nil {
			return "", "", errUsage
		}
		format = f
	}
	return models.ID(args[0]), format, nil
}
