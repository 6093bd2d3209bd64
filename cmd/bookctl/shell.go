package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/erauner12/bookcatalog/internal/books"
	"github.com/erauner12/bookcatalog/internal/catalog"
	"github.com/spf13/cobra"
)

const shellHelp = `Commands:
  list              show the catalog
  add               enter a new book
  edit <id>         edit a book
  delete <id>       delete a book
  refresh           reload the catalog
  dismiss           clear the error banner
  help              show this help
  exit              leave the shell`

func (a *app) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session over one catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShell(cmd.Context())
		},
	}
}

func (a *app) runShell(ctx context.Context) error {
	if err := a.coord.Start(ctx); err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, shellHelp)
	a.show()

	for {
		fmt.Fprint(a.out, "\n> ")
		if !a.in.Scan() {
			return a.in.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		fields := strings.Fields(a.in.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "list", "ls":
			a.show()
		case "add":
			// an unsent draft from a failed add is kept
			a.coord.Cancel()
			a.shellForm(ctx)
		case "edit":
			b, ok := a.shellBook(fields)
			if !ok {
				continue
			}
			a.coord.Edit(b)
			a.shellForm(ctx)
		case "delete", "rm":
			b, ok := a.shellBook(fields)
			if !ok {
				continue
			}
			err := a.coord.Delete(ctx, b.ID)
			if errors.Is(err, catalog.ErrDeclined) {
				fmt.Fprintln(a.out, "Delete cancelled.")
				continue
			}
			if err != nil {
				fmt.Fprintf(a.out, "Error: %v\n", err)
			}
			a.show()
		case "refresh":
			if err := a.coord.Refresh(ctx); err != nil {
				fmt.Fprintf(a.out, "Error: %v\n", err)
			}
			a.show()
		case "dismiss":
			a.coord.Dismiss()
		case "help", "?":
			fmt.Fprintln(a.out, shellHelp)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(a.out, "Unknown command. Type 'help' for the list of commands.")
		}
	}
}

// show prints the banner, if any, and the list
func (a *app) show() {
	if st := a.coord.State(); st.Status == catalog.StatusError {
		fmt.Fprintf(a.out, "[!] %s (type 'dismiss' to clear)\n", st.Message)
	}
	if err := catalog.Render(a.out, a.coord.View()); err != nil {
		fmt.Fprintf(a.errOut, "Error: %v\n", err)
	}
}

// shellBook resolves the <id> argument against the loaded collection
func (a *app) shellBook(fields []string) (books.Book, bool) {
	if len(fields) != 2 {
		fmt.Fprintf(a.out, "Usage: %s <id>\n", fields[0])
		return books.Book{}, false
	}
	id, err := parseID(fields[1])
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return books.Book{}, false
	}
	for _, b := range a.coord.State().Books {
		if b.ID == id {
			return b, true
		}
	}
	fmt.Fprintf(a.out, "Book #%d is not in the list. Try 'refresh'.\n", id)
	return books.Book{}, false
}

// shellForm prompts for every field until the form submits or the user cancels with "."
func (a *app) shellForm(ctx context.Context) {
	f := a.coord.Form()
	labels := map[books.Field]string{
		books.FieldTitle:         "Title",
		books.FieldAuthor:        "Author",
		books.FieldPublishedYear: "Published year",
	}
	if b, editing := f.Active(); editing {
		fmt.Fprintf(a.out, "Editing book #%d.", b.ID)
	} else {
		fmt.Fprint(a.out, "New book.")
	}
	fmt.Fprintln(a.out, " Press Enter to keep a value, '.' to cancel.")

	for {
		hints := formHints(f)
		for _, field := range books.Fields {
			fmt.Fprintf(a.out, "%s [%s]: ", labels[field], hints[field])
			if !a.in.Scan() {
				a.coord.Cancel()
				return
			}
			v := strings.TrimSpace(a.in.Text())
			if v == "." {
				a.coord.Cancel()
				fmt.Fprintln(a.out, "Cancelled.")
				return
			}
			if v == "" {
				continue
			}
			if err := f.SetField(field, v); err != nil {
				fmt.Fprintf(a.out, "Error: %v\n", err)
			}
		}

		err := a.coord.Submit(ctx)
		var verrs books.ValidationErrors
		if errors.As(err, &verrs) {
			for _, e := range verrs {
				fmt.Fprintf(a.out, "  %s\n", e.Error())
			}
			continue
		}
		if err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
		a.show()
		return
	}
}

// formHints returns the bracketed hint per field: its error if any, else its value.
// An absent year shows as empty.
func formHints(f *catalog.Form) map[books.Field]string {
	draft := f.Draft()
	hints := map[books.Field]string{
		books.FieldTitle:  draft.Title,
		books.FieldAuthor: draft.Author,
	}
	if draft.PublishedYear != 0 {
		hints[books.FieldPublishedYear] = fmt.Sprint(draft.PublishedYear)
	}
	for _, field := range books.Fields {
		if e, ok := f.FieldError(field); ok {
			hints[field] = e.Error()
		}
	}
	return hints
}
