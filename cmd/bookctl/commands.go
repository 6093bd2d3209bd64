package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/erauner12/bookcatalog/internal/books"
	"github.com/erauner12/bookcatalog/internal/catalog"
	"github.com/spf13/cobra"
)

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.coord.Start(cmd.Context()); err != nil {
				return a.fail(err)
			}
			if err := a.banner(); err != nil {
				return err
			}
			return catalog.Render(a.out, a.coord.View())
		},
	}
}

// bookFlags are the field flags shared by add and update
type bookFlags struct {
	title  string
	author string
	year   string
}

func (b *bookFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&b.title, "title", "", "Book title")
	cmd.Flags().StringVar(&b.author, "author", "", "Book author")
	cmd.Flags().StringVar(&b.year, "year", "", "Published year")
}

// apply copies the flags that were set on cmd into the form
func (b *bookFlags) apply(cmd *cobra.Command, f *catalog.Form) error {
	set := map[string]struct {
		field books.Field
		value string
	}{
		"title":  {books.FieldTitle, b.title},
		"author": {books.FieldAuthor, b.author},
		"year":   {books.FieldPublishedYear, b.year},
	}
	for name, s := range set {
		if !cmd.Flags().Changed(name) {
			continue
		}
		if err := f.SetField(s.field, s.value); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) addCommand() *cobra.Command {
	var bf bookFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := bf.apply(cmd, a.coord.Form()); err != nil {
				return a.fail(err)
			}
			return a.submit(cmd, "Book added.")
		},
	}
	bf.register(cmd)
	return cmd
}

func (a *app) updateCommand() *cobra.Command {
	var bf bookFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an existing book; unset fields keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return a.fail(err)
			}

			b, err := a.find(cmd, id)
			if err != nil {
				return err
			}
			a.coord.Edit(b)

			if err := bf.apply(cmd, a.coord.Form()); err != nil {
				return a.fail(err)
			}
			return a.submit(cmd, "Book updated.")
		},
	}
	bf.register(cmd)
	return cmd
}

func (a *app) deleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a book after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return a.fail(err)
			}

			// Load titles so the prompt can name the book
			if err := a.coord.Start(cmd.Context()); err != nil {
				return a.fail(err)
			}
			a.coord.Dismiss()

			err = a.coord.Delete(cmd.Context(), id)
			if errors.Is(err, catalog.ErrDeclined) {
				fmt.Fprintln(a.out, "Delete cancelled.")
				return nil
			}
			if err != nil {
				return a.fail(err)
			}
			if err := a.banner(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Book deleted.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&a.flags.yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// find loads the collection and returns the book with id
func (a *app) find(cmd *cobra.Command, id int64) (books.Book, error) {
	if err := a.coord.Start(cmd.Context()); err != nil {
		return books.Book{}, a.fail(err)
	}
	if err := a.banner(); err != nil {
		return books.Book{}, err
	}
	for _, b := range a.coord.State().Books {
		if b.ID == id {
			return b, nil
		}
	}
	return books.Book{}, a.fail(fmt.Errorf("book #%d not found", id))
}

// submit sends the form and reports validation errors per field
func (a *app) submit(cmd *cobra.Command, done string) error {
	err := a.coord.Submit(cmd.Context())

	var verrs books.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			fmt.Fprintf(a.errOut, "  %s: %s\n", e.Field, e.Error())
		}
		return a.fail(errors.New("invalid book"))
	}
	if err != nil {
		return a.fail(err)
	}
	if err := a.banner(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, done)
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid book id %q", s)
	}
	return id, nil
}
