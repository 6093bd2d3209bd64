package catalog

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/erauner12/bookcatalog/internal/books"
)

// Row is one display row of the book list
type Row struct {
	books.Book
}

// ListView is the projection of a collection
type ListView struct {
	Rows    []Row
	Count   int
	Summary string
	Empty   bool
}

// Presenter projects a collection into rows and routes per-row intents upward.
// It holds no state of its own.
type Presenter struct {
	onEdit   func(books.Book)
	onDelete func(ctx context.Context, id int64) error
}

// NewPresenter wires the edit and delete intents
func NewPresenter(onEdit func(books.Book), onDelete func(ctx context.Context, id int64) error) *Presenter {
	return &Presenter{onEdit: onEdit, onDelete: onDelete}
}

// Present builds the view for list
func (p *Presenter) Present(list []books.Book) ListView {
	rows := make([]Row, 0, len(list))
	for _, b := range list {
		rows = append(rows, Row{Book: b})
	}
	return ListView{
		Rows:    rows,
		Count:   len(rows),
		Summary: summary(len(rows)),
		Empty:   len(rows) == 0,
	}
}

// Edit passes the full record of r upward
func (p *Presenter) Edit(r Row) {
	if p.onEdit != nil {
		p.onEdit(r.Book)
	}
}

// Delete passes only the identifier of r upward
func (p *Presenter) Delete(ctx context.Context, r Row) error {
	if p.onDelete == nil {
		return nil
	}
	return p.onDelete(ctx, r.ID)
}

func summary(n int) string {
	if n == 1 {
		return "1 book"
	}
	return fmt.Sprintf("%d books", n)
}

// Render writes v as an aligned text table
func Render(w io.Writer, v ListView) error {
	if v.Empty {
		_, err := fmt.Fprintln(w, "No books available. Add your first book with `add`.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Book List (%s)\n", v.Summary)
	fmt.Fprintln(tw, "ID\tTitle\tAuthor\tPublished Year")
	for _, r := range v.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", r.ID, r.Title, r.Author, r.PublishedYear)
	}
	return tw.Flush()
}
