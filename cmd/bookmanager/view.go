package main

import (
	"fmt"
	"io"

	"github.com/n3d1117/book-manager/model"
)

// consoleView renders every controller outcome as one line on w.
type consoleView struct {
	w io.Writer
}

func (v *consoleView) ShowAllAuthors(authors []model.Author) {
	if len(authors) == 0 {
		fmt.Fprintln(v.w, "no authors")
		return
	}
	for _, a := range authors {
		fmt.Fprintf(v.w, "%s  %s\n", a.ID, a.Name)
	}
}

func (v *consoleView) ShowAllBooks(books []model.Book) {
	if len(books) == 0 {
		fmt.Fprintln(v.w, "no books")
		return
	}
	for _, b := range books {
		fmt.Fprintf(v.w, "%s  %q (%d pages, author %s)\n", b.ID, b.Title, b.PageCount, b.AuthorID)
	}
}

func (v *consoleView) AuthorAdded(a model.Author) {
	fmt.Fprintf(v.w, "added author %s (%s)\n", a.Name, a.ID)
}

func (v *consoleView) AuthorDeleted(a model.Author) {
	fmt.Fprintf(v.w, "deleted author %s\n", a.ID)
}

func (v *consoleView) BookAdded(b model.Book) {
	fmt.Fprintf(v.w, "added book %q (%s)\n", b.Title, b.ID)
}

func (v *consoleView) BookDeleted(b model.Book) {
	fmt.Fprintf(v.w, "deleted book %s\n", b.ID)
}

func (v *consoleView) DeletedAllBooksForAuthor(a model.Author) {
	fmt.Fprintf(v.w, "deleted all books of author %s\n", a.ID)
}

func (v *consoleView) AuthorNotAddedBecauseAlreadyExists(existing model.Author) {
	fmt.Fprintf(v.w, "author not added: id %s already belongs to %s\n", existing.ID, existing.Name)
}

func (v *consoleView) AuthorNotDeletedBecauseNotFound(a model.Author) {
	fmt.Fprintf(v.w, "author not deleted: no author with id %s\n", a.ID)
}

func (v *consoleView) BookNotAddedBecauseAlreadyExists(existing model.Book) {
	fmt.Fprintf(v.w, "book not added: id %s already belongs to %q\n", existing.ID, existing.Title)
}

func (v *consoleView) BookNotAddedBecauseAuthorNotFound(b model.Book) {
	fmt.Fprintf(v.w, "book not added: no author with id %s\n", b.AuthorID)
}

func (v *consoleView) BookNotDeletedBecauseNotFound(b model.Book) {
	fmt.Fprintf(v.w, "book not deleted: no book with id %s\n", b.ID)
}
