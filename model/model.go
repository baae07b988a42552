// Package model defines the catalog entities persisted by the repositories.
package model

import "fmt"

// Entity is implemented by every persisted type. The identifier is
// externally assigned, unique within its collection and immutable.
type Entity interface {
	EntityID() string
}

// Author is a catalog author. Equality is structural.
type Author struct {
	ID   string `bson:"_id"`
	Name string `bson:"name"`
}

func (a Author) EntityID() string { return a.ID }

func (a Author) String() string {
	return fmt.Sprintf("Author{id=%q, name=%q}", a.ID, a.Name)
}

// Book is a catalog book. AuthorID is a foreign key to Author.ID;
// the service layer keeps it valid, the storage layer does not.
type Book struct {
	ID        string `bson:"_id"`
	Title     string `bson:"title"`
	PageCount int    `bson:"pageCount"`
	AuthorID  string `bson:"authorId"`
}

func (b Book) EntityID() string { return b.ID }

func (b Book) String() string {
	return fmt.Sprintf("Book{id=%q, title=%q, pageCount=%d, authorId=%q}", b.ID, b.Title, b.PageCount, b.AuthorID)
}
