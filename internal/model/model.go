package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book.IsBorrowed must stay in sync with the owning reader's BorrowedBooks
// list; both sides are maintained by the borrow/return service, not by the
// store.
type Book struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BookName   string             `json:"bookName" bson:"bookName"`
	AuthorID   primitive.ObjectID `json:"authorId" bson:"authorId"`
	Genre      string             `json:"genre,omitempty" bson:"genre,omitempty"`
	Year       int                `json:"year,omitempty" bson:"year,omitempty"`
	IsBorrowed bool               `json:"isBorrowed" bson:"isBorrowed"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type Author struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	FirstName string               `json:"firstName" bson:"firstName"`
	LastName  string               `json:"lastName" bson:"lastName"`
	Books     []primitive.ObjectID `json:"books" bson:"books"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updatedAt"`
}

type Reader struct {
	ID            primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	FullName      string               `json:"fullName" bson:"fullName"`
	Email         string               `json:"email" bson:"email"`
	Password      string               `json:"-" bson:"password"`
	ContactNumber string               `json:"contactNumber,omitempty" bson:"contactNumber,omitempty"`
	BorrowedBooks []primitive.ObjectID `json:"borrowedBooks" bson:"borrowedBooks"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}

type CreateBookRequest struct {
	BookName        string `json:"bookName" validate:"required"`
	AuthorFirstName string `json:"authorFirstName" validate:"required"`
	AuthorLastName  string `json:"authorLastName" validate:"required"`
	Genre           string `json:"genre"`
	Year            int    `json:"year"`
}

type UpdateBookRequest struct {
	BookName *string `json:"bookName"`
	Genre    *string `json:"genre"`
	Year     *int    `json:"year"`
}

type CreateAuthorRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type UpdateAuthorRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

type SignupRequest struct {
	FullName      string `json:"fullName" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	ContactNumber string `json:"contactNumber"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Every response body carries a human-readable message; success bodies also
// carry the resource(s).

type MessageResponse struct {
	Message string `json:"message"`
}

type BookResponse struct {
	Message string `json:"message"`
	Book    Book   `json:"book"`
}

type BooksResponse struct {
	Message string `json:"message"`
	Books   []Book `json:"books"`
}

type AuthorResponse struct {
	Message string `json:"message"`
	Author  Author `json:"author"`
}

type AuthorsResponse struct {
	Message string   `json:"message"`
	Authors []Author `json:"authors"`
}

type ReadersResponse struct {
	Message string   `json:"message"`
	Readers []Reader `json:"readers"`
}

type AuthResponse struct {
	Message     string `json:"message"`
	Reader      Reader `json:"reader"`
	AccessToken string `json:"accessToken"`
}
