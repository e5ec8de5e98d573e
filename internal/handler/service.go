package handler

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Astemirdum/libman-service/internal/model"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go -package=mocks

type BookService interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	GetBook(ctx context.Context, id primitive.ObjectID) (model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	UpdateBook(ctx context.Context, id primitive.ObjectID, req model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id primitive.ObjectID) error
}

type AuthorService interface {
	CreateAuthor(ctx context.Context, req model.CreateAuthorRequest) (model.Author, error)
	GetAuthor(ctx context.Context, id primitive.ObjectID) (model.Author, error)
	ListAuthors(ctx context.Context) ([]model.Author, error)
	UpdateAuthor(ctx context.Context, id primitive.ObjectID, req model.UpdateAuthorRequest) (model.Author, error)
	DeleteAuthor(ctx context.Context, id primitive.ObjectID) error
}

type ReaderService interface {
	SignupReader(ctx context.Context, req model.SignupRequest) (model.Reader, string, error)
	LoginReader(ctx context.Context, req model.LoginRequest) (model.Reader, string, error)
	ListReaders(ctx context.Context) ([]model.Reader, error)
	BorrowBook(ctx context.Context, readerID, bookID primitive.ObjectID) error
	ReturnBook(ctx context.Context, readerID, bookID primitive.ObjectID) error
}
