package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Astemirdum/libman-service/internal/model"
)

//go:generate mockgen -source=repository.go -destination=mocks/mock.go -package=mocks

type Repository interface {
	CreateBook(ctx context.Context, book model.Book) (model.Book, error)
	GetBook(ctx context.Context, id primitive.ObjectID) (model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	UpdateBook(ctx context.Context, id primitive.ObjectID, upd model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id primitive.ObjectID) error
	SetBookBorrowed(ctx context.Context, id primitive.ObjectID, borrowed bool) error

	CreateAuthor(ctx context.Context, author model.Author) (model.Author, error)
	GetAuthor(ctx context.Context, id primitive.ObjectID) (model.Author, error)
	GetAuthorByName(ctx context.Context, firstName, lastName string) (model.Author, error)
	ListAuthors(ctx context.Context) ([]model.Author, error)
	UpdateAuthor(ctx context.Context, id primitive.ObjectID, upd model.UpdateAuthorRequest) (model.Author, error)
	DeleteAuthor(ctx context.Context, id primitive.ObjectID) error
	AppendAuthorBook(ctx context.Context, authorID, bookID primitive.ObjectID) error

	CreateReader(ctx context.Context, reader model.Reader) (model.Reader, error)
	GetReader(ctx context.Context, id primitive.ObjectID) (model.Reader, error)
	GetReaderByEmail(ctx context.Context, email string) (model.Reader, error)
	ListReaders(ctx context.Context) ([]model.Reader, error)
	AddBorrowedBook(ctx context.Context, readerID, bookID primitive.ObjectID) error
	RemoveBorrowedBook(ctx context.Context, readerID, bookID primitive.ObjectID) error
}

const (
	booksCollection   = `books`
	authorsCollection = `authors`
	readersCollection = `readers`
)

type repository struct {
	books   *mongo.Collection
	authors *mongo.Collection
	readers *mongo.Collection
	log     *zap.Logger
}

func NewRepository(db *mongo.Database, log *zap.Logger) (*repository, error) {
	r := &repository{
		books:   db.Collection(booksCollection),
		authors: db.Collection(authorsCollection),
		readers: db.Collection(readersCollection),
		log:     log.Named("repo"),
	}
	if err := r.createIndexes(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

// createIndexes pushes the natural-key uniqueness of authors and the email
// uniqueness of readers down to the store, so concurrent find-or-create
// calls cannot leave duplicates behind.
func (r *repository) createIndexes(ctx context.Context) error {
	_, err := r.authors.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "firstName", Value: 1}, {Key: "lastName", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = r.readers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}
