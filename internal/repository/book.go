package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Astemirdum/libman-service/internal/errs"
	"github.com/Astemirdum/libman-service/internal/model"
)

func (r *repository) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	now := time.Now().UTC()
	book.CreatedAt, book.UpdatedAt = now, now

	res, err := r.books.InsertOne(ctx, book)
	if err != nil {
		r.log.Error("CreateBook", zap.String("bookName", book.BookName), zap.Error(err))
		return model.Book{}, err
	}
	book.ID = res.InsertedID.(primitive.ObjectID)

	return book, nil
}

func (r *repository) GetBook(ctx context.Context, id primitive.ObjectID) (model.Book, error) {
	var book model.Book
	if err := r.books.FindOne(ctx, bson.M{"_id": id}).Decode(&book); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Book{}, errs.ErrBookNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) ListBooks(ctx context.Context) ([]model.Book, error) {
	cur, err := r.books.Find(ctx, bson.M{}, newestFirst())
	if err != nil {
		return nil, err
	}

	books := make([]model.Book, 0)
	if err := cur.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *repository) UpdateBook(ctx context.Context, id primitive.ObjectID, upd model.UpdateBookRequest) (model.Book, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.BookName != nil {
		set["bookName"] = *upd.BookName
	}
	if upd.Genre != nil {
		set["genre"] = *upd.Genre
	}
	if upd.Year != nil {
		set["year"] = *upd.Year
	}

	var book model.Book
	err := r.books.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Book{}, errs.ErrBookNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) DeleteBook(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.books.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errs.ErrBookNotFound
	}
	return nil
}

func (r *repository) SetBookBorrowed(ctx context.Context, id primitive.ObjectID, borrowed bool) error {
	res, err := r.books.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"isBorrowed": borrowed, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrBookNotFound
	}
	return nil
}
