package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Astemirdum/libman-service/internal/errs"
	"github.com/Astemirdum/libman-service/internal/model"
)

func (r *repository) CreateReader(ctx context.Context, reader model.Reader) (model.Reader, error) {
	now := time.Now().UTC()
	reader.CreatedAt, reader.UpdatedAt = now, now
	if reader.BorrowedBooks == nil {
		reader.BorrowedBooks = []primitive.ObjectID{}
	}

	res, err := r.readers.InsertOne(ctx, reader)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.Reader{}, errs.ErrEmailTaken
		}
		r.log.Error("CreateReader", zap.String("email", reader.Email), zap.Error(err))
		return model.Reader{}, err
	}
	reader.ID = res.InsertedID.(primitive.ObjectID)

	return reader, nil
}

func (r *repository) GetReader(ctx context.Context, id primitive.ObjectID) (model.Reader, error) {
	var reader model.Reader
	if err := r.readers.FindOne(ctx, bson.M{"_id": id}).Decode(&reader); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Reader{}, errs.ErrReaderNotFound
		}
		return model.Reader{}, err
	}
	return reader, nil
}

func (r *repository) GetReaderByEmail(ctx context.Context, email string) (model.Reader, error) {
	var reader model.Reader
	if err := r.readers.FindOne(ctx, bson.M{"email": email}).Decode(&reader); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Reader{}, errs.ErrReaderNotFound
		}
		return model.Reader{}, err
	}
	return reader, nil
}

func (r *repository) ListReaders(ctx context.Context) ([]model.Reader, error) {
	cur, err := r.readers.Find(ctx, bson.M{}, newestFirst())
	if err != nil {
		return nil, err
	}

	readers := make([]model.Reader, 0)
	if err := cur.All(ctx, &readers); err != nil {
		return nil, err
	}
	return readers, nil
}

func (r *repository) AddBorrowedBook(ctx context.Context, readerID, bookID primitive.ObjectID) error {
	res, err := r.readers.UpdateByID(ctx, readerID, bson.M{
		"$push": bson.M{"borrowedBooks": bookID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrReaderNotFound
	}
	return nil
}

func (r *repository) RemoveBorrowedBook(ctx context.Context, readerID, bookID primitive.ObjectID) error {
	res, err := r.readers.UpdateByID(ctx, readerID, bson.M{
		"$pull": bson.M{"borrowedBooks": bookID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrReaderNotFound
	}
	return nil
}
