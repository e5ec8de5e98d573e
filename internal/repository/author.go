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

func (r *repository) CreateAuthor(ctx context.Context, author model.Author) (model.Author, error) {
	now := time.Now().UTC()
	author.CreatedAt, author.UpdatedAt = now, now
	if author.Books == nil {
		author.Books = []primitive.ObjectID{}
	}

	res, err := r.authors.InsertOne(ctx, author)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.Author{}, errs.ErrAuthorExists
		}
		r.log.Error("CreateAuthor",
			zap.String("firstName", author.FirstName),
			zap.String("lastName", author.LastName),
			zap.Error(err))
		return model.Author{}, err
	}
	author.ID = res.InsertedID.(primitive.ObjectID)

	return author, nil
}

func (r *repository) GetAuthor(ctx context.Context, id primitive.ObjectID) (model.Author, error) {
	var author model.Author
	if err := r.authors.FindOne(ctx, bson.M{"_id": id}).Decode(&author); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Author{}, errs.ErrAuthorNotFound
		}
		return model.Author{}, err
	}
	return author, nil
}

func (r *repository) GetAuthorByName(ctx context.Context, firstName, lastName string) (model.Author, error) {
	var author model.Author
	err := r.authors.FindOne(ctx, bson.M{"firstName": firstName, "lastName": lastName}).Decode(&author)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Author{}, errs.ErrAuthorNotFound
		}
		return model.Author{}, err
	}
	return author, nil
}

func (r *repository) ListAuthors(ctx context.Context) ([]model.Author, error) {
	cur, err := r.authors.Find(ctx, bson.M{}, newestFirst())
	if err != nil {
		return nil, err
	}

	authors := make([]model.Author, 0)
	if err := cur.All(ctx, &authors); err != nil {
		return nil, err
	}
	return authors, nil
}

func (r *repository) UpdateAuthor(ctx context.Context, id primitive.ObjectID, upd model.UpdateAuthorRequest) (model.Author, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.FirstName != nil {
		set["firstName"] = *upd.FirstName
	}
	if upd.LastName != nil {
		set["lastName"] = *upd.LastName
	}

	var author model.Author
	err := r.authors.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&author)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Author{}, errs.ErrAuthorNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return model.Author{}, errs.ErrAuthorExists
		}
		return model.Author{}, err
	}
	return author, nil
}

// DeleteAuthor removes the author only; its books keep a dangling authorId.
func (r *repository) DeleteAuthor(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.authors.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errs.ErrAuthorNotFound
	}
	return nil
}

func (r *repository) AppendAuthorBook(ctx context.Context, authorID, bookID primitive.ObjectID) error {
	res, err := r.authors.UpdateByID(ctx, authorID, bson.M{
		"$push": bson.M{"books": bookID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrAuthorNotFound
	}
	return nil
}
