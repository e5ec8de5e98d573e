package service

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Astemirdum/libman-service/internal/errs"
	"github.com/Astemirdum/libman-service/internal/model"
	"github.com/Astemirdum/libman-service/internal/repository"
	"github.com/Astemirdum/libman-service/pkg/auth"
)

type Service struct {
	log  *zap.Logger
	repo repository.Repository
	auth auth.Config
}

func NewService(repo repository.Repository, authCfg auth.Config, log *zap.Logger) *Service {
	return &Service{
		log:  log,
		repo: repo,
		auth: authCfg,
	}
}

// CreateBook registers a book, finding or creating its author by
// (firstName,lastName) and linking the new book into the author's list. A
// concurrent create that loses the race on the unique author index falls
// back to re-fetching the winner.
func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	author, err := s.repo.GetAuthorByName(ctx, req.AuthorFirstName, req.AuthorLastName)
	if err != nil {
		if !errors.Is(err, errs.ErrAuthorNotFound) {
			return model.Book{}, err
		}
		author, err = s.repo.CreateAuthor(ctx, model.Author{
			FirstName: req.AuthorFirstName,
			LastName:  req.AuthorLastName,
			Books:     []primitive.ObjectID{},
		})
		if errors.Is(err, errs.ErrAuthorExists) {
			author, err = s.repo.GetAuthorByName(ctx, req.AuthorFirstName, req.AuthorLastName)
		}
		if err != nil {
			return model.Book{}, err
		}
	}

	book, err := s.repo.CreateBook(ctx, model.Book{
		BookName: req.BookName,
		AuthorID: author.ID,
		Genre:    req.Genre,
		Year:     req.Year,
	})
	if err != nil {
		return model.Book{}, err
	}

	if err := s.repo.AppendAuthorBook(ctx, author.ID, book.ID); err != nil {
		return model.Book{}, err
	}
	return book, nil
}

func (s *Service) GetBook(ctx context.Context, id primitive.ObjectID) (model.Book, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *Service) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.repo.ListBooks(ctx)
}

func (s *Service) UpdateBook(ctx context.Context, id primitive.ObjectID, req model.UpdateBookRequest) (model.Book, error) {
	return s.repo.UpdateBook(ctx, id, req)
}

func (s *Service) DeleteBook(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.DeleteBook(ctx, id)
}

func (s *Service) CreateAuthor(ctx context.Context, req model.CreateAuthorRequest) (model.Author, error) {
	return s.repo.CreateAuthor(ctx, model.Author{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Books:     []primitive.ObjectID{},
	})
}

func (s *Service) GetAuthor(ctx context.Context, id primitive.ObjectID) (model.Author, error) {
	return s.repo.GetAuthor(ctx, id)
}

func (s *Service) ListAuthors(ctx context.Context) ([]model.Author, error) {
	return s.repo.ListAuthors(ctx)
}

func (s *Service) UpdateAuthor(ctx context.Context, id primitive.ObjectID, req model.UpdateAuthorRequest) (model.Author, error) {
	return s.repo.UpdateAuthor(ctx, id, req)
}

func (s *Service) DeleteAuthor(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.DeleteAuthor(ctx, id)
}

func (s *Service) ListReaders(ctx context.Context) ([]model.Reader, error) {
	return s.repo.ListReaders(ctx)
}
