package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Astemirdum/libman-service/internal/errs"
	"github.com/Astemirdum/libman-service/internal/model"
	"github.com/Astemirdum/libman-service/pkg/auth"
)

// SignupReader registers a reader with a bcrypt-hashed credential and issues
// a bearer token for it.
func (s *Service) SignupReader(ctx context.Context, req model.SignupRequest) (model.Reader, string, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return model.Reader{}, "", err
	}

	reader, err := s.repo.CreateReader(ctx, model.Reader{
		FullName:      req.FullName,
		Email:         req.Email,
		Password:      hash,
		ContactNumber: req.ContactNumber,
		BorrowedBooks: []primitive.ObjectID{},
	})
	if err != nil {
		return model.Reader{}, "", err
	}

	token, err := auth.NewToken(s.auth, reader.ID.Hex(), auth.RoleReader)
	if err != nil {
		return model.Reader{}, "", err
	}
	return reader, token, nil
}

func (s *Service) LoginReader(ctx context.Context, req model.LoginRequest) (model.Reader, string, error) {
	reader, err := s.repo.GetReaderByEmail(ctx, req.Email)
	if err != nil {
		return model.Reader{}, "", err
	}

	if !auth.CheckPassword(req.Password, reader.Password) {
		return model.Reader{}, "", errs.ErrInvalidCredentials
	}

	token, err := auth.NewToken(s.auth, reader.ID.Hex(), auth.RoleReader)
	if err != nil {
		return model.Reader{}, "", err
	}
	return reader, token, nil
}
