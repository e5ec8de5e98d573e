package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Astemirdum/libman-service/internal/errs"
	"github.com/Astemirdum/libman-service/internal/model"
	repomocks "github.com/Astemirdum/libman-service/internal/repository/mocks"
	"github.com/Astemirdum/libman-service/pkg/auth"
)

func TestService_CreateBook(t *testing.T) {
	t.Parallel()

	authorID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()

	req := model.CreateBookRequest{
		BookName:        "Harry Potter",
		AuthorFirstName: "J.K.",
		AuthorLastName:  "Rowling",
		Genre:           "Fantasy",
		Year:            1997,
	}

	type mockBehavior func(r *repomocks.MockRepository)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		wantErr      bool
	}{
		{
			name: "existing author is reused",
			mockBehavior: func(r *repomocks.MockRepository) {
				r.EXPECT().GetAuthorByName(gomock.Any(), "J.K.", "Rowling").
					Return(model.Author{ID: authorID, FirstName: "J.K.", LastName: "Rowling"}, nil)
				r.EXPECT().CreateBook(gomock.Any(), model.Book{
					BookName: "Harry Potter",
					AuthorID: authorID,
					Genre:    "Fantasy",
					Year:     1997,
				}).Return(model.Book{ID: bookID, BookName: "Harry Potter", AuthorID: authorID}, nil)
				r.EXPECT().AppendAuthorBook(gomock.Any(), authorID, bookID).Return(nil)
			},
		},
		{
			name: "new author is created and linked",
			mockBehavior: func(r *repomocks.MockRepository) {
				r.EXPECT().GetAuthorByName(gomock.Any(), "J.K.", "Rowling").
					Return(model.Author{}, errs.ErrAuthorNotFound)
				r.EXPECT().CreateAuthor(gomock.Any(), model.Author{
					FirstName: "J.K.",
					LastName:  "Rowling",
					Books:     []primitive.ObjectID{},
				}).Return(model.Author{ID: authorID, FirstName: "J.K.", LastName: "Rowling"}, nil)
				r.EXPECT().CreateBook(gomock.Any(), gomock.Any()).
					Return(model.Book{ID: bookID, AuthorID: authorID}, nil)
				r.EXPECT().AppendAuthorBook(gomock.Any(), authorID, bookID).Return(nil)
			},
		},
		{
			name: "lost create race falls back to the winner",
			mockBehavior: func(r *repomocks.MockRepository) {
				r.EXPECT().GetAuthorByName(gomock.Any(), "J.K.", "Rowling").
					Return(model.Author{}, errs.ErrAuthorNotFound)
				r.EXPECT().CreateAuthor(gomock.Any(), gomock.Any()).
					Return(model.Author{}, errs.ErrAuthorExists)
				r.EXPECT().GetAuthorByName(gomock.Any(), "J.K.", "Rowling").
					Return(model.Author{ID: authorID}, nil)
				r.EXPECT().CreateBook(gomock.Any(), gomock.Any()).
					Return(model.Book{ID: bookID, AuthorID: authorID}, nil)
				r.EXPECT().AppendAuthorBook(gomock.Any(), authorID, bookID).Return(nil)
			},
		},
		{
			name: "author lookup fails",
			mockBehavior: func(r *repomocks.MockRepository) {
				r.EXPECT().GetAuthorByName(gomock.Any(), "J.K.", "Rowling").
					Return(model.Author{}, context.DeadlineExceeded)
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo := newTestService(t)
			tt.mockBehavior(repo)

			book, err := svc.CreateBook(context.Background(), req)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, bookID, book.ID)
			require.Equal(t, authorID, book.AuthorID)
		})
	}
}

// Sequential creations with the same author name must reuse the single
// author record rather than minting a duplicate.
func TestService_CreateBook_SequentialSameAuthor(t *testing.T) {
	t.Parallel()

	authorID := primitive.NewObjectID()
	svc, repo := newTestService(t)

	created := 0
	repo.EXPECT().GetAuthorByName(gomock.Any(), "J.K.", "Rowling").
		DoAndReturn(func(context.Context, string, string) (model.Author, error) {
			if created == 0 {
				return model.Author{}, errs.ErrAuthorNotFound
			}
			return model.Author{ID: authorID}, nil
		}).Times(2)
	repo.EXPECT().CreateAuthor(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, model.Author) (model.Author, error) {
			created++
			return model.Author{ID: authorID}, nil
		}).Times(1)
	repo.EXPECT().CreateBook(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, book model.Book) (model.Book, error) {
			book.ID = primitive.NewObjectID()
			return book, nil
		}).Times(2)
	repo.EXPECT().AppendAuthorBook(gomock.Any(), authorID, gomock.Any()).Return(nil).Times(2)

	req := model.CreateBookRequest{BookName: "Harry Potter", AuthorFirstName: "J.K.", AuthorLastName: "Rowling"}
	first, err := svc.CreateBook(context.Background(), req)
	require.NoError(t, err)

	req.BookName = "Harry Potter 2"
	second, err := svc.CreateBook(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, 1, created)
	require.Equal(t, first.AuthorID, second.AuthorID)
}

func TestService_SignupReader(t *testing.T) {
	t.Parallel()

	readerID := primitive.NewObjectID()
	svc, repo := newTestService(t)

	repo.EXPECT().CreateReader(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, reader model.Reader) (model.Reader, error) {
			require.NotEqual(t, "secret", reader.Password) // stored hashed
			require.True(t, auth.CheckPassword("secret", reader.Password))
			reader.ID = readerID
			return reader, nil
		})

	reader, token, err := svc.SignupReader(context.Background(), model.SignupRequest{
		FullName: "John Doe",
		Email:    "john@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	require.Equal(t, readerID, reader.ID)

	claims, err := auth.ParseToken(token, "test-secret")
	require.NoError(t, err)
	require.Equal(t, readerID.Hex(), claims.Subject)
	require.Equal(t, auth.RoleReader, claims.Role)
}

func TestService_LoginReader(t *testing.T) {
	t.Parallel()

	readerID := primitive.NewObjectID()
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)

	stored := model.Reader{ID: readerID, Email: "john@example.com", Password: hash}

	type mockBehavior func(r *repomocks.MockRepository)

	var tests = []struct {
		name         string
		password     string
		mockBehavior mockBehavior
		wantErr      error
	}{
		{
			name:     "ok",
			password: "secret",
			mockBehavior: func(r *repomocks.MockRepository) {
				r.EXPECT().GetReaderByEmail(gomock.Any(), "john@example.com").Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			password: "nope",
			mockBehavior: func(r *repomocks.MockRepository) {
				r.EXPECT().GetReaderByEmail(gomock.Any(), "john@example.com").Return(stored, nil)
			},
			wantErr: errs.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			password: "secret",
			mockBehavior: func(r *repomocks.MockRepository) {
				r.EXPECT().GetReaderByEmail(gomock.Any(), "john@example.com").
					Return(model.Reader{}, errs.ErrReaderNotFound)
			},
			wantErr: errs.ErrReaderNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo := newTestService(t)
			tt.mockBehavior(repo)

			reader, token, err := svc.LoginReader(context.Background(), model.LoginRequest{
				Email:    "john@example.com",
				Password: tt.password,
			})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, readerID, reader.ID)

			claims, err := auth.ParseToken(token, "test-secret")
			require.NoError(t, err)
			require.Equal(t, readerID.Hex(), claims.Subject)
		})
	}
}
