package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Astemirdum/libman-service/internal/errs"
	service_mocks "github.com/Astemirdum/libman-service/internal/handler/mocks"
	"github.com/Astemirdum/libman-service/internal/model"
	"github.com/Astemirdum/libman-service/pkg/auth"
	md "github.com/Astemirdum/libman-service/pkg/middleware"
)

func TestHandler_Signup(t *testing.T) {
	t.Parallel()

	readerID := "650000000000000000000003"

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(s *service_mocks.MockReaderService)

	var tests = []struct {
		name         string
		inputBody    string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:      "ok",
			inputBody: `{"fullName":"John Doe","email":"john@example.com","password":"secret1"}`,
			mockBehavior: func(s *service_mocks.MockReaderService) {
				s.EXPECT().
					SignupReader(context.Background(), model.SignupRequest{
						FullName: "John Doe",
						Email:    "john@example.com",
						Password: "secret1",
					}).
					Return(model.Reader{
						ID:            mustID(t, readerID),
						FullName:      "John Doe",
						Email:         "john@example.com",
						BorrowedBooks: []primitive.ObjectID{},
					}, "token123", nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: fmt.Sprintf(`{"message":"Reader registered successfully","reader":{"id":"%s","fullName":"John Doe","email":"john@example.com","borrowedBooks":[],"createdAt":"0001-01-01T00:00:00Z","updatedAt":"0001-01-01T00:00:00Z"},"accessToken":"token123"}`, readerID),
			},
		},
		{
			name:         "err. password too short",
			inputBody:    `{"fullName":"John Doe","email":"john@example.com","password":"abc"}`,
			mockBehavior: func(s *service_mocks.MockReaderService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Key: 'SignupRequest.Password' Error:Field validation for 'Password' failed on the 'min' tag"}`,
			},
		},
		{
			name:      "err. email taken",
			inputBody: `{"fullName":"John Doe","email":"john@example.com","password":"secret1"}`,
			mockBehavior: func(s *service_mocks.MockReaderService) {
				s.EXPECT().
					SignupReader(context.Background(), gomock.Any()).
					Return(model.Reader{}, "", errs.ErrEmailTaken)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"email is already registered"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, h, _, _, readers := newTestEcho(t)
			e.POST("/api/v1/readers/signup", h.Signup)
			tt.mockBehavior(readers)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/readers/signup", strings.NewReader(tt.inputBody))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_Login(t *testing.T) {
	t.Parallel()

	readerID := "650000000000000000000003"

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(s *service_mocks.MockReaderService)

	var tests = []struct {
		name         string
		inputBody    string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:      "ok",
			inputBody: `{"email":"john@example.com","password":"secret1"}`,
			mockBehavior: func(s *service_mocks.MockReaderService) {
				s.EXPECT().
					LoginReader(context.Background(), model.LoginRequest{
						Email:    "john@example.com",
						Password: "secret1",
					}).
					Return(model.Reader{
						ID:            mustID(t, readerID),
						FullName:      "John Doe",
						Email:         "john@example.com",
						BorrowedBooks: []primitive.ObjectID{},
					}, "token123", nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: fmt.Sprintf(`{"message":"Login successful","reader":{"id":"%s","fullName":"John Doe","email":"john@example.com","borrowedBooks":[],"createdAt":"0001-01-01T00:00:00Z","updatedAt":"0001-01-01T00:00:00Z"},"accessToken":"token123"}`, readerID),
			},
		},
		{
			name:      "err. unknown email",
			inputBody: `{"email":"john@example.com","password":"secret1"}`,
			mockBehavior: func(s *service_mocks.MockReaderService) {
				s.EXPECT().
					LoginReader(context.Background(), gomock.Any()).
					Return(model.Reader{}, "", errs.ErrReaderNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"reader not found"}`,
			},
		},
		{
			name:      "err. wrong password",
			inputBody: `{"email":"john@example.com","password":"secret1"}`,
			mockBehavior: func(s *service_mocks.MockReaderService) {
				s.EXPECT().
					LoginReader(context.Background(), gomock.Any()).
					Return(model.Reader{}, "", errs.ErrInvalidCredentials)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"invalid credentials"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, h, _, _, readers := newTestEcho(t)
			e.POST("/api/v1/readers/login", h.Login)
			tt.mockBehavior(readers)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/readers/login", strings.NewReader(tt.inputBody))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func readerToken(t *testing.T, subject, role string) string {
	t.Helper()
	token, err := auth.NewToken(auth.Config{Secret: "test-secret", TTL: time.Hour}, subject, role)
	require.NoError(t, err)
	return token
}

func TestHandler_BorrowBook(t *testing.T) {
	t.Parallel()

	readerID := "650000000000000000000003"
	otherID := "650000000000000000000004"
	bookID := "650000000000000000000001"

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(s *service_mocks.MockReaderService)

	var tests = []struct {
		name         string
		authHeader   string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:       "ok",
			authHeader: "Bearer " + readerToken(t, readerID, auth.RoleReader),
			mockBehavior: func(s *service_mocks.MockReaderService) {
				s.EXPECT().
					BorrowBook(gomock.Any(), mustID(t, readerID), mustID(t, bookID)).
					Return(nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"message":"Book borrowed successfully"}`,
			},
		},
		{
			name:         "err. no token",
			authHeader:   "",
			mockBehavior: func(s *service_mocks.MockReaderService) {},
			response: response{
				expectedCode: http.StatusUnauthorized,
				expectedBody: `{"message":"No Authorization Header"}`,
			},
		},
		{
			name:         "err. garbage token",
			authHeader:   "Bearer not.a.jwt",
			mockBehavior: func(s *service_mocks.MockReaderService) {},
			response: response{
				expectedCode: http.StatusUnauthorized,
				expectedBody: `{"message":"JwtAccessDenied"}`,
			},
		},
		{
			name:         "err. token for another reader",
			authHeader:   "Bearer " + readerToken(t, otherID, auth.RoleReader),
			mockBehavior: func(s *service_mocks.MockReaderService) {},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"token does not belong to this reader"}`,
			},
		},
		{
			name:         "err. wrong role",
			authHeader:   "Bearer " + readerToken(t, readerID, "admin"),
			mockBehavior: func(s *service_mocks.MockReaderService) {},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"role is not allowed to borrow"}`,
			},
		},
		{
			name:       "err. already borrowed",
			authHeader: "Bearer " + readerToken(t, readerID, auth.RoleReader),
			mockBehavior: func(s *service_mocks.MockReaderService) {
				s.EXPECT().
					BorrowBook(gomock.Any(), mustID(t, readerID), mustID(t, bookID)).
					Return(errs.ErrBookBorrowed)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"book is already borrowed"}`,
			},
		},
		{
			name:       "err. book not found",
			authHeader: "Bearer " + readerToken(t, readerID, auth.RoleReader),
			mockBehavior: func(s *service_mocks.MockReaderService) {
				s.EXPECT().
					BorrowBook(gomock.Any(), mustID(t, readerID), mustID(t, bookID)).
					Return(errs.ErrBookNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"book is not registered in library"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, h, _, _, readers := newTestEcho(t)
			e.POST("/api/v1/readers/:readerId/borrow/:bookId", h.BorrowBook, md.JwtAuthentication("test-secret"))
			tt.mockBehavior(readers)

			r := httptest.NewRequest(http.MethodPost,
				fmt.Sprintf("/api/v1/readers/%s/borrow/%s", readerID, bookID), http.NoBody)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_ReturnBook(t *testing.T) {
	t.Parallel()

	readerID := "650000000000000000000003"
	bookID := "650000000000000000000001"

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(s *service_mocks.MockReaderService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			mockBehavior: func(s *service_mocks.MockReaderService) {
				s.EXPECT().
					ReturnBook(gomock.Any(), mustID(t, readerID), mustID(t, bookID)).
					Return(nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"message":"Book returned successfully"}`,
			},
		},
		{
			name: "err. not currently borrowed",
			mockBehavior: func(s *service_mocks.MockReaderService) {
				s.EXPECT().
					ReturnBook(gomock.Any(), mustID(t, readerID), mustID(t, bookID)).
					Return(errs.ErrBookNotBorrowed)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"book is not currently borrowed"}`,
			},
		},
		{
			name: "err. borrowed by someone else",
			mockBehavior: func(s *service_mocks.MockReaderService) {
				s.EXPECT().
					ReturnBook(gomock.Any(), mustID(t, readerID), mustID(t, bookID)).
					Return(errs.ErrNotBorrower)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"reader did not borrow this book"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, h, _, _, readers := newTestEcho(t)
			e.PATCH("/api/v1/readers/:readerId/return/:bookId", h.ReturnBook, md.JwtAuthentication("test-secret"))
			tt.mockBehavior(readers)

			r := httptest.NewRequest(http.MethodPatch,
				fmt.Sprintf("/api/v1/readers/%s/return/%s", readerID, bookID), http.NoBody)
			r.Header.Set("Authorization", "Bearer "+readerToken(t, readerID, auth.RoleReader))
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}
