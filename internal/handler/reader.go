package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Astemirdum/libman-service/internal/errs"
	"github.com/Astemirdum/libman-service/internal/model"
	"github.com/Astemirdum/libman-service/pkg/auth"
)

func (h *Handler) Signup(c echo.Context) error {
	var req model.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reader, token, err := h.readerSvc.SignupReader(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, errs.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, model.AuthResponse{
		Message:     "Reader registered successfully",
		Reader:      reader,
		AccessToken: token,
	})
}

func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reader, token, err := h.readerSvc.LoginReader(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrReaderNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, errs.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, model.AuthResponse{
		Message:     "Login successful",
		Reader:      reader,
		AccessToken: token,
	})
}

func (h *Handler) GetReaders(c echo.Context) error {
	readers, err := h.readerSvc.ListReaders(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, model.ReadersResponse{Message: "Readers found", Readers: readers})
}

func (h *Handler) BorrowBook(c echo.Context) error {
	readerID, bookID, err := h.authorizeReader(c)
	if err != nil {
		return err
	}

	if err := h.readerSvc.BorrowBook(c.Request().Context(), readerID, bookID); err != nil {
		switch {
		case errors.Is(err, errs.ErrReaderNotFound), errors.Is(err, errs.ErrBookNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, errs.ErrBookBorrowed):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, model.MessageResponse{Message: "Book borrowed successfully"})
}

func (h *Handler) ReturnBook(c echo.Context) error {
	readerID, bookID, err := h.authorizeReader(c)
	if err != nil {
		return err
	}

	if err := h.readerSvc.ReturnBook(c.Request().Context(), readerID, bookID); err != nil {
		switch {
		case errors.Is(err, errs.ErrReaderNotFound), errors.Is(err, errs.ErrBookNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, errs.ErrBookNotBorrowed), errors.Is(err, errs.ErrNotBorrower):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, model.MessageResponse{Message: "Book returned successfully"})
}

// authorizeReader parses the path ids and checks the token claims against
// the path readerId: a valid token for another reader (or another role) is a
// 403, not a 401.
func (h *Handler) authorizeReader(c echo.Context) (readerID, bookID primitive.ObjectID, err error) {
	readerID, err = parseID(c.Param("readerId"))
	if err != nil {
		return readerID, bookID, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	bookID, err = parseID(c.Param("bookId"))
	if err != nil {
		return readerID, bookID, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claims, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return readerID, bookID, echo.NewHTTPError(http.StatusUnauthorized, "No Authorization Header")
	}
	if claims.Role != auth.RoleReader {
		return readerID, bookID, echo.NewHTTPError(http.StatusForbidden, "role is not allowed to borrow")
	}
	if claims.Subject != readerID.Hex() {
		return readerID, bookID, echo.NewHTTPError(http.StatusForbidden, "token does not belong to this reader")
	}
	return readerID, bookID, nil
}
