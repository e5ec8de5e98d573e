package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Astemirdum/libman-service/internal/errs"
	"github.com/Astemirdum/libman-service/internal/model"
)

func (h *Handler) CreateAuthor(c echo.Context) error {
	var req model.CreateAuthorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	author, err := h.authorSvc.CreateAuthor(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, errs.ErrAuthorExists) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, model.AuthorResponse{Message: "Author registered successfully", Author: author})
}

func (h *Handler) GetAuthors(c echo.Context) error {
	authors, err := h.authorSvc.ListAuthors(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, model.AuthorsResponse{Message: "Authors found", Authors: authors})
}

func (h *Handler) GetAuthor(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	author, err := h.authorSvc.GetAuthor(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrAuthorNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, model.AuthorResponse{Message: "Author found", Author: author})
}

func (h *Handler) UpdateAuthor(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var req model.UpdateAuthorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	author, err := h.authorSvc.UpdateAuthor(c.Request().Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrAuthorNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, errs.ErrAuthorExists):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, model.AuthorResponse{Message: "Author updated successfully", Author: author})
}

func (h *Handler) DeleteAuthor(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authorSvc.DeleteAuthor(c.Request().Context(), id); err != nil {
		if errors.Is(err, errs.ErrAuthorNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, model.MessageResponse{Message: "Author deleted successfully"})
}
