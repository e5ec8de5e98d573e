package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Astemirdum/libman-service/internal/errs"
	md "github.com/Astemirdum/libman-service/pkg/middleware"
	"github.com/Astemirdum/libman-service/pkg/validate"
	_ "github.com/Astemirdum/libman-service/swagger"
)

type Handler struct {
	bookSvc   BookService
	authorSvc AuthorService
	readerSvc ReaderService
	jwtSecret string
	log       *zap.Logger
}

func New(books BookService, authors AuthorService, readers ReaderService, jwtSecret string, log *zap.Logger) *Handler {
	return &Handler{
		bookSvc:   books,
		authorSvc: authors,
		readerSvc: readers,
		jwtSecret: jwtSecret,
		log:       log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/books", h.CreateBook)
	api.GET("/books", h.GetBooks)
	api.GET("/books/:id", h.GetBook)
	api.PUT("/books/:id", h.UpdateBook)
	api.DELETE("/books/:id", h.DeleteBook)

	api.POST("/authors", h.CreateAuthor)
	api.GET("/authors", h.GetAuthors)
	api.GET("/authors/:id", h.GetAuthor)
	api.PUT("/authors/:id", h.UpdateAuthor)
	api.DELETE("/authors/:id", h.DeleteAuthor)

	api.POST("/readers/signup", h.Signup)
	api.POST("/readers/login", h.Login)
	api.GET("/readers", h.GetReaders)

	borrow := api.Group("", md.JwtAuthentication(h.jwtSecret))
	borrow.POST("/readers/:readerId/borrow/:bookId", h.BorrowBook)
	borrow.PATCH("/readers/:readerId/borrow/:bookId", h.BorrowBook)
	borrow.PATCH("/readers/:readerId/return/:bookId", h.ReturnBook)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func parseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, errs.ErrInvalidID
	}
	return id, nil
}
