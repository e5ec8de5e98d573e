package errs

import (
	"errors"
)

var (
	ErrBookNotFound   = errors.New("book is not registered in library")
	ErrAuthorNotFound = errors.New("author not found")
	ErrReaderNotFound = errors.New("reader not found")

	ErrBookBorrowed    = errors.New("book is already borrowed")
	ErrBookNotBorrowed = errors.New("book is not currently borrowed")
	ErrNotBorrower     = errors.New("reader did not borrow this book")

	ErrAuthorExists = errors.New("author already registered")
	ErrEmailTaken   = errors.New("email is already registered")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidID          = errors.New("invalid id")
)
