package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Astemirdum/libman-service/internal/errs"
)

// BorrowBook flips the book's borrowed flag and then records the book on the
// reader. The two documents are persisted independently: a failure between
// the writes leaves the flag set without a matching list entry. That gap is
// accepted and surfaced in the log.
func (s *Service) BorrowBook(ctx context.Context, readerID, bookID primitive.ObjectID) error {
	reader, err := s.repo.GetReader(ctx, readerID)
	if err != nil {
		return err
	}
	book, err := s.repo.GetBook(ctx, bookID)
	if err != nil {
		return err
	}
	if book.IsBorrowed {
		return errs.ErrBookBorrowed
	}

	if err := s.repo.SetBookBorrowed(ctx, bookID, true); err != nil {
		return err
	}
	if err := s.repo.AddBorrowedBook(ctx, reader.ID, bookID); err != nil {
		s.log.Warn("borrow: book flagged but reader list not updated",
			zap.String("readerId", readerID.Hex()),
			zap.String("bookId", bookID.Hex()),
			zap.Error(err))
		return err
	}
	return nil
}

// ReturnBook is the inverse transition. The reader's list is pruned before
// the flag is reset, mirroring the borrow ordering. The reader must actually
// hold the book; a book borrowed by someone else stays borrowed.
func (s *Service) ReturnBook(ctx context.Context, readerID, bookID primitive.ObjectID) error {
	reader, err := s.repo.GetReader(ctx, readerID)
	if err != nil {
		return err
	}
	book, err := s.repo.GetBook(ctx, bookID)
	if err != nil {
		return err
	}
	if !book.IsBorrowed {
		return errs.ErrBookNotBorrowed
	}
	if !containsID(reader.BorrowedBooks, bookID) {
		return errs.ErrNotBorrower
	}

	if err := s.repo.RemoveBorrowedBook(ctx, reader.ID, bookID); err != nil {
		return err
	}
	if err := s.repo.SetBookBorrowed(ctx, bookID, false); err != nil {
		s.log.Warn("return: reader list updated but book still flagged",
			zap.String("readerId", readerID.Hex()),
			zap.String("bookId", bookID.Hex()),
			zap.Error(err))
		return err
	}
	return nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for i := range ids {
		if ids[i] == id {
			return true
		}
	}
	return false
}
