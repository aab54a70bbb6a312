package service

import (
	"context"
	"fmt"

	"github.com/YOHANNES7766/AmenApp/book/repo"
	"github.com/YOHANNES7766/AmenApp/book/repo/model"
	"github.com/YOHANNES7766/AmenApp/common"
)

type BookService struct {
	repo repo.BookRepo
}

func NewBookService(r repo.BookRepo) *BookService {
	return &BookService{repo: r}
}

// Upload records a new catalog entry. Uploads await admin approval before
// they appear in the listing.
func (s *BookService) Upload(ctx context.Context, uploaderID int64, book *model.Book) (*model.Book, error) {
	if book.Title == "" {
		return nil, common.Validation("book title cannot be empty")
	}
	book.UploaderID = uploaderID
	book.Approved = false

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("fail to upload book: %w", err)
	}
	return book, nil
}

func (s *BookService) List(ctx context.Context) ([]*model.Book, error) {
	books, err := s.repo.ListApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("fail to list books: %w", err)
	}
	return books, nil
}

func (s *BookService) Get(ctx context.Context, id int64) (*model.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fail to get book %d: %w", id, err)
	}
	return book, nil
}

func (s *BookService) Approve(ctx context.Context, id int64) error {
	if err := s.repo.SetApproved(ctx, id, true); err != nil {
		return fmt.Errorf("fail to approve book %d: %w", id, err)
	}
	return nil
}

func (s *BookService) AddComment(ctx context.Context, userID, bookID int64, body string) (*model.BookComment, error) {
	if body == "" {
		return nil, common.Validation("comment body cannot be empty")
	}

	comment := &model.BookComment{BookID: bookID, UserID: userID, Body: body}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("fail to add comment: %w", err)
	}
	return comment, nil
}

func (s *BookService) ListComments(ctx context.Context, bookID int64) ([]*model.BookComment, error) {
	comments, err := s.repo.ListComments(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("fail to list comments: %w", err)
	}
	return comments, nil
}
