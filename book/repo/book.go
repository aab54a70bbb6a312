package repo

import (
	"context"

	"github.com/YOHANNES7766/AmenApp/book/repo/model"
	"github.com/YOHANNES7766/AmenApp/common"

	"gorm.io/gorm"
)

type BookRepo interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	ListApproved(ctx context.Context) ([]*model.Book, error)
	SetApproved(ctx context.Context, id int64, approved bool) error
	CreateComment(ctx context.Context, comment *model.BookComment) error
	ListComments(ctx context.Context, bookID int64) ([]*model.BookComment, error)
}

type bookRepo struct {
	db *gorm.DB
}

func NewBookRepo(db *gorm.DB) BookRepo {
	return &bookRepo{db: db}
}

func (r *bookRepo) Create(ctx context.Context, book *model.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return common.FromGorm(err, "book not found")
	}
	return nil
}

func (r *bookRepo) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, common.FromGorm(err, "book not found")
	}
	return &book, nil
}

func (r *bookRepo) ListApproved(ctx context.Context) ([]*model.Book, error) {
	var books []*model.Book
	err := r.db.WithContext(ctx).
		Where("approved = ?", true).
		Order("created_at DESC").
		Find(&books).Error
	if err != nil {
		return nil, common.FromGorm(err, "book not found")
	}
	return books, nil
}

func (r *bookRepo) SetApproved(ctx context.Context, id int64, approved bool) error {
	res := r.db.WithContext(ctx).Model(&model.Book{}).
		Where("id = ?", id).
		Update("approved", approved)
	if res.Error != nil {
		return common.FromGorm(res.Error, "book not found")
	}
	if res.RowsAffected == 0 {
		return common.NotFound("book not found")
	}
	return nil
}

func (r *bookRepo) CreateComment(ctx context.Context, comment *model.BookComment) error {
	// The owning book must exist; comments on ghosts are rejected.
	var book model.Book
	if err := r.db.WithContext(ctx).First(&book, comment.BookID).Error; err != nil {
		return common.FromGorm(err, "book not found")
	}
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return common.FromGorm(err, "book not found")
	}
	return nil
}

func (r *bookRepo) ListComments(ctx context.Context, bookID int64) ([]*model.BookComment, error) {
	var comments []*model.BookComment
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, common.FromGorm(err, "book not found")
	}
	return comments, nil
}
