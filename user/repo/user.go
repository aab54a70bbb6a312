package repo

import (
	"context"

	"github.com/YOHANNES7766/AmenApp/common"
	"github.com/YOHANNES7766/AmenApp/user/repo/model"

	"gorm.io/gorm"
)

type UserRepo interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*model.User, error)
	ListApproved(ctx context.Context, excludeUserID int64) ([]*model.User, error)
	ListPending(ctx context.Context) ([]*model.User, error)
	SetApproved(ctx context.Context, id int64, approved bool) error
	UpdateProfile(ctx context.Context, id int64, name, profilePicture string) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, common.FromGorm(err, "user not found")
	}
	return &user, nil
}

// GetByIDs batch-loads users; absent ids are silently skipped.
func (r *userRepo) GetByIDs(ctx context.Context, ids []int64) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}

	var users []*model.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, common.FromGorm(err, "user not found")
	}
	return users, nil
}

func (r *userRepo) ListApproved(ctx context.Context, excludeUserID int64) ([]*model.User, error) {
	var users []*model.User
	err := r.db.WithContext(ctx).
		Where("approved = ?", true).
		Where("id <> ?", excludeUserID).
		Find(&users).Error
	if err != nil {
		return nil, common.FromGorm(err, "user not found")
	}
	return users, nil
}

func (r *userRepo) ListPending(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	if err := r.db.WithContext(ctx).Where("approved = ?", false).Find(&users).Error; err != nil {
		return nil, common.FromGorm(err, "user not found")
	}
	return users, nil
}

func (r *userRepo) SetApproved(ctx context.Context, id int64, approved bool) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("approved", approved)
	if res.Error != nil {
		return common.FromGorm(res.Error, "user not found")
	}
	if res.RowsAffected == 0 {
		return common.NotFound("user not found")
	}
	return nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, id int64, name, profilePicture string) error {
	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if profilePicture != "" {
		updates["profile_picture"] = profilePicture
	}
	if len(updates) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return common.FromGorm(res.Error, "user not found")
	}
	if res.RowsAffected == 0 {
		return common.NotFound("user not found")
	}
	return nil
}
