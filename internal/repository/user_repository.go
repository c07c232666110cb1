package repository

import (
	"context"
	"errors"

	"github.com/terralens/terralens-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// EnsureAccount creates a zero-balance account for provider-authenticated
	// users on first sight. Existing rows are left untouched.
	EnsureAccount(ctx context.Context, email string) error
	// Top returns up to n accounts ordered by points descending. Equal
	// balances rank the earlier-created account higher, with email as the
	// final tie-break so the order is total.
	Top(ctx context.Context, n int) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) EnsureAccount(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(&model.User{Email: email}).Error
}

func (r *userRepository) Top(ctx context.Context, n int) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Order("points DESC, created_at ASC, email ASC").
		Limit(n).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
