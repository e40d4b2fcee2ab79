package user

import (
	"context"
	"errors"

	userdomain "home-rota-go/internal/domain/user"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(userdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) Create(ctx context.Context, u *userdomain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *PostgresRepository) Get(ctx context.Context, id uint) (*userdomain.User, error) {
	var u userdomain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]userdomain.User, error) {
	var users []userdomain.User
	if err := r.db.WithContext(ctx).Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PostgresRepository) UpdateNickname(ctx context.Context, id uint, nickname string) error {
	return r.db.WithContext(ctx).Model(&userdomain.User{}).
		Where("id = ?", id).
		Update("nickname", nickname).Error
}

func (r *PostgresRepository) SetHome(ctx context.Context, id uint, homeID uint) error {
	return r.db.WithContext(ctx).Model(&userdomain.User{}).
		Where("id = ?", id).
		Update("home_id", homeID).Error
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userdomain.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
