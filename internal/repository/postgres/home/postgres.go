package home

import (
	"context"
	"errors"

	homedomain "home-rota-go/internal/domain/home"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, h *homedomain.Home) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *PostgresRepository) Get(ctx context.Context, id uint) (*homedomain.Home, error) {
	var h homedomain.Home
	if err := r.db.WithContext(ctx).First(&h, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, homedomain.ErrHomeNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]homedomain.Home, error) {
	var homes []homedomain.Home
	if err := r.db.WithContext(ctx).Order("id asc").Find(&homes).Error; err != nil {
		return nil, err
	}
	return homes, nil
}

func (r *PostgresRepository) UpdateName(ctx context.Context, id uint, name string) error {
	return r.db.WithContext(ctx).Model(&homedomain.Home{}).
		Where("id = ?", id).
		Update("name", name).Error
}
