package rotation

import (
	"context"
	"errors"

	rotationdomain "home-rota-go/internal/domain/rotation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(rotationdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) Create(ctx context.Context, rot *rotationdomain.Rotation) error {
	return r.db.WithContext(ctx).Create(rot).Error
}

func (r *PostgresRepository) Get(ctx context.Context, id uint) (*rotationdomain.Rotation, error) {
	var rot rotationdomain.Rotation
	if err := r.db.WithContext(ctx).First(&rot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rotationdomain.ErrRotationNotFound
		}
		return nil, err
	}
	return &rot, nil
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, id uint) (*rotationdomain.Rotation, error) {
	var rot rotationdomain.Rotation
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&rot, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rotationdomain.ErrRotationNotFound
		}
		return nil, err
	}
	return &rot, nil
}

func (r *PostgresRepository) SetCurrent(ctx context.Context, id uint, userID uint) error {
	return r.db.WithContext(ctx).Model(&rotationdomain.Rotation{}).
		Where("id = ?", id).
		Update("current_user_id", userID).Error
}

func (r *PostgresRepository) AddMember(ctx context.Context, member *rotationdomain.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *PostgresRepository) HasMember(ctx context.Context, rotationID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&rotationdomain.Member{}).
		Where("rotation_id = ? AND user_id = ?", rotationID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context, rotationID uint) ([]rotationdomain.Member, error) {
	var members []rotationdomain.Member
	err := r.db.WithContext(ctx).
		Where("rotation_id = ?", rotationID).
		Order("sort_order asc").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) ListMembersByUser(ctx context.Context, userID uint) ([]rotationdomain.Member, error) {
	var members []rotationdomain.Member
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("rotation_id asc, sort_order asc").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) MaxSortOrder(ctx context.Context, rotationID uint) (int, error) {
	var member rotationdomain.Member
	err := r.db.WithContext(ctx).
		Where("rotation_id = ?", rotationID).
		Order("sort_order desc").
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return member.SortOrder, nil
}

func (r *PostgresRepository) MaxSortOrderOfUser(ctx context.Context, rotationID, userID uint) (int, bool, error) {
	var member rotationdomain.Member
	err := r.db.WithContext(ctx).
		Where("rotation_id = ? AND user_id = ?", rotationID, userID).
		Order("sort_order desc").
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return member.SortOrder, true, nil
}

func (r *PostgresRepository) MemberAt(ctx context.Context, rotationID uint, sortOrder int) (*rotationdomain.Member, bool, error) {
	var member rotationdomain.Member
	err := r.db.WithContext(ctx).
		Where("rotation_id = ? AND sort_order = ?", rotationID, sortOrder).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &member, true, nil
}
