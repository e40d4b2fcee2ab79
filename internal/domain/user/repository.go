package user

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id uint) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateNickname(ctx context.Context, id uint, nickname string) error
	SetHome(ctx context.Context, id uint, homeID uint) error
	Count(ctx context.Context) (int64, error)
}
