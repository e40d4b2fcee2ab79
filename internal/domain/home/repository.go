package home

import "context"

type Repository interface {
	Create(ctx context.Context, h *Home) error
	Get(ctx context.Context, id uint) (*Home, error)
	List(ctx context.Context) ([]Home, error)
	UpdateName(ctx context.Context, id uint, name string) error
}
