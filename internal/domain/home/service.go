package home

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new home. The password is stored as given; joining a
// home later requires an exact match against it.
func (s *Service) Create(ctx context.Context, name, password string) (*Home, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	h := Home{Name: name, Password: password}
	if err := s.repo.Create(ctx, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*Home, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Home, error) {
	return s.repo.List(ctx)
}

func (s *Service) Rename(ctx context.Context, id uint, name string) (*Home, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	h, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateName(ctx, h.ID, name); err != nil {
		return nil, err
	}

	h.Name = name
	return h, nil
}
