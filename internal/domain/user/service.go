package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	homedomain "home-rota-go/internal/domain/home"
)

// HomeDirectory is the slice of the home domain the user service needs to
// let a user join a home.
type HomeDirectory interface {
	Get(ctx context.Context, id uint) (*homedomain.Home, error)
}

type Service struct {
	repo  Repository
	homes HomeDirectory
}

func NewService(repo Repository, homes HomeDirectory) *Service {
	return &Service{repo: repo, homes: homes}
}

// Create registers a new user. The first user ever created gets superuser;
// everyone after gets read-only. The check and the insert run in one
// transaction so two racing first registrations cannot both become superuser.
func (s *Service) Create(ctx context.Context, nickname string) (*User, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, fmt.Errorf("nickname is required")
	}

	var result User
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		count, err := tx.Count(ctx)
		if err != nil {
			return err
		}

		permission := PermissionRead
		if count == 0 {
			permission = PermissionSuperuser
		}

		u := User{Nickname: nickname, Permission: permission}
		if err := tx.Create(ctx, &u); err != nil {
			return err
		}

		result = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Exists reports whether a user with the given id is registered.
func (s *Service) Exists(ctx context.Context, id uint) (bool, error) {
	_, err := s.repo.Get(ctx, id)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) Rename(ctx context.Context, id uint, nickname string) (*User, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, fmt.Errorf("nickname is required")
	}

	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateNickname(ctx, u.ID, nickname); err != nil {
		return nil, err
	}

	u.Nickname = nickname
	return u, nil
}

// JoinHome assigns a user to a home after an exact match against the home's
// stored password. Passwords are kept and compared in plaintext.
func (s *Service) JoinHome(ctx context.Context, userID, homeID uint, password string) error {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}

	h, err := s.homes.Get(ctx, homeID)
	if err != nil {
		return err
	}

	if h.Password != password {
		return ErrWrongHomePassword
	}

	return s.repo.SetHome(ctx, u.ID, h.ID)
}

// Authorize gates an action requiring the given permission level for the
// claimed user id. Unknown users are denied, never treated as an error.
func (s *Service) Authorize(ctx context.Context, userID uint, required Permission) error {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrNotAuthorized
		}
		return err
	}

	if !u.Permission.Satisfies(required) {
		return ErrNotAuthorized
	}
	return nil
}
