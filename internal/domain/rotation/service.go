package rotation

import (
	"context"
	"fmt"
	"strings"
)

// fallbackUserID takes the on-call slot when the outgoing member has no
// successor in sort order. The slot goes to user 1 even when that user is
// not a member of the rotation; see DESIGN.md for the pending product
// decision on wrapping to the rotation's own first member instead.
const fallbackUserID uint = 1

// UserDirectory is the slice of the user domain the engine needs: existence
// checks when adding members.
type UserDirectory interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type Service struct {
	repo  Repository
	users UserDirectory
}

func NewService(repo Repository, users UserDirectory) *Service {
	return &Service{repo: repo, users: users}
}

func (s *Service) Create(ctx context.Context, name string) (*Rotation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	rot := Rotation{Name: name}
	if err := s.repo.Create(ctx, &rot); err != nil {
		return nil, err
	}
	return &rot, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*Rotation, error) {
	return s.repo.Get(ctx, id)
}

// Advance moves the rotation's current pointer to the member at the
// position right after the outgoing user's highest one. A rotation whose
// current pointer was never seeded is left untouched. When no member holds
// the next position the slot falls back to user 1.
//
// The whole read-compute-write runs under a row lock on the rotation, so
// concurrent advances on the same rotation apply one at a time and none is
// lost.
func (s *Service) Advance(ctx context.Context, rotationID uint) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		rot, err := tx.GetForUpdate(ctx, rotationID)
		if err != nil {
			return err
		}

		if rot.CurrentUserID == nil {
			return nil
		}

		next := fallbackUserID
		order, ok, err := tx.MaxSortOrderOfUser(ctx, rotationID, *rot.CurrentUserID)
		if err != nil {
			return err
		}
		if ok {
			member, found, err := tx.MemberAt(ctx, rotationID, order+1)
			if err != nil {
				return err
			}
			if found {
				next = member.UserID
			}
		}

		return tx.SetCurrent(ctx, rotationID, next)
	})
}

// SetCurrent seeds or moves the current pointer by hand. Unlike Advance it
// insists the target is a member of the rotation.
func (s *Service) SetCurrent(ctx context.Context, rotationID, userID uint) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetForUpdate(ctx, rotationID); err != nil {
			return err
		}

		isMember, err := tx.HasMember(ctx, rotationID, userID)
		if err != nil {
			return err
		}
		if !isMember {
			return ErrNotMember
		}

		return tx.SetCurrent(ctx, rotationID, userID)
	})
}

// AddMember appends a user at the next free position, starting at 1.
// Re-adding a user is rejected so each member holds exactly one position.
func (s *Service) AddMember(ctx context.Context, rotationID, userID uint) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetForUpdate(ctx, rotationID); err != nil {
			return err
		}

		already, err := tx.HasMember(ctx, rotationID, userID)
		if err != nil {
			return err
		}
		if already {
			return ErrMemberExists
		}

		highest, err := tx.MaxSortOrder(ctx, rotationID)
		if err != nil {
			return err
		}

		return tx.AddMember(ctx, &Member{
			RotationID: rotationID,
			UserID:     userID,
			SortOrder:  highest + 1,
		})
	})
}

// Members lists a rotation's memberships in sort order.
func (s *Service) Members(ctx context.Context, rotationID uint) ([]Member, error) {
	if _, err := s.repo.Get(ctx, rotationID); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, rotationID)
}

// MembersOfUser lists a user's memberships across all rotations.
func (s *Service) MembersOfUser(ctx context.Context, userID uint) ([]Member, error) {
	return s.repo.ListMembersByUser(ctx, userID)
}
