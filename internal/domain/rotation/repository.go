package rotation

import "context"

type Repository interface {
	// Transaction runs fn against a transactional view of the repository.
	// GetForUpdate is only meaningful inside one.
	Transaction(ctx context.Context, fn func(Repository) error) error

	Create(ctx context.Context, rot *Rotation) error
	Get(ctx context.Context, id uint) (*Rotation, error)
	// GetForUpdate locks the rotation row until the surrounding transaction
	// ends, serializing concurrent advances on the same rotation.
	GetForUpdate(ctx context.Context, id uint) (*Rotation, error)
	SetCurrent(ctx context.Context, id uint, userID uint) error

	AddMember(ctx context.Context, member *Member) error
	HasMember(ctx context.Context, rotationID, userID uint) (bool, error)
	ListMembers(ctx context.Context, rotationID uint) ([]Member, error)
	ListMembersByUser(ctx context.Context, userID uint) ([]Member, error)

	// MaxSortOrder returns the highest assigned position, 0 for an empty
	// rotation.
	MaxSortOrder(ctx context.Context, rotationID uint) (int, error)
	// MaxSortOrderOfUser returns the highest position held by the user in
	// the rotation; ok is false when the user holds none.
	MaxSortOrderOfUser(ctx context.Context, rotationID, userID uint) (order int, ok bool, err error)
	// MemberAt returns the member at an exact position; found is false when
	// the position is unoccupied.
	MemberAt(ctx context.Context, rotationID uint, sortOrder int) (member *Member, found bool, err error)
}
