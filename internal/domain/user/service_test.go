package user

import (
	"context"
	"testing"

	homedomain "home-rota-go/internal/domain/home"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users  map[uint]*User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*User)}
}

func (r *fakeUserRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeUserRepo) Create(ctx context.Context, u *User) error {
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Get(ctx context.Context, id uint) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]User, error) {
	result := make([]User, 0, len(r.users))
	for id := uint(1); id <= r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) UpdateNickname(ctx context.Context, id uint, nickname string) error {
	u, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.Nickname = nickname
	return nil
}

func (r *fakeUserRepo) SetHome(ctx context.Context, id uint, homeID uint) error {
	u, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	value := homeID
	u.HomeID = &value
	return nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type fakeHomeDirectory struct {
	homes map[uint]*homedomain.Home
}

func (d *fakeHomeDirectory) Get(ctx context.Context, id uint) (*homedomain.Home, error) {
	h, ok := d.homes[id]
	if !ok {
		return nil, homedomain.ErrHomeNotFound
	}
	return h, nil
}

func newUserFixture() (*Service, *fakeUserRepo, *fakeHomeDirectory) {
	repo := newFakeUserRepo()
	homes := &fakeHomeDirectory{homes: make(map[uint]*homedomain.Home)}
	return NewService(repo, homes), repo, homes
}

func TestFirstUserCreatedIsSuperuser(t *testing.T) {
	svc, _, _ := newUserFixture()

	first, err := svc.Create(context.Background(), "Alice")
	require.NoError(t, err)

	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, PermissionSuperuser, first.Permission)
}

func TestLaterUsersAreReadOnly(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.Create(context.Background(), "Alice")
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), "Bob")
	require.NoError(t, err)
	third, err := svc.Create(context.Background(), "Carol")
	require.NoError(t, err)

	assert.Equal(t, PermissionRead, second.Permission)
	assert.Equal(t, PermissionRead, third.Permission)
}

func TestCreateRequiresNickname(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.Create(context.Background(), "   ")

	assert.Error(t, err)
}

func TestRenameDoesNotTouchOthers(t *testing.T) {
	svc, repo, _ := newUserFixture()

	_, err := svc.Create(context.Background(), "Alice")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "Bob")
	require.NoError(t, err)

	renamed, err := svc.Rename(context.Background(), 1, "Alicia")
	require.NoError(t, err)

	assert.Equal(t, "Alicia", renamed.Nickname)
	assert.Equal(t, "Bob", repo.users[2].Nickname)
}

func TestRenameUnknownUser(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.Rename(context.Background(), 9, "Nobody")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestJoinHomeSuccess(t *testing.T) {
	svc, repo, homes := newUserFixture()
	homes.homes[3] = &homedomain.Home{ID: 3, Name: "Base", Password: "hunter2"}

	_, err := svc.Create(context.Background(), "Alice")
	require.NoError(t, err)

	require.NoError(t, svc.JoinHome(context.Background(), 1, 3, "hunter2"))

	require.NotNil(t, repo.users[1].HomeID)
	assert.Equal(t, uint(3), *repo.users[1].HomeID)
}

func TestJoinHomeWrongPassword(t *testing.T) {
	svc, repo, homes := newUserFixture()
	homes.homes[3] = &homedomain.Home{ID: 3, Name: "Base", Password: "hunter2"}

	_, err := svc.Create(context.Background(), "Alice")
	require.NoError(t, err)

	err = svc.JoinHome(context.Background(), 1, 3, "wrong")

	assert.ErrorIs(t, err, ErrWrongHomePassword)
	assert.Nil(t, repo.users[1].HomeID)
}

func TestJoinHomeUnknownUser(t *testing.T) {
	svc, _, homes := newUserFixture()
	homes.homes[3] = &homedomain.Home{ID: 3, Name: "Base", Password: "hunter2"}

	err := svc.JoinHome(context.Background(), 9, 3, "hunter2")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestJoinHomeUnknownHome(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.Create(context.Background(), "Alice")
	require.NoError(t, err)

	err = svc.JoinHome(context.Background(), 1, 9, "hunter2")

	assert.ErrorIs(t, err, homedomain.ErrHomeNotFound)
}

func TestExists(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.Create(context.Background(), "Alice")
	require.NoError(t, err)

	ok, err := svc.Exists(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, ok)
}
