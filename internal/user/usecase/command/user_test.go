package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/inventory/internal/user/domain"
	"github.com/ledgerkeep/inventory/pkg/auth"
)

type fakeUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*domain.User), nextID: 1}
}

func (r *fakeUserRepo) Create(user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, assert.AnError
	}
	return u, nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, assert.AnError
}

func (r *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, assert.AnError
}

func (r *fakeUserRepo) FindAll(limit, offset int) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Count() (int64, error) {
	return int64(len(r.users)), nil
}

func TestRegisterUser(t *testing.T) {
	repo := newFakeUserRepo()
	handler := NewRegisterUserHandler(repo)

	user, err := handler.Handle(RegisterUserCommand{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret1",
		FullName: "Alice Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cret1", user.Password, "password must be stored hashed")
	assert.True(t, auth.CheckPassword(user.Password, "s3cret1"))
}

func TestRegisterUserDuplicates(t *testing.T) {
	repo := newFakeUserRepo()
	handler := NewRegisterUserHandler(repo)

	_, err := handler.Handle(RegisterUserCommand{Username: "alice", Email: "alice@example.com", Password: "s3cret1"})
	require.NoError(t, err)

	_, err = handler.Handle(RegisterUserCommand{Username: "alice", Email: "other@example.com", Password: "s3cret1"})
	assert.Error(t, err)

	_, err = handler.Handle(RegisterUserCommand{Username: "bob", Email: "alice@example.com", Password: "s3cret1"})
	assert.Error(t, err)
}

func TestRegisterUserValidation(t *testing.T) {
	handler := NewRegisterUserHandler(newFakeUserRepo())

	_, err := handler.Handle(RegisterUserCommand{Email: "a@b.c", Password: "s3cret1"})
	assert.Error(t, err)

	_, err = handler.Handle(RegisterUserCommand{Username: "alice", Password: "s3cret1"})
	assert.Error(t, err)

	_, err = handler.Handle(RegisterUserCommand{Username: "alice", Email: "a@b.c", Password: "short"})
	assert.Error(t, err)

	_, err = handler.Handle(RegisterUserCommand{Username: "alice", Email: "a@b.c", Password: "s3cret1", Role: "superuser"})
	assert.Error(t, err)
}

func TestLoginUser(t *testing.T) {
	repo := newFakeUserRepo()
	registerHandler := NewRegisterUserHandler(repo)
	_, err := registerHandler.Handle(RegisterUserCommand{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret1",
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)

	handler := NewLoginUserHandler(repo)

	resp, err := handler.Handle(LoginUserCommand{Username: "alice", Password: "s3cret1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestLoginUserWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	_, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret1",
	})
	require.NoError(t, err)

	_, err = NewLoginUserHandler(repo).Handle(LoginUserCommand{Username: "alice", Password: "wrong"})
	assert.Error(t, err)
}

func TestLoginUserDeactivated(t *testing.T) {
	repo := newFakeUserRepo()
	_, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret1",
	})
	require.NoError(t, err)
	repo.users[1].IsActive = false

	_, err = NewLoginUserHandler(repo).Handle(LoginUserCommand{Username: "alice", Password: "s3cret1"})
	assert.Error(t, err)
}

func TestChangeRole(t *testing.T) {
	repo := newFakeUserRepo()
	_, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret1",
	})
	require.NoError(t, err)

	handler := NewChangeRoleHandler(repo)

	user, err := handler.Handle(ChangeRoleCommand{UserID: 1, Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, user.IsStaff())

	user, err = handler.Handle(ChangeRoleCommand{UserID: 1, Role: domain.RoleUser})
	require.NoError(t, err)
	assert.False(t, user.IsStaff())

	_, err = handler.Handle(ChangeRoleCommand{UserID: 1, Role: "owner"})
	assert.Error(t, err)

	_, err = handler.Handle(ChangeRoleCommand{UserID: 9, Role: domain.RoleAdmin})
	assert.Error(t, err)
}
