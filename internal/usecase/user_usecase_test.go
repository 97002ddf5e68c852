package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapmark/pinpoint/internal/domain/entity"
	"github.com/mapmark/pinpoint/internal/infrastructure/validator"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

type plainHasher struct{}

func (plainHasher) HashPassword(p string) (string, error) { return "hashed:" + p, nil }

func (plainHasher) ComparePasswordHash(p, h string) error {
	if h != "hashed:"+p {
		return errors.New("mismatch")
	}
	return nil
}

type fakeJWT struct{}

func (fakeJWT) GenerateAccessToken(userID string, role entity.UserRole) (string, error) {
	return "token-" + userID, nil
}

func (fakeJWT) ParseAccessToken(token string) (*entity.Claims, error) {
	if len(token) <= len("token-") || token[:6] != "token-" {
		return nil, errors.New("bad token")
	}
	return &entity.Claims{UserID: token[6:]}, nil
}

func newUserFixture() (*UserUsecase, *memUserRepo) {
	repo := newMemUserRepo()
	uc := NewUserUsecase(repo, plainHasher{}, fakeJWT{}, nopLogger{}, validator.NewValidator(), &seqUUID{})
	uc.now = fixedClock(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	return uc, repo
}

func registerInput() usecasecontract.RegisterInput {
	return usecasecontract.RegisterInput{
		Username: "alice",
		Email:    " Alice@Example.com ",
		Password: "Password123",
		Country:  "ET",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	uc, repo := newUserFixture()
	ctx := context.Background()

	user, err := uc.Register(ctx, registerInput())
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, entity.UserRoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "Password123", user.PasswordHash)

	_, err = uc.Register(ctx, registerInput())
	assert.True(t, errors.Is(err, entity.ErrConflict))

	logged, token, err := uc.Login(ctx, "ALICE@example.com", "Password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.Equal(t, "token-"+user.ID, token)
	stored, _ := repo.GetUserByID(ctx, user.ID)
	assert.NotNil(t, stored.LastLogin)

	_, _, err = uc.Login(ctx, "alice@example.com", "wrong")
	assert.True(t, errors.Is(err, entity.ErrUnauthorized))
	_, _, err = uc.Login(ctx, "nobody@example.com", "Password123")
	assert.True(t, errors.Is(err, entity.ErrUnauthorized))
}

func TestRegister_Validation(t *testing.T) {
	uc, _ := newUserFixture()
	cases := map[string]func(*usecasecontract.RegisterInput){
		"weak password":   func(in *usecasecontract.RegisterInput) { in.Password = "password" },
		"bad email":       func(in *usecasecontract.RegisterInput) { in.Email = "not-an-email" },
		"missing country": func(in *usecasecontract.RegisterInput) { in.Country = " " },
		"unknown role":    func(in *usecasecontract.RegisterInput) { in.Role = "admin" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := registerInput()
			mutate(&in)
			_, err := uc.Register(context.Background(), in)
			assert.True(t, errors.Is(err, entity.ErrValidation), err)
		})
	}
}

func TestDeactivatedUserCannotAuthenticate(t *testing.T) {
	uc, _ := newUserFixture()
	ctx := context.Background()
	user, err := uc.Register(ctx, registerInput())
	require.NoError(t, err)

	got, err := uc.Authenticate(ctx, "token-"+user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	require.NoError(t, uc.Deactivate(ctx, user.ID))
	_, err = uc.Authenticate(ctx, "token-"+user.ID)
	assert.True(t, errors.Is(err, entity.ErrUnauthorized))
	_, _, err = uc.Login(ctx, "alice@example.com", "Password123")
	assert.True(t, errors.Is(err, entity.ErrForbidden))

	_, err = uc.Authenticate(ctx, "garbage")
	assert.True(t, errors.Is(err, entity.ErrUnauthorized))
}

func TestUpdateProfileAndFollow(t *testing.T) {
	uc, repo := newUserFixture()
	ctx := context.Background()
	a, _ := uc.Register(ctx, registerInput())
	in := registerInput()
	in.Username, in.Email = "bekele", "bekele@example.com"
	b, _ := uc.Register(ctx, in)

	updated, err := uc.UpdateProfile(ctx, a.ID, map[string]interface{}{"bio": " maps ", "city": "Adama"})
	require.NoError(t, err)
	assert.Equal(t, "maps", updated.Bio)
	assert.Equal(t, "Adama", updated.City)

	_, err = uc.UpdateProfile(ctx, a.ID, map[string]interface{}{"email": "x@y.z"})
	assert.True(t, errors.Is(err, entity.ErrValidation))

	assert.True(t, errors.Is(uc.Follow(ctx, a.ID, a.ID), entity.ErrValidation))
	require.NoError(t, uc.Follow(ctx, a.ID, b.ID))
	require.NoError(t, uc.Follow(ctx, a.ID, b.ID))
	followee, _ := repo.GetUserByID(ctx, b.ID)
	assert.Equal(t, []string{a.ID}, followee.Followers)

	require.NoError(t, uc.Unfollow(ctx, a.ID, b.ID))
	followee, _ = repo.GetUserByID(ctx, b.ID)
	assert.Empty(t, followee.Followers)

	require.NoError(t, uc.SetPresence(ctx, a.ID, true))
	online, _ := repo.GetUserByID(ctx, a.ID)
	assert.True(t, online.IsOnline)
	require.NotNil(t, online.LastSeen)
}
