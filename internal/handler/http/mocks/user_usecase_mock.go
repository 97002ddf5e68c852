package mocks

import (
	"context"
	"fmt"

	"github.com/mapmark/pinpoint/internal/domain/entity"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

// MockUserUsecase is a mock implementation of the UserUsecase interface
type MockUserUsecase struct {
	// Control mock behavior
	ShouldFailCreateUser   bool
	ShouldFailLogin        bool
	ShouldFailGetByID      bool
	ShouldFailUpdateUser   bool
	ShouldFailAuthenticate bool
	ShouldFailDeactivate   bool
	ShouldFailFollow       bool

	// Return values
	MockUser        entity.User
	MockAccessToken string

	// Recorded calls
	LastUpdates  map[string]interface{}
	LastFollowID string
	Presence     map[string]bool
}

// Ensure MockUserUsecase implements the correct interface for handler.NewUserHandler
var _ usecasecontract.IUserUseCase = (*MockUserUsecase)(nil)

func NewMockUserUsecase() *MockUserUsecase {
	return &MockUserUsecase{
		MockUser: entity.User{
			ID:       "mock-user-id",
			Username: "testuser",
			Email:    "test@example.com",
			Role:     entity.UserRoleUser,
			Country:  "ET",
			IsActive: true,
		},
		MockAccessToken: "mock_access_token",
		Presence:        map[string]bool{},
	}
}

func (m *MockUserUsecase) Register(ctx context.Context, in usecasecontract.RegisterInput) (*entity.User, error) {
	if m.ShouldFailCreateUser {
		return nil, fmt.Errorf("%w: email already registered", entity.ErrConflict)
	}
	user := m.MockUser
	user.Username = in.Username
	user.Email = in.Email
	user.Country = in.Country
	return &user, nil
}

func (m *MockUserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	if m.ShouldFailLogin {
		return nil, "", fmt.Errorf("%w: invalid credentials", entity.ErrUnauthorized)
	}
	return &m.MockUser, m.MockAccessToken, nil
}

func (m *MockUserUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	if m.ShouldFailAuthenticate || accessToken != m.MockAccessToken {
		return nil, fmt.Errorf("%w: invalid token", entity.ErrUnauthorized)
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	if m.ShouldFailGetByID || userID != m.MockUser.ID {
		return nil, fmt.Errorf("%w: user not found", entity.ErrNotFound)
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*entity.User, error) {
	if m.ShouldFailUpdateUser {
		return nil, fmt.Errorf("%w: invalid update", entity.ErrValidation)
	}
	m.LastUpdates = updates
	user := m.MockUser
	if bio, ok := updates["bio"].(string); ok {
		user.Bio = bio
	}
	return &user, nil
}

func (m *MockUserUsecase) Deactivate(ctx context.Context, userID string) error {
	if m.ShouldFailDeactivate {
		return fmt.Errorf("deactivate failed")
	}
	return nil
}

func (m *MockUserUsecase) Follow(ctx context.Context, userID, targetID string) error {
	if m.ShouldFailFollow {
		return fmt.Errorf("%w: cannot follow yourself", entity.ErrValidation)
	}
	m.LastFollowID = targetID
	return nil
}

func (m *MockUserUsecase) Unfollow(ctx context.Context, userID, targetID string) error {
	if m.ShouldFailFollow {
		return fmt.Errorf("%w: cannot unfollow yourself", entity.ErrValidation)
	}
	m.LastFollowID = targetID
	return nil
}

func (m *MockUserUsecase) SetPresence(ctx context.Context, userID string, online bool) error {
	m.Presence[userID] = online
	return nil
}
