package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

// UserUsecase implements the UserUseCase interface.
type UserUsecase struct {
	userRepo      contract.IUserRepository
	hasher        contract.IHasher
	jwtService    JWTService
	logger        usecasecontract.IAppLogger
	validator     usecasecontract.IValidator
	uuidGenerator contract.IUUIDGenerator
	now           func() time.Time
}

// NewUserUsecase creates a new UserUsecase instance.
func NewUserUsecase(
	userRepo contract.IUserRepository,
	hasher contract.IHasher,
	jwtService JWTService,
	logger usecasecontract.IAppLogger,
	validator usecasecontract.IValidator,
	uuidGenerator contract.IUUIDGenerator,
) *UserUsecase {
	return &UserUsecase{
		userRepo:      userRepo,
		hasher:        hasher,
		jwtService:    jwtService,
		logger:        logger,
		validator:     validator,
		uuidGenerator: uuidGenerator,
		now:           time.Now,
	}
}

// check if UserUseCase implements the IUserUseCase
var _ usecasecontract.IUserUseCase = (*UserUsecase)(nil)

// Register handles user registration.
func (uc *UserUsecase) Register(ctx context.Context, in usecasecontract.RegisterInput) (*entity.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		return nil, fmt.Errorf("%w: username is required", entity.ErrValidation)
	}
	if strings.TrimSpace(in.Country) == "" {
		return nil, fmt.Errorf("%w: country is required", entity.ErrValidation)
	}
	if err := uc.validator.ValidateEmail(in.Email); err != nil {
		return nil, fmt.Errorf("%w: invalid email format", entity.ErrValidation)
	}
	if err := uc.validator.ValidatePasswordStrength(in.Password); err != nil {
		return nil, fmt.Errorf("%w: weak password: %v", entity.ErrValidation, err)
	}
	role, ok := entity.ParseUserRole(in.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", entity.ErrValidation, in.Role)
	}

	// Check if user with same username or email already exists
	existing, err := uc.userRepo.GetUserByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		uc.logger.Errorf("failed to check for existing user by email: %v", err)
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user with email %s already exists", entity.ErrConflict, in.Email)
	}
	existing, err = uc.userRepo.GetUserByUsername(ctx, in.Username)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		uc.logger.Errorf("failed to check for existing user by username: %v", err)
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user with username %s already exists", entity.ErrConflict, in.Username)
	}

	hashedPassword, err := uc.hasher.HashPassword(in.Password)
	if err != nil {
		uc.logger.Errorf("failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to process password")
	}

	now := uc.now()
	user := &entity.User{
		ID:           uc.uuidGenerator.NewUUID(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hashedPassword,
		Role:         role,
		Country:      strings.TrimSpace(in.Country),
		City:         strings.TrimSpace(in.City),
		Followers:    []string{},
		Following:    []string{},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
		FirstName:    optionalString(in.FirstName),
		LastName:     optionalString(in.LastName),
	}
	if err := uc.userRepo.CreateUser(ctx, user); err != nil {
		uc.logger.Errorf("failed to create user: %v", err)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Login checks the credentials and issues an access token.
func (uc *UserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid credentials", entity.ErrUnauthorized)
		}
		uc.logger.Errorf("failed to retrieve user for login: %v", err)
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", fmt.Errorf("%w: account is deactivated", entity.ErrForbidden)
	}
	if err := uc.hasher.ComparePasswordHash(password, user.PasswordHash); err != nil {
		return nil, "", fmt.Errorf("%w: invalid credentials", entity.ErrUnauthorized)
	}

	accessToken, err := uc.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate access token: %v", err)
		return nil, "", errors.New("failed to generate token")
	}

	now := uc.now()
	if err := uc.userRepo.SetLastLogin(ctx, user.ID, now); err != nil {
		uc.logger.Warnf("failed to record last login for %s: %v", user.ID, err)
	}
	user.LastLogin = &now
	return user, accessToken, nil
}

// Authenticate handles user authentication using access tokens.
func (uc *UserUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := uc.jwtService.ParseAccessToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid access token", entity.ErrUnauthorized)
	}

	user, err := uc.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", entity.ErrUnauthorized)
		}
		uc.logger.Errorf("failed to retrieve user during authentication: %v", err)
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", entity.ErrUnauthorized)
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (uc *UserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the editable profile fields. Unknown keys are rejected.
func (uc *UserUsecase) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*entity.User, error) {
	clean := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: field %s must be a string", entity.ErrValidation, k)
		}
		switch k {
		case "firstname", "lastname", "avatar_url", "bio", "city":
			clean[k] = strings.TrimSpace(s)
		case "country":
			if strings.TrimSpace(s) == "" {
				return nil, fmt.Errorf("%w: country cannot be empty", entity.ErrValidation)
			}
			clean[k] = strings.TrimSpace(s)
		default:
			return nil, fmt.Errorf("%w: field %s cannot be updated", entity.ErrValidation, k)
		}
	}
	if len(clean) == 0 {
		return uc.GetUserByID(ctx, userID)
	}
	clean["updated_at"] = uc.now()

	user, err := uc.userRepo.UpdateProfile(ctx, userID, clean)
	if err != nil {
		uc.logger.Errorf("failed to update profile for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// Deactivate turns the account off. Users are never hard-deleted.
func (uc *UserUsecase) Deactivate(ctx context.Context, userID string) error {
	_, err := uc.userRepo.UpdateProfile(ctx, userID, map[string]interface{}{
		"is_active":  false,
		"updated_at": uc.now(),
	})
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	return nil
}

// Follow makes userID follow targetID. Following twice is a no-op.
func (uc *UserUsecase) Follow(ctx context.Context, userID, targetID string) error {
	if userID == targetID {
		return fmt.Errorf("%w: cannot follow yourself", entity.ErrValidation)
	}
	if _, err := uc.userRepo.GetUserByID(ctx, targetID); err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if err := uc.userRepo.Follow(ctx, userID, targetID); err != nil {
		return fmt.Errorf("failed to follow user: %w", err)
	}
	return nil
}

// Unfollow reverses Follow. Unfollowing a user not followed is a no-op.
func (uc *UserUsecase) Unfollow(ctx context.Context, userID, targetID string) error {
	if err := uc.userRepo.Unfollow(ctx, userID, targetID); err != nil {
		return fmt.Errorf("failed to unfollow user: %w", err)
	}
	return nil
}

// SetPresence persists the online flag and stamps lastSeen.
func (uc *UserUsecase) SetPresence(ctx context.Context, userID string, online bool) error {
	if err := uc.userRepo.SetOnlineStatus(ctx, userID, online, uc.now()); err != nil {
		return fmt.Errorf("failed to update presence: %w", err)
	}
	return nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
