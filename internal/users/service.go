package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/geoshop/geoshop-backend/pkg/auth"
	"github.com/geoshop/geoshop-backend/pkg/auth/session"
	"github.com/geoshop/geoshop-backend/pkg/config"
	"github.com/geoshop/geoshop-backend/pkg/db"
	"github.com/geoshop/geoshop-backend/pkg/db/models"
	"github.com/geoshop/geoshop-backend/pkg/enums"
	pkgerrors "github.com/geoshop/geoshop-backend/pkg/errors"
	"github.com/geoshop/geoshop-backend/pkg/security"
)

const minPasswordLength = 8

// Service exposes registration, login, and profile management.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*UserDTO, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Logout(ctx context.Context, accessID string) error
	Refresh(ctx context.Context, userID uuid.UUID, accessID, refreshToken string) (*AuthResult, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserDTO, error)
	ListUsers(ctx context.Context) ([]UserDTO, error)
	DeleteUser(ctx context.Context, callerID, targetID uuid.UUID, callerRole enums.UserRole) error
}

// RegisterInput holds the validated registration payload. The store-only
// fields are ignored for client registrations.
type RegisterInput struct {
	Role           enums.UserRole
	Username       string
	Email          string
	Password       string
	CNPJ           *string
	Address        *string
	Responsible    *string
	Latitude       *float64
	Longitude      *float64
	HasLoyaltyCard bool
}

// UpdateProfileInput holds optional profile mutations.
type UpdateProfileInput struct {
	Email          *string
	CNPJ           *string
	Address        *string
	Responsible    *string
	Latitude       *float64
	Longitude      *float64
	HasLoyaltyCard *bool
}

// sessionManager is the session surface the auth flows use.
type sessionManager interface {
	Generate(ctx context.Context, accessID string) (*session.Session, error)
	Rotate(ctx context.Context, accessID, refreshToken string) (*session.Session, error)
	Revoke(ctx context.Context, accessID string) error
}

type service struct {
	repo        UserRepository
	sessions    sessionManager
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// NewService constructs a users service instance.
func NewService(repo UserRepository, sessions sessionManager, jwtCfg config.JWTConfig, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	return &service{
		repo:        repo,
		sessions:    sessions,
		jwtCfg:      jwtCfg,
		passwordCfg: passwordCfg,
		now:         time.Now,
	}, nil
}

// Register creates a client or store account. Admin accounts are provisioned
// out of band, never through the public endpoint.
func (s *service) Register(ctx context.Context, input RegisterInput) (*UserDTO, error) {
	if input.Role != enums.UserRoleClient && input.Role != enums.UserRoleStore {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role must be client or store")
	}

	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := security.HashPassword(s.passwordCfg, input.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
	}
	if input.Role == enums.UserRoleStore {
		user.CNPJ = input.CNPJ
		user.Address = input.Address
		user.Responsible = input.Responsible
		user.Latitude = input.Latitude
		user.Longitude = input.Longitude
		user.HasLoyaltyCard = input.HasLoyaltyCard
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username or email already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert user")
	}
	return NewUserDTO(created), nil
}

// Login verifies credentials and opens a redis-backed session paired with a
// signed access token.
func (s *service) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username and password are required")
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}

	if err := security.VerifyPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}

	return s.issueTokens(ctx, user, session.NewAccessID())
}

// Logout revokes the caller's session; the JWT dies with it.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if accessID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoking session")
	}
	return nil
}

// Refresh rotates the caller's session when the refresh token matches and
// mints a fresh access token.
func (s *service) Refresh(ctx context.Context, userID uuid.UUID, accessID, refreshToken string) (*AuthResult, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account no longer exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}

	rotated, err := s.sessions.Rotate(ctx, accessID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotating session")
	}

	token, err := auth.MintAccessToken(s.jwtCfg, s.now(), auth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    rotated.AccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	return &AuthResult{
		AccessToken:  token,
		RefreshToken: rotated.RefreshToken,
		User:         *NewUserDTO(user),
	}, nil
}

// GetProfile returns the caller's account.
func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NewUserDTO(user), nil
}

// UpdateProfile applies a partial update to the caller's account. Store-only
// fields are rejected for other roles.
func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Role != enums.UserRoleStore {
		if input.CNPJ != nil || input.Responsible != nil || input.HasLoyaltyCard != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "store-only fields on a non-store account")
		}
	}

	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if email == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "email cannot be empty")
		}
		user.Email = email
	}
	if input.CNPJ != nil {
		user.CNPJ = input.CNPJ
	}
	if input.Address != nil {
		user.Address = input.Address
	}
	if input.Responsible != nil {
		user.Responsible = input.Responsible
	}
	if input.Latitude != nil {
		user.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		user.Longitude = input.Longitude
	}
	if input.HasLoyaltyCard != nil {
		user.HasLoyaltyCard = *input.HasLoyaltyCard
	}

	updated, err := s.repo.UpdateUser(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update user")
	}
	return NewUserDTO(updated), nil
}

// ListUsers returns every account. Route-guarded to admins.
func (s *service) ListUsers(ctx context.Context) ([]UserDTO, error) {
	rows, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list users")
	}
	return NewUserDTOs(rows), nil
}

// DeleteUser removes an account. Admins may delete anyone; others only
// themselves.
func (s *service) DeleteUser(ctx context.Context, callerID, targetID uuid.UUID, callerRole enums.UserRole) error {
	if callerRole != enums.UserRoleAdmin && callerID != targetID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "cannot delete another user's account")
	}
	if _, err := s.loadUser(ctx, targetID); err != nil {
		return err
	}
	if err := s.repo.DeleteUser(ctx, targetID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete user")
	}
	return nil
}

func (s *service) issueTokens(ctx context.Context, user *models.User, accessID string) (*AuthResult, error) {
	sess, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "opening session")
	}

	token, err := auth.MintAccessToken(s.jwtCfg, s.now(), auth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    sess.AccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	return &AuthResult{
		AccessToken:  token,
		RefreshToken: sess.RefreshToken,
		User:         *NewUserDTO(user),
	}, nil
}

func (s *service) loadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	return user, nil
}
