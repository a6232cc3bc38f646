package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"go-hris-suite/internal/model"
	"go-hris-suite/internal/presence"
	"go-hris-suite/internal/repository"
	"go-hris-suite/internal/routeguard"
	"go-hris-suite/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSessionSuperseded  = errors.New("session expired (logged in on another device)")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	Logout(userID uuid.UUID) error
	Me(tokenString string) (*model.Identity, error)
	ResetPassword(email, oldPassword, newPassword string) error
	Heartbeat(ctx context.Context, userID uuid.UUID) error
}

// LoginResponse is the login wire shape: the identity fields flattened
// next to the bearer token, plus the role's dashboard root and its
// shell so the client can land the user immediately.
type LoginResponse struct {
	model.Identity
	Token      string            `json:"token"`
	HomePath   string            `json:"home_path"`
	Layout     routeguard.Layout `json:"layout"`
	Privileges []string          `json:"privileges"`
}

type authService struct {
	userRepo    repository.UserRepository
	tracker     *presence.Tracker
	tokenExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, tracker *presence.Tracker, tokenExpiry time.Duration) AuthService {
	return &authService{
		userRepo:    userRepo,
		tracker:     tracker,
		tokenExpiry: tokenExpiry,
	}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	role := user.RoleCode()

	// 4. Single credential slot: a new login rotates the token version,
	// superseding any previously issued token (last write wins).
	newTokenVersion := uuid.New().String()
	now := time.Now()
	user.TokenVersion = newTokenVersion
	user.LastSeenAt = &now

	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.New("failed to update session")
	}

	// 5. Generate JWT token carrying the token version
	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName, role.String(),
		user.GetPrivilegeCodes(), newTokenVersion, s.tokenExpiry)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Identity:   user.ToIdentity(),
		Token:      token,
		HomePath:   role.HomePath(),
		Layout:     routeguard.LayoutFor(role.HomePath()),
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

// Logout rotates the user's token version so the current credential
// can never verify again. Idempotent: logging out twice rotates twice,
// both leaving the user signed out.
func (s *authService) Logout(userID uuid.UUID) error {
	return s.userRepo.UpdateTokenVersion(userID, uuid.New().String())
}

// Me validates a bearer token and returns the identity behind it. Any
// failure is "not authenticated" for the caller; the client clears its
// stored credential on a non-2xx.
func (s *authService) Me(tokenString string) (*model.Identity, error) {
	// 1. Validate JWT token
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	// 2. Find user by ID from token claims
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	// 3. Check if user is still active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 4. Check against DB for strict session (TokenVersion)
	if user.TokenVersion != claims.TokenVersion {
		return nil, ErrSessionSuperseded
	}

	identity := user.ToIdentity()
	return &identity, nil
}

func (s *authService) ResetPassword(email, oldPassword, newPassword string) error {
	// 1. Find user by email
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}

	// 2. Verify old password
	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}

	// 3. Set new password
	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}

	// 4. Update in database
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	return nil
}

func (s *authService) Heartbeat(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.UpdateLastSeen(userID); err != nil {
		return err
	}
	return s.tracker.Touch(ctx, userID.String())
}
