package service

import (
	"errors"
	"fmt"

	"go-coffee-warehouse/internal/model"
	"go-coffee-warehouse/internal/repository"
	"go-coffee-warehouse/internal/roster"
	"go-coffee-warehouse/pkg/jwt"
	"go-coffee-warehouse/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidCredential  = errors.New("password must be at least 6 characters")
	ErrUserDisabled       = errors.New("account is disabled")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
)

type AuthService interface {
	Register(req *RegisterRequest) (*model.User, error)
	Login(email, password string) (*LoginResponse, error)
	Logout(userID uuid.UUID) error
	ValidateToken(tokenString string) (*model.UserResponse, error)
}

type RegisterRequest struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required"`
	Role     model.Role `json:"role" validate:"required,oneof=ADMIN IMPORTER EXPORTER"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Register runs the capacity gate against the current roster and creates the
// account. The password length pre-check comes before the gate.
func (s *authService) Register(req *RegisterRequest) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if len(req.Password) < 6 {
		return nil, ErrInvalidCredential
	}

	existing, _ := s.userRepo.FindByEmail(req.Email)
	if existing != nil {
		return nil, ErrEmailExists
	}

	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}
	if err := roster.CanRegister(users, req.Role); err != nil {
		return nil, err
	}

	user := &model.User{
		Name:    req.Name,
		Email:   req.Email,
		Role:    req.Role,
		Enabled: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials first; a disabled account with a correct
// password is still denied, and its token version is rotated so any live
// session token is revoked rather than left usable.
func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	if !user.Enabled {
		// The denial is only safe once the old session is actually dead, so
		// a failed revocation surfaces instead of a plain ErrUserDisabled
		if err := s.userRepo.UpdateTokenVersion(user.ID, uuid.New().String()); err != nil {
			return nil, fmt.Errorf("revoking session for disabled account: %w", err)
		}
		return nil, ErrUserDisabled
	}

	// Single session: a fresh token version invalidates earlier tokens
	newTokenVersion := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(user.ID, newTokenVersion); err != nil {
		return nil, errors.New("failed to update session")
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.Name, user.Role, newTokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// Logout rotates the token version, terminating the session server-side
func (s *authService) Logout(userID uuid.UUID) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return ErrUserNotFound
	}
	return s.userRepo.UpdateTokenVersion(userID, uuid.New().String())
}

func (s *authService) ValidateToken(tokenString string) (*model.UserResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if !user.Enabled {
		return nil, ErrUserDisabled
	}

	if user.TokenVersion != claims.TokenVersion {
		return nil, errors.New("session expired")
	}

	response := user.ToResponse()
	return &response, nil
}
