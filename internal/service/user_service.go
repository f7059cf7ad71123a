package service

import (
	"encoding/json"

	"go-coffee-warehouse/internal/model"
	"go-coffee-warehouse/internal/repository"
	"go-coffee-warehouse/internal/ws"

	"github.com/google/uuid"
)

// UserService is the admin staff-management surface: list, enable/disable,
// delete. Account creation goes through AuthService.Register so the
// capacity gate cannot be bypassed.
type UserService interface {
	GetAllUsers() ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
	SetUserEnabled(userID uuid.UUID, enabled bool) (*model.UserResponse, error)
	DeleteUser(userID uuid.UUID) error
}

type userService struct {
	userRepo repository.UserRepository
	wsHub    *ws.Hub
}

func NewUserService(userRepo repository.UserRepository, hub *ws.Hub) UserService {
	return &userService{userRepo: userRepo, wsHub: hub}
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	response := user.ToResponse()
	return &response, nil
}

// SetUserEnabled toggles the login gate. Disabling also rotates the token
// version so an already-issued session token stops working immediately.
func (s *userService) SetUserEnabled(userID uuid.UUID, enabled bool) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.userRepo.SetEnabled(userID, enabled); err != nil {
		return nil, err
	}
	if !enabled {
		if err := s.userRepo.UpdateTokenVersion(userID, uuid.New().String()); err != nil {
			return nil, err
		}
	}

	user.Enabled = enabled
	response := user.ToResponse()

	if s.wsHub != nil {
		go func() {
			status := "enabled"
			if !enabled {
				status = "disabled"
			}
			payload := map[string]interface{}{
				"type":    "staff_update",
				"user_id": userID.String(),
				"status":  status,
			}
			msg, _ := json.Marshal(payload)
			s.wsHub.Broadcast <- msg
		}()
	}

	return &response, nil
}

func (s *userService) DeleteUser(userID uuid.UUID) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return ErrUserNotFound
	}
	return s.userRepo.Delete(userID)
}
