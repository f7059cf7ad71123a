package service

import (
	"testing"

	"go-coffee-warehouse/internal/model"
	"go-coffee-warehouse/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserService_SetUserEnabled(t *testing.T) {
	t.Run("disabling also revokes the live session", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := NewUserService(mockRepo, nil)
		user := testUser(model.RoleImporter, true, "")

		mockRepo.On("FindByID", user.ID).Return(user, nil).Once()
		mockRepo.On("SetEnabled", user.ID, false).Return(nil).Once()
		mockRepo.On("UpdateTokenVersion", user.ID, mock.AnythingOfType("string")).Return(nil).Once()

		response, err := svc.SetUserEnabled(user.ID, false)

		require.NoError(t, err)
		assert.False(t, response.Enabled)
		mockRepo.AssertExpectations(t)
	})

	t.Run("enabling does not touch the token version", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := NewUserService(mockRepo, nil)
		user := testUser(model.RoleImporter, false, "")

		mockRepo.On("FindByID", user.ID).Return(user, nil).Once()
		mockRepo.On("SetEnabled", user.ID, true).Return(nil).Once()

		response, err := svc.SetUserEnabled(user.ID, true)

		require.NoError(t, err)
		assert.True(t, response.Enabled)
		mockRepo.AssertNotCalled(t, "UpdateTokenVersion")
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := NewUserService(mockRepo, nil)
		id := uuid.New()

		mockRepo.On("FindByID", id).Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.SetUserEnabled(id, false)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_GetAllUsers(t *testing.T) {
	mockRepo := new(mocks.MockUserRepository)
	svc := NewUserService(mockRepo, nil)

	stored := []model.User{*testUser(model.RoleAdmin, true, "secret1")}
	mockRepo.On("FindAll").Return(stored, nil).Once()

	users, err := svc.GetAllUsers()

	require.NoError(t, err)
	require.Len(t, users, 1)
	// UserResponse carries no credential material by construction
	assert.Equal(t, stored[0].ID, users[0].ID)
	assert.Equal(t, stored[0].Role, users[0].Role)
}

func TestUserService_DeleteUser(t *testing.T) {
	mockRepo := new(mocks.MockUserRepository)
	svc := NewUserService(mockRepo, nil)
	user := testUser(model.RoleExporter, true, "")

	mockRepo.On("FindByID", user.ID).Return(user, nil).Once()
	mockRepo.On("Delete", user.ID).Return(nil).Once()

	require.NoError(t, svc.DeleteUser(user.ID))
	mockRepo.AssertExpectations(t)
}
