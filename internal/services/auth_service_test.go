package services_test

import (
	"fmt"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, testSecret)

	mockRepo.On("GetByEmail", "dana@example.com").Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user := &models.User{Name: "Dana", Email: "dana@example.com", Password: "hunter22"}
	err := service.RegisterUser(user)

	assert.NoError(t, err)
	// The stored credential must be a hash, never the plaintext.
	assert.NotEqual(t, "hunter22", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, testSecret)

	mockRepo.On("GetByEmail", "dana@example.com").Return(&models.User{ID: "user-1", Email: "dana@example.com"}, nil).Once()

	err := service.RegisterUser(&models.User{Email: "dana@example.com", Password: "hunter22"})

	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_RegisterUser_ConcurrentDuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, testSecret)

	// The lookup sees nothing, but the unique index catches the race.
	mockRepo.On("GetByEmail", "dana@example.com").
		Return(nil, fmt.Errorf("user with email dana@example.com: %w", repositories.ErrNotFound)).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).
		Return(fmt.Errorf("user with email dana@example.com: %w", repositories.ErrDuplicate)).Once()

	err := service.RegisterUser(&models.User{Email: "dana@example.com", Password: "hunter22"})

	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, testSecret)

	stored := &models.User{
		ID:       "user-1",
		Email:    "dana@example.com",
		Password: hashPassword(t, "hunter22"),
		IsAdmin:  true,
	}
	mockRepo.On("GetByEmail", "dana@example.com").Return(stored, nil).Once()

	token, user, err := service.LoginUser("dana@example.com", "hunter22")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-1", user.ID)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "dana@example.com", claims["email"])
	assert.Equal(t, true, claims["is_admin"])
}

func TestAuthService_LoginUser_GenericFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, testSecret)

	// Unknown email and wrong password must be indistinguishable.
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, repositories.ErrNotFound).Once()
	_, _, errUnknown := service.LoginUser("nobody@example.com", "whatever")

	stored := &models.User{ID: "user-1", Email: "dana@example.com", Password: hashPassword(t, "hunter22")}
	mockRepo.On("GetByEmail", "dana@example.com").Return(stored, nil).Once()
	_, _, errWrongPw := service.LoginUser("dana@example.com", "wrong")

	assert.ErrorIs(t, errUnknown, services.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, services.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, testSecret)

	claims, err := service.ValidateToken("not-a-token")
	assert.Error(t, err)
	assert.Nil(t, claims)

	// A token signed with a different secret is rejected.
	other := services.NewAuthService(mockRepo, "other-secret")
	stored := &models.User{ID: "user-1", Email: "dana@example.com", Password: hashPassword(t, "hunter22")}
	mockRepo.On("GetByEmail", "dana@example.com").Return(stored, nil).Once()
	token, _, err := other.LoginUser("dana@example.com", "hunter22")
	assert.NoError(t, err)

	claims, err = service.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, testSecret)

	stored := &models.User{ID: "user-1", Email: "dana@example.com", Password: "hash", IsAdmin: false}
	mockRepo.On("GetByID", "user-1").Return(stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	updated, err := service.UpdateProfile("user-1", services.ProfileUpdate{
		Name:       "Dana Q",
		Address:    "1 Main St",
		City:       "Springfield",
		PostalCode: "12345",
		Country:    "US",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Dana Q", updated.Name)
	assert.Equal(t, "Springfield", updated.City)
	// Email and credentials stay untouched.
	assert.Equal(t, "dana@example.com", updated.Email)
	assert.Equal(t, "hash", updated.Password)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ChangePassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, testSecret)

	stored := &models.User{ID: "user-1", Password: hashPassword(t, "hunter22")}
	mockRepo.On("GetByID", "user-1").Return(stored, nil).Times(3)

	// Wrong current password.
	err := service.ChangePassword("user-1", "wrong", "newpassword")
	assert.ErrorIs(t, err, services.ErrValidation)

	// Too-short replacement.
	err = service.ChangePassword("user-1", "hunter22", "tiny")
	assert.ErrorIs(t, err, services.ErrValidation)

	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()
	err = service.ChangePassword("user-1", "hunter22", "newpassword")
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newpassword")))
	mockRepo.AssertExpectations(t)
}
