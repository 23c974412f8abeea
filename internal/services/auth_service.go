package services

import (
	"time"

	"github.com/blossomhealth/blossom/internal/models"
)

type AuthUserRepository interface {
	ExistsByUsername(username string) (bool, error)
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByUsername(username string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	UpdateLastLogin(userID uint, at time.Time) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

func (service *AuthService) UsernameExists(username string) (bool, error) {
	return service.users.ExistsByUsername(username)
}

func (service *AuthService) RegistrationEmailExists(email string) (bool, error) {
	return service.users.ExistsByNormalizedEmail(email)
}

func (service *AuthService) CreateUser(user *models.User) error {
	return service.users.Create(user)
}

func (service *AuthService) FindByUsername(username string) (models.User, error) {
	return service.users.FindByUsername(username)
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

func (service *AuthService) RecordLogin(userID uint, at time.Time) error {
	return service.users.UpdateLastLogin(userID, at)
}
