package services

import (
	"errors"

	"github.com/Stefan-migo/businessManagementApp-sub001/app/models"
	"github.com/Stefan-migo/businessManagementApp-sub001/app/repo"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserService struct{ users *repo.UserRepository }

func NewUserService(users *repo.UserRepository) *UserService { return &UserService{users: users} }

func (s *UserService) EnsureAdmin(username, password string) error {
	count, err := s.users.CountByUsername(username)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.Create(&models.User{Username: username, PasswordHash: string(hash), Role: "admin"})
}

func (s *UserService) CreateUser(username, email, password, role string) error {
	if role == "" {
		role = "user"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.Create(&models.User{Username: username, Email: email, PasswordHash: string(hash), Role: role})
}

func (s *UserService) ValidateCredentials(username, password string) (*models.User, error) {
	u, err := s.users.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
