package services

import (
	"strings"

	"github.com/localnerve/expiestack/internal/models"
)

// GetUser retrieves a user by id
func (m *MemStorage) GetUser(id string) (models.User, bool) {
	return m.store.Users.Get(id)
}

// GetUserByEmail finds a user by email, ignoring case
func (m *MemStorage) GetUserByEmail(email string) (models.User, bool) {
	return m.store.Users.Find(func(u models.User) bool {
		return strings.EqualFold(u.Email, email)
	})
}

// CreateUser stores a new user. Email uniqueness is checked by the caller.
func (m *MemStorage) CreateUser(in models.NewUser) models.User {
	mode := in.Mode
	if mode == "" {
		mode = models.ModeZen
	}
	return newID(m, m.store.Users, func(id string) models.User {
		return models.User{
			ID:                 id,
			Email:              in.Email,
			Password:           in.Password,
			Mode:               mode,
			OnboardingComplete: in.OnboardingComplete,
			CreatedAt:          m.now(),
		}
	})
}

// UpdateUser applies a settings patch
func (m *MemStorage) UpdateUser(id string, patch models.UserPatch) (models.User, bool) {
	return m.store.Users.Modify(id, patch.Apply)
}
