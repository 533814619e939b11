package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/localnerve/expiestack/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken is returned when registering an email that already exists
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService registers and authenticates users stored in Storage
type AuthService struct {
	storage Storage
	cost    int

	// serializes the email check and the insert on registration
	mu sync.Mutex
}

// NewAuthService creates an AuthService hashing with the given bcrypt cost
func NewAuthService(storage Storage, cost int) *AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{storage: storage, cost: cost}
}

// HashPassword hashes a plain text password
func (a *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Register creates a user with a hashed password
func (a *AuthService) Register(email, password string, mode models.UserMode, onboardingComplete bool) (models.User, error) {
	email = strings.TrimSpace(email)

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.storage.GetUserByEmail(email); exists {
		return models.User{}, ErrEmailTaken
	}

	hash, err := a.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := a.storage.CreateUser(models.NewUser{
		Email:              email,
		Password:           hash,
		Mode:               mode,
		OnboardingComplete: onboardingComplete,
	})
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("Registered user")
	return user, nil
}

// Authenticate checks an email and password pair
func (a *AuthService) Authenticate(email, password string) (models.User, error) {
	user, ok := a.storage.GetUserByEmail(strings.TrimSpace(email))
	if !ok {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}
