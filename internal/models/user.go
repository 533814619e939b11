package models

import "time"

// UserMode is the dashboard personality a user picked during onboarding
type UserMode string

const (
	ModeHype  UserMode = "hype"
	ModeZen   UserMode = "zen"
	ModeChaos UserMode = "chaos"
	ModeFocus UserMode = "focus"
)

// User is the root entity; every other record is owned by one
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Password           string    `json:"-"`
	Mode               UserMode  `json:"mode"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	CreatedAt          time.Time `json:"created_at"`
}

// NewUser is the create input for a User. Password must already be hashed.
type NewUser struct {
	Email              string
	Password           string
	Mode               UserMode
	OnboardingComplete bool
}

// UserPatch lists the user fields that may be changed after creation
type UserPatch struct {
	Mode               *UserMode `json:"mode,omitempty"`
	OnboardingComplete *bool     `json:"onboarding_complete,omitempty"`
}

// Apply merges the provided fields into u
func (p UserPatch) Apply(u *User) {
	if p.Mode != nil {
		u.Mode = *p.Mode
	}
	if p.OnboardingComplete != nil {
		u.OnboardingComplete = *p.OnboardingComplete
	}
}
