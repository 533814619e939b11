package models

import "time"

// Action types recorded in the time saved ledger
const (
	ActionCannedResponse    = "canned_response"
	ActionGPTDraft          = "gpt_draft"
	ActionAutomationCreated = "automation_created"
	ActionAutomationRun     = "automation_run"
)

// TimeSaved is one append-only ledger entry
type TimeSaved struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ActionType   string    `json:"action_type"`
	MinutesSaved int       `json:"minutes_saved"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewTimeSaved is the create input for a TimeSaved entry
type NewTimeSaved struct {
	UserID       string
	ActionType   string
	MinutesSaved int
}

// UserAchievement is an earned badge
type UserAchievement struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Badge    string    `json:"badge"`
	EarnedAt time.Time `json:"earned_at"`
}

// NewUserAchievement is the create input for a UserAchievement
type NewUserAchievement struct {
	UserID string `json:"-"`
	Badge  string `json:"badge"`
}
