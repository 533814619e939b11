package models

import "time"

// AccessibilityPreference holds display settings; at most one per user
type AccessibilityPreference struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	LargeText    bool      `json:"large_text"`
	DarkMode     bool      `json:"dark_mode"`
	ReduceMotion bool      `json:"reduce_motion"`
	HighContrast bool      `json:"high_contrast"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccessibilitySettings is the user-editable part of an AccessibilityPreference
type AccessibilitySettings struct {
	LargeText    *bool `json:"large_text,omitempty"`
	DarkMode     *bool `json:"dark_mode,omitempty"`
	ReduceMotion *bool `json:"reduce_motion,omitempty"`
	HighContrast *bool `json:"high_contrast,omitempty"`
}

// Apply merges the provided settings into p
func (s AccessibilitySettings) Apply(p *AccessibilityPreference) {
	if s.LargeText != nil {
		p.LargeText = *s.LargeText
	}
	if s.DarkMode != nil {
		p.DarkMode = *s.DarkMode
	}
	if s.ReduceMotion != nil {
		p.ReduceMotion = *s.ReduceMotion
	}
	if s.HighContrast != nil {
		p.HighContrast = *s.HighContrast
	}
}
