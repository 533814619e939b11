package models

import "time"

// Automation connects a trigger to an action performed with a tool
type Automation struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	TriggerType string     `json:"trigger_type"`
	Action      string     `json:"action"`
	Tool        string     `json:"tool"`
	IsEnabled   bool       `json:"is_enabled"`
	LastRun     *time.Time `json:"last_run"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewAutomation is the create input for an Automation. A nil IsEnabled means enabled.
type NewAutomation struct {
	UserID      string `json:"-"`
	TriggerType string `json:"trigger_type"`
	Action      string `json:"action"`
	Tool        string `json:"tool"`
	IsEnabled   *bool  `json:"is_enabled,omitempty"`
}

// AutomationPatch lists the patchable automation fields.
// last_run is only written by a run.
type AutomationPatch struct {
	TriggerType *string `json:"trigger_type,omitempty"`
	Action      *string `json:"action,omitempty"`
	Tool        *string `json:"tool,omitempty"`
	IsEnabled   *bool   `json:"is_enabled,omitempty"`
}

// Apply merges the provided fields into a
func (p AutomationPatch) Apply(a *Automation) {
	if p.TriggerType != nil {
		a.TriggerType = *p.TriggerType
	}
	if p.Action != nil {
		a.Action = *p.Action
	}
	if p.Tool != nil {
		a.Tool = *p.Tool
	}
	if p.IsEnabled != nil {
		a.IsEnabled = *p.IsEnabled
	}
}
