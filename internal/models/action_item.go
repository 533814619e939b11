package models

import (
	"time"

	"github.com/localnerve/expiestack/internal/types"
)

// ActionItemStatus is the workflow state of an action item
type ActionItemStatus string

const (
	StatusPending    ActionItemStatus = "pending"
	StatusInProgress ActionItemStatus = "in_progress"
	StatusCompleted  ActionItemStatus = "completed"
)

// ActionItem is a task captured manually or extracted from a meeting transcript
type ActionItem struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	Text       string           `json:"text"`
	Status     ActionItemStatus `json:"status"`
	Transcript *string          `json:"transcript"`
	DueDate    *time.Time       `json:"due_date"`
	Source     *string          `json:"source"`
	CreatedAt  time.Time        `json:"created_at"`
}

// NewActionItem is the create input for an ActionItem
type NewActionItem struct {
	UserID     string           `json:"-"`
	Text       string           `json:"text"`
	Status     ActionItemStatus `json:"status,omitempty"`
	Transcript *string          `json:"transcript,omitempty"`
	DueDate    *time.Time       `json:"due_date,omitempty"`
	Source     *string          `json:"source,omitempty"`
}

// ActionItemPatch lists the patchable action item fields.
// The transcript is fixed at creation. A null due_date or source clears it.
type ActionItemPatch struct {
	Text    *string                   `json:"text,omitempty"`
	Status  *ActionItemStatus         `json:"status,omitempty"`
	DueDate types.Nullable[time.Time] `json:"due_date" swaggertype:"string" format:"date-time"`
	Source  types.Nullable[string]    `json:"source" swaggertype:"string"`
}

// Apply merges the provided fields into item
func (p ActionItemPatch) Apply(item *ActionItem) {
	if p.Text != nil {
		item.Text = *p.Text
	}
	if p.Status != nil {
		item.Status = *p.Status
	}
	if p.DueDate.Set {
		item.DueDate = clonePtr(p.DueDate.Value)
	}
	if p.Source.Set {
		item.Source = clonePtr(p.Source.Value)
	}
}

// ActionItemOutput is generated content (a draft, a message) attached to an action item
type ActionItemOutput struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ActionItemID string    `json:"action_item_id"`
	Output       string    `json:"output"`
	ToolUsed     string    `json:"tool_used"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewActionItemOutput is the create input for an ActionItemOutput
type NewActionItemOutput struct {
	UserID       string
	ActionItemID string
	Output       string
	ToolUsed     string
}
