package models

import "time"

// ToolStatus tracks a third-party tool connection
type ToolStatus string

const (
	ToolPending   ToolStatus = "pending"
	ToolConnected ToolStatus = "connected"
)

// ConnectedTool is a third-party integration a user has linked (slack, gmail, ...)
type ConnectedTool struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	ToolName    string     `json:"tool_name"`
	Status      ToolStatus `json:"status"`
	ConnectedAt time.Time  `json:"connected_at"`
}

// NewConnectedTool is the create input for a ConnectedTool
type NewConnectedTool struct {
	UserID   string     `json:"-"`
	ToolName string     `json:"tool_name"`
	Status   ToolStatus `json:"status,omitempty"`
}
