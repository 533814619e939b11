package services

import "github.com/localnerve/expiestack/internal/models"

func toolOwner(t models.ConnectedTool) string { return t.UserID }

// ListConnectedTools returns the user's connected tools
func (m *MemStorage) ListConnectedTools(userID string) []models.ConnectedTool {
	return m.store.ConnectedTools.Scan(ownedBy(userID, toolOwner))
}

// GetConnectedTool retrieves a tool connection by id
func (m *MemStorage) GetConnectedTool(id string) (models.ConnectedTool, bool) {
	return m.store.ConnectedTools.Get(id)
}

// ConnectTool records a tool connection, pending unless a status is given
func (m *MemStorage) ConnectTool(in models.NewConnectedTool) models.ConnectedTool {
	status := in.Status
	if status == "" {
		status = models.ToolPending
	}
	return newID(m, m.store.ConnectedTools, func(id string) models.ConnectedTool {
		return models.ConnectedTool{
			ID:          id,
			UserID:      in.UserID,
			ToolName:    in.ToolName,
			Status:      status,
			ConnectedAt: m.now(),
		}
	})
}

// UpdateToolStatus changes a connection's status
func (m *MemStorage) UpdateToolStatus(id string, status models.ToolStatus) (models.ConnectedTool, bool) {
	return m.store.ConnectedTools.Modify(id, func(t *models.ConnectedTool) {
		t.Status = status
	})
}
