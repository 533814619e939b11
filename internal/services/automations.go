package services

import "github.com/localnerve/expiestack/internal/models"

// ListAutomations returns the user's automations
func (m *MemStorage) ListAutomations(userID string) []models.Automation {
	return m.store.Automations.Scan(ownedBy(userID, func(a models.Automation) string { return a.UserID }))
}

// GetAutomation retrieves an automation by id
func (m *MemStorage) GetAutomation(id string) (models.Automation, bool) {
	return m.store.Automations.Get(id)
}

// CreateAutomation stores an automation, enabled unless told otherwise, never run
func (m *MemStorage) CreateAutomation(in models.NewAutomation) models.Automation {
	enabled := true
	if in.IsEnabled != nil {
		enabled = *in.IsEnabled
	}
	return newID(m, m.store.Automations, func(id string) models.Automation {
		return models.Automation{
			ID:          id,
			UserID:      in.UserID,
			TriggerType: in.TriggerType,
			Action:      in.Action,
			Tool:        in.Tool,
			IsEnabled:   enabled,
			LastRun:     nil,
			CreatedAt:   m.now(),
		}
	})
}

// UpdateAutomation applies a patch
func (m *MemStorage) UpdateAutomation(id string, patch models.AutomationPatch) (models.Automation, bool) {
	return m.store.Automations.Modify(id, patch.Apply)
}

// RunAutomation stamps last_run with the current time. Performing the
// automation's action is up to the caller.
func (m *MemStorage) RunAutomation(id string) (models.Automation, bool) {
	return m.store.Automations.Modify(id, func(a *models.Automation) {
		ran := m.now()
		a.LastRun = &ran
	})
}

// DeleteAutomation removes an automation
func (m *MemStorage) DeleteAutomation(id string) bool {
	return m.store.Automations.Remove(id)
}
