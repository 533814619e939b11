package services

import "github.com/localnerve/expiestack/internal/models"

// ListActionItems returns the user's action items. Status filtering is left
// to the caller.
func (m *MemStorage) ListActionItems(userID string) []models.ActionItem {
	return m.store.ActionItems.Scan(ownedBy(userID, func(i models.ActionItem) string { return i.UserID }))
}

// GetActionItem retrieves an action item by id
func (m *MemStorage) GetActionItem(id string) (models.ActionItem, bool) {
	return m.store.ActionItems.Get(id)
}

// CreateActionItem stores an action item, pending unless a status is given
func (m *MemStorage) CreateActionItem(in models.NewActionItem) models.ActionItem {
	status := in.Status
	if status == "" {
		status = models.StatusPending
	}
	return newID(m, m.store.ActionItems, func(id string) models.ActionItem {
		return models.ActionItem{
			ID:         id,
			UserID:     in.UserID,
			Text:       in.Text,
			Status:     status,
			Transcript: in.Transcript,
			DueDate:    in.DueDate,
			Source:     in.Source,
			CreatedAt:  m.now(),
		}
	})
}

// UpdateActionItem applies a patch; omitted fields keep their values
func (m *MemStorage) UpdateActionItem(id string, patch models.ActionItemPatch) (models.ActionItem, bool) {
	return m.store.ActionItems.Modify(id, patch.Apply)
}

// DeleteActionItem removes an action item. Its outputs are kept.
func (m *MemStorage) DeleteActionItem(id string) bool {
	return m.store.ActionItems.Remove(id)
}

// ListActionItemOutputs returns the outputs generated for an action item
func (m *MemStorage) ListActionItemOutputs(actionItemID string) []models.ActionItemOutput {
	return m.store.ActionItemOutputs.Scan(func(o models.ActionItemOutput) bool {
		return o.ActionItemID == actionItemID
	})
}

// CreateActionItemOutput stores generated output for an action item
func (m *MemStorage) CreateActionItemOutput(in models.NewActionItemOutput) models.ActionItemOutput {
	return newID(m, m.store.ActionItemOutputs, func(id string) models.ActionItemOutput {
		return models.ActionItemOutput{
			ID:           id,
			UserID:       in.UserID,
			ActionItemID: in.ActionItemID,
			Output:       in.Output,
			ToolUsed:     in.ToolUsed,
			CreatedAt:    m.now(),
		}
	})
}
