package services

import "github.com/localnerve/expiestack/internal/models"

// GetAccessibilityPreferences returns the user's preferences record, if any
func (m *MemStorage) GetAccessibilityPreferences(userID string) (models.AccessibilityPreference, bool) {
	return m.store.AccessibilityPreferences.Find(func(p models.AccessibilityPreference) bool {
		return p.UserID == userID
	})
}

// SaveAccessibilityPreferences creates a preferences record. Omitted settings
// default to false. Callers check for an existing record first.
func (m *MemStorage) SaveAccessibilityPreferences(userID string, settings models.AccessibilitySettings) models.AccessibilityPreference {
	now := m.now()
	return newID(m, m.store.AccessibilityPreferences, func(id string) models.AccessibilityPreference {
		p := models.AccessibilityPreference{
			ID:        id,
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		settings.Apply(&p)
		return p
	})
}

// UpdateAccessibilityPreferences merges settings and refreshes updated_at
func (m *MemStorage) UpdateAccessibilityPreferences(id string, settings models.AccessibilitySettings) (models.AccessibilityPreference, bool) {
	return m.store.AccessibilityPreferences.Modify(id, func(p *models.AccessibilityPreference) {
		settings.Apply(p)
		p.UpdatedAt = m.now()
	})
}

// UpsertAccessibilityPreferences updates the user's record, creating it on
// first save. The check and the write are serialized so a user never ends up
// with two records. created reports whether a new record was made.
func (m *MemStorage) UpsertAccessibilityPreferences(userID string, settings models.AccessibilitySettings) (pref models.AccessibilityPreference, created bool) {
	m.prefsMu.Lock()
	defer m.prefsMu.Unlock()

	if existing, ok := m.GetAccessibilityPreferences(userID); ok {
		if updated, ok := m.UpdateAccessibilityPreferences(existing.ID, settings); ok {
			return updated, false
		}
	}
	return m.SaveAccessibilityPreferences(userID, settings), true
}
