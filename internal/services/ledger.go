package services

import "github.com/localnerve/expiestack/internal/models"

// ListTimeSaved returns the user's ledger entries
func (m *MemStorage) ListTimeSaved(userID string) []models.TimeSaved {
	return m.store.TimeSaved.Scan(ownedBy(userID, func(e models.TimeSaved) string { return e.UserID }))
}

// TotalTimeSaved sums minutes_saved over the user's entries, recomputed on
// every call. A user without entries has saved 0 minutes.
func (m *MemStorage) TotalTimeSaved(userID string) int {
	total := 0
	for _, e := range m.ListTimeSaved(userID) {
		total += e.MinutesSaved
	}
	return total
}

// LogTimeSaved appends a ledger entry
func (m *MemStorage) LogTimeSaved(in models.NewTimeSaved) models.TimeSaved {
	return newID(m, m.store.TimeSaved, func(id string) models.TimeSaved {
		return models.TimeSaved{
			ID:           id,
			UserID:       in.UserID,
			ActionType:   in.ActionType,
			MinutesSaved: in.MinutesSaved,
			CreatedAt:    m.now(),
		}
	})
}

// ListAchievements returns the user's badges
func (m *MemStorage) ListAchievements(userID string) []models.UserAchievement {
	return m.store.UserAchievements.Scan(ownedBy(userID, func(a models.UserAchievement) string { return a.UserID }))
}

// AddAchievement awards a badge
func (m *MemStorage) AddAchievement(in models.NewUserAchievement) models.UserAchievement {
	return newID(m, m.store.UserAchievements, func(id string) models.UserAchievement {
		return models.UserAchievement{
			ID:       id,
			UserID:   in.UserID,
			Badge:    in.Badge,
			EarnedAt: m.now(),
		}
	})
}
