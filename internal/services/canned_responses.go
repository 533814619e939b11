// canned_responses.go
//
// Productivity dashboard service for real estate agents
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of expiestack.
// expiestack is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// expiestack is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with expiestack.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import "github.com/localnerve/expiestack/internal/models"

func cannedOwner(r models.CannedResponse) string { return r.UserID }

// ListCannedResponses returns the user's canned responses
func (m *MemStorage) ListCannedResponses(userID string) []models.CannedResponse {
	return m.store.CannedResponses.Scan(ownedBy(userID, cannedOwner))
}

// ListCannedResponsesByTag returns the user's canned responses carrying tag
func (m *MemStorage) ListCannedResponsesByTag(userID, tag string) []models.CannedResponse {
	return m.store.CannedResponses.Scan(func(r models.CannedResponse) bool {
		return r.UserID == userID && r.HasTag(tag)
	})
}

// GetCannedResponse retrieves a canned response by id
func (m *MemStorage) GetCannedResponse(id string) (models.CannedResponse, bool) {
	return m.store.CannedResponses.Get(id)
}

// CreateCannedResponse stores a canned response with a zero usage count
func (m *MemStorage) CreateCannedResponse(in models.NewCannedResponse) models.CannedResponse {
	tags := models.UniqueTags(in.Tags)
	return newID(m, m.store.CannedResponses, func(id string) models.CannedResponse {
		return models.CannedResponse{
			ID:         id,
			UserID:     in.UserID,
			Title:      in.Title,
			Content:    in.Content,
			Tags:       tags,
			UsageCount: 0,
			CreatedAt:  m.now(),
		}
	})
}

// UpdateCannedResponse applies a patch to title, content or tags
func (m *MemStorage) UpdateCannedResponse(id string, patch models.CannedResponsePatch) (models.CannedResponse, bool) {
	return m.store.CannedResponses.Modify(id, patch.Apply)
}

// DeleteCannedResponse removes a canned response
func (m *MemStorage) DeleteCannedResponse(id string) bool {
	return m.store.CannedResponses.Remove(id)
}

// IncrementCannedResponseUsage adds exactly one to the usage count
func (m *MemStorage) IncrementCannedResponseUsage(id string) bool {
	_, ok := m.store.CannedResponses.Modify(id, func(r *models.CannedResponse) {
		r.UsageCount++
	})
	return ok
}
