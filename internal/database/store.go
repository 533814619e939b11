// store.go
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

package database

import (
	"github.com/localnerve/expiestack/internal/models"
	"github.com/sirupsen/logrus"
)

// Store holds one independent collection per entity kind. It is built once at
// startup and handed to the services that need it.
type Store struct {
	Users                    *Collection[models.User]
	ConnectedTools           *Collection[models.ConnectedTool]
	CannedResponses          *Collection[models.CannedResponse]
	ActionItems              *Collection[models.ActionItem]
	ActionItemOutputs        *Collection[models.ActionItemOutput]
	Automations              *Collection[models.Automation]
	TimeSaved                *Collection[models.TimeSaved]
	UserAchievements         *Collection[models.UserAchievement]
	AccessibilityPreferences *Collection[models.AccessibilityPreference]
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		Users:                    NewCollection[models.User](),
		ConnectedTools:           NewCollection[models.ConnectedTool](),
		CannedResponses:          NewCollection[models.CannedResponse](),
		ActionItems:              NewCollection[models.ActionItem](),
		ActionItemOutputs:        NewCollection[models.ActionItemOutput](),
		Automations:              NewCollection[models.Automation](),
		TimeSaved:                NewCollection[models.TimeSaved](),
		UserAchievements:         NewCollection[models.UserAchievement](),
		AccessibilityPreferences: NewCollection[models.AccessibilityPreference](),
	}
}

// Counts reports the number of records in every collection, keyed by table name
func (s *Store) Counts() map[string]int {
	return map[string]int{
		"users":                     s.Users.Len(),
		"connected_tools":           s.ConnectedTools.Len(),
		"canned_responses":          s.CannedResponses.Len(),
		"action_items":              s.ActionItems.Len(),
		"action_item_outputs":       s.ActionItemOutputs.Len(),
		"automations":               s.Automations.Len(),
		"time_saved":                s.TimeSaved.Len(),
		"user_achievements":         s.UserAchievements.Len(),
		"accessibility_preferences": s.AccessibilityPreferences.Len(),
	}
}

// Close releases the store. Records live only in process memory and are lost.
func Close(s *Store) error {
	total := 0
	for _, n := range s.Counts() {
		total += n
	}
	logrus.Infof("Discarding in-memory store (%d records)", total)
	return nil
}
