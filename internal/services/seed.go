// seed.go
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

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/localnerve/expiestack/internal/models"
	"github.com/sirupsen/logrus"
)

type seedUser struct {
	Email              string          `json:"email"`
	Password           string          `json:"password"`
	Mode               models.UserMode `json:"mode"`
	OnboardingComplete bool            `json:"onboarding_complete"`
}

type seedCannedResponse struct {
	models.NewCannedResponse
	UsageCount int `json:"usage_count"`
}

type seedActionItem struct {
	Text       string                  `json:"text"`
	Status     models.ActionItemStatus `json:"status"`
	Source     string                  `json:"source"`
	Transcript string                  `json:"transcript"`
	DueInDays  int                     `json:"due_in_days"`
}

type seedTimeSaved struct {
	ActionType   string `json:"action_type"`
	MinutesSaved int    `json:"minutes_saved"`
}

// SeedData is the demo fixture. Everything but users belongs to the first user.
type SeedData struct {
	Users           []seedUser                   `json:"users"`
	Tools           []models.NewConnectedTool    `json:"tools"`
	CannedResponses []seedCannedResponse         `json:"canned_responses"`
	ActionItems     []seedActionItem             `json:"action_items"`
	Automations     []models.NewAutomation       `json:"automations"`
	TimeSaved       []seedTimeSaved              `json:"time_saved"`
	Achievements    []string                     `json:"achievements"`
	Accessibility   models.AccessibilitySettings `json:"accessibility"`
}

// SeedDemo loads the demo fixture. Users whose email already exists are
// skipped, and the rest of the fixture is only written when the main user is
// created by this call, so seeding twice does not duplicate data.
func SeedDemo(storage Storage, auth *AuthService, fixture []byte, now time.Time) error {
	var seed SeedData
	if err := json.Unmarshal(fixture, &seed); err != nil {
		return fmt.Errorf("failed to parse seed fixture: %w", err)
	}
	if len(seed.Users) == 0 {
		logrus.Info("Seed fixture has no users, skipping")
		return nil
	}

	log := logrus.WithField("component", "seed")
	var main models.User
	mainCreated := false

	for i, u := range seed.Users {
		user, exists := storage.GetUserByEmail(u.Email)
		if exists {
			log.WithField("email", u.Email).Info("User already exists, skipping")
		} else {
			var err error
			user, err = auth.Register(u.Email, u.Password, u.Mode, u.OnboardingComplete)
			if err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
			}
			if i == 0 {
				mainCreated = true
			}
		}
		if i == 0 {
			main = user
		}
	}

	if !mainCreated {
		log.WithField("email", main.Email).Info("Demo data already present")
		return nil
	}

	for _, t := range seed.Tools {
		t.UserID = main.ID
		storage.ConnectTool(t)
	}

	for _, r := range seed.CannedResponses {
		r.UserID = main.ID
		created := storage.CreateCannedResponse(r.NewCannedResponse)
		for n := 0; n < r.UsageCount; n++ {
			storage.IncrementCannedResponseUsage(created.ID)
		}
	}

	for _, a := range seed.ActionItems {
		due := now.AddDate(0, 0, a.DueInDays)
		in := models.NewActionItem{
			UserID:  main.ID,
			Text:    a.Text,
			Status:  a.Status,
			DueDate: &due,
		}
		if a.Source != "" {
			source := a.Source
			in.Source = &source
		}
		if a.Transcript != "" {
			transcript := a.Transcript
			in.Transcript = &transcript
		}
		storage.CreateActionItem(in)
	}

	for _, a := range seed.Automations {
		a.UserID = main.ID
		storage.CreateAutomation(a)
	}

	for _, e := range seed.TimeSaved {
		storage.LogTimeSaved(models.NewTimeSaved{UserID: main.ID, ActionType: e.ActionType, MinutesSaved: e.MinutesSaved})
	}

	for _, badge := range seed.Achievements {
		storage.AddAchievement(models.NewUserAchievement{UserID: main.ID, Badge: badge})
	}

	storage.UpsertAccessibilityPreferences(main.ID, seed.Accessibility)

	log.WithFields(logrus.Fields{
		"user":             main.Email,
		"tools":            len(seed.Tools),
		"canned_responses": len(seed.CannedResponses),
		"action_items":     len(seed.ActionItems),
		"automations":      len(seed.Automations),
	}).Info("Seeded demo data")
	return nil
}
