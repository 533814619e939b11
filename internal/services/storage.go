// storage.go
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
	"errors"
	"sync"
	"time"

	"github.com/localnerve/expiestack/internal/database"
	"github.com/localnerve/expiestack/internal/models"
)

// Storage is the only way handlers reach the store. Lookups report absence
// with a false second result; deletes report whether a record was removed.
type Storage interface {
	// Users
	GetUser(id string) (models.User, bool)
	GetUserByEmail(email string) (models.User, bool)
	CreateUser(in models.NewUser) models.User
	UpdateUser(id string, patch models.UserPatch) (models.User, bool)

	// Connected tools
	ListConnectedTools(userID string) []models.ConnectedTool
	GetConnectedTool(id string) (models.ConnectedTool, bool)
	ConnectTool(in models.NewConnectedTool) models.ConnectedTool
	UpdateToolStatus(id string, status models.ToolStatus) (models.ConnectedTool, bool)

	// Canned responses
	ListCannedResponses(userID string) []models.CannedResponse
	ListCannedResponsesByTag(userID, tag string) []models.CannedResponse
	GetCannedResponse(id string) (models.CannedResponse, bool)
	CreateCannedResponse(in models.NewCannedResponse) models.CannedResponse
	UpdateCannedResponse(id string, patch models.CannedResponsePatch) (models.CannedResponse, bool)
	DeleteCannedResponse(id string) bool
	IncrementCannedResponseUsage(id string) bool

	// Action items
	ListActionItems(userID string) []models.ActionItem
	GetActionItem(id string) (models.ActionItem, bool)
	CreateActionItem(in models.NewActionItem) models.ActionItem
	UpdateActionItem(id string, patch models.ActionItemPatch) (models.ActionItem, bool)
	DeleteActionItem(id string) bool

	// Action item outputs
	ListActionItemOutputs(actionItemID string) []models.ActionItemOutput
	CreateActionItemOutput(in models.NewActionItemOutput) models.ActionItemOutput

	// Automations
	ListAutomations(userID string) []models.Automation
	GetAutomation(id string) (models.Automation, bool)
	CreateAutomation(in models.NewAutomation) models.Automation
	UpdateAutomation(id string, patch models.AutomationPatch) (models.Automation, bool)
	RunAutomation(id string) (models.Automation, bool)
	DeleteAutomation(id string) bool

	// Time saved ledger
	ListTimeSaved(userID string) []models.TimeSaved
	TotalTimeSaved(userID string) int
	LogTimeSaved(in models.NewTimeSaved) models.TimeSaved

	// Achievements
	ListAchievements(userID string) []models.UserAchievement
	AddAchievement(in models.NewUserAchievement) models.UserAchievement

	// Accessibility preferences
	GetAccessibilityPreferences(userID string) (models.AccessibilityPreference, bool)
	SaveAccessibilityPreferences(userID string, settings models.AccessibilitySettings) models.AccessibilityPreference
	UpdateAccessibilityPreferences(id string, settings models.AccessibilitySettings) (models.AccessibilityPreference, bool)
	UpsertAccessibilityPreferences(userID string, settings models.AccessibilitySettings) (models.AccessibilityPreference, bool)
}

// MemStorage implements Storage on top of the in-memory store
type MemStorage struct {
	store *database.Store
	ids   database.IDGenerator
	now   func() time.Time

	prefsMu sync.Mutex
}

// Option configures a MemStorage
type Option func(*MemStorage)

// WithIDGenerator replaces the default UUID generator
func WithIDGenerator(ids database.IDGenerator) Option {
	return func(m *MemStorage) { m.ids = ids }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(m *MemStorage) { m.now = now }
}

// NewMemStorage creates the repository over store
func NewMemStorage(store *database.Store, opts ...Option) *MemStorage {
	m := &MemStorage{
		store: store,
		ids:   database.UUIDGenerator{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Store returns the underlying store
func (m *MemStorage) Store() *database.Store {
	return m.store
}

// maxIDAttempts bounds how many taken ids newID accepts from the generator
const maxIDAttempts = 32

// ErrIDsExhausted is the panic value when the id generator keeps returning
// ids that are already taken. The recover middleware turns it into a 500.
var ErrIDsExhausted = errors.New("id generator returned only taken ids")

// newID draws ids until one is free in the collection, so a generator that
// repeats can never overwrite a record.
func newID[T any](m *MemStorage, c *database.Collection[T], build func(id string) T) T {
	for range maxIDAttempts {
		id := m.ids.NewID()
		rec := build(id)
		if c.Insert(id, rec) {
			return rec
		}
	}
	panic(ErrIDsExhausted)
}

func ownedBy[T any](userID string, owner func(T) string) func(T) bool {
	return func(rec T) bool { return owner(rec) == userID }
}

var _ Storage = (*MemStorage)(nil)
