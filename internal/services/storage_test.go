// storage_test.go
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

package services_test

import (
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/localnerve/expiestack/internal/database"
	"github.com/localnerve/expiestack/internal/models"
	"github.com/localnerve/expiestack/internal/services"
	"github.com/localnerve/expiestack/internal/types"
)

// setupStorage creates a repository with predictable ids
func setupStorage(t *testing.T) *services.MemStorage {
	t.Helper()
	return services.NewMemStorage(database.NewStore(), services.WithIDGenerator(database.NewSequenceGenerator("id")))
}

func strPtr(s string) *string { return &s }

func ids[T any](recs []T, id func(T) string) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, id(r))
	}
	sort.Strings(out)
	return out
}

// TestCreateThenGet checks that every entity reads back exactly as created
func TestCreateThenGet(t *testing.T) {
	s := setupStorage(t)

	user := s.CreateUser(models.NewUser{Email: "u@example.com", Password: "hash"})
	if got, ok := s.GetUser(user.ID); !ok || !reflect.DeepEqual(got, user) {
		t.Errorf("User mismatch: %+v vs %+v", got, user)
	}

	tool := s.ConnectTool(models.NewConnectedTool{UserID: user.ID, ToolName: "slack"})
	if got, ok := s.GetConnectedTool(tool.ID); !ok || !reflect.DeepEqual(got, tool) {
		t.Errorf("Tool mismatch: %+v vs %+v", got, tool)
	}

	resp := s.CreateCannedResponse(models.NewCannedResponse{UserID: user.ID, Title: "t", Content: "c", Tags: []string{"faq"}})
	if got, ok := s.GetCannedResponse(resp.ID); !ok || !reflect.DeepEqual(got, resp) {
		t.Errorf("Canned response mismatch: %+v vs %+v", got, resp)
	}

	item := s.CreateActionItem(models.NewActionItem{UserID: user.ID, Text: "call", Source: strPtr("call")})
	if got, ok := s.GetActionItem(item.ID); !ok || !reflect.DeepEqual(got, item) {
		t.Errorf("Action item mismatch: %+v vs %+v", got, item)
	}

	auto := s.CreateAutomation(models.NewAutomation{UserID: user.ID, TriggerType: "schedule", Action: "send_message", Tool: "slack"})
	if got, ok := s.GetAutomation(auto.ID); !ok || !reflect.DeepEqual(got, auto) {
		t.Errorf("Automation mismatch: %+v vs %+v", got, auto)
	}

	pref := s.SaveAccessibilityPreferences(user.ID, models.AccessibilitySettings{})
	if got, ok := s.GetAccessibilityPreferences(user.ID); !ok || !reflect.DeepEqual(got, pref) {
		t.Errorf("Preferences mismatch: %+v vs %+v", got, pref)
	}
}

func TestCreateFillsDefaults(t *testing.T) {
	s := setupStorage(t)

	user := s.CreateUser(models.NewUser{Email: "u@example.com"})
	if user.Mode != models.ModeZen || user.OnboardingComplete {
		t.Errorf("Unexpected user defaults: %+v", user)
	}
	if user.CreatedAt.IsZero() {
		t.Error("Expected created_at to be stamped")
	}

	if tool := s.ConnectTool(models.NewConnectedTool{UserID: user.ID, ToolName: "gmail"}); tool.Status != models.ToolPending || tool.ConnectedAt.IsZero() {
		t.Errorf("Unexpected tool defaults: %+v", tool)
	}

	if item := s.CreateActionItem(models.NewActionItem{UserID: user.ID, Text: "x"}); item.Status != models.StatusPending {
		t.Errorf("Expected pending status, got %s", item.Status)
	}

	auto := s.CreateAutomation(models.NewAutomation{UserID: user.ID, TriggerType: "a", Action: "b", Tool: "c"})
	if !auto.IsEnabled || auto.LastRun != nil {
		t.Errorf("Unexpected automation defaults: %+v", auto)
	}

	disabled := false
	if a := s.CreateAutomation(models.NewAutomation{UserID: user.ID, IsEnabled: &disabled}); a.IsEnabled {
		t.Error("Expected explicit is_enabled=false to be kept")
	}

	resp := s.CreateCannedResponse(models.NewCannedResponse{UserID: user.ID, Tags: []string{"faq", "faq", "", "sales"}})
	if resp.UsageCount != 0 || !reflect.DeepEqual(resp.Tags, []string{"faq", "sales"}) {
		t.Errorf("Unexpected canned response defaults: %+v", resp)
	}

	if a := s.AddAchievement(models.NewUserAchievement{UserID: user.ID, Badge: "first_login"}); a.EarnedAt.IsZero() {
		t.Error("Expected earned_at to be stamped")
	}
}

func TestGetMissing(t *testing.T) {
	s := setupStorage(t)
	if _, ok := s.GetUser("missing"); ok {
		t.Error("Expected missing user")
	}
	if _, ok := s.GetActionItem("missing"); ok {
		t.Error("Expected missing action item")
	}
	if _, ok := s.GetAccessibilityPreferences("missing"); ok {
		t.Error("Expected missing preferences")
	}
	if _, ok := s.UpdateAutomation("missing", models.AutomationPatch{}); ok {
		t.Error("Expected update of missing automation to report not found")
	}
	if _, ok := s.RunAutomation("missing"); ok {
		t.Error("Expected run of missing automation to report not found")
	}
}

func TestListByOwnerIsolation(t *testing.T) {
	s := setupStorage(t)
	a := s.CreateUser(models.NewUser{Email: "a@example.com"})
	b := s.CreateUser(models.NewUser{Email: "b@example.com"})

	for _, owner := range []string{a.ID, b.ID, a.ID} {
		s.CreateCannedResponse(models.NewCannedResponse{UserID: owner, Title: "t"})
		s.CreateActionItem(models.NewActionItem{UserID: owner, Text: "x"})
		s.CreateAutomation(models.NewAutomation{UserID: owner})
		s.ConnectTool(models.NewConnectedTool{UserID: owner, ToolName: "slack"})
		s.LogTimeSaved(models.NewTimeSaved{UserID: owner, ActionType: "x", MinutesSaved: 1})
		s.AddAchievement(models.NewUserAchievement{UserID: owner, Badge: "b"})
	}

	for _, r := range s.ListCannedResponses(a.ID) {
		if r.UserID != a.ID {
			t.Errorf("Canned response of %s listed for %s", r.UserID, a.ID)
		}
	}
	for _, r := range s.ListActionItems(a.ID) {
		if r.UserID != a.ID {
			t.Errorf("Action item of %s listed for %s", r.UserID, a.ID)
		}
	}
	for _, r := range s.ListAutomations(b.ID) {
		if r.UserID != b.ID {
			t.Errorf("Automation of %s listed for %s", r.UserID, b.ID)
		}
	}

	if n := len(s.ListCannedResponses(a.ID)); n != 2 {
		t.Errorf("Expected 2 canned responses for a, got %d", n)
	}
	if n := len(s.ListConnectedTools(b.ID)); n != 1 {
		t.Errorf("Expected 1 tool for b, got %d", n)
	}
	if n := len(s.ListTimeSaved(b.ID)); n != 1 {
		t.Errorf("Expected 1 ledger entry for b, got %d", n)
	}
	if n := len(s.ListAchievements(a.ID)); n != 2 {
		t.Errorf("Expected 2 achievements for a, got %d", n)
	}
}

func TestListByTag(t *testing.T) {
	s := setupStorage(t)
	u := s.CreateUser(models.NewUser{Email: "u@example.com"})
	other := s.CreateUser(models.NewUser{Email: "o@example.com"})

	r1 := s.CreateCannedResponse(models.NewCannedResponse{UserID: u.ID, Title: "R1", Tags: []string{"faq"}})
	s.CreateCannedResponse(models.NewCannedResponse{UserID: u.ID, Title: "R2", Tags: []string{"sales"}})
	s.CreateCannedResponse(models.NewCannedResponse{UserID: other.ID, Title: "R3", Tags: []string{"faq"}})

	got := s.ListCannedResponsesByTag(u.ID, "faq")
	if len(got) != 1 || !reflect.DeepEqual(got[0], r1) {
		t.Errorf("Expected exactly [R1], got %+v", got)
	}
}

func TestIncrementUsage(t *testing.T) {
	s := setupStorage(t)
	r := s.CreateCannedResponse(models.NewCannedResponse{UserID: "u", Title: "t"})

	for i := 0; i < 7; i++ {
		if !s.IncrementCannedResponseUsage(r.ID) {
			t.Fatal("Increment of existing response failed")
		}
	}
	if got, _ := s.GetCannedResponse(r.ID); got.UsageCount != 7 {
		t.Errorf("Expected usage 7, got %d", got.UsageCount)
	}

	before := s.ListCannedResponses("u")
	for i := 0; i < 3; i++ {
		if s.IncrementCannedResponseUsage("missing") {
			t.Error("Increment of missing response reported success")
		}
	}
	if after := s.ListCannedResponses("u"); !reflect.DeepEqual(before, after) {
		t.Error("Increment of missing response changed stored data")
	}
}

func TestTotalTimeSaved(t *testing.T) {
	s := setupStorage(t)
	for _, m := range []int{5, 3, 10} {
		s.LogTimeSaved(models.NewTimeSaved{UserID: "u", ActionType: "x", MinutesSaved: m})
	}
	s.LogTimeSaved(models.NewTimeSaved{UserID: "other", ActionType: "x", MinutesSaved: 100})

	if total := s.TotalTimeSaved("u"); total != 18 {
		t.Errorf("Expected 18, got %d", total)
	}
	if total := s.TotalTimeSaved("nobody"); total != 0 {
		t.Errorf("Expected 0, got %d", total)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := setupStorage(t)
	item := s.CreateActionItem(models.NewActionItem{UserID: "u", Text: "x"})
	keep := s.CreateActionItem(models.NewActionItem{UserID: "u", Text: "y"})

	if !s.DeleteActionItem(item.ID) {
		t.Fatal("First delete should succeed")
	}
	if s.DeleteActionItem(item.ID) {
		t.Error("Second delete should report false")
	}
	if got := ids(s.ListActionItems("u"), func(i models.ActionItem) string { return i.ID }); !reflect.DeepEqual(got, []string{keep.ID}) {
		t.Errorf("Expected only %s to remain, got %v", keep.ID, got)
	}

	r := s.CreateCannedResponse(models.NewCannedResponse{UserID: "u"})
	a := s.CreateAutomation(models.NewAutomation{UserID: "u"})
	if !s.DeleteCannedResponse(r.ID) || s.DeleteCannedResponse(r.ID) {
		t.Error("Canned response delete should return true then false")
	}
	if !s.DeleteAutomation(a.ID) || s.DeleteAutomation(a.ID) {
		t.Error("Automation delete should return true then false")
	}
}

func TestIdentifiersNotReused(t *testing.T) {
	s := setupStorage(t)
	first := s.CreateAutomation(models.NewAutomation{UserID: "u"})
	s.DeleteAutomation(first.ID)
	second := s.CreateAutomation(models.NewAutomation{UserID: "u"})
	if first.ID == second.ID {
		t.Errorf("Identifier %s reused after deletion", first.ID)
	}
}

func TestUpdatePreservesUnsetFields(t *testing.T) {
	s := setupStorage(t)
	due := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)
	item := s.CreateActionItem(models.NewActionItem{UserID: "u", Text: "Send listing", DueDate: &due, Source: strPtr("email")})

	completed := models.StatusCompleted
	updated, ok := s.UpdateActionItem(item.ID, models.ActionItemPatch{Status: &completed})
	if !ok {
		t.Fatal("Update failed")
	}
	if updated.Status != models.StatusCompleted {
		t.Errorf("Expected completed, got %s", updated.Status)
	}
	if updated.Text != item.Text || !updated.DueDate.Equal(due) || *updated.Source != "email" {
		t.Errorf("Unset fields changed: %+v", updated)
	}
	if updated.ID != item.ID || updated.UserID != item.UserID || !updated.CreatedAt.Equal(item.CreatedAt) {
		t.Errorf("Identity fields changed: %+v", updated)
	}
}

func TestUpdateClearsDueDateAndSource(t *testing.T) {
	s := setupStorage(t)
	due := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)
	item := s.CreateActionItem(models.NewActionItem{UserID: "u", Text: "Send listing", Status: models.StatusInProgress, DueDate: &due, Source: strPtr("email")})

	updated, ok := s.UpdateActionItem(item.ID, models.ActionItemPatch{
		DueDate: types.NullValue[time.Time](),
		Source:  types.NullValue[string](),
	})
	if !ok {
		t.Fatal("Update failed")
	}
	if updated.DueDate != nil || updated.Source != nil {
		t.Errorf("Expected due date and source cleared, got %v and %v", updated.DueDate, updated.Source)
	}
	if updated.Text != "Send listing" || updated.Status != models.StatusInProgress {
		t.Errorf("Unset fields changed: %+v", updated)
	}

	later := due.Add(24 * time.Hour)
	updated, _ = s.UpdateActionItem(item.ID, models.ActionItemPatch{DueDate: types.NullableOf(later)})
	if updated.DueDate == nil || !updated.DueDate.Equal(later) {
		t.Errorf("Expected due date %v, got %v", later, updated.DueDate)
	}
}

// TestStoredRecordsAreIsolated checks that neither create inputs nor returned
// records share memory with what the store keeps
func TestStoredRecordsAreIsolated(t *testing.T) {
	s := setupStorage(t)

	r := s.CreateCannedResponse(models.NewCannedResponse{UserID: "u", Title: "t", Content: "c", Tags: []string{"faq"}})
	r.Tags[0] = "changed"
	got, _ := s.GetCannedResponse(r.ID)
	got.Tags[0] = "changed"
	s.ListCannedResponses("u")[0].Tags[0] = "changed"
	if n := len(s.ListCannedResponsesByTag("u", "faq")); n != 1 {
		t.Errorf("Expected the stored tag to survive, found %d records", n)
	}

	src := "email"
	due := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)
	item := s.CreateActionItem(models.NewActionItem{UserID: "u", Text: "x", Source: &src, DueDate: &due})
	src = "changed"
	due = due.Add(time.Hour)
	*item.Source = "changed"
	stored, _ := s.GetActionItem(item.ID)
	if *stored.Source != "email" || !stored.DueDate.Equal(time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("Stored action item changed outside update: %v %v", *stored.Source, stored.DueDate)
	}

	auto := s.CreateAutomation(models.NewAutomation{UserID: "u", TriggerType: "a", Action: "b", Tool: "c"})
	run, _ := s.RunAutomation(auto.ID)
	*run.LastRun = time.Time{}
	if stored, _ := s.GetAutomation(auto.ID); stored.LastRun.IsZero() {
		t.Error("Stored last_run changed outside a run")
	}
}

func TestUpdateCannedResponseTags(t *testing.T) {
	s := setupStorage(t)
	r := s.CreateCannedResponse(models.NewCannedResponse{UserID: "u", Title: "old", Content: "body", Tags: []string{"faq"}})

	title := "new"
	updated, _ := s.UpdateCannedResponse(r.ID, models.CannedResponsePatch{Title: &title})
	if updated.Title != "new" || updated.Content != "body" || !reflect.DeepEqual(updated.Tags, []string{"faq"}) {
		t.Errorf("Unexpected update result: %+v", updated)
	}

	cleared, _ := s.UpdateCannedResponse(r.ID, models.CannedResponsePatch{Tags: []string{}})
	if len(cleared.Tags) != 0 {
		t.Errorf("Expected tags cleared, got %v", cleared.Tags)
	}
}

func TestRunAutomation(t *testing.T) {
	s := setupStorage(t)
	a := s.CreateAutomation(models.NewAutomation{UserID: "u", TriggerType: "schedule", Action: "send_message", Tool: "slack"})

	before := time.Now()
	s.RunAutomation(a.ID)
	after := time.Now()

	got, ok := s.GetAutomation(a.ID)
	if !ok {
		t.Fatal("Automation missing after run")
	}
	if got.LastRun == nil {
		t.Fatal("Expected last_run to be set")
	}
	if got.LastRun.Before(before) || got.LastRun.After(after) {
		t.Errorf("last_run %s outside [%s, %s]", got.LastRun, before, after)
	}
	if !got.IsEnabled {
		t.Error("Run must not change is_enabled")
	}
}

func TestRunAutomationUsesClock(t *testing.T) {
	fixed := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	s := services.NewMemStorage(database.NewStore(), services.WithClock(func() time.Time { return fixed }))
	a := s.CreateAutomation(models.NewAutomation{UserID: "u"})

	ran, _ := s.RunAutomation(a.ID)
	if !ran.LastRun.Equal(fixed) || !ran.CreatedAt.Equal(fixed) {
		t.Errorf("Expected injected clock to be used, got %+v", ran)
	}
}

func TestAccessibilitySaveTwice(t *testing.T) {
	s := setupStorage(t)
	on, off := true, false

	first, created := s.UpsertAccessibilityPreferences("u", models.AccessibilitySettings{DarkMode: &on})
	if !created {
		t.Error("First save should create")
	}
	second, created := s.UpsertAccessibilityPreferences("u", models.AccessibilitySettings{DarkMode: &off, LargeText: &on})
	if created {
		t.Error("Second save should update")
	}
	if second.ID != first.ID {
		t.Errorf("Expected same record, got %s and %s", first.ID, second.ID)
	}

	if n := s.Store().AccessibilityPreferences.Len(); n != 1 {
		t.Errorf("Expected exactly one record, got %d", n)
	}
	got, _ := s.GetAccessibilityPreferences("u")
	if got.DarkMode || !got.LargeText {
		t.Errorf("Expected latest values, got %+v", got)
	}
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Error("updated_at must not precede created_at")
	}
}

func TestUpdateToolStatusAndUser(t *testing.T) {
	s := setupStorage(t)
	u := s.CreateUser(models.NewUser{Email: "U@Example.com"})
	if _, ok := s.GetUserByEmail("u@example.com"); !ok {
		t.Error("Expected case-insensitive email lookup")
	}

	mode := models.ModeFocus
	updated, ok := s.UpdateUser(u.ID, models.UserPatch{Mode: &mode})
	if !ok || updated.Mode != models.ModeFocus || updated.Email != u.Email {
		t.Errorf("Unexpected user update: %+v", updated)
	}

	tool := s.ConnectTool(models.NewConnectedTool{UserID: u.ID, ToolName: "gmail"})
	connected, ok := s.UpdateToolStatus(tool.ID, models.ToolConnected)
	if !ok || connected.Status != models.ToolConnected || connected.ToolName != "gmail" {
		t.Errorf("Unexpected tool update: %+v", connected)
	}
}

func TestActionItemOutputs(t *testing.T) {
	s := setupStorage(t)
	item := s.CreateActionItem(models.NewActionItem{UserID: "u", Text: "x"})
	other := s.CreateActionItem(models.NewActionItem{UserID: "u", Text: "y"})

	s.CreateActionItemOutput(models.NewActionItemOutput{UserID: "u", ActionItemID: item.ID, Output: "draft", ToolUsed: "openai"})
	s.CreateActionItemOutput(models.NewActionItemOutput{UserID: "u", ActionItemID: other.ID, Output: "draft", ToolUsed: "openai"})

	outputs := s.ListActionItemOutputs(item.ID)
	if len(outputs) != 1 || outputs[0].ActionItemID != item.ID || outputs[0].ToolUsed != "openai" {
		t.Errorf("Unexpected outputs: %+v", outputs)
	}
}
