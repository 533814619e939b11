// handlers_test.go
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

package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/localnerve/expiestack/internal/database"
	"github.com/localnerve/expiestack/internal/handlers"
	"github.com/localnerve/expiestack/internal/integrations"
	"github.com/localnerve/expiestack/internal/metrics"
	"github.com/localnerve/expiestack/internal/middleware"
	"github.com/localnerve/expiestack/internal/models"
	"github.com/localnerve/expiestack/internal/schema"
	"github.com/localnerve/expiestack/internal/services"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const demoEmail = "agent@example.com"

type testEnv struct {
	app     *fiber.App
	storage *services.MemStorage
	user    models.User
}

// setupApp builds the API over a fresh store. With withDemo the registered
// agent is the fallback session user.
func setupApp(t *testing.T, withDemo bool) *testEnv {
	t.Helper()

	storage := services.NewMemStorage(database.NewStore(), services.WithIDGenerator(database.NewSequenceGenerator("t")))
	auth := services.NewAuthService(storage, 4)
	validator, err := schema.New()
	if err != nil {
		t.Fatalf("Failed to compile schemas: %v", err)
	}

	user, err := auth.Register(demoEmail, "password123", models.ModeHype, true)
	if err != nil {
		t.Fatalf("Failed to register agent: %v", err)
	}

	fallback := ""
	if withDemo {
		fallback = demoEmail
	}

	sessions := session.New(session.Config{KeyLookup: "cookie:expie_session"})
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	api := app.Group("/api")
	handlers.Register(api, handlers.Dependencies{
		Storage:   storage,
		Auth:      auth,
		Sessions:  sessions,
		Validator: validator,
		Assistant: integrations.NewSimulatedAssistant(0),
		Messenger: integrations.NewSimulatedSlack(0, time.Hour),
	}, middleware.SessionUser(sessions, storage, fallback))

	return &testEnv{app: app, storage: storage, user: user}
}

// do sends a request and decodes a JSON response into out when out is non-nil
func (e *testEnv) do(t *testing.T, method, path, body string, out interface{}, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", method, path, err)
	}
	if out != nil {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Failed to decode %s %s response: %v", method, path, err)
		}
	}
	return resp
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("Expected status %d, got %d", want, resp.StatusCode)
	}
}

func TestCannedResponseUseCreditsTimeSaved(t *testing.T) {
	env := setupApp(t, true)
	usesBefore := testutil.ToFloat64(metrics.CannedResponseUsesTotal)

	var created models.CannedResponse
	resp := env.do(t, "POST", "/api/canned-responses", `{"title":"Showing","content":"Thanks for visiting!","tags":"faq, sales"}`, &created)
	expectStatus(t, resp, fiber.StatusCreated)
	if created.UserID != env.user.ID || created.UsageCount != 0 {
		t.Errorf("Unexpected created record: %+v", created)
	}
	if len(created.Tags) != 2 || created.Tags[0] != "faq" || created.Tags[1] != "sales" {
		t.Errorf("Expected tags [faq sales], got %v", created.Tags)
	}

	var used models.CannedResponse
	env.do(t, "POST", "/api/canned-responses/"+created.ID+"/use", "", nil)
	resp = env.do(t, "POST", "/api/canned-responses/"+created.ID+"/use", "", &used)
	expectStatus(t, resp, fiber.StatusOK)
	if used.UsageCount != 2 {
		t.Errorf("Expected usage 2, got %d", used.UsageCount)
	}

	var total handlers.TotalResponse
	resp = env.do(t, "GET", "/api/time-saved/total", "", &total)
	expectStatus(t, resp, fiber.StatusOK)
	if total.Minutes != 2 {
		t.Errorf("Expected 2 minutes, got %d", total.Minutes)
	}

	if got := testutil.ToFloat64(metrics.CannedResponseUsesTotal) - usesBefore; got != 2 {
		t.Errorf("Expected 2 counted uses, got %v", got)
	}
}

func TestListCannedResponsesByTag(t *testing.T) {
	env := setupApp(t, true)
	env.do(t, "POST", "/api/canned-responses", `{"title":"R1","content":"a","tags":["faq"]}`, nil)
	env.do(t, "POST", "/api/canned-responses", `{"title":"R2","content":"b","tags":["sales"]}`, nil)

	var list []models.CannedResponse
	resp := env.do(t, "GET", "/api/canned-responses?tag=faq", "", &list)
	expectStatus(t, resp, fiber.StatusOK)
	if len(list) != 1 || list[0].Title != "R1" {
		t.Errorf("Expected only R1, got %+v", list)
	}
}

func TestCreateRejectsInvalidBody(t *testing.T) {
	env := setupApp(t, true)

	var body map[string]interface{}
	resp := env.do(t, "POST", "/api/canned-responses", `{"content":"missing title"}`, &body)
	expectStatus(t, resp, fiber.StatusBadRequest)
	if body["type"] != "validation" || body["ok"] != false {
		t.Errorf("Unexpected error envelope: %v", body)
	}
	if _, ok := body["fields"]; !ok {
		t.Error("Expected field details in validation error")
	}

	resp = env.do(t, "POST", "/api/action-items", `{"text":`, nil)
	expectStatus(t, resp, fiber.StatusBadRequest)

	if n := len(env.storage.ListCannedResponses(env.user.ID)); n != 0 {
		t.Errorf("Invalid input reached the store: %d records", n)
	}
}

func TestOtherUsersRecordsAreNotFound(t *testing.T) {
	env := setupApp(t, true)
	other := env.storage.CreateUser(models.NewUser{Email: "other@example.com"})
	auto := env.storage.CreateAutomation(models.NewAutomation{UserID: other.ID, TriggerType: "schedule", Action: "send_message", Tool: "slack"})

	expectStatus(t, env.do(t, "PATCH", "/api/automations/"+auto.ID, `{"tool":"gmail"}`, nil), fiber.StatusNotFound)
	expectStatus(t, env.do(t, "POST", "/api/automations/"+auto.ID+"/run", "", nil), fiber.StatusNotFound)
	expectStatus(t, env.do(t, "DELETE", "/api/automations/"+auto.ID, "", nil), fiber.StatusNotFound)

	got, ok := env.storage.GetAutomation(auto.ID)
	if !ok || got.Tool != "slack" || got.LastRun != nil {
		t.Errorf("Other user's automation changed: %+v", got)
	}

	var list []models.Automation
	env.do(t, "GET", "/api/automations", "", &list)
	if len(list) != 0 {
		t.Errorf("Expected no automations for the agent, got %d", len(list))
	}
}

func TestDeleteThenDeleteAgain(t *testing.T) {
	env := setupApp(t, true)

	var item models.ActionItem
	expectStatus(t, env.do(t, "POST", "/api/action-items", `{"text":"Call the lender"}`, &item), fiber.StatusCreated)
	expectStatus(t, env.do(t, "DELETE", "/api/action-items/"+item.ID, "", nil), fiber.StatusNoContent)
	expectStatus(t, env.do(t, "DELETE", "/api/action-items/"+item.ID, "", nil), fiber.StatusNotFound)
}

func TestUpdateActionItemKeepsOtherFields(t *testing.T) {
	env := setupApp(t, true)

	var item models.ActionItem
	env.do(t, "POST", "/api/action-items", `{"text":"Send listing","source":"email","due_date":"2026-11-01T09:00:00Z"}`, &item)

	var updated models.ActionItem
	resp := env.do(t, "PATCH", "/api/action-items/"+item.ID, `{"status":"completed"}`, &updated)
	expectStatus(t, resp, fiber.StatusOK)
	if updated.Status != models.StatusCompleted || updated.Text != "Send listing" || updated.Source == nil || *updated.Source != "email" {
		t.Errorf("Unexpected update result: %+v", updated)
	}
	if updated.DueDate == nil || !updated.DueDate.Equal(*item.DueDate) {
		t.Errorf("Expected due date kept, got %v", updated.DueDate)
	}
}

func TestUpdateActionItemClearsDueDate(t *testing.T) {
	env := setupApp(t, true)

	var item models.ActionItem
	env.do(t, "POST", "/api/action-items", `{"text":"Send listing","status":"in_progress","due_date":"2026-11-01T09:00:00Z"}`, &item)
	if item.DueDate == nil {
		t.Fatal("Expected a due date on create")
	}

	var updated models.ActionItem
	resp := env.do(t, "PATCH", "/api/action-items/"+item.ID, `{"due_date":null}`, &updated)
	expectStatus(t, resp, fiber.StatusOK)
	if updated.DueDate != nil {
		t.Errorf("Expected due date cleared, got %v", updated.DueDate)
	}
	if updated.Text != "Send listing" || updated.Status != models.StatusInProgress {
		t.Errorf("Unset fields changed: %+v", updated)
	}
	if stored, _ := env.storage.GetActionItem(item.ID); stored.DueDate != nil {
		t.Errorf("Stored due date not cleared: %v", stored.DueDate)
	}
}

func TestToolsRoutes(t *testing.T) {
	env := setupApp(t, true)

	var tool models.ConnectedTool
	resp := env.do(t, "POST", "/api/tools", `{"tool_name":"slack","status":"connected"}`, &tool)
	expectStatus(t, resp, fiber.StatusCreated)
	if tool.ToolName != "slack" || tool.Status != models.ToolConnected || tool.UserID != env.user.ID {
		t.Errorf("Unexpected tool: %+v", tool)
	}

	var tools []models.ConnectedTool
	expectStatus(t, env.do(t, "GET", "/api/tools", "", &tools), fiber.StatusOK)
	if len(tools) != 1 || tools[0].ID != tool.ID {
		t.Errorf("Expected the connected tool listed, got %+v", tools)
	}

	var updated models.ConnectedTool
	expectStatus(t, env.do(t, "PATCH", "/api/tools/"+tool.ID, `{"status":"pending"}`, &updated), fiber.StatusOK)
	if updated.Status != models.ToolPending {
		t.Errorf("Expected pending, got %s", updated.Status)
	}
}

func TestAutomationCreateAndRun(t *testing.T) {
	env := setupApp(t, true)

	var auto models.Automation
	resp := env.do(t, "POST", "/api/automations", `{"trigger_type":"new_listing","action":"send_message","tool":"slack"}`, &auto)
	expectStatus(t, resp, fiber.StatusCreated)
	if !auto.IsEnabled || auto.LastRun != nil {
		t.Errorf("Unexpected automation defaults: %+v", auto)
	}

	var ran models.Automation
	expectStatus(t, env.do(t, "POST", "/api/automations/"+auto.ID+"/run", "", &ran), fiber.StatusOK)
	if ran.LastRun == nil || !ran.IsEnabled {
		t.Errorf("Unexpected run result: %+v", ran)
	}

	var total handlers.TotalResponse
	env.do(t, "GET", "/api/time-saved/total", "", &total)
	if total.Minutes != 8 {
		t.Errorf("Expected 3 + 5 = 8 minutes, got %d", total.Minutes)
	}
}

func TestTimeSavedAcceptsStringMinutes(t *testing.T) {
	env := setupApp(t, true)

	var entry models.TimeSaved
	resp := env.do(t, "POST", "/api/time-saved", `{"action_type":"manual","minutes_saved":"90"}`, &entry)
	expectStatus(t, resp, fiber.StatusCreated)
	if entry.MinutesSaved != 90 {
		t.Errorf("Expected 90 minutes, got %d", entry.MinutesSaved)
	}

	var total handlers.TotalResponse
	env.do(t, "GET", "/api/time-saved/total", "", &total)
	if total.Minutes != 90 || total.Hours != 1.5 {
		t.Errorf("Expected 90 minutes / 1.5 hours, got %+v", total)
	}

	expectStatus(t, env.do(t, "POST", "/api/time-saved", `{"action_type":"manual","minutes_saved":-4}`, nil), fiber.StatusBadRequest)

	env.do(t, "POST", "/api/time-saved", `{"action_type":"manual","minutes_saved":10}`, nil)
	env.do(t, "GET", "/api/time-saved/total", "", &total)
	if total.Minutes != 100 || total.Hours != float64(100)/60 {
		t.Errorf("Expected 100 minutes / unrounded hours, got %+v", total)
	}
}

func TestAccessibilityDefaultsThenUpsert(t *testing.T) {
	env := setupApp(t, true)

	var pref models.AccessibilityPreference
	expectStatus(t, env.do(t, "GET", "/api/accessibility", "", &pref), fiber.StatusOK)
	if pref.DarkMode || pref.LargeText || pref.ReduceMotion || pref.HighContrast {
		t.Errorf("Expected all-off defaults, got %+v", pref)
	}

	var first, second models.AccessibilityPreference
	expectStatus(t, env.do(t, "POST", "/api/accessibility", `{"dark_mode":true}`, &first), fiber.StatusCreated)
	expectStatus(t, env.do(t, "POST", "/api/accessibility", `{"large_text":true}`, &second), fiber.StatusOK)
	if first.ID != second.ID || !second.DarkMode || !second.LargeText {
		t.Errorf("Expected one merged record, got %+v and %+v", first, second)
	}

	var patched models.AccessibilityPreference
	expectStatus(t, env.do(t, "PATCH", "/api/accessibility/"+first.ID, `{"dark_mode":false}`, &patched), fiber.StatusOK)
	if patched.DarkMode || !patched.LargeText {
		t.Errorf("Unexpected patch result: %+v", patched)
	}
	expectStatus(t, env.do(t, "PATCH", "/api/accessibility/missing", `{"dark_mode":false}`, nil), fiber.StatusNotFound)
}

func TestRegisterLoginAndMe(t *testing.T) {
	env := setupApp(t, true)

	var registered map[string]interface{}
	resp := env.do(t, "POST", "/api/auth/register", `{"email":"new@example.com","password":"secret99"}`, &registered)
	expectStatus(t, resp, fiber.StatusCreated)
	if _, ok := registered["password"]; ok {
		t.Error("Password leaked in register response")
	}
	if registered["mode"] != string(models.ModeZen) {
		t.Errorf("Expected default mode zen, got %v", registered["mode"])
	}

	expectStatus(t, env.do(t, "POST", "/api/auth/register", `{"email":"new@example.com","password":"secret99"}`, nil), fiber.StatusBadRequest)
	expectStatus(t, env.do(t, "POST", "/api/auth/login", `{"email":"new@example.com","password":"wrong-one"}`, nil), fiber.StatusUnauthorized)

	resp = env.do(t, "POST", "/api/auth/login", `{"email":"new@example.com","password":"secret99"}`, nil)
	expectStatus(t, resp, fiber.StatusOK)
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("Expected a session cookie")
	}

	var me models.User
	expectStatus(t, env.do(t, "GET", "/api/auth/me", "", &me, cookies...), fiber.StatusOK)
	if me.Email != "new@example.com" {
		t.Errorf("Expected the signed in user, got %s", me.Email)
	}

	var demo models.User
	env.do(t, "GET", "/api/auth/me", "", &demo)
	if demo.ID != env.user.ID {
		t.Errorf("Expected demo fallback user without a cookie, got %s", demo.Email)
	}
}

func TestUpdateSettings(t *testing.T) {
	env := setupApp(t, true)

	var user models.User
	expectStatus(t, env.do(t, "PATCH", "/api/user/settings", `{"mode":"focus"}`, &user), fiber.StatusOK)
	if user.Mode != models.ModeFocus || !user.OnboardingComplete {
		t.Errorf("Unexpected settings result: %+v", user)
	}
	expectStatus(t, env.do(t, "PATCH", "/api/user/settings", `{"mode":"sleepy"}`, nil), fiber.StatusBadRequest)
}

func TestUnauthenticatedWithoutDemoUser(t *testing.T) {
	env := setupApp(t, false)

	var body map[string]interface{}
	resp := env.do(t, "GET", "/api/action-items", "", &body)
	expectStatus(t, resp, fiber.StatusUnauthorized)
	if body["ok"] != false || body["url"] != "/api/action-items" {
		t.Errorf("Unexpected error envelope: %v", body)
	}
}

func TestDraftAndExtract(t *testing.T) {
	env := setupApp(t, true)

	var item models.ActionItem
	env.do(t, "POST", "/api/action-items", `{"text":"Schedule a follow-up meeting"}`, &item)

	var output models.ActionItemOutput
	expectStatus(t, env.do(t, "POST", "/api/action-items/"+item.ID+"/gpt", "", &output), fiber.StatusOK)
	if output.ActionItemID != item.ID || output.ToolUsed != "openai" || !strings.Contains(output.Output, "Follow-Up Meeting") {
		t.Errorf("Unexpected draft output: %+v", output)
	}

	var outputs []models.ActionItemOutput
	env.do(t, "GET", "/api/action-items/"+item.ID+"/outputs", "", &outputs)
	if len(outputs) != 1 {
		t.Errorf("Expected 1 output, got %d", len(outputs))
	}

	var extracted []models.ActionItem
	resp := env.do(t, "POST", "/api/action-items/extract",
		`{"transcript":"We need to send the contract. Nice weather today. Sarah will schedule the inspection."}`, &extracted)
	expectStatus(t, resp, fiber.StatusCreated)
	if len(extracted) != 2 {
		t.Fatalf("Expected 2 extracted items, got %d", len(extracted))
	}
	for _, x := range extracted {
		if x.Source == nil || *x.Source != "transcript" || x.Status != models.StatusPending {
			t.Errorf("Unexpected extracted item: %+v", x)
		}
	}

	var total handlers.TotalResponse
	env.do(t, "GET", "/api/time-saved/total", "", &total)
	if total.Minutes != 2 {
		t.Errorf("Expected 2 minutes for one draft, got %d", total.Minutes)
	}
}

func TestSlackRoutes(t *testing.T) {
	env := setupApp(t, true)

	var channels []integrations.Channel
	expectStatus(t, env.do(t, "GET", "/api/slack/channels", "", &channels), fiber.StatusOK)
	if len(channels) != len(integrations.DefaultChannels) {
		t.Errorf("Expected %d channels, got %d", len(integrations.DefaultChannels), len(channels))
	}

	var msg integrations.Message
	expectStatus(t, env.do(t, "POST", "/api/slack/send", `{"channel":"#leads","text":"New lead"}`, &msg), fiber.StatusOK)
	if msg.ChannelName != "leads" || msg.ID == "" {
		t.Errorf("Unexpected message: %+v", msg)
	}
	expectStatus(t, env.do(t, "POST", "/api/slack/send", `{"channel":"#nope","text":"x"}`, nil), fiber.StatusBadRequest)

	var resp models.CannedResponse
	env.do(t, "POST", "/api/canned-responses", `{"title":"Hi","content":"Welcome aboard"}`, &resp)
	expectStatus(t, env.do(t, "POST", "/api/canned-responses/"+resp.ID+"/slack", `{"channel":"general"}`, &msg), fiber.StatusOK)
	if msg.Text != "Welcome aboard" {
		t.Errorf("Expected canned content sent, got %q", msg.Text)
	}
	if got, _ := env.storage.GetCannedResponse(resp.ID); got.UsageCount != 1 {
		t.Errorf("Expected Slack send to count as a use, got %d", got.UsageCount)
	}
}

func TestSlackHistory(t *testing.T) {
	env := setupApp(t, true)

	var history []integrations.Message
	expectStatus(t, env.do(t, "GET", "/api/slack/history?channel=leads", "", &history), fiber.StatusOK)
	if len(history) != 0 {
		t.Errorf("Expected empty history, got %d messages", len(history))
	}

	env.do(t, "POST", "/api/slack/send", `{"channel":"#leads","text":"First"}`, nil)
	env.do(t, "POST", "/api/slack/send", `{"channel":"leads","text":"Second"}`, nil)
	env.do(t, "POST", "/api/slack/send", `{"channel":"general","text":"Elsewhere"}`, nil)

	expectStatus(t, env.do(t, "GET", "/api/slack/history?channel=leads", "", &history), fiber.StatusOK)
	if len(history) != 2 || history[0].Text != "First" || history[1].Text != "Second" {
		t.Errorf("Unexpected leads history: %+v", history)
	}

	expectStatus(t, env.do(t, "GET", "/api/slack/history?channel=nope", "", nil), fiber.StatusBadRequest)
	expectStatus(t, env.do(t, "GET", "/api/slack/history", "", nil), fiber.StatusBadRequest)
}
