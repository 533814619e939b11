// routes.go
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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/localnerve/expiestack/internal/integrations"
	"github.com/localnerve/expiestack/internal/schema"
	"github.com/localnerve/expiestack/internal/services"
)

// Dependencies are the collaborators the route handlers share
type Dependencies struct {
	Storage   services.Storage
	Auth      *services.AuthService
	Sessions  *session.Store
	Validator *schema.Validator
	Assistant integrations.Assistant
	Messenger integrations.Messenger
}

// Register mounts every API route on api. requireUser guards the routes that
// act on the session user.
func Register(api fiber.Router, d Dependencies, requireUser fiber.Handler) {
	authHandler := &AuthHandler{Storage: d.Storage, Auth: d.Auth, Sessions: d.Sessions, Validator: d.Validator}
	toolHandler := &ToolHandler{Storage: d.Storage, Validator: d.Validator}
	cannedHandler := &CannedResponseHandler{Storage: d.Storage, Validator: d.Validator, Assistant: d.Assistant, Messenger: d.Messenger}
	actionHandler := &ActionItemHandler{Storage: d.Storage, Validator: d.Validator, Assistant: d.Assistant}
	automationHandler := &AutomationHandler{Storage: d.Storage, Validator: d.Validator, Assistant: d.Assistant}
	timeSavedHandler := &TimeSavedHandler{Storage: d.Storage, Validator: d.Validator}
	achievementHandler := &AchievementHandler{Storage: d.Storage, Validator: d.Validator}
	accessibilityHandler := &AccessibilityHandler{Storage: d.Storage, Validator: d.Validator}
	slackHandler := &SlackHandler{Validator: d.Validator, Messenger: d.Messenger}

	// Auth routes (public except me)
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", requireUser, authHandler.Me)

	api.Patch("/user/settings", requireUser, authHandler.UpdateSettings)

	tools := api.Group("/tools", requireUser)
	tools.Get("/", toolHandler.List)
	tools.Post("/", toolHandler.Connect)
	tools.Patch("/:id", toolHandler.UpdateStatus)

	canned := api.Group("/canned-responses", requireUser)
	canned.Get("/", cannedHandler.List)
	canned.Post("/", cannedHandler.Create)
	canned.Post("/suggest", cannedHandler.Suggest)
	canned.Patch("/:id", cannedHandler.Update)
	canned.Delete("/:id", cannedHandler.Delete)
	canned.Post("/:id/use", cannedHandler.Use)
	canned.Post("/:id/slack", cannedHandler.SendToSlack)

	actions := api.Group("/action-items", requireUser)
	actions.Get("/", actionHandler.List)
	actions.Post("/", actionHandler.Create)
	actions.Post("/extract", actionHandler.Extract)
	actions.Patch("/:id", actionHandler.Update)
	actions.Delete("/:id", actionHandler.Delete)
	actions.Post("/:id/gpt", actionHandler.Draft)
	actions.Get("/:id/outputs", actionHandler.Outputs)

	automations := api.Group("/automations", requireUser)
	automations.Get("/", automationHandler.List)
	automations.Post("/", automationHandler.Create)
	automations.Post("/suggest", automationHandler.Suggest)
	automations.Patch("/:id", automationHandler.Update)
	automations.Delete("/:id", automationHandler.Delete)
	automations.Post("/:id/run", automationHandler.Run)

	timeSaved := api.Group("/time-saved", requireUser)
	timeSaved.Get("/", timeSavedHandler.List)
	timeSaved.Post("/", timeSavedHandler.Create)
	timeSaved.Get("/total", timeSavedHandler.Total)

	achievements := api.Group("/achievements", requireUser)
	achievements.Get("/", achievementHandler.List)
	achievements.Post("/", achievementHandler.Create)

	accessibility := api.Group("/accessibility", requireUser)
	accessibility.Get("/", accessibilityHandler.Get)
	accessibility.Post("/", accessibilityHandler.Save)
	accessibility.Patch("/:id", accessibilityHandler.Update)

	slack := api.Group("/slack", requireUser)
	slack.Post("/send", slackHandler.Send)
	slack.Get("/channels", slackHandler.Channels)
	slack.Get("/history", slackHandler.History)
}
