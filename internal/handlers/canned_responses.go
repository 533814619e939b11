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

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/expiestack/internal/integrations"
	"github.com/localnerve/expiestack/internal/metrics"
	"github.com/localnerve/expiestack/internal/models"
	"github.com/localnerve/expiestack/internal/schema"
	"github.com/localnerve/expiestack/internal/services"
	"github.com/localnerve/expiestack/internal/types"
	"github.com/localnerve/expiestack/internal/utils"
)

// CannedResponseHandler handles canned response routes
type CannedResponseHandler struct {
	Storage   services.Storage
	Validator *schema.Validator
	Assistant integrations.Assistant
	Messenger integrations.Messenger
}

type suggestResponseRequest struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

type channelRequest struct {
	Channel string `json:"channel"`
}

// owned returns the canned response when it belongs to the session user
func (h *CannedResponseHandler) owned(c *fiber.Ctx) (models.CannedResponse, string, error) {
	userID, err := getUserID(c)
	if err != nil {
		return models.CannedResponse{}, "", err
	}
	resp, ok := h.Storage.GetCannedResponse(c.Params("id"))
	if !ok || resp.UserID != userID {
		return models.CannedResponse{}, userID, types.NotFound("Canned response not found", "notFound")
	}
	return resp, userID, nil
}

// use counts one use of a canned response and credits the time saved
func (h *CannedResponseHandler) use(userID, id string) bool {
	if !h.Storage.IncrementCannedResponseUsage(id) {
		return false
	}
	metrics.CannedResponseUsesTotal.Inc()
	creditTimeSaved(h.Storage, userID, models.ActionCannedResponse, minutesCannedResponse)
	return true
}

// List handles GET /api/canned-responses
// @Summary List canned responses
// @Description Lists the user's canned responses, optionally only those carrying a tag
// @Tags CannedResponses
// @Produce json
// @Param tag query string false "Tag filter"
// @Success 200 {array} models.CannedResponse
// @Router /canned-responses [get]
func (h *CannedResponseHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	if tag := c.Query("tag"); tag != "" {
		return utils.SuccessResponse(c, h.Storage.ListCannedResponsesByTag(userID, tag), fiber.StatusOK)
	}
	return utils.SuccessResponse(c, h.Storage.ListCannedResponses(userID), fiber.StatusOK)
}

// Create handles POST /api/canned-responses
// @Summary Create a canned response
// @Tags CannedResponses
// @Accept json
// @Produce json
// @Param body body models.NewCannedResponse true "Canned response"
// @Success 201 {object} models.CannedResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /canned-responses [post]
func (h *CannedResponseHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var in models.NewCannedResponse
	if err := decodeBody(c, h.Validator, "canned_response", &in); err != nil {
		return err
	}
	in.UserID = userID

	return utils.CreatedResponse(c, h.Storage.CreateCannedResponse(in))
}

// Update handles PATCH /api/canned-responses/:id
// @Summary Update a canned response
// @Tags CannedResponses
// @Accept json
// @Produce json
// @Param id path string true "Canned response ID"
// @Param body body models.CannedResponsePatch true "Changes"
// @Success 200 {object} models.CannedResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /canned-responses/{id} [patch]
func (h *CannedResponseHandler) Update(c *fiber.Ctx) error {
	existing, _, err := h.owned(c)
	if err != nil {
		return err
	}

	var patch models.CannedResponsePatch
	if err := decodeBody(c, h.Validator, "canned_response_patch", &patch); err != nil {
		return err
	}

	updated, ok := h.Storage.UpdateCannedResponse(existing.ID, patch)
	if !ok {
		return utils.NotFoundResponse(c, "Canned response not found")
	}
	return utils.SuccessResponse(c, updated, fiber.StatusOK)
}

// Delete handles DELETE /api/canned-responses/:id
// @Summary Delete a canned response
// @Tags CannedResponses
// @Param id path string true "Canned response ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /canned-responses/{id} [delete]
func (h *CannedResponseHandler) Delete(c *fiber.Ctx) error {
	existing, _, err := h.owned(c)
	if err != nil {
		return err
	}
	if !h.Storage.DeleteCannedResponse(existing.ID) {
		return utils.NotFoundResponse(c, "Canned response not found")
	}
	return utils.NoContentResponse(c)
}

// Use handles POST /api/canned-responses/:id/use
// @Summary Record a use of a canned response
// @Description Increments the usage count and credits one minute saved
// @Tags CannedResponses
// @Produce json
// @Param id path string true "Canned response ID"
// @Success 200 {object} models.CannedResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /canned-responses/{id}/use [post]
func (h *CannedResponseHandler) Use(c *fiber.Ctx) error {
	existing, userID, err := h.owned(c)
	if err != nil {
		return err
	}
	if !h.use(userID, existing.ID) {
		return utils.NotFoundResponse(c, "Canned response not found")
	}

	updated, ok := h.Storage.GetCannedResponse(existing.ID)
	if !ok {
		return utils.NotFoundResponse(c, "Canned response not found")
	}
	return utils.SuccessResponse(c, updated, fiber.StatusOK)
}

// SendToSlack handles POST /api/canned-responses/:id/slack
// @Summary Post a canned response to a Slack channel
// @Tags CannedResponses
// @Accept json
// @Produce json
// @Param id path string true "Canned response ID"
// @Param body body channelRequest true "Channel"
// @Success 200 {object} integrations.Message
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /canned-responses/{id}/slack [post]
func (h *CannedResponseHandler) SendToSlack(c *fiber.Ctx) error {
	existing, userID, err := h.owned(c)
	if err != nil {
		return err
	}

	var req channelRequest
	if err := decodeBody(c, h.Validator, "slack_channel", &req); err != nil {
		return err
	}

	msg, err := h.Messenger.Send(c.UserContext(), req.Channel, existing.Content)
	if err != nil {
		if errors.Is(err, integrations.ErrUnknownChannel) {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "slack.send")
		}
		return integrationFailed(c, err, "slack.send")
	}

	h.use(userID, existing.ID)
	return utils.SuccessResponse(c, msg, fiber.StatusOK)
}

// Suggest handles POST /api/canned-responses/suggest
// @Summary Draft canned response content
// @Tags CannedResponses
// @Accept json
// @Produce json
// @Param body body suggestResponseRequest true "Title and tags"
// @Success 200 {object} map[string]string
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /canned-responses/suggest [post]
func (h *CannedResponseHandler) Suggest(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return err
	}

	var req suggestResponseRequest
	if err := decodeBody(c, h.Validator, "canned_response_suggestion", &req); err != nil {
		return err
	}

	content, err := h.Assistant.SuggestCannedResponse(c.UserContext(), req.Title, req.Tags)
	if err != nil {
		return integrationFailed(c, err, "openai.suggest")
	}
	return utils.SuccessResponse(c, fiber.Map{"content": content}, fiber.StatusOK)
}
