package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/expiestack/internal/integrations"
	"github.com/localnerve/expiestack/internal/logging"
	"github.com/localnerve/expiestack/internal/models"
	"github.com/localnerve/expiestack/internal/schema"
	"github.com/localnerve/expiestack/internal/services"
	"github.com/localnerve/expiestack/internal/types"
	"github.com/localnerve/expiestack/internal/utils"
)

const (
	toolOpenAI       = "openai"
	sourceTranscript = "transcript"
)

// ActionItemHandler handles action item routes
type ActionItemHandler struct {
	Storage   services.Storage
	Validator *schema.Validator
	Assistant integrations.Assistant
}

type transcriptRequest struct {
	Transcript string `json:"transcript"`
}

func (h *ActionItemHandler) owned(c *fiber.Ctx) (models.ActionItem, string, error) {
	userID, err := getUserID(c)
	if err != nil {
		return models.ActionItem{}, "", err
	}
	item, ok := h.Storage.GetActionItem(c.Params("id"))
	if !ok || item.UserID != userID {
		return models.ActionItem{}, userID, types.NotFound("Action item not found", "notFound")
	}
	return item, userID, nil
}

// List handles GET /api/action-items
// @Summary List action items
// @Tags ActionItems
// @Produce json
// @Success 200 {array} models.ActionItem
// @Router /action-items [get]
func (h *ActionItemHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, h.Storage.ListActionItems(userID), fiber.StatusOK)
}

// Create handles POST /api/action-items
// @Summary Create an action item
// @Tags ActionItems
// @Accept json
// @Produce json
// @Param body body models.NewActionItem true "Action item"
// @Success 201 {object} models.ActionItem
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /action-items [post]
func (h *ActionItemHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var in models.NewActionItem
	if err := decodeBody(c, h.Validator, "action_item", &in); err != nil {
		return err
	}
	in.UserID = userID

	return utils.CreatedResponse(c, h.Storage.CreateActionItem(in))
}

// Update handles PATCH /api/action-items/:id
// @Summary Update an action item
// @Tags ActionItems
// @Accept json
// @Produce json
// @Param id path string true "Action item ID"
// @Param body body models.ActionItemPatch true "Changes"
// @Success 200 {object} models.ActionItem
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /action-items/{id} [patch]
func (h *ActionItemHandler) Update(c *fiber.Ctx) error {
	existing, _, err := h.owned(c)
	if err != nil {
		return err
	}

	var patch models.ActionItemPatch
	if err := decodeBody(c, h.Validator, "action_item_patch", &patch); err != nil {
		return err
	}

	updated, ok := h.Storage.UpdateActionItem(existing.ID, patch)
	if !ok {
		return utils.NotFoundResponse(c, "Action item not found")
	}
	return utils.SuccessResponse(c, updated, fiber.StatusOK)
}

// Delete handles DELETE /api/action-items/:id
// @Summary Delete an action item
// @Tags ActionItems
// @Param id path string true "Action item ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /action-items/{id} [delete]
func (h *ActionItemHandler) Delete(c *fiber.Ctx) error {
	existing, _, err := h.owned(c)
	if err != nil {
		return err
	}
	if !h.Storage.DeleteActionItem(existing.ID) {
		return utils.NotFoundResponse(c, "Action item not found")
	}
	return utils.NoContentResponse(c)
}

// Draft handles POST /api/action-items/:id/gpt
// @Summary Draft a response for an action item
// @Description Drafts text from the item and its transcript, stores it as an output and credits two minutes saved
// @Tags ActionItems
// @Produce json
// @Param id path string true "Action item ID"
// @Success 200 {object} models.ActionItemOutput
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Router /action-items/{id}/gpt [post]
func (h *ActionItemHandler) Draft(c *fiber.Ctx) error {
	item, userID, err := h.owned(c)
	if err != nil {
		return err
	}

	var background string
	if item.Transcript != nil {
		background = *item.Transcript
	}

	draft, err := h.Assistant.DraftActionItem(c.UserContext(), item.Text, background)
	if err != nil {
		return integrationFailed(c, err, "openai.draft")
	}

	output := h.Storage.CreateActionItemOutput(models.NewActionItemOutput{
		UserID:       userID,
		ActionItemID: item.ID,
		Output:       draft,
		ToolUsed:     toolOpenAI,
	})
	creditTimeSaved(h.Storage, userID, models.ActionGPTDraft, minutesGPTDraft)

	return utils.SuccessResponse(c, output, fiber.StatusOK)
}

// Outputs handles GET /api/action-items/:id/outputs
// @Summary List drafts produced for an action item
// @Tags ActionItems
// @Produce json
// @Param id path string true "Action item ID"
// @Success 200 {array} models.ActionItemOutput
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /action-items/{id}/outputs [get]
func (h *ActionItemHandler) Outputs(c *fiber.Ctx) error {
	item, _, err := h.owned(c)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, h.Storage.ListActionItemOutputs(item.ID), fiber.StatusOK)
}

// Extract handles POST /api/action-items/extract
// @Summary Create action items from a meeting transcript
// @Description Items are created one at a time; a failure part way leaves earlier items in place
// @Tags ActionItems
// @Accept json
// @Produce json
// @Param body body transcriptRequest true "Transcript"
// @Success 201 {array} models.ActionItem
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /action-items/extract [post]
func (h *ActionItemHandler) Extract(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req transcriptRequest
	if err := decodeBody(c, h.Validator, "transcript", &req); err != nil {
		return err
	}

	texts, err := h.Assistant.ExtractActionItems(c.UserContext(), req.Transcript)
	if err != nil {
		return integrationFailed(c, err, "openai.extract")
	}

	source := sourceTranscript
	created := make([]models.ActionItem, 0, len(texts))
	for _, text := range texts {
		created = append(created, h.Storage.CreateActionItem(models.NewActionItem{
			UserID:     userID,
			Text:       text,
			Transcript: &req.Transcript,
			Source:     &source,
		}))
	}
	logging.WithUser(userID).WithField("count", len(created)).Info("Extracted action items")

	return utils.CreatedResponse(c, created)
}
