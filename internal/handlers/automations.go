package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/expiestack/internal/integrations"
	"github.com/localnerve/expiestack/internal/logging"
	"github.com/localnerve/expiestack/internal/metrics"
	"github.com/localnerve/expiestack/internal/models"
	"github.com/localnerve/expiestack/internal/schema"
	"github.com/localnerve/expiestack/internal/services"
	"github.com/localnerve/expiestack/internal/types"
	"github.com/localnerve/expiestack/internal/utils"
)

// AutomationHandler handles automation routes
type AutomationHandler struct {
	Storage   services.Storage
	Validator *schema.Validator
	Assistant integrations.Assistant
}

type suggestAutomationRequest struct {
	Activity string `json:"activity"`
}

func (h *AutomationHandler) owned(c *fiber.Ctx) (models.Automation, string, error) {
	userID, err := getUserID(c)
	if err != nil {
		return models.Automation{}, "", err
	}
	auto, ok := h.Storage.GetAutomation(c.Params("id"))
	if !ok || auto.UserID != userID {
		return models.Automation{}, userID, types.NotFound("Automation not found", "notFound")
	}
	return auto, userID, nil
}

// List handles GET /api/automations
// @Summary List automations
// @Tags Automations
// @Produce json
// @Success 200 {array} models.Automation
// @Router /automations [get]
func (h *AutomationHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, h.Storage.ListAutomations(userID), fiber.StatusOK)
}

// Create handles POST /api/automations
// @Summary Create an automation
// @Description Creating an automation credits three minutes saved
// @Tags Automations
// @Accept json
// @Produce json
// @Param body body models.NewAutomation true "Automation"
// @Success 201 {object} models.Automation
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /automations [post]
func (h *AutomationHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var in models.NewAutomation
	if err := decodeBody(c, h.Validator, "automation", &in); err != nil {
		return err
	}
	in.UserID = userID

	auto := h.Storage.CreateAutomation(in)
	creditTimeSaved(h.Storage, userID, models.ActionAutomationCreated, minutesAutomationCreated)

	return utils.CreatedResponse(c, auto)
}

// Update handles PATCH /api/automations/:id
// @Summary Update an automation
// @Tags Automations
// @Accept json
// @Produce json
// @Param id path string true "Automation ID"
// @Param body body models.AutomationPatch true "Changes"
// @Success 200 {object} models.Automation
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /automations/{id} [patch]
func (h *AutomationHandler) Update(c *fiber.Ctx) error {
	existing, _, err := h.owned(c)
	if err != nil {
		return err
	}

	var patch models.AutomationPatch
	if err := decodeBody(c, h.Validator, "automation_patch", &patch); err != nil {
		return err
	}

	updated, ok := h.Storage.UpdateAutomation(existing.ID, patch)
	if !ok {
		return utils.NotFoundResponse(c, "Automation not found")
	}
	return utils.SuccessResponse(c, updated, fiber.StatusOK)
}

// Delete handles DELETE /api/automations/:id
// @Summary Delete an automation
// @Tags Automations
// @Param id path string true "Automation ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /automations/{id} [delete]
func (h *AutomationHandler) Delete(c *fiber.Ctx) error {
	existing, _, err := h.owned(c)
	if err != nil {
		return err
	}
	if !h.Storage.DeleteAutomation(existing.ID) {
		return utils.NotFoundResponse(c, "Automation not found")
	}
	return utils.NoContentResponse(c)
}

// Run handles POST /api/automations/:id/run
// @Summary Run an automation now
// @Description Stamps last_run and credits five minutes saved
// @Tags Automations
// @Produce json
// @Param id path string true "Automation ID"
// @Success 200 {object} models.Automation
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /automations/{id}/run [post]
func (h *AutomationHandler) Run(c *fiber.Ctx) error {
	existing, userID, err := h.owned(c)
	if err != nil {
		return err
	}

	ran, ok := h.Storage.RunAutomation(existing.ID)
	if !ok {
		return utils.NotFoundResponse(c, "Automation not found")
	}
	metrics.AutomationRunsTotal.Inc()
	creditTimeSaved(h.Storage, userID, models.ActionAutomationRun, minutesAutomationRun)
	logging.WithUser(userID).WithField("automation_id", ran.ID).Info("Ran automation")

	return utils.SuccessResponse(c, ran, fiber.StatusOK)
}

// Suggest handles POST /api/automations/suggest
// @Summary Suggest an automation for an activity
// @Tags Automations
// @Accept json
// @Produce json
// @Param body body suggestAutomationRequest true "Activity"
// @Success 200 {object} integrations.AutomationSuggestion
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /automations/suggest [post]
func (h *AutomationHandler) Suggest(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return err
	}

	var req suggestAutomationRequest
	if err := decodeBody(c, h.Validator, "automation_suggestion", &req); err != nil {
		return err
	}

	suggestion, err := h.Assistant.SuggestAutomation(c.UserContext(), req.Activity)
	if err != nil {
		return integrationFailed(c, err, "openai.suggest")
	}
	return utils.SuccessResponse(c, suggestion, fiber.StatusOK)
}
