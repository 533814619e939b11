package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/expiestack/internal/models"
	"github.com/localnerve/expiestack/internal/schema"
	"github.com/localnerve/expiestack/internal/services"
	"github.com/localnerve/expiestack/internal/types"
	"github.com/localnerve/expiestack/internal/utils"
)

// AccessibilityHandler handles accessibility preference routes
type AccessibilityHandler struct {
	Storage   services.Storage
	Validator *schema.Validator
}

// Get handles GET /api/accessibility
// @Summary Get accessibility preferences
// @Description Users without saved preferences get every option off
// @Tags Accessibility
// @Produce json
// @Success 200 {object} models.AccessibilityPreference
// @Router /accessibility [get]
func (h *AccessibilityHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	pref, ok := h.Storage.GetAccessibilityPreferences(userID)
	if !ok {
		return utils.SuccessResponse(c, models.AccessibilityPreference{UserID: userID}, fiber.StatusOK)
	}
	return utils.SuccessResponse(c, pref, fiber.StatusOK)
}

// Save handles POST /api/accessibility
// @Summary Save accessibility preferences
// @Description Creates the user's preferences on first save and updates them afterwards
// @Tags Accessibility
// @Accept json
// @Produce json
// @Param body body models.AccessibilitySettings true "Preferences"
// @Success 200 {object} models.AccessibilityPreference
// @Success 201 {object} models.AccessibilityPreference
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /accessibility [post]
func (h *AccessibilityHandler) Save(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var settings models.AccessibilitySettings
	if err := decodeBody(c, h.Validator, "accessibility", &settings); err != nil {
		return err
	}

	pref, created := h.Storage.UpsertAccessibilityPreferences(userID, settings)
	if created {
		return utils.CreatedResponse(c, pref)
	}
	return utils.SuccessResponse(c, pref, fiber.StatusOK)
}

// Update handles PATCH /api/accessibility/:id
// @Summary Update accessibility preferences by id
// @Tags Accessibility
// @Accept json
// @Produce json
// @Param id path string true "Preferences ID"
// @Param body body models.AccessibilitySettings true "Preferences"
// @Success 200 {object} models.AccessibilityPreference
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /accessibility/{id} [patch]
func (h *AccessibilityHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	id := c.Params("id")
	if pref, ok := h.Storage.GetAccessibilityPreferences(userID); !ok || pref.ID != id {
		return types.NotFound("Accessibility preferences not found", "notFound")
	}

	var settings models.AccessibilitySettings
	if err := decodeBody(c, h.Validator, "accessibility", &settings); err != nil {
		return err
	}

	pref, ok := h.Storage.UpdateAccessibilityPreferences(id, settings)
	if !ok {
		return utils.NotFoundResponse(c, "Accessibility preferences not found")
	}
	return utils.SuccessResponse(c, pref, fiber.StatusOK)
}
