package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/expiestack/internal/schema"
	"github.com/localnerve/expiestack/internal/services"
	"github.com/localnerve/expiestack/internal/types"
	"github.com/localnerve/expiestack/internal/utils"
)

// TimeSavedHandler handles the time saved ledger routes
type TimeSavedHandler struct {
	Storage   services.Storage
	Validator *schema.Validator
}

type timeSavedRequest struct {
	ActionType   string        `json:"action_type"`
	MinutesSaved types.FlexInt `json:"minutes_saved"`
}

// TotalResponse is the aggregate time saved for a user
type TotalResponse struct {
	Minutes int     `json:"minutes"`
	Hours   float64 `json:"hours"`
}

// List handles GET /api/time-saved
// @Summary List time saved entries
// @Tags TimeSaved
// @Produce json
// @Success 200 {array} models.TimeSaved
// @Router /time-saved [get]
func (h *TimeSavedHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, h.Storage.ListTimeSaved(userID), fiber.StatusOK)
}

// Create handles POST /api/time-saved
// @Summary Log time saved
// @Tags TimeSaved
// @Accept json
// @Produce json
// @Param body body timeSavedRequest true "Entry"
// @Success 201 {object} models.TimeSaved
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /time-saved [post]
func (h *TimeSavedHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req timeSavedRequest
	if err := decodeBody(c, h.Validator, "time_saved", &req); err != nil {
		return err
	}

	entry := creditTimeSaved(h.Storage, userID, req.ActionType, req.MinutesSaved.Int())
	return utils.CreatedResponse(c, entry)
}

// Total handles GET /api/time-saved/total
// @Summary Total time saved
// @Tags TimeSaved
// @Produce json
// @Success 200 {object} TotalResponse
// @Router /time-saved/total [get]
func (h *TimeSavedHandler) Total(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	minutes := h.Storage.TotalTimeSaved(userID)
	return utils.SuccessResponse(c, TotalResponse{
		Minutes: minutes,
		Hours:   float64(minutes) / 60,
	}, fiber.StatusOK)
}
