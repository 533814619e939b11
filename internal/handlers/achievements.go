package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/expiestack/internal/models"
	"github.com/localnerve/expiestack/internal/schema"
	"github.com/localnerve/expiestack/internal/services"
	"github.com/localnerve/expiestack/internal/utils"
)

// AchievementHandler handles badge routes
type AchievementHandler struct {
	Storage   services.Storage
	Validator *schema.Validator
}

// List handles GET /api/achievements
// @Summary List earned badges
// @Tags Achievements
// @Produce json
// @Success 200 {array} models.UserAchievement
// @Router /achievements [get]
func (h *AchievementHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, h.Storage.ListAchievements(userID), fiber.StatusOK)
}

// Create handles POST /api/achievements
// @Summary Award a badge
// @Tags Achievements
// @Accept json
// @Produce json
// @Param body body models.NewUserAchievement true "Badge"
// @Success 201 {object} models.UserAchievement
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /achievements [post]
func (h *AchievementHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var in models.NewUserAchievement
	if err := decodeBody(c, h.Validator, "achievement", &in); err != nil {
		return err
	}
	in.UserID = userID

	return utils.CreatedResponse(c, h.Storage.AddAchievement(in))
}
