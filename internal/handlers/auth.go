package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/localnerve/expiestack/internal/middleware"
	"github.com/localnerve/expiestack/internal/models"
	"github.com/localnerve/expiestack/internal/schema"
	"github.com/localnerve/expiestack/internal/services"
	"github.com/localnerve/expiestack/internal/types"
	"github.com/localnerve/expiestack/internal/utils"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles registration, sign in and the session user
type AuthHandler struct {
	Storage   services.Storage
	Auth      *services.AuthService
	Sessions  *session.Store
	Validator *schema.Validator
}

type registerRequest struct {
	Email              string          `json:"email"`
	Password           string          `json:"password"`
	Mode               models.UserMode `json:"mode"`
	OnboardingComplete bool            `json:"onboarding_complete"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// startSession binds the user to a fresh session
func (h *AuthHandler) startSession(c *fiber.Ctx, userID string) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(middleware.SessionUserKey, userID)
	return sess.Save()
}

// Register handles POST /api/auth/register
// @Summary Register a user
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "New account"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := decodeBody(c, h.Validator, "register", &req); err != nil {
		return err
	}

	user, err := h.Auth.Register(req.Email, req.Password, req.Mode, req.OnboardingComplete)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "auth.register")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "auth.register")
	}

	if err := h.startSession(c, user.ID); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "auth.session")
	}

	return utils.CreatedResponse(c, user)
}

// Login handles POST /api/auth/login
// @Summary Sign in
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := decodeBody(c, h.Validator, "login", &req); err != nil {
		return err
	}

	user, err := h.Auth.Authenticate(req.Email, req.Password)
	if err != nil {
		logrus.WithField("email", req.Email).Info("Failed sign in")
		return types.Unauthorized(err.Error(), "auth.login")
	}

	if err := h.startSession(c, user.ID); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "auth.session")
	}

	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// Logout handles POST /api/auth/logout
// @Summary Sign out
// @Tags Auth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "auth.session")
	}
	if err := sess.Destroy(); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "auth.session")
	}
	return utils.NoContentResponse(c)
}

// Me handles GET /api/auth/me
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	user, ok := h.Storage.GetUser(userID)
	if !ok {
		return types.Unauthorized("User no longer exists", "authorization.user")
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// UpdateSettings handles PATCH /api/user/settings
// @Summary Update mode and onboarding state
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body models.UserPatch true "Settings"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /user/settings [patch]
func (h *AuthHandler) UpdateSettings(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var patch models.UserPatch
	if err := decodeBody(c, h.Validator, "user_settings", &patch); err != nil {
		return err
	}

	user, ok := h.Storage.UpdateUser(userID, patch)
	if !ok {
		return utils.NotFoundResponse(c, "User not found")
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}
