package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/expiestack/internal/models"
	"github.com/localnerve/expiestack/internal/schema"
	"github.com/localnerve/expiestack/internal/services"
	"github.com/localnerve/expiestack/internal/utils"
)

// ToolHandler handles connected tool routes
type ToolHandler struct {
	Storage   services.Storage
	Validator *schema.Validator
}

type toolStatusRequest struct {
	Status models.ToolStatus `json:"status"`
}

// List handles GET /api/tools
// @Summary List connected tools
// @Tags ConnectedTools
// @Produce json
// @Success 200 {array} models.ConnectedTool
// @Router /tools [get]
func (h *ToolHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, h.Storage.ListConnectedTools(userID), fiber.StatusOK)
}

// Connect handles POST /api/tools
// @Summary Connect a tool
// @Tags ConnectedTools
// @Accept json
// @Produce json
// @Param body body models.NewConnectedTool true "Tool"
// @Success 201 {object} models.ConnectedTool
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /tools [post]
func (h *ToolHandler) Connect(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var in models.NewConnectedTool
	if err := decodeBody(c, h.Validator, "connected_tool", &in); err != nil {
		return err
	}
	in.UserID = userID

	return utils.CreatedResponse(c, h.Storage.ConnectTool(in))
}

// UpdateStatus handles PATCH /api/tools/:id
// @Summary Change a tool's connection status
// @Tags ConnectedTools
// @Accept json
// @Produce json
// @Param id path string true "Tool ID"
// @Param body body toolStatusRequest true "Status"
// @Success 200 {object} models.ConnectedTool
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tools/{id} [patch]
func (h *ToolHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	id := c.Params("id")
	if tool, ok := h.Storage.GetConnectedTool(id); !ok || tool.UserID != userID {
		return utils.NotFoundResponse(c, "Connected tool not found")
	}

	var req toolStatusRequest
	if err := decodeBody(c, h.Validator, "tool_status", &req); err != nil {
		return err
	}

	tool, ok := h.Storage.UpdateToolStatus(id, req.Status)
	if !ok {
		return utils.NotFoundResponse(c, "Connected tool not found")
	}
	return utils.SuccessResponse(c, tool, fiber.StatusOK)
}
