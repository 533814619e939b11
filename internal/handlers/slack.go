package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/expiestack/internal/integrations"
	"github.com/localnerve/expiestack/internal/logging"
	"github.com/localnerve/expiestack/internal/schema"
	"github.com/localnerve/expiestack/internal/utils"
)

// SlackHandler handles team messaging routes
type SlackHandler struct {
	Validator *schema.Validator
	Messenger integrations.Messenger
}

type slackMessageRequest struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

// Send handles POST /api/slack/send
// @Summary Post a message to a channel
// @Tags Slack
// @Accept json
// @Produce json
// @Param body body slackMessageRequest true "Message"
// @Success 200 {object} integrations.Message
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Router /slack/send [post]
func (h *SlackHandler) Send(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req slackMessageRequest
	if err := decodeBody(c, h.Validator, "slack_message", &req); err != nil {
		return err
	}

	msg, err := h.Messenger.Send(c.UserContext(), req.Channel, req.Text)
	if err != nil {
		if errors.Is(err, integrations.ErrUnknownChannel) {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "slack.send")
		}
		return integrationFailed(c, err, "slack.send")
	}

	logging.WithUser(userID).WithField("channel", msg.ChannelName).Info("Sent Slack message")
	return utils.SuccessResponse(c, msg, fiber.StatusOK)
}

// Channels handles GET /api/slack/channels
// @Summary List channels
// @Tags Slack
// @Produce json
// @Success 200 {array} integrations.Channel
// @Router /slack/channels [get]
func (h *SlackHandler) Channels(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return err
	}

	channels, err := h.Messenger.Channels(c.UserContext())
	if err != nil {
		return integrationFailed(c, err, "slack.channels")
	}
	return utils.SuccessResponse(c, channels, fiber.StatusOK)
}

// History handles GET /api/slack/history
// @Summary List recent messages in a channel
// @Tags Slack
// @Produce json
// @Param channel query string true "Channel ID or name"
// @Success 200 {array} integrations.Message
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /slack/history [get]
func (h *SlackHandler) History(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return err
	}

	channel := c.Query("channel")
	if channel == "" {
		return utils.ErrorResponse(c, "channel is required", fiber.StatusBadRequest, "slack.history")
	}

	messages, err := h.Messenger.History(c.UserContext(), channel)
	if err != nil {
		if errors.Is(err, integrations.ErrUnknownChannel) {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "slack.history")
		}
		return integrationFailed(c, err, "slack.history")
	}
	return utils.SuccessResponse(c, messages, fiber.StatusOK)
}
