// common.go
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
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/expiestack/internal/logging"
	"github.com/localnerve/expiestack/internal/metrics"
	"github.com/localnerve/expiestack/internal/middleware"
	"github.com/localnerve/expiestack/internal/models"
	"github.com/localnerve/expiestack/internal/schema"
	"github.com/localnerve/expiestack/internal/services"
	"github.com/localnerve/expiestack/internal/types"
	"github.com/localnerve/expiestack/internal/utils"
	"github.com/sirupsen/logrus"
)

// Minutes credited to the time saved ledger per action
const (
	minutesCannedResponse    = 1
	minutesGPTDraft          = 2
	minutesAutomationCreated = 3
	minutesAutomationRun     = 5
)

// ErrorHandler renders every error that reaches Fiber as the JSON error envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	var validationErr *schema.ValidationError
	if errors.As(err, &validationErr) {
		return utils.ValidationErrorResponse(c, validationErr.Error(), validationErr.Fields)
	}

	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var customErr *types.CustomError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &customErr):
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code >= fiber.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"url":  c.OriginalURL(),
			"type": errorType,
		}).WithError(err).Error("Request failed")
	}

	return utils.ErrorResponse(c, message, code, errorType)
}

// getUserID returns the session user or a 401
func getUserID(c *fiber.Ctx) (string, error) {
	id := middleware.CurrentUserID(c)
	if id == "" {
		return "", types.Unauthorized("Not authenticated", "authorization.user")
	}
	return id, nil
}

// decodeBody validates the request body against the named schema, then
// decodes it into out
func decodeBody(c *fiber.Ctx, v *schema.Validator, schemaName string, out interface{}) error {
	body := c.Body()
	if err := v.Validate(schemaName, body); err != nil {
		return err
	}
	if len(body) == 0 {
		body = []byte("{}")
	}
	if err := json.Unmarshal(body, out); err != nil {
		return types.BadRequest(fmt.Sprintf("Invalid %s body: %v", schemaName, err), "validation")
	}
	return nil
}

// creditTimeSaved writes a ledger entry for an action and counts it
func creditTimeSaved(storage services.Storage, userID, actionType string, minutes int) models.TimeSaved {
	entry := storage.LogTimeSaved(models.NewTimeSaved{
		UserID:       userID,
		ActionType:   actionType,
		MinutesSaved: minutes,
	})
	metrics.TimeSavedMinutesTotal.WithLabelValues(actionType).Add(float64(minutes))
	logging.WithUser(userID).WithFields(logrus.Fields{
		"action_type": actionType,
		"minutes":     minutes,
	}).Debug("Time saved")
	return entry
}

// integrationFailed maps an integration error to a response
func integrationFailed(c *fiber.Ctx, err error, errorType string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return utils.ErrorResponse(c, "Request cancelled", fiber.StatusServiceUnavailable, errorType)
	}
	return utils.ErrorResponse(c, err.Error(), fiber.StatusBadGateway, errorType)
}
