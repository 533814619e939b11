// auth.go
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

package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/localnerve/expiestack/internal/services"
	"github.com/localnerve/expiestack/internal/types"
)

const (
	// SessionUserKey is the session key holding the signed in user id
	SessionUserKey = "user_id"

	userLocalsKey = "userID"
)

// SessionUser resolves the current user from the session cookie. Requests
// without a signed in user fall back to the demo user when demoEmail names an
// existing account.
func SessionUser(sessions *session.Store, storage services.Storage, demoEmail string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessions.Get(c)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusInternalServerError,
				Message: fmt.Sprintf("Session unavailable: %v", err),
				Type:    "authorization.session",
			}
		}

		if id, ok := sess.Get(SessionUserKey).(string); ok && id != "" {
			if _, exists := storage.GetUser(id); exists {
				c.Locals(userLocalsKey, id)
				return c.Next()
			}
		}

		if demoEmail != "" {
			if demo, ok := storage.GetUserByEmail(demoEmail); ok {
				c.Locals(userLocalsKey, demo.ID)
				return c.Next()
			}
		}

		return types.Unauthorized("Not authenticated", "authorization.user")
	}
}

// CurrentUserID returns the user id set by SessionUser, or "" outside it
func CurrentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userLocalsKey).(string)
	return id
}
