// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package middleware

import (
	"github.com/go-arcade/backoffice/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// UnifiedResponseMiddleware wraps the value a handler left in http.DETAIL
// into the success envelope. http.STATUS overrides the default 200.
func UnifiedResponseMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}

		detail := c.Locals(http.DETAIL)
		if detail == nil {
			return nil
		}
		status := fiber.StatusOK
		if s, ok := c.Locals(http.STATUS).(int); ok && s != 0 {
			status = s
		}
		return http.WithRepJSON(c, status, detail)
	}
}
