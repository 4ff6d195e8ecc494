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

package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AccessLogFormat logs one line per request, skipping probes.
func AccessLogFormat(log *zap.Logger) fiber.Handler {
	sugar := log.Sugar()
	excludedPaths := map[string]bool{
		"/health":  true,
		"/metrics": true,
	}

	return func(c *fiber.Ctx) error {
		if excludedPaths[c.Path()] {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		query := c.Context().QueryArgs().String()
		queryStr := ""
		if query != "" {
			queryStr = "?" + query
		}

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			var sc StatusCoder
			switch {
			case errors.As(err, &sc):
				status = sc.StatusCode()
			case errors.As(err, &fe):
				status = fe.Code
			}
		}

		sugar.Infow("HTTP request",
			"method", c.Method(),
			"path", c.Path(),
			"query", queryStr,
			"status", status,
			"ip", c.Locals(CLIENT_IP),
			"request_id", c.Locals(REQUEST),
			"user_agent", c.Get("User-Agent"),
			"latency", latency.String(),
		)
		return err
	}
}
