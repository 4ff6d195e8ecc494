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
	"errors"
	"time"

	"github.com/go-arcade/backoffice/pkg/http"
	"github.com/go-arcade/backoffice/pkg/metrics"
	"github.com/gofiber/fiber/v2"
)

func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var sc http.StatusCoder
		var fe *fiber.Error
		switch {
		case err == nil:
		case errors.As(err, &sc):
			status = sc.StatusCode()
		case errors.As(err, &fe):
			status = fe.Code
		default:
			status = fiber.StatusServiceUnavailable
		}

		metrics.ObserveHTTP(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
