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
	"strings"

	"github.com/go-arcade/backoffice/pkg/http"
	"github.com/go-arcade/backoffice/pkg/http/jwt"
	"github.com/go-arcade/backoffice/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// AuthorizationMiddleware verifies the Bearer access token and stores its
// claims under http.CLAIMS.
func AuthorizationMiddleware(issuer *jwt.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return http.Abort(c, http.TokenBeEmpty)
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return http.Abort(c, http.InvalidToken)
		}

		claims, err := issuer.ParseAccess(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return http.Abort(c, http.TokenExpired)
			}
			log.Debugw("parse access token failed", "error", err)
			return http.Abort(c, http.InvalidToken)
		}

		c.Locals(http.CLAIMS, claims)
		return c.Next()
	}
}

// RequireRoles admits only members whose access token role is listed.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		claims := GetClaims(c)
		if claims == nil {
			return http.Abort(c, http.TokenBeEmpty)
		}
		if _, ok := allowed[claims.Role]; !ok {
			return http.Abort(c, http.PermissionDenied)
		}
		return c.Next()
	}
}

func GetClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(http.CLAIMS).(*jwt.Claims)
	return claims
}
