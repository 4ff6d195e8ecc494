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
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/backoffice/pkg/cache"
	"github.com/go-arcade/backoffice/pkg/log"
	"github.com/gofiber/fiber/v2"
)

const cacheKeyPrefix = "backoffice:resp:"

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// ResponseCacheMiddleware serves successful anonymous GET responses from c
// for ttl, keyed by the original URL. The root path is never cached.
func ResponseCacheMiddleware(c cache.ICache, ttl time.Duration) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if ctx.Method() != fiber.MethodGet || ctx.Path() == "/" || ctx.Get(fiber.HeaderAuthorization) != "" {
			return ctx.Next()
		}

		key := cacheKeyPrefix + ctx.OriginalURL()
		if raw, err := c.Get(ctx.UserContext(), key).Bytes(); err == nil {
			var hit cachedResponse
			if err := sonic.Unmarshal(raw, &hit); err == nil {
				ctx.Set(fiber.HeaderContentType, hit.ContentType)
				ctx.Set("X-Cache", "HIT")
				return ctx.Status(hit.Status).Send(hit.Body)
			}
		}

		if err := ctx.Next(); err != nil {
			return err
		}

		resp := ctx.Response()
		if resp.StatusCode() != fiber.StatusOK {
			return nil
		}
		entry := cachedResponse{
			Status:      resp.StatusCode(),
			ContentType: string(resp.Header.ContentType()),
			Body:        append([]byte(nil), resp.Body()...),
		}
		data, err := sonic.Marshal(entry)
		if err != nil {
			return nil
		}
		if err := c.Set(ctx.UserContext(), key, data, ttl).Err(); err != nil {
			log.Warnw("failed to cache response", "key", key, "error", err)
		}
		return nil
	}
}
