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
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/backoffice/pkg/cache"
	"github.com/go-arcade/backoffice/pkg/http"
	"github.com/go-arcade/backoffice/pkg/http/jwt"
	"github.com/go-arcade/backoffice/pkg/log"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIssuer() *jwt.Issuer {
	return jwt.NewIssuer(jwt.Secrets{
		AccessSecret:  "a",
		AccessExpire:  time.Hour,
		RefreshSecret: "r",
		RefreshExpire: time.Hour,
		EmailSecret:   "e",
		EmailExpire:   time.Hour,
	})
}

func newApp() *fiber.App {
	cfg := http.Http{}
	cfg.SetDefaults()
	app := http.NewApp(cfg, "test")
	app.Use(UnifiedResponseMiddleware())
	return app
}

func bodyOf(t *testing.T, r io.Reader) http.Response {
	t.Helper()
	raw, err := io.ReadAll(r)
	require.NoError(t, err)
	var resp http.Response
	require.NoError(t, sonic.Unmarshal(raw, &resp))
	return resp
}

func TestAuthorization(t *testing.T) {
	iss := newIssuer()
	admin, _ := iss.SignAccess(1, "root", "admin")
	user, _ := iss.SignAccess(2, "kim", "user")
	refresh, _ := iss.SignRefresh(1)

	app := newApp()
	app.Get("/admin", AuthorizationMiddleware(iss), RequireRoles("admin"), func(c *fiber.Ctx) error {
		c.Locals(http.DETAIL, GetClaims(c).Username)
		return nil
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "no header", header: "", want: 401},
		{name: "wrong scheme", header: "Basic " + admin, want: 401},
		{name: "refresh token used as access", header: "Bearer " + refresh, want: 401},
		{name: "role not allowed", header: "Bearer " + user, want: 401},
		{name: "admin", header: "Bearer " + admin, want: 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)

			body := bodyOf(t, resp.Body)
			assert.Equal(t, tt.want == 200, body.Result)
			if tt.want == 200 {
				assert.Equal(t, "root", body.Message)
			}
		})
	}
}

func TestUnifiedResponse_Status(t *testing.T) {
	app := newApp()
	app.Post("/", func(c *fiber.Ctx) error {
		c.Locals(http.STATUS, fiber.StatusCreated)
		c.Locals(http.DETAIL, fiber.Map{"ok": true})
		return nil
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, 201, bodyOf(t, resp.Body).StatusCode)
}

func TestClientIP(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(ClientIP(c)) })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 172.16.0.9")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "172.16.0.9", string(raw))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(10, 10*time.Second)
	for i := 0; i < 10; i++ {
		assert.True(t, rl.Allow("1.1.1.1"), "request %d", i)
	}
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"))
}

func TestRateLimiter_EvictThrottled(t *testing.T) {
	rl := NewRateLimiter(10, 10*time.Second)
	now := time.Now()
	stale := now.Add(-time.Hour)
	for i := 0; i < 1024; i++ {
		rl.visitors[fmt.Sprintf("10.0.%d.%d", i/256, i%256)] = &visitor{lastSeen: stale}
	}

	rl.evict(now)
	assert.Empty(t, rl.visitors)
	assert.Equal(t, now, rl.swept)

	for i := 0; i < 1024; i++ {
		rl.visitors[fmt.Sprintf("10.1.%d.%d", i/256, i%256)] = &visitor{lastSeen: stale}
	}
	rl.evict(now.Add(time.Second))
	assert.Len(t, rl.visitors, 1024)

	rl.evict(now.Add(rl.idle / 2))
	assert.Empty(t, rl.visitors)
}

func TestRateLimitMiddleware(t *testing.T) {
	app := newApp()
	app.Use(RateLimitMiddleware(NewRateLimiter(1, time.Minute)))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 429, resp.StatusCode)
}

func TestResponseCache(t *testing.T) {
	store := cache.NewHybridCache(cache.NewFastCache(cache.FastCacheConfig{}), nil, cache.HybridCacheConfig{})
	calls := 0

	app := fiber.New()
	app.Use(ResponseCacheMiddleware(store, time.Minute))
	app.Get("/", func(c *fiber.Ctx) error { calls++; return c.SendString("root") })
	app.Get("/branch", func(c *fiber.Ctx) error { calls++; return c.SendString("list") })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/branch", nil))
		require.NoError(t, err)
		raw, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "list", string(raw))
	}
	assert.Equal(t, 1, calls)

	for i := 0; i < 2; i++ {
		_, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)

	req := httptest.NewRequest("GET", "/branch", nil)
	req.Header.Set("Authorization", "Bearer x")
	_, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 4, calls)
}

func TestRequestMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(RequestMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		assert.Equal(t, c.Locals(http.REQUEST), log.RequestID(c.UserContext()))
		return c.SendString(c.Locals(http.REQUEST).(string))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.Len(t, string(raw), 20)
	assert.Equal(t, string(raw), resp.Header.Get("X-Request-Id"))
}
