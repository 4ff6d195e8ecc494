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

package router

import (
	"embed"
	"strconv"
	"time"

	"github.com/go-arcade/backoffice/internal/engine/model"
	"github.com/go-arcade/backoffice/internal/engine/service"
	"github.com/go-arcade/backoffice/pkg/cache"
	httpx "github.com/go-arcade/backoffice/pkg/http"
	"github.com/go-arcade/backoffice/pkg/http/jwt"
	"github.com/go-arcade/backoffice/pkg/http/middleware"
	"github.com/go-arcade/backoffice/pkg/metrics"
	"github.com/go-arcade/backoffice/pkg/version"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.uber.org/zap"
)

const appName = "backoffice"

//go:embed localize
var localize embed.FS

type Router struct {
	Http     httpx.Http
	Services *service.Services
	Issuer   *jwt.Issuer
	Cache    cache.ICache
	Metrics  *metrics.Server
	Logger   *zap.Logger
}

func NewRouter(
	httpConf httpx.Http,
	services *service.Services,
	issuer *jwt.Issuer,
	respCache cache.ICache,
	metricsServer *metrics.Server,
	logger *zap.Logger,
) *Router {
	return &Router{
		Http:     httpConf,
		Services: services,
		Issuer:   issuer,
		Cache:    respCache,
		Metrics:  metricsServer,
		Logger:   logger,
	}
}

func (rt *Router) Router() *fiber.App {
	app := httpx.NewApp(rt.Http, appName)

	app.Use(middleware.RequestMiddleware())
	app.Use(middleware.RealIPMiddleware())
	app.Use(middleware.ExceptionMiddleware())
	app.Use(middleware.CorsMiddleware())
	app.Use(httpx.I18n(localize, "localize"))

	if rt.Http.AccessLog && rt.Logger != nil {
		app.Use(httpx.AccessLogFormat(rt.Logger))
	}
	if rt.Metrics != nil && rt.Metrics.Enabled() {
		app.Use(middleware.MetricsMiddleware())
	}

	window := time.Duration(rt.Http.RateLimit.Window) * time.Second
	app.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(rt.Http.RateLimit.Requests, window)))
	if rt.Cache != nil {
		app.Use(middleware.ResponseCacheMiddleware(rt.Cache, time.Duration(rt.Http.CacheTTL)*time.Second))
	}
	app.Use(middleware.UnifiedResponseMiddleware())

	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals(httpx.DETAIL, appName)
		return nil
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/version", func(c *fiber.Ctx) error {
		c.Locals(httpx.DETAIL, version.GetVersion())
		return nil
	})
	if rt.Http.ExposeMetrics && rt.Metrics != nil {
		app.Get(rt.Metrics.Path(), adaptor.HTTPHandler(rt.Metrics.Handler()))
	}

	auth := middleware.AuthorizationMiddleware(rt.Issuer)
	admin := middleware.RequireRoles(model.RoleAdmin)

	rt.memberRouter(app, auth, admin)
	rt.branchRouter(app, auth, admin)
	rt.menuRouter(app, auth, admin)
	rt.fileRouter(app, auth, admin)
	rt.cronRouter(app)

	return app
}

func ok(c *fiber.Ctx, detail any) error {
	c.Locals(httpx.DETAIL, detail)
	return nil
}

func created(c *fiber.Ctx, detail any) error {
	c.Locals(httpx.STATUS, fiber.StatusCreated)
	c.Locals(httpx.DETAIL, detail)
	return nil
}

func badRequest(c *fiber.Ctx) error {
	return httpx.Abort(c, httpx.BadRequest)
}

// paramID reads a positive :id path parameter.
func paramID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// baseURL is the scheme and host the request came in on.
func baseURL(c *fiber.Ctx) string {
	return c.Protocol() + "://" + c.Hostname()
}
