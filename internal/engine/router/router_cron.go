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
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) cronRouter(r fiber.Router) {
	cronGroup := r.Group("/cron")
	{
		cronGroup.Get("/", rt.listJobs)
		cronGroup.Get("/health-check", rt.healthCheck)
	}
}

func (rt *Router) listJobs(c *fiber.Ctx) error {
	return ok(c, rt.Services.Cron.Jobs())
}

func (rt *Router) healthCheck(c *fiber.Ctx) error {
	if err := rt.Services.Health.Check(c.UserContext()); err != nil {
		return err
	}
	return ok(c, "OK")
}
