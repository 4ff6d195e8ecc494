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
	"github.com/go-arcade/backoffice/internal/engine/model"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) menuRouter(r fiber.Router, auth, admin fiber.Handler) {
	menuGroup := r.Group("/menu", auth, admin)
	{
		menuGroup.Post("/", rt.createMenu)
		menuGroup.Get("/", rt.listMenus)
		menuGroup.Get("/deleted", rt.listDeletedMenus)
		menuGroup.Post("/member", rt.memberMenus)
		menuGroup.Patch("/:id", rt.updateMenu)
		menuGroup.Delete("/:id", rt.removeMenu)
		menuGroup.Patch("/:id/restore", rt.restoreMenu)
	}
}

func (rt *Router) createMenu(c *fiber.Ctx) error {
	var req model.CreateMenuReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	menu, err := rt.Services.Menu.Create(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return created(c, menu)
}

func (rt *Router) listMenus(c *fiber.Ctx) error {
	menus, err := rt.Services.Menu.List(c.UserContext(), false)
	if err != nil {
		return err
	}
	return ok(c, menus)
}

func (rt *Router) listDeletedMenus(c *fiber.Ctx) error {
	menus, err := rt.Services.Menu.List(c.UserContext(), true)
	if err != nil {
		return err
	}
	return ok(c, menus)
}

func (rt *Router) updateMenu(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return badRequest(c)
	}
	var req model.UpdateMenuReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	affected, err := rt.Services.Menu.Update(c.UserContext(), id, &req)
	if err != nil {
		return err
	}
	return ok(c, affected)
}

func (rt *Router) removeMenu(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return badRequest(c)
	}
	affected, err := rt.Services.Menu.Remove(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, affected)
}

func (rt *Router) restoreMenu(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return badRequest(c)
	}
	affected, err := rt.Services.Menu.Restore(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, affected)
}

func (rt *Router) memberMenus(c *fiber.Ctx) error {
	var req model.MemberMenuReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	views, err := rt.Services.Menu.ListByMember(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return created(c, views)
}
