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
	"github.com/go-arcade/backoffice/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) memberRouter(r fiber.Router, auth, admin fiber.Handler) {
	memberGroup := r.Group("/members")
	{
		memberGroup.Post("/", rt.signUp)
		memberGroup.Get("/validate/:token", rt.confirmEmail)
		memberGroup.Post("/login", rt.login)
		memberGroup.Post("/refresh", rt.refresh)
		memberGroup.Post("/duplicated/id", rt.duplicatedID)
		memberGroup.Post("/duplicated/email", rt.duplicatedEmail)

		memberGroup.Post("/validation", auth, admin, rt.sendValidation)
		memberGroup.Get("/count", auth, admin, rt.countMembers)
		memberGroup.Get("/count/deleted", auth, admin, rt.countDeletedMembers)
		memberGroup.Get("/", auth, admin, rt.listMembers)
		memberGroup.Get("/deleted", auth, admin, rt.listDeletedMembers)
		memberGroup.Get("/:id", auth, admin, rt.getMember)
		memberGroup.Patch("/:id", auth, admin, rt.updateMember)
		memberGroup.Delete("/:id", auth, admin, rt.removeMember)
		memberGroup.Patch("/:id/restore", auth, admin, rt.restoreMember)
	}
}

func (rt *Router) signUp(c *fiber.Ctx) error {
	var req model.SignUpReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	resp, err := rt.Services.Member.SignUp(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return created(c, resp)
}

func (rt *Router) sendValidation(c *fiber.Ctx) error {
	var req model.SendValidationReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	result, err := rt.Services.Member.SendValidation(c.UserContext(), &req, baseURL(c))
	if err != nil {
		return err
	}
	return created(c, result)
}

func (rt *Router) confirmEmail(c *fiber.Ctx) error {
	affected, err := rt.Services.Member.ConfirmEmail(c.UserContext(), c.Params("token"))
	if err != nil {
		return err
	}
	return ok(c, affected)
}

func (rt *Router) login(c *fiber.Ctx) error {
	var req model.LoginReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	tokens, err := rt.Services.Member.Login(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return created(c, tokens)
}

func (rt *Router) refresh(c *fiber.Ctx) error {
	var req model.RefreshReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	tokens, err := rt.Services.Member.Refresh(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return created(c, tokens)
}

func (rt *Router) duplicatedID(c *fiber.Ctx) error {
	var req model.DuplicatedIDReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	dup, err := rt.Services.Member.IsLoginIDDuplicated(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return created(c, dup)
}

func (rt *Router) duplicatedEmail(c *fiber.Ctx) error {
	var req model.DuplicatedEmailReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	dup, err := rt.Services.Member.IsEmailDuplicated(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return created(c, dup)
}

func (rt *Router) countMembers(c *fiber.Ctx) error {
	count, err := rt.Services.Member.Count(c.UserContext(), false)
	if err != nil {
		return err
	}
	return ok(c, count)
}

func (rt *Router) countDeletedMembers(c *fiber.Ctx) error {
	count, err := rt.Services.Member.Count(c.UserContext(), true)
	if err != nil {
		return err
	}
	return ok(c, count)
}

func (rt *Router) listMembers(c *fiber.Ctx) error {
	return rt.pageMembers(c, false)
}

func (rt *Router) listDeletedMembers(c *fiber.Ctx) error {
	return rt.pageMembers(c, true)
}

func (rt *Router) pageMembers(c *fiber.Ctx, deleted bool) error {
	var page model.PageReq
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c)
	}
	list, err := rt.Services.Member.List(c.UserContext(), deleted, page)
	if err != nil {
		return err
	}
	return ok(c, list)
}

func (rt *Router) getMember(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return badRequest(c)
	}
	detail, err := rt.Services.Member.Detail(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, detail)
}

func (rt *Router) updateMember(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return badRequest(c)
	}
	var req model.UpdateMemberReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	affected, err := rt.Services.Member.Update(c.UserContext(), id, &req)
	if err != nil {
		return err
	}
	return ok(c, affected)
}

func (rt *Router) removeMember(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return badRequest(c)
	}
	affected, err := rt.Services.Member.Remove(c.UserContext(), id, middleware.GetClaims(c))
	if err != nil {
		return err
	}
	return ok(c, affected)
}

func (rt *Router) restoreMember(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return badRequest(c)
	}
	affected, err := rt.Services.Member.Restore(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, affected)
}
