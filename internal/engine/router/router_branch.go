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

func (rt *Router) branchRouter(r fiber.Router, auth, admin fiber.Handler) {
	branchGroup := r.Group("/branch", auth, admin)
	{
		branchGroup.Post("/", rt.createBranch)
		branchGroup.Get("/", rt.listBranches)
		branchGroup.Get("/deleted", rt.listDeletedBranches)
		branchGroup.Post("/member", rt.memberBranches)
		branchGroup.Patch("/:id", rt.updateBranch)
		branchGroup.Delete("/:id", rt.removeBranch)
		branchGroup.Patch("/:id/restore", rt.restoreBranch)
	}
}

func (rt *Router) createBranch(c *fiber.Ctx) error {
	var req model.CreateBranchReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	branch, err := rt.Services.Branch.Create(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return created(c, branch)
}

func (rt *Router) listBranches(c *fiber.Ctx) error {
	branches, err := rt.Services.Branch.List(c.UserContext(), false)
	if err != nil {
		return err
	}
	return ok(c, branches)
}

func (rt *Router) listDeletedBranches(c *fiber.Ctx) error {
	branches, err := rt.Services.Branch.List(c.UserContext(), true)
	if err != nil {
		return err
	}
	return ok(c, branches)
}

func (rt *Router) updateBranch(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return badRequest(c)
	}
	var req model.UpdateBranchReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	affected, err := rt.Services.Branch.Update(c.UserContext(), id, &req)
	if err != nil {
		return err
	}
	return ok(c, affected)
}

func (rt *Router) removeBranch(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return badRequest(c)
	}
	affected, err := rt.Services.Branch.Remove(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, affected)
}

func (rt *Router) restoreBranch(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return badRequest(c)
	}
	affected, err := rt.Services.Branch.Restore(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, affected)
}

func (rt *Router) memberBranches(c *fiber.Ctx) error {
	var req model.MemberBranchReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	views, err := rt.Services.Branch.ListByMember(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return created(c, views)
}
