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
	"io"
	"mime/multipart"
	"strconv"

	"github.com/go-arcade/backoffice/internal/engine/model"
	"github.com/go-arcade/backoffice/internal/engine/service"
	"github.com/gofiber/fiber/v2"
)

const uploadField = "files"

func (rt *Router) fileRouter(r fiber.Router, auth, admin fiber.Handler) {
	fileGroup := r.Group("/files")
	{
		fileGroup.Post("/s3", rt.uploadFiles)
		fileGroup.Get("/", rt.listFiles)

		fileGroup.Get("/objects", auth, admin, rt.listObjects)
		fileGroup.Get("/objects/meta", auth, admin, rt.objectMeta)
		fileGroup.Delete("/objects", auth, admin, rt.deleteObject)

		fileGroup.Get("/:id", rt.getFile)
	}
}

func (rt *Router) uploadFiles(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c)
	}
	var branchID uint64
	if v := form.Value["branchId"]; len(v) > 0 {
		branchID, _ = strconv.ParseUint(v[0], 10, 64)
	}

	headers := form.File[uploadField]
	uploads := make([]service.Upload, 0, len(headers))
	for _, fh := range headers {
		uploads = append(uploads, upload(fh))
	}

	results, err := rt.Services.File.Upload(c.UserContext(), uint(branchID), uploads)
	if err != nil {
		return err
	}
	return created(c, results)
}

func upload(fh *multipart.FileHeader) service.Upload {
	return service.Upload{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func (rt *Router) listFiles(c *fiber.Ctx) error {
	var req model.FileListReq
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c)
	}
	page, err := rt.Services.File.List(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return ok(c, page)
}

func (rt *Router) getFile(c *fiber.Ctx) error {
	id, valid := paramID(c)
	if !valid {
		return badRequest(c)
	}
	branchID, err := strconv.ParseUint(c.Query("branchId"), 10, 64)
	if err != nil || branchID == 0 {
		return badRequest(c)
	}
	file, err := rt.Services.File.Get(c.UserContext(), id, uint(branchID))
	if err != nil {
		return err
	}
	return ok(c, file)
}

func (rt *Router) listObjects(c *fiber.Ctx) error {
	var req model.ObjectListReq
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c)
	}
	objects, err := rt.Services.File.Objects(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return ok(c, objects)
}

func (rt *Router) objectMeta(c *fiber.Ctx) error {
	var req model.ObjectKeyReq
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c)
	}
	meta, err := rt.Services.File.ObjectMeta(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return ok(c, meta)
}

func (rt *Router) deleteObject(c *fiber.Ctx) error {
	var req model.ObjectKeyReq
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c)
	}
	res, err := rt.Services.File.DeleteObject(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return ok(c, res)
}
