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

package service

import (
	"context"
	"errors"
	"io"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/go-arcade/backoffice/internal/engine/model"
	"github.com/go-arcade/backoffice/internal/engine/repo"
	"github.com/go-arcade/backoffice/internal/pkg/storage"
	"github.com/go-arcade/backoffice/pkg/id"
	"github.com/go-arcade/backoffice/pkg/log"
)

const (
	MaxUploadFiles = 10
	MaxUploadSize  = 10 << 20
	maxObjectKeys  = 1000
	logsPrefix     = "logs"
)

// Upload is one incoming file.
type Upload struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

type FileService struct {
	repos      *repo.Repositories
	branch     *BranchService
	storage    storage.ObjectStorage
	uploadPath string
}

func NewFileService(repos *repo.Repositories, branch *BranchService, store storage.ObjectStorage, conf storage.Storage) *FileService {
	return &FileService{
		repos:      repos,
		branch:     branch,
		storage:    store,
		uploadPath: strings.Trim(conf.UploadPath, "/"),
	}
}

// Upload stores files under the branch in parallel. Results keep the
// request order and only successful uploads are recorded.
func (fs *FileService) Upload(ctx context.Context, branchID uint, files []Upload) ([]model.UploadResult, error) {
	ok, err := fs.branch.Exists(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUploadBranch
	}
	switch {
	case len(files) == 0:
		return nil, ErrNoFiles
	case len(files) > MaxUploadFiles:
		return nil, ErrTooManyFiles
	}
	for _, f := range files {
		if f.Size > MaxUploadSize {
			return nil, ErrFileTooLarge
		}
	}

	results := make([]model.UploadResult, len(files))
	rows := make([]*model.File, len(files))
	dir := path.Join(fs.uploadPath, strconv.FormatUint(uint64(branchID), 10))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f Upload) {
			defer wg.Done()
			row, err := fs.put(ctx, dir, branchID, f)
			if err != nil {
				log.Errorw("file upload failed", "branchId", branchID, "file", f.Name, "error", err)
				return
			}
			rows[i] = row
			results[i] = model.UploadResult{Result: true, URL: row.URL}
		}(i, f)
	}
	wg.Wait()

	stored := make([]model.File, 0, len(rows))
	for _, r := range rows {
		if r != nil {
			stored = append(stored, *r)
		}
	}
	if err := fs.repos.File.CreateBatch(ctx, stored); err != nil {
		return nil, dbErr(err, nil)
	}
	return results, nil
}

func (fs *FileService) put(ctx context.Context, dir string, branchID uint, f Upload) (*model.File, error) {
	body, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer body.Close()

	name := id.GetUUID() + strings.ToLower(filepath.Ext(f.Name))
	key := path.Join(dir, name)
	url, err := fs.storage.PutObject(ctx, key, body, f.Size, f.ContentType)
	if err != nil {
		return nil, err
	}
	return &model.File{
		BranchID:     branchID,
		OriginalName: f.Name,
		FileName:     name,
		MimeType:     f.ContentType,
		Size:         f.Size,
		Storage:      model.StorageS3,
		Path:         key,
		URL:          url,
	}, nil
}

func (fs *FileService) List(ctx context.Context, req *model.FileListReq) (*model.Page[model.File], error) {
	req.Normalize()
	if v := model.Validate(req); v != nil {
		return nil, invalid(v)
	}
	list, total, err := fs.repos.File.List(ctx, req.BranchID, req.Offset(), req.PerPage)
	if err != nil {
		return nil, dbErr(err, nil)
	}
	return &model.Page[model.File]{List: list, Total: total, Page: req.Page, PerPage: req.PerPage}, nil
}

// Get returns a live file of the branch and stamps its last access.
func (fs *FileService) Get(ctx context.Context, fileID, branchID uint) (*model.File, error) {
	f, err := fs.repos.File.FindByBranch(ctx, fileID, branchID)
	if err != nil {
		return nil, dbErr(err, ErrFileNotFound)
	}
	now := timeNow()
	if err := fs.repos.File.Touch(ctx, f.ID, now); err != nil {
		return nil, dbErr(err, nil)
	}
	f.LastAccessedAt = &now
	return f, nil
}

// Objects lists bucket keys under prefix. The logs prefix only shows log files.
func (fs *FileService) Objects(ctx context.Context, req *model.ObjectListReq) ([]storage.ObjectInfo, error) {
	if v := model.Validate(req); v != nil {
		return nil, invalid(v)
	}
	maxKeys := req.MaxKeys
	if maxKeys == 0 {
		maxKeys = model.DefaultMaxKeys
	}
	prefix := strings.Trim(req.Prefix, "/")
	if prefix != "" {
		prefix += "/"
	}

	objects, err := fs.storage.ListObjects(ctx, prefix, min(maxKeys, maxObjectKeys))
	if err != nil {
		return nil, ErrStorage.Wrap(err)
	}
	if strings.TrimSuffix(prefix, "/") != logsPrefix {
		return objects, nil
	}
	logs := make([]storage.ObjectInfo, 0, len(objects))
	for _, o := range objects {
		if strings.EqualFold(path.Ext(o.Key), ".log") {
			logs = append(logs, o)
		}
	}
	return logs, nil
}

func (fs *FileService) ObjectMeta(ctx context.Context, req *model.ObjectKeyReq) (*storage.ObjectMeta, error) {
	if v := model.Validate(req); v != nil {
		return nil, invalid(v)
	}
	meta, err := fs.storage.StatObject(ctx, req.Key, req.VersionID)
	if err != nil {
		return nil, storageErr(err)
	}
	return meta, nil
}

func (fs *FileService) DeleteObject(ctx context.Context, req *model.ObjectKeyReq) (*storage.DeleteResult, error) {
	if v := model.Validate(req); v != nil {
		return nil, invalid(v)
	}
	res, err := fs.storage.DeleteObject(ctx, req.Key, req.VersionID)
	if err != nil {
		return nil, storageErr(err)
	}
	return res, nil
}

func storageErr(err error) error {
	if errors.Is(err, storage.ErrObjectNotFound) {
		return ErrObjectNotFound.Wrap(err)
	}
	return ErrStorage.Wrap(err)
}
