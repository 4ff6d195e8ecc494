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

	"github.com/go-arcade/backoffice/internal/engine/model"
	"github.com/go-arcade/backoffice/internal/engine/repo"
)

type BranchService struct {
	repos *repo.Repositories
}

func NewBranchService(repos *repo.Repositories) *BranchService {
	return &BranchService{repos: repos}
}

func (bs *BranchService) Create(ctx context.Context, req *model.CreateBranchReq) (*model.Branch, error) {
	if v := model.Validate(req); v != nil {
		return nil, invalid(v)
	}
	b := req.Branch()
	if err := bs.repos.Branch.Create(ctx, b); err != nil {
		return nil, dbErr(err, nil)
	}
	return b, nil
}

// List returns live branches, or deleted ones only, ordered by seq.
func (bs *BranchService) List(ctx context.Context, deleted bool) ([]model.Branch, error) {
	branches, err := bs.repos.Branch.List(ctx, deleted)
	if err != nil {
		return nil, dbErr(err, nil)
	}
	return branches, nil
}

func (bs *BranchService) Update(ctx context.Context, id uint, req *model.UpdateBranchReq) (*model.Affected, error) {
	cols := req.Columns()
	if len(cols) == 0 {
		return nil, ErrNoRequestData
	}
	if v := model.Validate(req); v != nil {
		return nil, invalid(v)
	}
	if _, err := bs.repos.Branch.FindLive(ctx, id); err != nil {
		return nil, dbErr(err, ErrBranchNotFound)
	}
	n, err := bs.repos.Branch.Update(ctx, id, cols)
	if err != nil {
		return nil, dbErr(err, nil)
	}
	return &model.Affected{AffectedRows: n}, nil
}

func (bs *BranchService) Remove(ctx context.Context, id uint) (*model.Affected, error) {
	if _, err := bs.repos.Branch.FindLive(ctx, id); err != nil {
		return nil, dbErr(err, ErrBranchNotFound)
	}
	n, err := bs.repos.Branch.SoftDelete(ctx, id)
	if err != nil {
		return nil, dbErr(err, nil)
	}
	return &model.Affected{AffectedRows: n}, nil
}

func (bs *BranchService) Restore(ctx context.Context, id uint) (*model.Affected, error) {
	if _, err := bs.repos.Branch.FindDeleted(ctx, id); err != nil {
		return nil, dbErr(err, ErrBranchNotFound)
	}
	n, err := bs.repos.Branch.Restore(ctx, id)
	if err != nil {
		return nil, dbErr(err, nil)
	}
	return &model.Affected{AffectedRows: n}, nil
}

// ListByMember returns the live branches the member holds grants on.
func (bs *BranchService) ListByMember(ctx context.Context, req *model.MemberBranchReq) ([]model.BranchView, error) {
	if v := model.Validate(req); v != nil {
		return nil, invalid(v)
	}
	views, err := bs.repos.Branch.ListByMember(ctx, req.MemberID)
	if err != nil {
		return nil, dbErr(err, nil)
	}
	return views, nil
}

func (bs *BranchService) Exists(ctx context.Context, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	ok, err := bs.repos.Branch.Exists(ctx, id)
	if err != nil {
		return false, dbErr(err, nil)
	}
	return ok, nil
}
