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

type MenuService struct {
	repos *repo.Repositories
}

func NewMenuService(repos *repo.Repositories) *MenuService {
	return &MenuService{repos: repos}
}

func (ms *MenuService) Create(ctx context.Context, req *model.CreateMenuReq) (*model.Menu, error) {
	if v := model.Validate(req); v != nil {
		return nil, invalid(v)
	}
	m := req.Menu()
	if err := ms.repos.Menu.Create(ctx, m); err != nil {
		return nil, dbErr(err, nil)
	}
	return m, nil
}

func (ms *MenuService) List(ctx context.Context, deleted bool) ([]model.Menu, error) {
	menus, err := ms.repos.Menu.List(ctx, deleted)
	if err != nil {
		return nil, dbErr(err, nil)
	}
	return menus, nil
}

func (ms *MenuService) Update(ctx context.Context, id uint, req *model.UpdateMenuReq) (*model.Affected, error) {
	cols := req.Columns()
	if len(cols) == 0 {
		return nil, ErrNoRequestData
	}
	if v := model.Validate(req); v != nil {
		return nil, invalid(v)
	}
	if _, err := ms.repos.Menu.FindLive(ctx, id); err != nil {
		return nil, dbErr(err, ErrMenuNotFound)
	}
	n, err := ms.repos.Menu.Update(ctx, id, cols)
	if err != nil {
		return nil, dbErr(err, nil)
	}
	return &model.Affected{AffectedRows: n}, nil
}

func (ms *MenuService) Remove(ctx context.Context, id uint) (*model.Affected, error) {
	if _, err := ms.repos.Menu.FindLive(ctx, id); err != nil {
		return nil, dbErr(err, ErrMenuNotFound)
	}
	n, err := ms.repos.Menu.SoftDelete(ctx, id)
	if err != nil {
		return nil, dbErr(err, nil)
	}
	return &model.Affected{AffectedRows: n}, nil
}

func (ms *MenuService) Restore(ctx context.Context, id uint) (*model.Affected, error) {
	if _, err := ms.repos.Menu.FindDeleted(ctx, id); err != nil {
		return nil, dbErr(err, ErrMenuNotFound)
	}
	n, err := ms.repos.Menu.Restore(ctx, id)
	if err != nil {
		return nil, dbErr(err, nil)
	}
	return &model.Affected{AffectedRows: n}, nil
}

// ListByMember returns the live menus granted to the member on one branch.
func (ms *MenuService) ListByMember(ctx context.Context, req *model.MemberMenuReq) ([]model.MenuView, error) {
	if v := model.Validate(req); v != nil {
		return nil, invalid(v)
	}
	views, err := ms.repos.Menu.ListByMember(ctx, req.MemberID, req.BranchID)
	if err != nil {
		return nil, dbErr(err, nil)
	}
	return views, nil
}
