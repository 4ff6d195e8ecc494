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

package repo

import (
	"context"

	"github.com/go-arcade/backoffice/internal/engine/model"
	"github.com/go-arcade/backoffice/pkg/database"
	"gorm.io/gorm"
)

type IMenuRepository interface {
	Create(ctx context.Context, m *model.Menu) error
	List(ctx context.Context, deleted bool) ([]model.Menu, error)
	FindLive(ctx context.Context, id uint) (*model.Menu, error)
	FindDeleted(ctx context.Context, id uint) (*model.Menu, error)
	Update(ctx context.Context, id uint, cols map[string]any) (int64, error)
	SoftDelete(ctx context.Context, id uint) (int64, error)
	Restore(ctx context.Context, id uint) (int64, error)
	CountLive(ctx context.Context, ids []uint) (int64, error)
	ListByMember(ctx context.Context, memberID, branchID uint) ([]model.MenuView, error)
}

type MenuRepo struct {
	db database.IDatabase
}

func NewMenuRepo(db database.IDatabase) IMenuRepository {
	return &MenuRepo{db: db}
}

func (mr *MenuRepo) conn(ctx context.Context) *gorm.DB {
	return mr.db.Database().WithContext(ctx)
}

func (mr *MenuRepo) Create(ctx context.Context, m *model.Menu) error {
	return mr.conn(ctx).Create(m).Error
}

func (mr *MenuRepo) List(ctx context.Context, deleted bool) ([]model.Menu, error) {
	db := mr.conn(ctx).Scopes(database.ReadDB)
	if deleted {
		db = db.Scopes(deletedOnly)
	}
	menus := make([]model.Menu, 0)
	if err := db.Order("seq ASC").Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

func (mr *MenuRepo) FindLive(ctx context.Context, id uint) (*model.Menu, error) {
	var m model.Menu
	if err := mr.conn(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (mr *MenuRepo) FindDeleted(ctx context.Context, id uint) (*model.Menu, error) {
	var m model.Menu
	if err := mr.conn(ctx).Scopes(deletedOnly).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (mr *MenuRepo) Update(ctx context.Context, id uint, cols map[string]any) (int64, error) {
	res := mr.conn(ctx).Model(&model.Menu{}).Where("id = ?", id).Updates(cols)
	return res.RowsAffected, res.Error
}

func (mr *MenuRepo) SoftDelete(ctx context.Context, id uint) (int64, error) {
	res := mr.conn(ctx).Where("id = ?", id).Delete(&model.Menu{})
	return res.RowsAffected, res.Error
}

func (mr *MenuRepo) Restore(ctx context.Context, id uint) (int64, error) {
	res := mr.conn(ctx).Unscoped().Model(&model.Menu{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	return res.RowsAffected, res.Error
}

func (mr *MenuRepo) CountLive(ctx context.Context, ids []uint) (int64, error) {
	return Count(mr.conn(ctx).Model(&model.Menu{}).Where("id IN ?", ids))
}

func (mr *MenuRepo) ListByMember(ctx context.Context, memberID, branchID uint) ([]model.MenuView, error) {
	views := make([]model.MenuView, 0)
	err := mr.conn(ctx).Scopes(database.ReadDB).Model(&model.Menu{}).
		Distinct("t_menu.id", "t_menu.title", "t_menu.link", "t_menu.seq").
		Joins("JOIN t_authority ON t_authority.menu_id = t_menu.id").
		Where("t_authority.member_id = ? AND t_authority.branch_id = ?", memberID, branchID).
		Order("t_menu.seq ASC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}
