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

type IBranchRepository interface {
	Create(ctx context.Context, b *model.Branch) error
	List(ctx context.Context, deleted bool) ([]model.Branch, error)
	FindLive(ctx context.Context, id uint) (*model.Branch, error)
	FindDeleted(ctx context.Context, id uint) (*model.Branch, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, id uint, cols map[string]any) (int64, error)
	SoftDelete(ctx context.Context, id uint) (int64, error)
	Restore(ctx context.Context, id uint) (int64, error)
	// CountLive reports how many distinct live branches are in ids.
	CountLive(ctx context.Context, ids []uint) (int64, error)
	ListByMember(ctx context.Context, memberID uint) ([]model.BranchView, error)
}

type BranchRepo struct {
	db database.IDatabase
}

func NewBranchRepo(db database.IDatabase) IBranchRepository {
	return &BranchRepo{db: db}
}

func (br *BranchRepo) conn(ctx context.Context) *gorm.DB {
	return br.db.Database().WithContext(ctx)
}

func (br *BranchRepo) Create(ctx context.Context, b *model.Branch) error {
	return br.conn(ctx).Create(b).Error
}

func (br *BranchRepo) List(ctx context.Context, deleted bool) ([]model.Branch, error) {
	db := br.conn(ctx).Scopes(database.ReadDB)
	if deleted {
		db = db.Scopes(deletedOnly)
	}
	branches := make([]model.Branch, 0)
	if err := db.Order("seq ASC").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

func (br *BranchRepo) FindLive(ctx context.Context, id uint) (*model.Branch, error) {
	var b model.Branch
	if err := br.conn(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (br *BranchRepo) FindDeleted(ctx context.Context, id uint) (*model.Branch, error) {
	var b model.Branch
	if err := br.conn(ctx).Scopes(deletedOnly).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (br *BranchRepo) Exists(ctx context.Context, id uint) (bool, error) {
	n, err := Count(br.conn(ctx).Model(&model.Branch{}).Where("id = ?", id))
	return n > 0, err
}

func (br *BranchRepo) Update(ctx context.Context, id uint, cols map[string]any) (int64, error) {
	res := br.conn(ctx).Model(&model.Branch{}).Where("id = ?", id).Updates(cols)
	return res.RowsAffected, res.Error
}

func (br *BranchRepo) SoftDelete(ctx context.Context, id uint) (int64, error) {
	res := br.conn(ctx).Where("id = ?", id).Delete(&model.Branch{})
	return res.RowsAffected, res.Error
}

func (br *BranchRepo) Restore(ctx context.Context, id uint) (int64, error) {
	res := br.conn(ctx).Unscoped().Model(&model.Branch{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	return res.RowsAffected, res.Error
}

func (br *BranchRepo) CountLive(ctx context.Context, ids []uint) (int64, error) {
	return Count(br.conn(ctx).Model(&model.Branch{}).Where("id IN ?", ids))
}

func (br *BranchRepo) ListByMember(ctx context.Context, memberID uint) ([]model.BranchView, error) {
	views := make([]model.BranchView, 0)
	err := br.conn(ctx).Scopes(database.ReadDB).Model(&model.Branch{}).
		Distinct("t_branch.id", "t_branch.name", "t_branch.title", "t_branch.url", "t_branch.seq", "t_branch.is_show").
		Joins("JOIN t_authority ON t_authority.branch_id = t_branch.id").
		Where("t_authority.member_id = ?", memberID).
		Order("t_branch.seq ASC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}
