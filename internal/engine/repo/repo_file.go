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
	"time"

	"github.com/go-arcade/backoffice/internal/engine/model"
	"github.com/go-arcade/backoffice/pkg/database"
	"gorm.io/gorm"
)

type IFileRepository interface {
	CreateBatch(ctx context.Context, files []model.File) error
	List(ctx context.Context, branchID uint, offset, limit int) ([]model.File, int64, error)
	FindByBranch(ctx context.Context, id, branchID uint) (*model.File, error)
	Touch(ctx context.Context, id uint, at time.Time) error
}

type FileRepo struct {
	db database.IDatabase
}

func NewFileRepo(db database.IDatabase) IFileRepository {
	return &FileRepo{db: db}
}

func (fr *FileRepo) conn(ctx context.Context) *gorm.DB {
	return fr.db.Database().WithContext(ctx)
}

func (fr *FileRepo) CreateBatch(ctx context.Context, files []model.File) error {
	if len(files) == 0 {
		return nil
	}
	return fr.conn(ctx).Create(&files).Error
}

func (fr *FileRepo) List(ctx context.Context, branchID uint, offset, limit int) ([]model.File, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		return db.Model(&model.File{}).Where("branch_id = ?", branchID)
	}
	total, err := Count(fr.conn(ctx).Scopes(database.ReadDB, scope))
	if err != nil {
		return nil, 0, err
	}
	files := make([]model.File, 0, limit)
	err = fr.conn(ctx).Scopes(database.ReadDB, scope, paginate(offset, limit)).Order("id ASC").Find(&files).Error
	if err != nil {
		return nil, 0, err
	}
	return files, total, nil
}

func (fr *FileRepo) FindByBranch(ctx context.Context, id, branchID uint) (*model.File, error) {
	var f model.File
	if err := fr.conn(ctx).Where("id = ? AND branch_id = ?", id, branchID).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (fr *FileRepo) Touch(ctx context.Context, id uint, at time.Time) error {
	return fr.conn(ctx).Model(&model.File{}).Where("id = ?", id).UpdateColumn("last_accessed_at", at).Error
}
