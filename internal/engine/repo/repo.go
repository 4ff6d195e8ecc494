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

	"github.com/go-arcade/backoffice/pkg/database"
	"gorm.io/gorm"
)

// Repositories groups every repository over one connection or transaction.
type Repositories struct {
	Member    IMemberRepository
	Branch    IBranchRepository
	Menu      IMenuRepository
	Authority IAuthorityRepository
	File      IFileRepository

	db    database.IDatabase
	begin TxFunc
}

// TxFunc runs fn inside one unit of work and rolls back when fn fails.
type TxFunc func(ctx context.Context, fn func(tx *Repositories) error) error

func NewRepositories(db database.IDatabase) *Repositories {
	return &Repositories{
		Member:    NewMemberRepo(db),
		Branch:    NewBranchRepo(db),
		Menu:      NewMenuRepo(db),
		Authority: NewAuthorityRepo(db),
		File:      NewFileRepo(db),
		db:        db,
	}
}

// WithTransaction replaces how a unit of work begins. Used with in-memory
// repositories.
func (r *Repositories) WithTransaction(begin TxFunc) *Repositories {
	r.begin = begin
	return r
}

// Transaction runs fn with repositories bound to one database transaction.
// The error returned by fn is returned unchanged after the rollback.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	if r.begin != nil {
		return r.begin(ctx, fn)
	}
	if r.db == nil {
		return fn(r)
	}
	return r.db.Database().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(database.NewGormDB(tx)))
	})
}

func Count(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// deletedOnly selects soft-deleted rows only.
func deletedOnly(db *gorm.DB) *gorm.DB {
	return db.Unscoped().Where("deleted_at IS NOT NULL")
}

func paginate(offset, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(offset).Limit(limit)
	}
}
