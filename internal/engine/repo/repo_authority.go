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
)

type IAuthorityRepository interface {
	DeleteByMember(ctx context.Context, memberID uint) error
	CreateBatch(ctx context.Context, rows []model.Authority) error
}

type AuthorityRepo struct {
	db database.IDatabase
}

func NewAuthorityRepo(db database.IDatabase) IAuthorityRepository {
	return &AuthorityRepo{db: db}
}

func (ar *AuthorityRepo) DeleteByMember(ctx context.Context, memberID uint) error {
	return ar.db.Database().WithContext(ctx).Where("member_id = ?", memberID).Delete(&model.Authority{}).Error
}

func (ar *AuthorityRepo) CreateBatch(ctx context.Context, rows []model.Authority) error {
	if len(rows) == 0 {
		return nil
	}
	return ar.db.Database().WithContext(ctx).Omit("Branch", "Menu").Create(&rows).Error
}
