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

type IMemberRepository interface {
	Create(ctx context.Context, m *model.Member) error
	// CountByLoginID and CountByEmail include soft-deleted rows.
	CountByLoginID(ctx context.Context, loginID string) (int64, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
	FindLive(ctx context.Context, id uint) (*model.Member, error)
	FindAny(ctx context.Context, id uint) (*model.Member, error)
	FindDeleted(ctx context.Context, id uint) (*model.Member, error)
	FindByLoginID(ctx context.Context, loginID string) (*model.Member, error)
	FindByEmailAndUsername(ctx context.Context, email, username string) (*model.Member, error)
	FindDetail(ctx context.Context, id uint) (*model.Member, error)
	Count(ctx context.Context, deleted bool) (int64, error)
	List(ctx context.Context, deleted bool, offset, limit int) ([]model.Member, int64, error)
	Update(ctx context.Context, id uint, cols map[string]any) (int64, error)
	SetRefreshToken(ctx context.Context, id uint, token string) error
	SoftDelete(ctx context.Context, id uint) (int64, error)
	Restore(ctx context.Context, id uint) (int64, error)
}

type MemberRepo struct {
	db database.IDatabase
}

func NewMemberRepo(db database.IDatabase) IMemberRepository {
	return &MemberRepo{db: db}
}

func (mr *MemberRepo) conn(ctx context.Context) *gorm.DB {
	return mr.db.Database().WithContext(ctx)
}

func (mr *MemberRepo) Create(ctx context.Context, m *model.Member) error {
	return mr.conn(ctx).Create(m).Error
}

func (mr *MemberRepo) CountByLoginID(ctx context.Context, loginID string) (int64, error) {
	return Count(mr.conn(ctx).Scopes(database.WriteDB).Unscoped().Model(&model.Member{}).Where("login_id = ?", loginID))
}

func (mr *MemberRepo) CountByEmail(ctx context.Context, email string) (int64, error) {
	return Count(mr.conn(ctx).Scopes(database.WriteDB).Unscoped().Model(&model.Member{}).Where("email = ?", email))
}

func (mr *MemberRepo) FindLive(ctx context.Context, id uint) (*model.Member, error) {
	var m model.Member
	if err := mr.conn(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (mr *MemberRepo) FindAny(ctx context.Context, id uint) (*model.Member, error) {
	var m model.Member
	if err := mr.conn(ctx).Unscoped().Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (mr *MemberRepo) FindDeleted(ctx context.Context, id uint) (*model.Member, error) {
	var m model.Member
	if err := mr.conn(ctx).Scopes(deletedOnly).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (mr *MemberRepo) FindByLoginID(ctx context.Context, loginID string) (*model.Member, error) {
	var m model.Member
	if err := mr.conn(ctx).Where("login_id = ?", loginID).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (mr *MemberRepo) FindByEmailAndUsername(ctx context.Context, email, username string) (*model.Member, error) {
	var m model.Member
	err := mr.conn(ctx).Where("email = ? AND username = ?", email, username).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindDetail loads a member, deleted or not, with its grants and their
// branch and menu.
func (mr *MemberRepo) FindDetail(ctx context.Context, id uint) (*model.Member, error) {
	var m model.Member
	err := mr.conn(ctx).Scopes(database.ReadDB).Unscoped().
		Preload("Authorities", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Authorities.Branch", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped().Select("id", "name", "title", "url", "seq")
		}).
		Preload("Authorities.Menu", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped().Select("id", "title", "link", "seq")
		}).
		Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (mr *MemberRepo) scope(ctx context.Context, deleted bool) *gorm.DB {
	db := mr.conn(ctx).Scopes(database.ReadDB).Model(&model.Member{})
	if deleted {
		return db.Scopes(deletedOnly)
	}
	return db
}

func (mr *MemberRepo) Count(ctx context.Context, deleted bool) (int64, error) {
	return Count(mr.scope(ctx, deleted))
}

func (mr *MemberRepo) List(ctx context.Context, deleted bool, offset, limit int) ([]model.Member, int64, error) {
	total, err := Count(mr.scope(ctx, deleted))
	if err != nil {
		return nil, 0, err
	}
	members := make([]model.Member, 0, limit)
	err = mr.scope(ctx, deleted).Scopes(paginate(offset, limit)).Order("id ASC").Find(&members).Error
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// Update changes the given columns of a member, deleted or not.
func (mr *MemberRepo) Update(ctx context.Context, id uint, cols map[string]any) (int64, error) {
	res := mr.conn(ctx).Unscoped().Model(&model.Member{}).Where("id = ?", id).Updates(cols)
	return res.RowsAffected, res.Error
}

func (mr *MemberRepo) SetRefreshToken(ctx context.Context, id uint, token string) error {
	return mr.conn(ctx).Model(&model.Member{}).Where("id = ?", id).Update("refresh_token", token).Error
}

func (mr *MemberRepo) SoftDelete(ctx context.Context, id uint) (int64, error) {
	res := mr.conn(ctx).Where("id = ?", id).Delete(&model.Member{})
	return res.RowsAffected, res.Error
}

func (mr *MemberRepo) Restore(ctx context.Context, id uint) (int64, error) {
	res := mr.conn(ctx).Unscoped().Model(&model.Member{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	return res.RowsAffected, res.Error
}

// ResetColumns returns the columns that send a member back to unverified.
func ResetColumns() map[string]any {
	return map[string]any{"role": model.RoleUser, "email_validate_at": nil}
}

// VerifyColumns returns the columns of a confirmed email.
func VerifyColumns(at time.Time) map[string]any {
	return map[string]any{"role": model.RoleVerified, "email_validate_at": at}
}
