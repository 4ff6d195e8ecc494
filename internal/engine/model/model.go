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

package model

import (
	"time"

	"github.com/go-arcade/backoffice/pkg/database"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// SoftDelete marks rows hidden from default queries once deleted_at is set.
type SoftDelete struct {
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deletedAt"`
}

// Member roles.
const (
	RoleAdmin    = "admin"
	RoleVerified = "verified"
	RoleUser     = "user"
	RoleDeny     = "deny"
)

// File storage kinds.
const (
	StorageS3   = "s3"
	StorageDisk = "disk"
)

func init() {
	database.RegisterModels(&Member{}, &Branch{}, &Menu{}, &Authority{}, &File{})
}
