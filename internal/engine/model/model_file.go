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

import "time"

// File is the metadata of an uploaded object. BranchID is not a foreign key
// so files outlive their branch.
type File struct {
	BaseModel
	BranchID       uint       `gorm:"column:branch_id;not null;index" json:"branchId"`
	OriginalName   string     `gorm:"column:originalname;type:varchar(255);not null" json:"originalname"`
	FileName       string     `gorm:"column:filename;type:varchar(255);not null" json:"filename"`
	MimeType       string     `gorm:"column:mimetype;type:varchar(100)" json:"mimetype"`
	Size           int64      `gorm:"column:size" json:"size"`
	Storage        string     `gorm:"column:storage;type:enum('s3','disk');default:s3" json:"storage"`
	Path           string     `gorm:"column:path;type:varchar(255)" json:"path"`
	URL            string     `gorm:"column:url;type:varchar(255)" json:"url"`
	LastAccessedAt *time.Time `gorm:"column:last_accessed_at" json:"lastAccessedAt"`
	SoftDelete
}

func (File) TableName() string {
	return "t_file"
}
