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

// Branch seq defaults to 99 in the column definition so an explicit 0 survives inserts.
type Branch struct {
	BaseModel
	Name   string `gorm:"column:name;type:varchar(20);not null" json:"name"`
	Title  string `gorm:"column:title;type:varchar(20);not null" json:"title"`
	URL    string `gorm:"column:url;type:varchar(100);not null" json:"url"`
	Seq    int    `gorm:"column:seq;type:int NOT NULL DEFAULT 99" json:"seq"`
	IsShow bool   `gorm:"column:is_show;type:tinyint(1) NOT NULL DEFAULT 0" json:"isShow"`
	SoftDelete
}

func (Branch) TableName() string {
	return "t_branch"
}
