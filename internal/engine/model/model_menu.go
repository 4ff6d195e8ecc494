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

type Menu struct {
	BaseModel
	Title string `gorm:"column:title;type:varchar(20);not null" json:"title"`
	Link  string `gorm:"column:link;type:varchar(20);not null" json:"link"`
	Seq   int    `gorm:"column:seq;type:int NOT NULL DEFAULT 99" json:"seq"`
	SoftDelete
}

func (Menu) TableName() string {
	return "t_menu"
}
