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

// Authority grants one member access to one (branch, menu) pair.
type Authority struct {
	BaseModel
	MemberID uint    `gorm:"column:member_id;not null;uniqueIndex:uk_authority,priority:1;index:idx_authority_member_branch,priority:1" json:"memberId"`
	BranchID uint    `gorm:"column:branch_id;not null;uniqueIndex:uk_authority,priority:2;index:idx_authority_member_branch,priority:2" json:"branchId"`
	MenuID   uint    `gorm:"column:menu_id;not null;uniqueIndex:uk_authority,priority:3" json:"menuId"`
	Branch   *Branch `gorm:"foreignKey:BranchID;constraint:OnDelete:CASCADE" json:"branch,omitempty"`
	Menu     *Menu   `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE" json:"menu,omitempty"`
}

func (Authority) TableName() string {
	return "t_authority"
}
