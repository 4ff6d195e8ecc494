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

type Member struct {
	BaseModel
	LoginID         string     `gorm:"column:login_id;type:varchar(20);uniqueIndex;not null" json:"loginId"`
	Email           string     `gorm:"column:email;type:varchar(50);uniqueIndex;not null" json:"email"`
	Username        string     `gorm:"column:username;type:varchar(20);not null" json:"username"`
	Password        string     `gorm:"column:password;type:varchar(100);not null" json:"-"`
	Role            string     `gorm:"column:role;type:enum('admin','verified','user','deny');default:user;index" json:"role"`
	RefreshToken    *string    `gorm:"column:refresh_token;type:text" json:"-"`
	EmailValidateAt *time.Time `gorm:"column:email_validate_at" json:"emailValidateAt"`
	SoftDelete
	Authorities []Authority `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Member) TableName() string {
	return "t_member"
}

// StoredRefreshToken returns the persisted refresh token or "".
func (m Member) StoredRefreshToken() string {
	if m.RefreshToken == nil {
		return ""
	}
	return *m.RefreshToken
}
