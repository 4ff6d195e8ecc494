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

type SignUpReq struct {
	LoginID   string `json:"loginId" validate:"required,alphanum,max=20"`
	Email     string `json:"email" validate:"required,email,max=50"`
	Username  string `json:"username" validate:"required,max=20"`
	Password  string `json:"password" validate:"required,min=8,max=100,password"`
	BranchIDs []uint `json:"branchIds" validate:"omitempty,dive,gt=0"`
	MenuIDs   []uint `json:"menuIds" validate:"omitempty,dive,gt=0"`
}

type SendValidationReq struct {
	Email    string `json:"email" validate:"required,email,max=50"`
	Username string `json:"username" validate:"required,max=20"`
}

type LoginReq struct {
	LoginID  string `json:"loginId" validate:"required,max=20"`
	Password string `json:"password" validate:"required,max=100"`
}

type RefreshReq struct {
	ID           uint   `json:"id" validate:"required,gt=0"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type DuplicatedIDReq struct {
	LoginID string `json:"loginId" validate:"required,alphanum,max=20"`
}

type DuplicatedEmailReq struct {
	Email string `json:"email" validate:"required,email,max=50"`
}

// UpdateMemberReq is a partial update. Nil fields are left untouched; the
// login id cannot be changed.
type UpdateMemberReq struct {
	Email     *string `json:"email" validate:"omitempty,email,max=50"`
	Username  *string `json:"username" validate:"omitempty,min=1,max=20"`
	Password  *string `json:"password" validate:"omitempty,min=8,max=100,password"`
	BranchIDs *[]uint `json:"branchIds" validate:"omitempty,dive,gt=0"`
	MenuIDs   *[]uint `json:"menuIds" validate:"omitempty,dive,gt=0"`
}

func (r *UpdateMemberReq) Empty() bool {
	return r.Email == nil && r.Username == nil && r.Password == nil && r.BranchIDs == nil && r.MenuIDs == nil
}

// GrantsChanged reports whether the request touches the authority set.
func (r *UpdateMemberReq) GrantsChanged() bool {
	return r.BranchIDs != nil || r.MenuIDs != nil
}

type PageReq struct {
	Page    int `query:"page" json:"page" validate:"gte=1"`
	PerPage int `query:"perPage" json:"perPage" validate:"gte=1,max=100"`
}

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Normalize fills absent paging values with the defaults.
func (p *PageReq) Normalize() {
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.PerPage == 0 {
		p.PerPage = DefaultPerPage
	}
}

func (p *PageReq) Offset() int {
	return p.PerPage * (p.Page - 1)
}

type Page[T any] struct {
	List    []T   `json:"list"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type Duplicated struct {
	IsDuplicated bool `json:"isDuplicated"`
}

type Count struct {
	Count int64 `json:"count"`
}

type Affected struct {
	AffectedRows int64 `json:"affectedRows"`
}

type BranchBrief struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Seq   int    `json:"seq"`
}

type MenuBrief struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Link  string `json:"link"`
	Seq   int    `json:"seq"`
}

type AuthorityDetail struct {
	ID     uint        `json:"id"`
	Branch BranchBrief `json:"branch"`
	Menu   MenuBrief   `json:"menu"`
}

// MemberDetail is a member with its grants, deleted members included.
type MemberDetail struct {
	ID              uint              `json:"id"`
	LoginID         string            `json:"loginId"`
	Email           string            `json:"email"`
	Username        string            `json:"username"`
	Role            string            `json:"role"`
	EmailValidateAt *time.Time        `json:"emailValidateAt"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
	DeletedAt       *time.Time        `json:"deletedAt"`
	Authority       []AuthorityDetail `json:"authority"`
}

func NewMemberDetail(m *Member) *MemberDetail {
	d := &MemberDetail{
		ID:              m.ID,
		LoginID:         m.LoginID,
		Email:           m.Email,
		Username:        m.Username,
		Role:            m.Role,
		EmailValidateAt: m.EmailValidateAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		Authority:       make([]AuthorityDetail, 0, len(m.Authorities)),
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		d.DeletedAt = &t
	}
	for _, a := range m.Authorities {
		ad := AuthorityDetail{ID: a.ID}
		if a.Branch != nil {
			ad.Branch = BranchBrief{ID: a.Branch.ID, Name: a.Branch.Name, Title: a.Branch.Title, URL: a.Branch.URL, Seq: a.Branch.Seq}
		}
		if a.Menu != nil {
			ad.Menu = MenuBrief{ID: a.Menu.ID, Title: a.Menu.Title, Link: a.Menu.Link, Seq: a.Menu.Seq}
		}
		d.Authority = append(d.Authority, ad)
	}
	return d
}

// SignUpResp is the created member with the requested grants.
type SignUpResp struct {
	Member
	BranchIDs []uint `json:"branchIds"`
	MenuIDs   []uint `json:"menuIds"`
}
