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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSignUp() SignUpReq {
	return SignUpReq{
		LoginID:  "admin01",
		Email:    "admin@example.com",
		Username: "admin",
		Password: "Passw0rd!",
	}
}

func TestValidate_SignUp(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *SignUpReq)
		id     string
		field  string
	}{
		{"valid", func(r *SignUpReq) {}, "", ""},
		{"missing login id", func(r *SignUpReq) { r.LoginID = "" }, "fieldRequired", "loginId"},
		{"login id not alphanumeric", func(r *SignUpReq) { r.LoginID = "ad-min" }, "fieldAlphanum", "loginId"},
		{"login id too long", func(r *SignUpReq) { r.LoginID = strings.Repeat("a", 21) }, "fieldMaxLength", "loginId"},
		{"bad email", func(r *SignUpReq) { r.Email = "nope" }, "fieldEmail", "email"},
		{"short password", func(r *SignUpReq) { r.Password = "Pa0!" }, "fieldMinLength", "password"},
		{"weak password", func(r *SignUpReq) { r.Password = "password1" }, "fieldPassword", "password"},
		{"zero branch id", func(r *SignUpReq) { r.BranchIDs = []uint{1, 0} }, "fieldPositive", "branchIds[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignUp()
			tt.mutate(&req)
			v := Validate(&req)
			if tt.id == "" {
				assert.Nil(t, v)
				return
			}
			require.NotNil(t, v)
			assert.Equal(t, tt.id, v.MessageID)
			assert.Equal(t, tt.field, v.Field)
			assert.NotEmpty(t, v.Error())
		})
	}
}

func TestValidate_Branch(t *testing.T) {
	seq := -1
	assert.Nil(t, Validate(&CreateBranchReq{Name: "north", Title: "North", URL: "https://north.example.com"}))
	assert.Equal(t, "fieldURL", Validate(&CreateBranchReq{Name: "north", Title: "North", URL: "ftp://x"}).MessageID)
	assert.Equal(t, "fieldMinLength", Validate(&CreateBranchReq{Name: "no", Title: "North", URL: "https://x.io"}).MessageID)
	assert.Equal(t, "fieldPositive", Validate(&CreateBranchReq{Name: "north", Title: "North", URL: "https://x.io", Seq: &seq}).MessageID)
}

func TestCreateBranchReq_DefaultSeq(t *testing.T) {
	zero := 0
	assert.Equal(t, 99, (&CreateBranchReq{}).Branch().Seq)
	assert.Equal(t, 0, (&CreateBranchReq{Seq: &zero}).Branch().Seq)
	assert.Equal(t, 99, (&CreateMenuReq{}).Menu().Seq)
}

func TestUpdateMemberReq(t *testing.T) {
	var r UpdateMemberReq
	assert.True(t, r.Empty())
	assert.False(t, r.GrantsChanged())

	ids := []uint{}
	r.MenuIDs = &ids
	assert.False(t, r.Empty())
	assert.True(t, r.GrantsChanged())

	weak := "abcdefgh"
	r.Password = &weak
	assert.Equal(t, "fieldPassword", Validate(&r).MessageID)
}

func TestPageReq(t *testing.T) {
	p := PageReq{}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PerPage)
	assert.Equal(t, 0, p.Offset())

	p = PageReq{Page: 3, PerPage: 20}
	assert.Equal(t, 40, p.Offset())
	assert.Nil(t, Validate(&p))

	p.PerPage = 101
	assert.Equal(t, "fieldMax", Validate(&p).MessageID)
}

func TestNewMemberDetail(t *testing.T) {
	m := &Member{LoginID: "admin01", Role: RoleAdmin}
	m.ID = 7
	m.Authorities = []Authority{{
		BranchID: 1, MenuID: 2,
		Branch: &Branch{Name: "north", Title: "North", URL: "https://n.io", Seq: 1},
		Menu:   &Menu{Title: "Orders", Link: "/orders", Seq: 2},
	}}
	d := NewMemberDetail(m)
	assert.Equal(t, uint(7), d.ID)
	assert.Nil(t, d.DeletedAt)
	require.Len(t, d.Authority, 1)
	assert.Equal(t, "north", d.Authority[0].Branch.Name)
	assert.Equal(t, "/orders", d.Authority[0].Menu.Link)
}
