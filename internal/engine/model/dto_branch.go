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

import "github.com/go-arcade/backoffice/pkg/util"

type CreateBranchReq struct {
	Name   string `json:"name" validate:"required,min=5,max=20"`
	Title  string `json:"title" validate:"required,min=5,max=20"`
	URL    string `json:"url" validate:"required,http_url,max=100"`
	Seq    *int   `json:"seq" validate:"omitempty,gte=0"`
	IsShow bool   `json:"isShow"`
}

func (r *CreateBranchReq) Branch() *Branch {
	b := &Branch{Name: r.Name, Title: r.Title, URL: r.URL, Seq: 99, IsShow: r.IsShow}
	if r.Seq != nil {
		b.Seq = *r.Seq
	}
	return b
}

type UpdateBranchReq struct {
	Name   *string `json:"name" validate:"omitempty,min=5,max=20"`
	Title  *string `json:"title" validate:"omitempty,min=5,max=20"`
	URL    *string `json:"url" validate:"omitempty,http_url,max=100"`
	Seq    *int    `json:"seq" validate:"omitempty,gte=0"`
	IsShow *bool   `json:"isShow"`
}

// Columns returns the present fields keyed by column name.
func (r *UpdateBranchReq) Columns() map[string]any {
	cols := map[string]any{}
	util.SetIfNotNil(cols, "name", r.Name)
	util.SetIfNotNil(cols, "title", r.Title)
	util.SetIfNotNil(cols, "url", r.URL)
	util.SetIfNotNil(cols, "seq", r.Seq)
	util.SetIfNotNil(cols, "is_show", r.IsShow)
	return cols
}

type CreateMenuReq struct {
	Title string `json:"title" validate:"required,min=1,max=20"`
	Link  string `json:"link" validate:"required,min=1,max=20"`
	Seq   *int   `json:"seq" validate:"omitempty,gte=0"`
}

func (r *CreateMenuReq) Menu() *Menu {
	m := &Menu{Title: r.Title, Link: r.Link, Seq: 99}
	if r.Seq != nil {
		m.Seq = *r.Seq
	}
	return m
}

type UpdateMenuReq struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=20"`
	Link  *string `json:"link" validate:"omitempty,min=1,max=20"`
	Seq   *int    `json:"seq" validate:"omitempty,gte=0"`
}

func (r *UpdateMenuReq) Columns() map[string]any {
	cols := map[string]any{}
	util.SetIfNotNil(cols, "title", r.Title)
	util.SetIfNotNil(cols, "link", r.Link)
	util.SetIfNotNil(cols, "seq", r.Seq)
	return cols
}

type MemberBranchReq struct {
	MemberID uint `json:"memberId" validate:"required,gt=0"`
}

type MemberMenuReq struct {
	MemberID uint `json:"memberId" validate:"required,gt=0"`
	BranchID uint `json:"branchId" validate:"required,gt=0"`
}

// BranchView is a branch reached through a member's grants.
type BranchView struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Seq    int    `json:"seq"`
	IsShow bool   `json:"isShow"`
}

type MenuView struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Link  string `json:"link"`
	Seq   int    `json:"seq"`
}
