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

type FileListReq struct {
	BranchID uint `query:"branch" json:"branch" validate:"required,gt=0"`
	PageReq
}

type UploadResult struct {
	Result bool   `json:"result"`
	URL    string `json:"url"`
}

type ObjectListReq struct {
	Prefix  string `query:"prefix" json:"prefix"`
	MaxKeys int    `query:"maxKeys" json:"maxKeys" validate:"gte=0,max=1000"`
}

const DefaultMaxKeys = 30

type ObjectKeyReq struct {
	Key       string `query:"key" json:"key" validate:"required"`
	VersionID string `query:"versionId" json:"versionId"`
}
