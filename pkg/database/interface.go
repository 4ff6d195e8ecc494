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

package database

import "gorm.io/gorm"

// IDatabase is the handle repositories query through. It is either the
// pooled connection of a Manager or a single open transaction.
type IDatabase interface {
	Database() *gorm.DB
}

type managerDB struct {
	Manager
}

func (m managerDB) Database() *gorm.DB {
	return m.MySQL()
}

type gormDB struct {
	db *gorm.DB
}

// NewGormDB wraps a bare *gorm.DB, typically a transaction.
func NewGormDB(db *gorm.DB) IDatabase {
	return gormDB{db: db}
}

func (g gormDB) Database() *gorm.DB {
	return g.db
}
