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

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const (
	dataTablePrefix = "t_"
)

type DatabaseSourceConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

type MySQLConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	// Primary and Replicas enable dbresolver. Empty Primary means the
	// Host/Port/User/Password/DBName source is the only writer.
	Primary  []DatabaseSourceConfig `mapstructure:"primary"`
	Replicas []DatabaseSourceConfig `mapstructure:"replicas"`
}

type Database struct {
	OutPut        bool        `mapstructure:"output"`
	SlowThreshold int         `mapstructure:"slowThreshold"` // milliseconds
	MaxOpenConns  int         `mapstructure:"maxOpenConns"`
	MaxIdleConns  int         `mapstructure:"maxIdleConns"`
	MaxLifetime   int         `mapstructure:"maxLifeTime"`
	MaxIdleTime   int         `mapstructure:"maxIdleTime"`
	MySQL         MySQLConfig `mapstructure:"mysql"`
}

// SetDefaults fills zero values with sane pool settings.
func (d *Database) SetDefaults() {
	if d.MaxOpenConns <= 0 {
		d.MaxOpenConns = 20
	}
	if d.MaxIdleConns <= 0 {
		d.MaxIdleConns = 10
	}
	if d.SlowThreshold <= 0 {
		d.SlowThreshold = 1000
	}
	if d.MySQL.Port == "" {
		d.MySQL.Port = "3306"
	}
}

func (d *Database) Validate() error {
	if d.MySQL.Host == "" || d.MySQL.User == "" || d.MySQL.DBName == "" {
		return fmt.Errorf("database.mysql: host, user and dbname are required")
	}
	return nil
}

func GetConnMaxLifetime(maxLifetime int) time.Duration {
	if maxLifetime > 0 {
		return time.Duration(maxLifetime) * time.Second
	}
	return 300 * time.Second
}

func GetConnMaxIdleTime(maxIdleTime int) time.Duration {
	if maxIdleTime > 0 {
		return time.Duration(maxIdleTime) * time.Second
	}
	return 60 * time.Second
}

// buildMySQLDSN enables clientFoundRows so that UPDATE reports matched rows
// rather than changed rows.
func buildMySQLDSN(user, password, host, port, db string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
		user, password, host, port, db)
}

func buildDialectors(configs []DatabaseSourceConfig) ([]gorm.Dialector, error) {
	if len(configs) == 0 {
		return nil, nil
	}
	dialectors := make([]gorm.Dialector, 0, len(configs))
	for _, c := range configs {
		if c.Host == "" || c.User == "" || c.DBName == "" {
			return nil, fmt.Errorf("incomplete database source config: host, user, and dbname are required")
		}
		port := c.Port
		if port == "" {
			port = "3306"
		}
		dsn := buildMySQLDSN(c.User, c.Password, c.Host, port, c.DBName)
		dialectors = append(dialectors, mysql.Open(dsn))
	}
	return dialectors, nil
}
