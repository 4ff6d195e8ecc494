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
	"context"
	"fmt"
	"time"

	"github.com/go-arcade/backoffice/pkg/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

// Manager owns the MySQL pool for the lifetime of the process.
type Manager interface {
	MySQL() *gorm.DB
	// Ping checks the source connection.
	Ping(ctx context.Context) error
	Close() error
}

type manager struct {
	db *gorm.DB
}

func (m *manager) MySQL() *gorm.DB {
	return m.db
}

func (m *manager) Ping(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (m *manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close mysql: %w", err)
	}
	return nil
}

func NewManager(cfg Database) (Manager, error) {
	db, err := openMySQL(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	log.Infow("mysql connected", "host", cfg.MySQL.Host, "db", cfg.MySQL.DBName)
	return &manager{db: db}, nil
}

// GormConfig is shared by the server and the sqlmock based tests:
// t_ prefixed singular table names and the zap backed logger.
func GormConfig(cfg Database) *gorm.Config {
	level := gormlogger.Warn
	if cfg.OutPut {
		level = gormlogger.Info
	}
	logConfig := gormlogger.Config{
		SlowThreshold:             time.Duration(cfg.SlowThreshold) * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
	}

	return &gorm.Config{
		Logger: NewGormLoggerAdapter(logConfig, level),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   dataTablePrefix,
			SingularTable: true,
		},
	}
}

func openMySQL(cfg Database) (*gorm.DB, error) {
	c := cfg.MySQL
	db, err := gorm.Open(mysql.Open(buildMySQLDSN(c.User, c.Password, c.Host, c.Port, c.DBName)), GormConfig(cfg))
	if err != nil {
		return nil, err
	}

	if len(c.Primary) > 0 || len(c.Replicas) > 0 {
		if err := useResolver(db, cfg); err != nil {
			return nil, err
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(GetConnMaxLifetime(cfg.MaxLifetime))
	sqlDB.SetConnMaxIdleTime(GetConnMaxIdleTime(cfg.MaxIdleTime))

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}
	return db, nil
}

// useResolver splits reads and writes across the configured sources and
// replicas. With no sources listed the main DSN stays the only writer.
func useResolver(db *gorm.DB, cfg Database) error {
	sources, err := buildDialectors(cfg.MySQL.Primary)
	if err != nil {
		return fmt.Errorf("primary: %w", err)
	}
	replicas, err := buildDialectors(cfg.MySQL.Replicas)
	if err != nil {
		return fmt.Errorf("replicas: %w", err)
	}

	resolver := dbresolver.Register(dbresolver.Config{
		Sources:           sources,
		Replicas:          replicas,
		TraceResolverMode: cfg.OutPut,
	}).
		SetConnMaxIdleTime(GetConnMaxIdleTime(cfg.MaxIdleTime)).
		SetConnMaxLifetime(GetConnMaxLifetime(cfg.MaxLifetime)).
		SetMaxIdleConns(cfg.MaxIdleConns).
		SetMaxOpenConns(cfg.MaxOpenConns)
	if err := db.Use(resolver); err != nil {
		return fmt.Errorf("register dbresolver: %w", err)
	}
	log.Infow("dbresolver enabled", "sources", len(sources), "replicas", len(replicas))
	return nil
}
