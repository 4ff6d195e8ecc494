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

//go:build wireinject
// +build wireinject

package main

import (
	"github.com/go-arcade/backoffice/internal/bootstrap"
	"github.com/go-arcade/backoffice/internal/engine/conf"
	"github.com/go-arcade/backoffice/internal/engine/repo"
	"github.com/go-arcade/backoffice/internal/engine/router"
	"github.com/go-arcade/backoffice/internal/engine/service"
	"github.com/go-arcade/backoffice/internal/pkg/notify"
	"github.com/go-arcade/backoffice/internal/pkg/storage"
	"github.com/go-arcade/backoffice/pkg/cache"
	"github.com/go-arcade/backoffice/pkg/database"
	"github.com/go-arcade/backoffice/pkg/http"
	"github.com/go-arcade/backoffice/pkg/log"
	"github.com/go-arcade/backoffice/pkg/metrics"
	"github.com/google/wire"
	"go.uber.org/zap"
)

func initApp(configFile string, logger *zap.Logger) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		conf.ProviderSet,
		log.ProviderSet,
		database.ProviderSet,
		cache.ProviderSet,
		storage.ProviderSet,
		notify.ProviderSet,
		metrics.ProviderSet,
		http.ProviderSet,
		repo.ProviderSet,
		service.ProviderSet,
		router.ProviderSet,
		bootstrap.NewApp,
	))
}
