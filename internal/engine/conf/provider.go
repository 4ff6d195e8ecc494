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

package conf

import (
	"github.com/go-arcade/backoffice/internal/pkg/notify/channel"
	"github.com/go-arcade/backoffice/internal/pkg/storage"
	"github.com/go-arcade/backoffice/pkg/cache"
	"github.com/go-arcade/backoffice/pkg/database"
	"github.com/go-arcade/backoffice/pkg/http"
	"github.com/go-arcade/backoffice/pkg/metrics"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	ProvideConf,
	ProvideHttpConfig,
	ProvideDatabaseConfig,
	ProvideRedisConfig,
	ProvideStorageConfig,
	ProvideMailConfig,
	ProvideSlackConfig,
	ProvideCronConfig,
	ProvideHealthConfig,
	ProvideMetricsConfig,
)

func ProvideConf(configFile string) AppConfig {
	return NewConf(configFile)
}

func ProvideHttpConfig(c AppConfig) http.Http { return c.Http }

func ProvideDatabaseConfig(c AppConfig) database.Database { return c.Database }

func ProvideRedisConfig(c AppConfig) cache.Redis { return c.Redis }

func ProvideStorageConfig(c AppConfig) storage.Storage { return c.Storage }

func ProvideMailConfig(c AppConfig) channel.Mail { return c.Mail }

func ProvideSlackConfig(c AppConfig) channel.Slack { return c.Slack }

func ProvideCronConfig(c AppConfig) Cron { return c.Cron }

func ProvideHealthConfig(c AppConfig) Health { return c.Health }

func ProvideMetricsConfig(c AppConfig) metrics.MetricsConfig { return c.Metrics }
