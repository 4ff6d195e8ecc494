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
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/backoffice/internal/pkg/notify/channel"
	"github.com/go-arcade/backoffice/internal/pkg/storage"
	"github.com/go-arcade/backoffice/pkg/cache"
	"github.com/go-arcade/backoffice/pkg/database"
	"github.com/go-arcade/backoffice/pkg/http"
	"github.com/go-arcade/backoffice/pkg/log"
	"github.com/go-arcade/backoffice/pkg/metrics"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Log      log.Conf
	Http     http.Http
	Database database.Database
	Redis    cache.Redis
	Storage  storage.Storage
	Mail     channel.Mail
	Slack    channel.Slack
	Cron     Cron
	Health   Health
	Metrics  metrics.MetricsConfig
}

// Cron controls the log shipping job.
type Cron struct {
	Enable bool   `mapstructure:"enable"`
	LogDir string `mapstructure:"logDir"`
	Spec   string `mapstructure:"spec"`
}

// Health holds the thresholds of the health check probes.
type Health struct {
	URL           string  `mapstructure:"url"`
	Timeout       int     `mapstructure:"timeout"`       // seconds
	DiskPath      string  `mapstructure:"diskPath"`
	DiskThreshold float64 `mapstructure:"diskThreshold"` // 0..1
	MemoryLimit   uint64  `mapstructure:"memoryLimit"`   // bytes of RSS
}

const (
	defaultCronSpec    = "0 1 * * * *"
	defaultMemoryLimit = 4 << 30
)

var (
	cfg  AppConfig
	once sync.Once
)

func NewConf(confFile string) AppConfig {
	once.Do(func() {
		var err error
		cfg, err = LoadConfigFile(confFile)
		if err != nil {
			panic(fmt.Sprintf("load conf file error: %s", err))
		}
	})
	return cfg
}

// LoadConfigFile reads the toml file, applies defaults and keeps watching it.
func LoadConfigFile(confFile string) (AppConfig, error) {
	var c AppConfig

	v := viper.New()
	if confFile != "" {
		v.SetConfigFile(confFile)
	} else {
		v.AddConfigPath("./conf.d")
		v.SetConfigName("config")
	}
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return c, fmt.Errorf("failed to read configuration file: %w", err)
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}
	if err := c.complete(); err != nil {
		return c, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		log.Infow("configuration changed, reloading", "file", e.Name)
		var next AppConfig
		if err := v.Unmarshal(&next); err != nil {
			log.Errorw("failed to unmarshal configuration file", "error", err)
			return
		}
		if err := next.complete(); err != nil {
			log.Errorw("ignored invalid configuration", "error", err)
			return
		}
		cfg = next
	})
	v.WatchConfig()

	return c, nil
}

func (c *AppConfig) complete() error {
	def := log.SetDefaults()
	if c.Log.Output == "" {
		c.Log.Output = def.Output
	}
	if c.Log.Path == "" {
		c.Log.Path = def.Path
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Level
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}

	c.Http.SetDefaults()
	if err := c.Http.Validate(); err != nil {
		return err
	}
	c.Database.SetDefaults()
	if err := c.Database.Validate(); err != nil {
		return err
	}
	c.Storage.SetDefaults()

	if c.Cron.Spec == "" {
		c.Cron.Spec = defaultCronSpec
	}
	if c.Cron.LogDir == "" {
		c.Cron.LogDir = c.Log.Path
	}
	if c.Health.URL == "" {
		c.Health.URL = fmt.Sprintf("%s://127.0.0.1:%d/", c.Http.Scheme, c.Http.Port)
	}
	if c.Health.Timeout <= 0 {
		c.Health.Timeout = 5
	}
	if c.Health.DiskPath == "" {
		c.Health.DiskPath = "/"
	}
	if c.Health.DiskThreshold <= 0 {
		c.Health.DiskThreshold = 0.9
	}
	if c.Health.MemoryLimit == 0 {
		c.Health.MemoryLimit = defaultMemoryLimit
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	return nil
}

// Current returns the latest loaded configuration.
func Current() AppConfig {
	return cfg
}
