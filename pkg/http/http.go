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

package http

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

type Http struct {
	Host            string    `mapstructure:"host"`
	Port            int       `mapstructure:"port"`
	Scheme          string    `mapstructure:"scheme"`
	ExposeMetrics   bool      `mapstructure:"exposeMetrics"`
	AccessLog       bool      `mapstructure:"accessLog"`
	ReadTimeout     int       `mapstructure:"readTimeout"`
	WriteTimeout    int       `mapstructure:"writeTimeout"`
	IdleTimeout     int       `mapstructure:"idleTimeout"`
	ShutdownTimeout int       `mapstructure:"shutdownTimeout"`
	BodyLimit       int       `mapstructure:"bodyLimit"` // MB
	RateLimit       RateLimit `mapstructure:"rateLimit"`
	CacheTTL        int       `mapstructure:"cacheTTL"` // seconds
	Auth            Auth      `mapstructure:"auth"`
}

type RateLimit struct {
	Requests int `mapstructure:"requests"`
	Window   int `mapstructure:"window"` // seconds
}

// Auth holds one secret and lifetime per token class.
type Auth struct {
	AccessSecret  string        `mapstructure:"accessSecret"`
	AccessExpire  time.Duration `mapstructure:"accessExpire"`
	RefreshSecret string        `mapstructure:"refreshSecret"`
	RefreshExpire time.Duration `mapstructure:"refreshExpire"`
	EmailSecret   string        `mapstructure:"emailSecret"`
	EmailExpire   time.Duration `mapstructure:"emailExpire"`
}

func (h *Http) SetDefaults() {
	if h.Port == 0 {
		h.Port = 3000
	}
	if h.Scheme == "" {
		h.Scheme = "http"
	}
	if h.ReadTimeout <= 0 {
		h.ReadTimeout = 30
	}
	if h.WriteTimeout <= 0 {
		h.WriteTimeout = 30
	}
	if h.IdleTimeout <= 0 {
		h.IdleTimeout = 60
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 30
	}
	if h.BodyLimit <= 0 {
		h.BodyLimit = 110
	}
	if h.RateLimit.Requests <= 0 {
		h.RateLimit.Requests = 10
	}
	if h.RateLimit.Window <= 0 {
		h.RateLimit.Window = 10
	}
	if h.CacheTTL <= 0 {
		h.CacheTTL = 2
	}
	if h.Auth.AccessExpire <= 0 {
		h.Auth.AccessExpire = time.Hour
	}
	if h.Auth.RefreshExpire <= 0 {
		h.Auth.RefreshExpire = 14 * 24 * time.Hour
	}
	if h.Auth.EmailExpire <= 0 {
		h.Auth.EmailExpire = 10 * time.Minute
	}
}

func (h *Http) Validate() error {
	if h.Auth.AccessSecret == "" || h.Auth.RefreshSecret == "" || h.Auth.EmailSecret == "" {
		return fmt.Errorf("http.auth: access, refresh and email secrets are required")
	}
	return nil
}

func (h *Http) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// NewApp builds the fiber app with sonic codecs and the envelope error handler.
func NewApp(cfg Http, appName string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               appName,
		ReadTimeout:           time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:           time.Duration(cfg.IdleTimeout) * time.Second,
		BodyLimit:             cfg.BodyLimit * 1024 * 1024,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})
}
