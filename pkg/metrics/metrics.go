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

package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsConfig struct {
	Enable bool   `mapstructure:"enable"`
	Path   string `mapstructure:"path"`
}

// Server owns the registry served on the metrics path.
type Server struct {
	config   MetricsConfig
	registry *prometheus.Registry
}

func NewServer(config MetricsConfig) *Server {
	if config.Path == "" {
		config.Path = "/metrics"
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Server{config: config, registry: registry}
}

// RegisterCollector adds a collector created after startup, such as the
// database pool stats.
func (s *Server) RegisterCollector(c prometheus.Collector) error {
	if err := s.registry.Register(c); err != nil {
		return fmt.Errorf("register collector: %w", err)
	}
	return nil
}

func (s *Server) Enabled() bool {
	return s.config.Enable
}

func (s *Server) Path() string {
	return s.config.Path
}

// Handler serves the registry in the prometheus text format.
func (s *Server) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

func (s *Server) GetRegistry() *prometheus.Registry {
	return s.registry
}
