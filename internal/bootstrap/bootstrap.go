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

package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-arcade/backoffice/internal/engine/conf"
	_ "github.com/go-arcade/backoffice/internal/engine/model"
	"github.com/go-arcade/backoffice/internal/engine/router"
	"github.com/go-arcade/backoffice/internal/engine/service"
	"github.com/go-arcade/backoffice/pkg/cron"
	"github.com/go-arcade/backoffice/pkg/database"
	"github.com/go-arcade/backoffice/pkg/log"
	"github.com/go-arcade/backoffice/pkg/metrics"
	"github.com/go-arcade/backoffice/pkg/version"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

type App struct {
	HttpApp   *fiber.App
	Scheduler *cron.Scheduler
	Logger    *zap.Logger
	AppConf   conf.AppConfig
}

// InitAppFunc init app function type
type InitAppFunc func(configFile string, logger *zap.Logger) (*App, func(), error)

func NewApp(
	rt *router.Router,
	services *service.Services,
	scheduler *cron.Scheduler,
	manager database.Manager,
	metricsServer *metrics.Server,
	logger *zap.Logger,
	appConf conf.AppConfig,
) (*App, func(), error) {
	httpApp := rt.Router()

	if sqlDB, err := manager.MySQL().DB(); err == nil {
		if err := metricsServer.RegisterCollector(collectors.NewDBStatsCollector(sqlDB, "backoffice")); err != nil {
			logger.Warn("db stats collector not registered", zap.Error(err))
		}
	}

	if appConf.Cron.Enable {
		if err := services.Cron.Register(); err != nil {
			return nil, nil, err
		}
		logger.Info("log shipping job registered", zap.String("spec", appConf.Cron.Spec))
	}

	cleanup := func() {
		_ = log.Sync()
	}

	app := &App{
		HttpApp:   httpApp,
		Scheduler: scheduler,
		Logger:    logger,
		AppConf:   appConf,
	}
	return app, cleanup, nil
}

// Bootstrap loads the config and logger, then hands both to initApp.
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), conf.AppConfig, error) {
	appConf := conf.NewConf(configFile)

	logger, err := log.NewLog(&appConf.Log)
	if err != nil {
		return nil, nil, appConf, err
	}

	app, cleanup, err := initApp(configFile, logger)
	if err != nil {
		return nil, nil, appConf, err
	}

	return app, cleanup, appConf, nil
}

// Migrate creates or alters every registered table.
func Migrate(configFile string) error {
	appConf := conf.NewConf(configFile)

	logger, err := log.NewLog(&appConf.Log)
	if err != nil {
		return err
	}

	manager, cleanup, err := database.ProvideManager(appConf.Database, log.ProvideLogger(logger))
	if err != nil {
		return err
	}
	defer cleanup()

	if err := database.AutoMigrate(manager.MySQL()); err != nil {
		return err
	}
	logger.Info("schema migrated", zap.Int("models", len(database.GetRegisteredModels())))
	return nil
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) {
	logger := app.Logger
	appConf := app.AppConf

	if appConf.Cron.Enable {
		app.Scheduler.Start()
		logger.Info("cron scheduler started")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		addr := appConf.Http.Addr()
		logger.Sugar().Infow("HTTP listener started",
			"address", addr,
			"version", version.GetVersion().String(),
		)
		if err := app.HttpApp.Listen(addr); err != nil {
			logger.Sugar().Errorw("HTTP listener failed",
				"address", addr,
				"error", err,
			)
		}
	}()

	sig := <-quit
	logger.Sugar().Infof("Received signal: %v, shutting down gracefully...", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(appConf.Http.ShutdownTimeout)*time.Second)
	defer shutdownCancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Sugar().Errorf("HTTP server shutdown error: %v", err)
	} else {
		logger.Info("HTTP server shut down gracefully")
	}

	// scheduler, database and redis are released here
	cleanup()

	logger.Info("Server shutdown complete")
}
