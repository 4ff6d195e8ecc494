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

package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-arcade/backoffice/internal/engine/conf"
	"github.com/go-arcade/backoffice/internal/pkg/notify"
	"github.com/go-arcade/backoffice/pkg/database"
	"github.com/go-arcade/backoffice/pkg/log"
	"github.com/go-resty/resty/v2"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/process"
)

// Pinger is the database handle probed by the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthService struct {
	conf      conf.Health
	db        Pinger
	client    *resty.Client
	messenger notify.Messenger

	diskUsage func(ctx context.Context, path string) (float64, error)
	memoryRSS func(ctx context.Context) (uint64, error)
}

func NewHealthService(c conf.Health, db database.Manager, client *resty.Client, messenger notify.Messenger) *HealthService {
	return &HealthService{
		conf:      c,
		db:        db,
		client:    client,
		messenger: messenger,
		diskUsage: diskUsage,
		memoryRSS: processRSS,
	}
}

func diskUsage(ctx context.Context, path string) (float64, error) {
	u, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return 0, err
	}
	return u.UsedPercent / 100, nil
}

func processRSS(ctx context.Context) (uint64, error) {
	p, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	mem, err := p.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return mem.RSS, nil
}

// Check runs every probe. Failures are posted to Slack and returned as one
// unavailable error listing each failed probe.
func (hs *HealthService) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(hs.conf.Timeout)*time.Second)
	defer cancel()

	var failed []string
	probe := func(name string, err error) {
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %s", name, err))
		}
	}
	probe("http", hs.pingHTTP(ctx))
	probe("database", hs.db.Ping(ctx))
	probe("disk", hs.checkDisk(ctx))
	probe("memory", hs.checkMemory(ctx))

	if len(failed) == 0 {
		return nil
	}

	msg := strings.Join(failed, ", ")
	log.Errorw("health check failed", "probes", failed)
	if _, err := hs.messenger.Send(ctx, "Health check failed\n"+strings.Join(failed, "\n")); err != nil {
		log.Warnw("failed to post health alert", "error", err)
	}
	return &Error{Kind: KindUnavailable, Msg: msg, Err: ErrHealth}
}

func (hs *HealthService) pingHTTP(ctx context.Context) error {
	resp, err := hs.client.R().SetContext(ctx).Get(hs.conf.URL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("%s returned %d", hs.conf.URL, resp.StatusCode())
	}
	return nil
}

func (hs *HealthService) checkDisk(ctx context.Context) error {
	used, err := hs.diskUsage(ctx, hs.conf.DiskPath)
	if err != nil {
		return err
	}
	if used >= hs.conf.DiskThreshold {
		return fmt.Errorf("%.1f%% used, threshold %.1f%%", used*100, hs.conf.DiskThreshold*100)
	}
	return nil
}

func (hs *HealthService) checkMemory(ctx context.Context) error {
	rss, err := hs.memoryRSS(ctx)
	if err != nil {
		return err
	}
	if rss >= hs.conf.MemoryLimit {
		return fmt.Errorf("rss %d bytes, limit %d bytes", rss, hs.conf.MemoryLimit)
	}
	return nil
}
