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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-arcade/backoffice/internal/engine/conf"
	"github.com/go-arcade/backoffice/internal/pkg/notify"
	"github.com/go-arcade/backoffice/internal/pkg/storage"
	"github.com/go-arcade/backoffice/pkg/cron"
	"github.com/go-arcade/backoffice/pkg/id"
	"github.com/go-arcade/backoffice/pkg/log"
	"github.com/go-arcade/backoffice/pkg/retry"
)

const (
	LogHandlingJob = "logHandling"
	maxLogSize     = 10 << 20
	logShipAge     = 24 * time.Hour
	logShipTimeout = 10 * time.Minute
	logArchiveRoot = "logs"
	logArchiveDay  = "20060102"
	logContentType = "text/plain"
)

// CronService ships rotated log files to object storage.
type CronService struct {
	scheduler *cron.Scheduler
	storage   storage.ObjectStorage
	messenger notify.Messenger
	conf      conf.Cron
	now       func() time.Time
}

func NewCronService(scheduler *cron.Scheduler, store storage.ObjectStorage, messenger notify.Messenger, c conf.Cron) *CronService {
	return &CronService{
		scheduler: scheduler,
		storage:   store,
		messenger: messenger,
		conf:      c,
		now:       time.Now,
	}
}

// Register adds the log shipping job to the scheduler.
func (cs *CronService) Register() error {
	return cs.scheduler.AddFunc(LogHandlingJob, cs.conf.Spec, cs.HandleLogs)
}

func (cs *CronService) Jobs() []cron.Entry {
	return cs.scheduler.Entries()
}

// HandleLogs alerts on oversized log files and archives the ones older than
// a day, truncating each file it archived.
func (cs *CronService) HandleLogs() error {
	ctx, cancel := context.WithTimeout(context.Background(), logShipTimeout)
	defer cancel()

	entries, err := os.ReadDir(cs.conf.LogDir)
	if err != nil {
		return fmt.Errorf("read log dir %s: %w", cs.conf.LogDir, err)
	}

	now := cs.now()
	var errs []error
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".log") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if info.Size() > maxLogSize {
			if _, err := cs.messenger.Send(ctx, fmt.Sprintf("%s file is over 10Mb", e.Name())); err != nil {
				log.Warnw("failed to post oversized log alert", "file", e.Name(), "error", err)
			}
			continue
		}
		if info.Size() == 0 || now.Sub(info.ModTime()) <= logShipAge {
			continue
		}

		if err := cs.ship(ctx, filepath.Join(cs.conf.LogDir, e.Name()), info.Size(), now); err != nil {
			log.Errorw("failed to archive log file", "file", e.Name(), "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (cs *CronService) ship(ctx context.Context, file string, size int64, now time.Time) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	name := filepath.Base(file)
	key := path.Join(logArchiveRoot, now.Format(logArchiveDay), name+"-"+id.ShortId())
	err = retry.Do(ctx, func(ctx context.Context) error {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return err
		}
		_, err := cs.storage.PutObject(ctx, key, f, size, logContentType)
		return err
	},
		retry.WithBackoff(retry.Exponential(time.Second, 10*time.Second)),
		retry.WithJitter(retry.FullJitter),
		retry.WithRetryIf(retryableUpload),
	)
	if err != nil {
		return err
	}
	log.Infow("log file archived", "file", name, "key", key)
	return os.Truncate(file, 0)
}

// retryableUpload gives up on local file errors; only the upload is retried.
func retryableUpload(err error) bool {
	var pe *fs.PathError
	return !errors.As(err, &pe) && retry.IsRetryable(err)
}
