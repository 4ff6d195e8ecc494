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

package cron

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-arcade/backoffice/pkg/log"
	"github.com/robfig/cron"
	"go.uber.org/zap"
)

// MetricsRecorder receives one call per job run.
type MetricsRecorder interface {
	RecordJobRun(jobName string, duration time.Duration, err error)
	UpdateJobsCount(count int)
}

var (
	recorderMu sync.RWMutex
	recorder   MetricsRecorder
)

func SetMetricsRecorder(r MetricsRecorder) {
	recorderMu.Lock()
	defer recorderMu.Unlock()
	recorder = r
}

func getRecorder() MetricsRecorder {
	recorderMu.RLock()
	defer recorderMu.RUnlock()
	return recorder
}

// Entry describes a registered job.
type Entry struct {
	Name string    `json:"name"`
	Spec string    `json:"spec"`
	Next time.Time `json:"next"`
	Prev time.Time `json:"prev"`
}

type Option func(*Scheduler)

func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		s.location = loc
	}
}

// Scheduler runs named jobs on six-field (seconds first) cron specs.
type Scheduler struct {
	mu       sync.Mutex
	c        *cron.Cron
	location *time.Location
	jobs     []*namedJob
	running  bool
}

func New(opts ...Option) *Scheduler {
	s := &Scheduler{location: time.Local}
	for _, opt := range opts {
		opt(s)
	}
	s.c = cron.NewWithLocation(s.location)
	s.c.ErrorLog = zap.NewStdLog(log.GetLogger().Desugar())
	return s
}

// AddFunc registers fn under name. A malformed cron expression fails here.
func (s *Scheduler) AddFunc(name, spec string, fn func() error) error {
	schedule, err := cron.Parse(spec)
	if err != nil {
		return fmt.Errorf("invalid cron spec %q for job %s: %w", spec, name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job := &namedJob{name: name, spec: spec, fn: fn}
	s.c.Schedule(schedule, job)
	s.jobs = append(s.jobs, job)

	if r := getRecorder(); r != nil {
		r.UpdateJobsCount(len(s.jobs))
	}
	log.Infow("cron job registered", "job", name, "spec", spec)
	return nil
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.c.Start()
	s.running = true
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.c.Stop()
	s.running = false
}

// Entries lists registered jobs in registration order.
func (s *Scheduler) Entries() []Entry {
	byJob := make(map[*namedJob]*cron.Entry)
	for _, e := range s.c.Entries() {
		if j, ok := e.Job.(*namedJob); ok {
			byJob[j] = e
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.jobs))
	for _, j := range s.jobs {
		entry := Entry{Name: j.name, Spec: j.spec}
		if e, ok := byJob[j]; ok {
			entry.Next = e.Next
			entry.Prev = e.Prev
		}
		out = append(out, entry)
	}
	return out
}

type namedJob struct {
	name string
	spec string
	fn   func() error
}

func (j *namedJob) Run() {
	start := time.Now()
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		elapsed := time.Since(start)
		if err != nil {
			log.Errorw("cron job failed", "job", j.name, "elapsed", elapsed.String(), "error", err)
		} else {
			log.Infow("cron job finished", "job", j.name, "elapsed", elapsed.String())
		}
		if r := getRecorder(); r != nil {
			r.RecordJobRun(j.name, elapsed, err)
		}
	}()
	err = j.fn()
}
