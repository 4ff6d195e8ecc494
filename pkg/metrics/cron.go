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
	"time"

	"github.com/go-arcade/backoffice/pkg/cron"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CronJobRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cron_job_runs_total",
			Help: "Scheduled job runs, failed ones included",
		},
		[]string{"job"},
	)

	CronJobErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cron_job_errors_total",
			Help: "Scheduled job runs that returned an error",
		},
		[]string{"job"},
	)

	// Log shipping uploads whole files, so the buckets reach ten minutes.
	CronJobDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cron_job_duration_seconds",
			Help:    "Duration of scheduled job runs in seconds",
			Buckets: []float64{.01, .1, .5, 1, 5, 15, 60, 180, 600},
		},
		[]string{"job"},
	)

	CronJobLastRun = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cron_job_last_run_timestamp_seconds",
			Help: "Unix time the job last finished",
		},
		[]string{"job"},
	)

	CronJobs = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cron_jobs",
			Help: "Registered scheduled jobs",
		},
	)
)

// cronRecorder forwards scheduler callbacks to the collectors above.
type cronRecorder struct{}

func (cronRecorder) RecordJobRun(job string, elapsed time.Duration, err error) {
	RecordCronJobRun(job, elapsed, err)
}

func (cronRecorder) UpdateJobsCount(n int) {
	CronJobs.Set(float64(n))
}

// SetupCronMetrics registers the job collectors and hooks them into pkg/cron.
func SetupCronMetrics(registry *prometheus.Registry) {
	registry.MustRegister(CronJobRunsTotal, CronJobErrorsTotal, CronJobDurationSeconds, CronJobLastRun, CronJobs)
	cron.SetMetricsRecorder(cronRecorder{})
}

func RecordCronJobRun(job string, elapsed time.Duration, err error) {
	CronJobRunsTotal.WithLabelValues(job).Inc()
	if err != nil {
		CronJobErrorsTotal.WithLabelValues(job).Inc()
	}
	CronJobDurationSeconds.WithLabelValues(job).Observe(elapsed.Seconds())
	CronJobLastRun.WithLabelValues(job).SetToCurrentTime()
}
