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
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_DefaultPath(t *testing.T) {
	s := NewServer(MetricsConfig{Enable: true})
	assert.Equal(t, "/metrics", s.Path())
	assert.True(t, s.Enabled())
}

func TestRecordCronJobRun(t *testing.T) {
	before := testutil.ToFloat64(CronJobErrorsTotal.WithLabelValues("unit"))

	RecordCronJobRun("unit", time.Millisecond, nil)
	RecordCronJobRun("unit", time.Millisecond, errors.New("boom"))

	assert.Equal(t, before+1, testutil.ToFloat64(CronJobErrorsTotal.WithLabelValues("unit")))
}

func TestHandler_ExposesHTTPMetrics(t *testing.T) {
	s := NewServer(MetricsConfig{})
	RegisterHTTPMetrics(s.GetRegistry())
	ObserveHTTP("GET", "/members", 200, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `http_requests_total{method="GET",route="/members",status="200"}`))
}

func TestRegisterCollector_Duplicate(t *testing.T) {
	s := NewServer(MetricsConfig{})
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "unit_total"})

	require.NoError(t, s.RegisterCollector(c))
	assert.Error(t, s.RegisterCollector(c))
}
