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
	"github.com/go-arcade/backoffice/pkg/cron"
	"github.com/go-arcade/backoffice/pkg/log"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	ProvideScheduler,
	NewServices,
)

// ProvideScheduler builds the job scheduler. Jobs are added by the cron service.
func ProvideScheduler() (*cron.Scheduler, func()) {
	s := cron.New()
	return s, func() {
		s.Stop()
		log.Infow("cron scheduler stopped")
	}
}
