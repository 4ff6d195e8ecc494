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
	"time"

	"github.com/go-arcade/backoffice/internal/engine/conf"
	"github.com/go-arcade/backoffice/internal/engine/repo"
	"github.com/go-arcade/backoffice/internal/pkg/notify"
	"github.com/go-arcade/backoffice/internal/pkg/storage"
	"github.com/go-arcade/backoffice/pkg/cron"
	"github.com/go-arcade/backoffice/pkg/database"
	httpx "github.com/go-arcade/backoffice/pkg/http"
	"github.com/go-arcade/backoffice/pkg/http/jwt"
)

var timeNow = time.Now

// Services groups every service the router needs.
type Services struct {
	Authority *AuthorityService
	Member    *MemberService
	Branch    *BranchService
	Menu      *MenuService
	File      *FileService
	Cron      *CronService
	Health    *HealthService
}

func NewServices(
	repos *repo.Repositories,
	issuer *jwt.Issuer,
	mailer notify.Mailer,
	messenger notify.Messenger,
	store storage.ObjectStorage,
	storageConf storage.Storage,
	scheduler *cron.Scheduler,
	cronConf conf.Cron,
	healthConf conf.Health,
	db database.Manager,
) *Services {
	authority := NewAuthorityService()
	branch := NewBranchService(repos)
	client := httpx.NewClient(time.Duration(healthConf.Timeout)*time.Second, 0)

	return &Services{
		Authority: authority,
		Member:    NewMemberService(repos, authority, issuer, mailer, messenger),
		Branch:    branch,
		Menu:      NewMenuService(repos),
		File:      NewFileService(repos, branch, store, storageConf),
		Cron:      NewCronService(scheduler, store, messenger, cronConf),
		Health:    NewHealthService(healthConf, db, client, messenger),
	}
}
