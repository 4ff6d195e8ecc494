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

package notify

import (
	"time"

	"github.com/go-arcade/backoffice/internal/pkg/notify/channel"
	httpx "github.com/go-arcade/backoffice/pkg/http"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	ProvideMailer,
	ProvideMessenger,
)

func ProvideMailer(conf channel.Mail) Mailer {
	return channel.NewEmailChannel(conf)
}

func ProvideMessenger(conf channel.Slack) Messenger {
	timeout := time.Duration(conf.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return channel.NewSlackChannel(conf, httpx.NewClient(timeout, 2))
}
