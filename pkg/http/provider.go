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

package http

import (
	"github.com/go-arcade/backoffice/pkg/http/jwt"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(ProvideIssuer)

func ProvideIssuer(cfg Http) *jwt.Issuer {
	return jwt.NewIssuer(jwt.Secrets{
		AccessSecret:  cfg.Auth.AccessSecret,
		AccessExpire:  cfg.Auth.AccessExpire,
		RefreshSecret: cfg.Auth.RefreshSecret,
		RefreshExpire: cfg.Auth.RefreshExpire,
		EmailSecret:   cfg.Auth.EmailSecret,
		EmailExpire:   cfg.Auth.EmailExpire,
	})
}
