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

package cache

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

const defaultLocalMaxBytes = 32 * 1024 * 1024

var ProviderSet = wire.NewSet(
	ProvideRedis,
	ProvideFastCache,
	ProvideHybridCache,
	wire.Bind(new(ICache), new(*HybridCache)),
)

func ProvideRedis(conf Redis) (*redis.Client, func(), error) {
	client, err := NewRedis(conf)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if client != nil {
			_ = client.Close()
		}
	}
	return client, cleanup, nil
}

func ProvideFastCache(conf Redis) *FastCache {
	maxBytes := conf.LocalMaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultLocalMaxBytes
	}
	return NewFastCache(FastCacheConfig{MaxBytes: maxBytes})
}

func ProvideHybridCache(local *FastCache, client *redis.Client) *HybridCache {
	var remote ICache
	if client != nil {
		remote = NewRedisCache(client)
	}
	return NewHybridCache(local, remote, HybridCacheConfig{LocalTTLRatio: 1})
}
