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
	"context"
	"time"

	"github.com/go-arcade/backoffice/pkg/log"
	"github.com/redis/go-redis/v9"
)

type HybridCacheConfig struct {
	LocalTTLRatio float64 // local TTL as a fraction of the remote TTL (0.0-1.0)
	FillTTL       time.Duration
}

// HybridCache reads local first, then remote, filling local on a remote
// hit. Writes go to both tiers. A nil remote means local only.
type HybridCache struct {
	local  *FastCache
	remote ICache
	config HybridCacheConfig
}

func NewHybridCache(local *FastCache, remote ICache, config HybridCacheConfig) *HybridCache {
	if config.FillTTL <= 0 {
		config.FillTTL = time.Second
	}
	return &HybridCache{local: local, remote: remote, config: config}
}

func (hc *HybridCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if cmd := hc.local.Get(ctx, key); cmd.Err() == nil {
		return cmd
	}
	if hc.remote == nil {
		return missCmd(ctx)
	}

	cmd := hc.remote.Get(ctx, key)
	if err := cmd.Err(); err != nil {
		if err != redis.Nil {
			log.Warnw("remote cache get failed", "key", key, "error", err)
		}
		return missCmd(ctx)
	}
	hc.local.Set(ctx, key, cmd.Val(), hc.config.FillTTL)
	return cmd
}

func (hc *HybridCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	data, err := toBytes(value)
	if err != nil {
		cmd := redis.NewStatusCmd(ctx)
		cmd.SetErr(err)
		return cmd
	}

	hc.local.Set(ctx, key, data, hc.localTTL(expiration))
	if hc.remote != nil {
		if err := hc.remote.Set(ctx, key, data, expiration).Err(); err != nil {
			log.Warnw("remote cache set failed", "key", key, "error", err)
		}
	}
	return okCmd(ctx)
}

func (hc *HybridCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	n := hc.local.Del(ctx, keys...).Val()
	if hc.remote != nil {
		n += hc.remote.Del(ctx, keys...).Val()
	}
	return intCmd(ctx, n)
}

func (hc *HybridCache) localTTL(remote time.Duration) time.Duration {
	if hc.config.LocalTTLRatio > 0 && hc.config.LocalTTLRatio < 1.0 {
		return time.Duration(float64(remote) * hc.config.LocalTTLRatio)
	}
	return remote
}
