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
	"encoding/binary"
	"time"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

type FastCacheConfig struct {
	MaxBytes int // default 16MB
}

// FastCache is the in-process tier. Each entry is prefixed with its
// deadline in unix nanoseconds; zero means no expiry.
type FastCache struct {
	cache *fastcache.Cache
}

func NewFastCache(conf FastCacheConfig) *FastCache {
	maxBytes := conf.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 16 * 1024 * 1024
	}
	return &FastCache{cache: fastcache.New(maxBytes)}
}

func (fc *FastCache) Get(ctx context.Context, key string) *redis.StringCmd {
	raw := fc.cache.Get(nil, []byte(key))
	if len(raw) < 8 {
		return missCmd(ctx)
	}
	deadline := int64(binary.BigEndian.Uint64(raw[:8]))
	if deadline != 0 && time.Now().UnixNano() > deadline {
		fc.cache.Del([]byte(key))
		return missCmd(ctx)
	}
	cmd := redis.NewStringCmd(ctx)
	cmd.SetVal(string(raw[8:]))
	return cmd
}

func (fc *FastCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	data, err := toBytes(value)
	if err != nil {
		cmd := redis.NewStatusCmd(ctx)
		cmd.SetErr(err)
		return cmd
	}

	var deadline int64
	if expiration > 0 {
		deadline = time.Now().Add(expiration).UnixNano()
	}
	buf := make([]byte, 8+len(data))
	binary.BigEndian.PutUint64(buf[:8], uint64(deadline))
	copy(buf[8:], data)
	fc.cache.Set([]byte(key), buf)
	return okCmd(ctx)
}

func (fc *FastCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if fc.cache.Has([]byte(key)) {
			fc.cache.Del([]byte(key))
			n++
		}
	}
	return intCmd(ctx, n)
}

func toBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return sonic.Marshal(v)
	}
}
