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
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestFastCache_Set_Get(t *testing.T) {
	cache := NewFastCache(FastCacheConfig{MaxBytes: 1024 * 1024})

	ctx := context.Background()
	assert.Equal(t, "OK", cache.Set(ctx, "test_key", "test_value", time.Hour).Val())
	assert.Equal(t, "test_value", cache.Get(ctx, "test_key").Val())
}

func TestFastCache_Expiration(t *testing.T) {
	cache := NewFastCache(FastCacheConfig{MaxBytes: 1024 * 1024})

	ctx := context.Background()
	cache.Set(ctx, "expire_key", "expire_value", 50*time.Millisecond)
	assert.Equal(t, "expire_value", cache.Get(ctx, "expire_key").Val())

	time.Sleep(80 * time.Millisecond)
	assert.ErrorIs(t, cache.Get(ctx, "expire_key").Err(), redis.Nil)
}

func TestFastCache_Del(t *testing.T) {
	cache := NewFastCache(FastCacheConfig{})
	ctx := context.Background()

	cache.Set(ctx, "a", []byte("1"), 0)
	cache.Set(ctx, "b", map[string]int{"n": 2}, 0)

	assert.Equal(t, `{"n":2}`, cache.Get(ctx, "b").Val())
	assert.Equal(t, int64(2), cache.Del(ctx, "a", "b", "missing").Val())
	assert.ErrorIs(t, cache.Get(ctx, "a").Err(), redis.Nil)
}
