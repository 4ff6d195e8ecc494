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
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/go-arcade/backoffice/pkg/log"
	"github.com/redis/go-redis/v9"
)

type Redis struct {
	Mode             string `mapstructure:"mode"` // single | sentinel
	Address          string `mapstructure:"address"`
	Password         string `mapstructure:"password"`
	DB               int    `mapstructure:"db"`
	PoolSize         int    `mapstructure:"poolSize"`
	UseTLS           bool   `mapstructure:"useTLS"`
	MasterName       string `mapstructure:"masterName"`
	SentinelUsername string `mapstructure:"sentinelUsername"`
	SentinelPassword string `mapstructure:"sentinelPassword"`
	DialTimeout      int    `mapstructure:"dialTimeout"` // seconds
	ReadTimeout      int    `mapstructure:"readTimeout"`
	WriteTimeout     int    `mapstructure:"writeTimeout"`
	LocalMaxBytes    int    `mapstructure:"localMaxBytes"`
}

func (r *Redis) Enabled() bool {
	return r.Address != ""
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// NewRedis connects to redis. A config without address yields a nil
// client, leaving only the local cache.
func NewRedis(cfg Redis) (*redis.Client, error) {
	if !cfg.Enabled() {
		log.Info("redis address not set, using local cache only")
		return nil, nil
	}

	var redisClient *redis.Client
	switch cfg.Mode {
	case "", "single":
		redisOptions := &redis.Options{
			Addr:         cfg.Address,
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     cfg.PoolSize,
			DialTimeout:  seconds(cfg.DialTimeout),
			ReadTimeout:  seconds(cfg.ReadTimeout),
			WriteTimeout: seconds(cfg.WriteTimeout),
		}
		if cfg.UseTLS {
			redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient = redis.NewClient(redisOptions)
	case "sentinel":
		redisOptions := &redis.FailoverOptions{
			MasterName:       cfg.MasterName,
			SentinelAddrs:    strings.Split(cfg.Address, ","),
			Password:         cfg.Password,
			DB:               cfg.DB,
			PoolSize:         cfg.PoolSize,
			SentinelUsername: cfg.SentinelUsername,
			SentinelPassword: cfg.SentinelPassword,
			DialTimeout:      seconds(cfg.DialTimeout),
			ReadTimeout:      seconds(cfg.ReadTimeout),
			WriteTimeout:     seconds(cfg.WriteTimeout),
		}
		if cfg.UseTLS {
			redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient = redis.NewFailoverClient(redisOptions)
	default:
		return nil, fmt.Errorf("unsupported redis mode %q", cfg.Mode)
	}

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Errorw("failed to connect redis", "error", err)
		return nil, err
	}

	log.Infow("redis connected", "mode", cfg.Mode, "address", cfg.Address)
	return redisClient, nil
}

// RedisCache is the remote tier.
type RedisCache struct {
	client redis.Cmdable
}

func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string) *redis.StringCmd {
	return r.client.Get(ctx, key)
}

func (r *RedisCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	return r.client.Set(ctx, key, value, expiration)
}

func (r *RedisCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return r.client.Del(ctx, keys...)
}
