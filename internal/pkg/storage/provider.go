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

package storage

import (
	"fmt"

	"github.com/go-arcade/backoffice/pkg/log"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	ProvideStorage,
)

func ProvideStorage(cfg Storage) (ObjectStorage, error) {
	return NewStorage(cfg)
}

// NewStorage picks the client by provider.
func NewStorage(cfg Storage) (ObjectStorage, error) {
	cfg.SetDefaults()
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket is required")
	}

	switch cfg.Provider {
	case "s3":
		log.Infow("object storage configured", "provider", cfg.Provider, "bucket", cfg.Bucket, "region", cfg.Region)
		return newS3(&cfg)
	case "minio":
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("storage: minio endpoint is required")
		}
		log.Infow("object storage configured", "provider", cfg.Provider, "bucket", cfg.Bucket, "endpoint", cfg.Endpoint)
		return newMinio(&cfg)
	default:
		return nil, fmt.Errorf("storage: unsupported provider %q", cfg.Provider)
	}
}
