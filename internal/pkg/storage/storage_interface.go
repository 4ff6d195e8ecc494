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
	"context"
	"errors"
	"io"
	"strings"
	"time"
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectStorage is the bucket surface used by the file and cron services.
type ObjectStorage interface {
	// PutObject stores body under key and returns its public url.
	PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	StatObject(ctx context.Context, key, versionID string) (*ObjectMeta, error)
	ListObjects(ctx context.Context, prefix string, maxKeys int) ([]ObjectInfo, error)
	DeleteObject(ctx context.Context, key, versionID string) (*DeleteResult, error)
	URL(key string) string
}

type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	ETag         string    `json:"etag,omitempty"`
}

type ObjectMeta struct {
	Status        int       `json:"status"`
	ContentLength int64     `json:"contentLength"`
	ContentType   string    `json:"contentType"`
	LastModified  time.Time `json:"lastModified"`
	VersionID     string    `json:"versionId,omitempty"`
}

type DeleteResult struct {
	DeleteMarker bool   `json:"deleteMarker"`
	VersionID    string `json:"versionId,omitempty"`
}

type Storage struct {
	Provider   string `mapstructure:"provider"` // s3 | minio
	Endpoint   string `mapstructure:"endpoint"`
	Region     string `mapstructure:"region"`
	Bucket     string `mapstructure:"bucket"`
	AccessKey  string `mapstructure:"accessKey"`
	SecretKey  string `mapstructure:"secretKey"`
	UseTLS     bool   `mapstructure:"useTLS"`
	PublicURL  string `mapstructure:"publicURL"`
	UploadPath string `mapstructure:"uploadPath"`
}

func (s *Storage) SetDefaults() {
	if s.Provider == "" {
		s.Provider = "s3"
	}
	if s.Region == "" {
		s.Region = "ap-northeast-2"
	}
	if s.UploadPath == "" {
		s.UploadPath = "upload"
	}
}

// ObjectURL is {publicURL}/{key} when a public url is configured, else the
// virtual-hosted S3 url.
func (s *Storage) ObjectURL(key string) string {
	if s.PublicURL != "" {
		return strings.TrimRight(s.PublicURL, "/") + "/" + key
	}
	return "https://" + s.Bucket + ".s3." + s.Region + ".amazonaws.com/" + key
}
