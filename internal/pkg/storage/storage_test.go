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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_ObjectURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Storage
		key  string
		want string
	}{
		{
			name: "s3 virtual hosted",
			cfg:  Storage{Bucket: "assets", Region: "ap-northeast-2"},
			key:  "upload/3/abc.png",
			want: "https://assets.s3.ap-northeast-2.amazonaws.com/upload/3/abc.png",
		},
		{
			name: "public url",
			cfg:  Storage{Bucket: "assets", PublicURL: "http://localhost:9000/assets/"},
			key:  "logs/20250101/app.log-x1",
			want: "http://localhost:9000/assets/logs/20250101/app.log-x1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.ObjectURL(tt.key))
		})
	}
}

func TestNewStorage(t *testing.T) {
	_, err := NewStorage(Storage{})
	assert.Error(t, err)

	_, err = NewStorage(Storage{Provider: "gcs", Bucket: "b"})
	assert.Error(t, err)

	_, err = NewStorage(Storage{Provider: "minio", Bucket: "b"})
	assert.Error(t, err)

	s, err := NewStorage(Storage{Provider: "minio", Bucket: "b", Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	assert.IsType(t, &MinioStorage{}, s)

	s, err = NewStorage(Storage{Bucket: "b", AccessKey: "k", SecretKey: "s", Region: "us-east-1"})
	require.NoError(t, err)
	assert.IsType(t, &S3Storage{}, s)
	assert.Equal(t, "https://b.s3.us-east-1.amazonaws.com/k", s.URL("k"))
}
