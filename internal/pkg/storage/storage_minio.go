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
	"io"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStorage struct {
	Client *minio.Client
	s      *Storage
}

func newMinio(s *Storage) (*MinioStorage, error) {
	client, err := minio.New(s.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(s.AccessKey, s.SecretKey, ""),
		Secure: s.UseTLS,
		Region: s.Region,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorage{Client: client, s: s}, nil
}

func (m *MinioStorage) PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	_, err := m.Client.PutObject(ctx, m.s.Bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return m.URL(key), nil
}

func (m *MinioStorage) StatObject(ctx context.Context, key, versionID string) (*ObjectMeta, error) {
	info, err := m.Client.StatObject(ctx, m.s.Bucket, key, minio.StatObjectOptions{VersionID: versionID})
	if err != nil {
		return nil, minioErr(err)
	}
	return &ObjectMeta{
		Status:        http.StatusOK,
		ContentLength: info.Size,
		ContentType:   info.ContentType,
		LastModified:  info.LastModified,
		VersionID:     info.VersionID,
	}, nil
}

func (m *MinioStorage) ListObjects(ctx context.Context, prefix string, maxKeys int) ([]ObjectInfo, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	objects := make([]ObjectInfo, 0, maxKeys)
	for o := range m.Client.ListObjects(ctx, m.s.Bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
		MaxKeys:   maxKeys,
	}) {
		if o.Err != nil {
			return nil, minioErr(o.Err)
		}
		objects = append(objects, ObjectInfo{
			Key:          o.Key,
			Size:         o.Size,
			LastModified: o.LastModified,
			ETag:         o.ETag,
		})
		if len(objects) >= maxKeys {
			break
		}
	}
	return objects, nil
}

func (m *MinioStorage) DeleteObject(ctx context.Context, key, versionID string) (*DeleteResult, error) {
	err := m.Client.RemoveObject(ctx, m.s.Bucket, key, minio.RemoveObjectOptions{VersionID: versionID})
	if err != nil {
		return nil, minioErr(err)
	}
	return &DeleteResult{VersionID: versionID}, nil
}

func (m *MinioStorage) URL(key string) string {
	return m.s.ObjectURL(key)
}

func minioErr(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrObjectNotFound
	}
	return err
}
