package avatarstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/mindmend/internal/domain/profile"
)

// R2Store keeps avatars in an S3-compatible bucket (Cloudflare R2, MinIO).
type R2Store struct {
	client     *minio.Client
	bucket     string
	logger     *slog.Logger
	bucketOnce sync.Once
	bucketErr  error
}

// NewR2Store connects to the bucket endpoint. The bucket is created lazily on
// first upload.
func NewR2Store(endpoint, accessKey, secretKey, bucket, region string, logger *slog.Logger) (*R2Store, error) {
	host, secure, err := splitEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	client, err := minio.New(host, &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       secure,
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init avatar bucket client: %w", err)
	}
	return &R2Store{
		client: client,
		bucket: bucket,
		logger: logger.With("component", "avatarstore.r2"),
	}, nil
}

func (s *R2Store) ensureBucket(ctx context.Context) error {
	s.bucketOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err == nil && exists {
			return
		}
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
			s.bucketErr = fmt.Errorf("create bucket %s: %w", s.bucket, err)
			return
		}
		s.logger.Info("avatar bucket ready", "bucket", s.bucket)
	})
	return s.bucketErr
}

// Put overwrites the object at key.
func (s *R2Store) Put(ctx context.Context, key string, data []byte, contentType string) (profile.Avatar, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return profile.Avatar{}, err
	}
	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:      contentType,
		CacheControl:     "private, max-age=300",
		DisableMultipart: true,
	})
	if err != nil {
		return profile.Avatar{}, fmt.Errorf("put avatar %s: %w", key, err)
	}
	return profile.Avatar{Key: key, ContentType: contentType, Size: info.Size, ETag: info.ETag}, nil
}

// Get opens the object at key. Missing objects yield profile.ErrAvatarMissing.
func (s *R2Store) Get(ctx context.Context, key string) (io.ReadCloser, profile.Avatar, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, profile.Avatar{}, mapNotFound(err)
	}
	// GetObject is lazy; Stat surfaces a missing key before we hand out the reader.
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, profile.Avatar{}, mapNotFound(err)
	}
	return obj, profile.Avatar{Key: key, ContentType: stat.ContentType, Size: stat.Size, ETag: stat.ETag}, nil
}

func mapNotFound(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return profile.ErrAvatarMissing
	}
	return err
}

// splitEndpoint accepts a bare host or a URL and returns the host and
// whether TLS should be used.
func splitEndpoint(raw string) (string, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, fmt.Errorf("avatar endpoint is empty")
	}
	if !strings.Contains(raw, "://") {
		return strings.TrimSuffix(raw, "/"), true, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false, fmt.Errorf("parse avatar endpoint: %w", err)
	}
	return u.Host, strings.EqualFold(u.Scheme, "https"), nil
}

var _ profile.AvatarStore = (*R2Store)(nil)
