package mediastore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"galleria/api/internal/config"
	"galleria/api/internal/ids"
)

// MinioStore implements MediaStore against an S3-compatible endpoint. The
// object key doubles as the public id.
type MinioStore struct {
	client *minio.Client
	cfg    config.StorageConfig
}

var _ MediaStore = (*MinioStore)(nil)

func NewMinioStore(cfg config.StorageConfig) (*MinioStore, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL

	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	return &MinioStore{
		client: client,
		cfg:    cfg,
	}, nil
}

func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("bucket exists %s: %w", s.cfg.Bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{Region: s.cfg.Region}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.cfg.Bucket, err)
		}
	}
	return nil
}

func (s *MinioStore) Upload(ctx context.Context, content io.Reader, params UploadParams) (Asset, error) {
	publicID := s.buildPublicID(params.FolderName, params.OriginalName)

	info, err := s.client.PutObject(ctx, s.cfg.Bucket, publicID, content, params.SizeBytes, minio.PutObjectOptions{
		ContentType: params.ContentType,
	})
	if err != nil {
		return Asset{}, fmt.Errorf("put object: %w", err)
	}

	return Asset{
		PublicID: publicID,
		URL:      s.buildURL(publicID, info.VersionID),
	}, nil
}

func (s *MinioStore) Rotate(ctx context.Context, publicID string, angle int) (string, error) {
	object, err := s.client.GetObject(ctx, s.cfg.Bucket, publicID, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("get object: %w", err)
	}
	defer object.Close()

	stat, err := object.Stat()
	if err != nil {
		return "", fmt.Errorf("stat object: %w", err)
	}

	data, err := io.ReadAll(object)
	if err != nil {
		return "", fmt.Errorf("read object: %w", err)
	}

	rotated, err := rotateRaster(data, angle)
	if err != nil {
		return "", err
	}

	if _, err := s.client.PutObject(ctx, s.cfg.Bucket, publicID,
		bytes.NewReader(rotated), int64(len(rotated)),
		minio.PutObjectOptions{ContentType: stat.ContentType},
	); err != nil {
		return "", fmt.Errorf("put rotated object: %w", err)
	}

	// The version query guarantees a fresh locator on every rotate, even a
	// round trip back to the original orientation.
	return s.buildURL(publicID, fmt.Sprintf("%d", time.Now().UnixNano())), nil
}

func (s *MinioStore) Delete(ctx context.Context, publicID string) error {
	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, publicID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

func (s *MinioStore) buildPublicID(folderName string, originalName string) string {
	datePrefix := time.Now().UTC().Format("2006/01/02")
	ext := strings.TrimPrefix(path.Ext(originalName), ".")
	if ext == "" {
		ext = "bin"
	}
	return path.Join(sanitizeSegment(folderName), datePrefix, fmt.Sprintf("%s.%s", ids.New(), ext))
}

func (s *MinioStore) buildURL(publicID string, version string) string {
	base := strings.TrimSuffix(s.cfg.PublicURL, "/")
	if base == "" {
		base = strings.TrimSuffix(s.cfg.Endpoint, "/")
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}

	locator := fmt.Sprintf("%s/%s/%s", base, s.cfg.Bucket, publicID)
	if version != "" {
		locator += "?v=" + url.QueryEscape(version)
	}
	return locator
}

// sanitizeSegment keeps folder display names from injecting path traversal
// or empty segments into object keys.
func sanitizeSegment(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\':
			return '-'
		default:
			return r
		}
	}, name)
	name = strings.Trim(name, ". ")
	if name == "" {
		name = "Home"
	}
	return name
}
