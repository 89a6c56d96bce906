package persistence

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"transcript-sheets/internal/config"
)

// BackupStore keeps a copy of data the spreadsheet did not accept
type BackupStore interface {
	Name() string
	// Save stores data under name and returns where it landed
	Save(ctx context.Context, name string, data []byte) (string, error)
	Check(ctx context.Context) error
}

// LocalBackup writes backups as files in a directory
type LocalBackup struct {
	dir string
}

// NewLocalBackup creates a local backup store rooted at dir
func NewLocalBackup(dir string) *LocalBackup {
	return &LocalBackup{dir: dir}
}

func (l *LocalBackup) Name() string { return "local" }

// Dir returns the backup directory
func (l *LocalBackup) Dir() string { return l.dir }

func (l *LocalBackup) Save(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path := filepath.Join(l.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize backup file: %w", err)
	}
	return path, nil
}

// Check verifies the directory exists (creating it if needed) and is writable
func (l *LocalBackup) Check(_ context.Context) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("backup directory unavailable: %w", err)
	}
	probe, err := os.CreateTemp(l.dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("backup directory not writable: %w", err)
	}
	probe.Close()
	return os.Remove(probe.Name())
}

// ObjectBackup mirrors backups into an S3-compatible bucket
type ObjectBackup struct {
	client *minio.Client
	bucket string
}

// NewObjectBackup connects to the configured MinIO endpoint
func NewObjectBackup(cfg config.MinIOConfig) (*ObjectBackup, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}
	return &ObjectBackup{client: client, bucket: cfg.Bucket}, nil
}

func (o *ObjectBackup) Name() string { return "minio" }

func (o *ObjectBackup) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := o.ensureBucket(ctx); err != nil {
		return "", err
	}

	info, err := o.client.PutObject(ctx, o.bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to upload backup: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", info.Bucket, info.Key), nil
}

func (o *ObjectBackup) Check(ctx context.Context) error {
	exists, err := o.client.BucketExists(ctx, o.bucket)
	if err != nil {
		return fmt.Errorf("object storage unreachable: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", o.bucket)
	}
	return nil
}

func (o *ObjectBackup) ensureBucket(ctx context.Context) error {
	exists, err := o.client.BucketExists(ctx, o.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := o.client.MakeBucket(ctx, o.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}
