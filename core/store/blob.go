package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"order-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
)

// Blob stores named documents. Read of a missing name returns an error
// matching fs.ErrNotExist.
type Blob interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Remove(ctx context.Context, name string) error
	Ping(ctx context.Context) error
}

// FSBlob keeps documents as files in one directory.
type FSBlob struct {
	fs  afero.Fs
	dir string
}

// NewFSBlob creates a blob rooted at dir on fs.
func NewFSBlob(fs afero.Fs, dir string) *FSBlob {
	return &FSBlob{fs: fs, dir: dir}
}

func (b *FSBlob) path(name string) string {
	return filepath.Join(b.dir, name)
}

func (b *FSBlob) Read(_ context.Context, name string) ([]byte, error) {
	return afero.ReadFile(b.fs, b.path(name))
}

// Write replaces the file through a temporary sibling and a rename, so a
// reader never sees a half written document.
func (b *FSBlob) Write(_ context.Context, name string, data []byte) error {
	if err := b.fs.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", b.dir, err)
	}

	tmp := b.path(name + ".tmp")
	if err := afero.WriteFile(b.fs, tmp, data, 0o644); err != nil {
		return err
	}
	if err := b.fs.Rename(tmp, b.path(name)); err != nil {
		_ = b.fs.Remove(tmp)
		return err
	}
	return nil
}

func (b *FSBlob) Remove(_ context.Context, name string) error {
	if err := b.fs.Remove(b.path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (b *FSBlob) Ping(_ context.Context) error {
	if err := b.fs.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("data directory %s is not usable: %w", b.dir, err)
	}
	info, err := b.fs.Stat(b.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("data directory %s is not a directory", b.dir)
	}
	return nil
}

// BucketBlob keeps documents as objects in an S3 bucket.
type BucketBlob struct {
	client storage.Client
	bucket string
	prefix string
}

// NewBucketBlob creates a blob storing objects under prefix in bucket.
func NewBucketBlob(client storage.Client, bucket, prefix string) *BucketBlob {
	return &BucketBlob{client: client, bucket: bucket, prefix: prefix}
}

func (b *BucketBlob) key(name string) string {
	return b.prefix + name
}

func (b *BucketBlob) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := storage.ReadObject(ctx, b.client, b.bucket, b.key(name))
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, fmt.Errorf("%s: %w", b.key(name), os.ErrNotExist)
	}
	return data, err
}

func (b *BucketBlob) Write(ctx context.Context, name string, data []byte) error {
	_, err := b.client.PutObject(ctx, b.bucket, b.key(name), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", b.key(name), err)
	}
	return nil
}

func (b *BucketBlob) Remove(ctx context.Context, name string) error {
	if err := b.client.RemoveObject(ctx, b.bucket, b.key(name), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", b.key(name), err)
	}
	return nil
}

func (b *BucketBlob) Ping(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", b.bucket)
	}
	return nil
}
