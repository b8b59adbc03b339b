package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"order-manager/core/storage"
	"order-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			Bucket:    "orders",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "orders").Return(true, nil)

		require.NoError(t, storage.EnsureBucket(ctx, m, "orders", ""))
		m.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Created", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "orders").Return(false, nil)
		m.On("MakeBucket", mock.Anything, "orders", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

		require.NoError(t, storage.EnsureBucket(ctx, m, "orders", "eu-west-1"))
		m.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "orders").Return(false, errors.New("connection refused"))

		err := storage.EnsureBucket(ctx, m, "orders", "")
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestReadObject(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("GetObject", mock.Anything, "orders", "stocks.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte(`[]`))), nil)

		data, err := storage.ReadObject(ctx, m, "orders", "stocks.json")
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("NoSuchKey", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("GetObject", mock.Anything, "orders", "orders.json", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

		_, err := storage.ReadObject(ctx, m, "orders", "orders.json")
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	})

	t.Run("Failure", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("GetObject", mock.Anything, "orders", "orders.json", mock.Anything).
			Return(nil, errors.New("timeout"))

		_, err := storage.ReadObject(ctx, m, "orders", "orders.json")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, storage.ErrObjectNotFound)
	})
}
