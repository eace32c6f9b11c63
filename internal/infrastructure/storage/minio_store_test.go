package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seller-panel.backend/internal/config"
)

type fakeBucket struct {
	exists    bool
	existsErr error
	makeErr   error
	putErr    error
	removeErr error
	removed   []string
	made      []string
	puts      map[string][]byte
	types     map[string]string
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{puts: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeBucket) BucketExists(context.Context, string) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeBucket) MakeBucket(_ context.Context, name string, _ minio.MakeBucketOptions) error {
	if f.makeErr != nil {
		return f.makeErr
	}
	f.made = append(f.made, name)
	return nil
}

func (f *fakeBucket) PutObject(_ context.Context, _, key string, r io.Reader, _ int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	data, _ := io.ReadAll(r)
	f.puts[key] = data
	f.types[key] = opts.ContentType
	return minio.UploadInfo{Key: key, Size: int64(len(data))}, nil
}

func (f *fakeBucket) RemoveObject(_ context.Context, _, key string, _ minio.RemoveObjectOptions) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, key)
	delete(f.puts, key)
	return nil
}

func testStorageConfig() config.StorageConfig {
	return config.StorageConfig{Endpoint: "localhost:9000", Bucket: "sellers"}
}

func TestMinioStore_Put(t *testing.T) {
	fake := newFakeBucket()
	store, err := newStore(fake, testStorageConfig())
	require.NoError(t, err)
	store.newID = func() string { return "abc123" }

	url, err := store.Put(context.Background(), "seller_docs/s1", "PAN.PDF", "application/pdf", 3, bytes.NewReader([]byte("pdf")))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/sellers/seller_docs/s1/abc123.pdf", url)
	assert.Equal(t, []byte("pdf"), fake.puts["seller_docs/s1/abc123.pdf"])
	assert.Equal(t, "application/pdf", fake.types["seller_docs/s1/abc123.pdf"])
}

func TestMinioStore_PutUsesRandomNames(t *testing.T) {
	store, err := newStore(newFakeBucket(), testStorageConfig())
	require.NoError(t, err)

	first, err := store.Put(context.Background(), "f", "a.png", "image/png", 1, strings.NewReader("x"))
	require.NoError(t, err)
	second, err := store.Put(context.Background(), "f", "a.png", "image/png", 1, strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestMinioStore_PutFailure(t *testing.T) {
	fake := newFakeBucket()
	fake.putErr = errors.New("bucket offline")
	store, err := newStore(fake, testStorageConfig())
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "f", "a.png", "image/png", 1, strings.NewReader("x"))
	assert.ErrorContains(t, err, "bucket offline")
}

func TestMinioStore_Remove(t *testing.T) {
	fake := newFakeBucket()
	store, err := newStore(fake, testStorageConfig())
	require.NoError(t, err)
	store.newID = func() string { return "abc123" }

	url, err := store.Put(context.Background(), "product_images/s1", "rice.png", "image/png", 1, strings.NewReader("x"))
	require.NoError(t, err)
	require.NoError(t, store.Remove(context.Background(), url))
	assert.Equal(t, []string{"product_images/s1/abc123.png"}, fake.removed)
	assert.NotContains(t, fake.puts, "product_images/s1/abc123.png")

	assert.ErrorContains(t, store.Remove(context.Background(), "https://elsewhere.test/x.png"), "is not in bucket")

	fake.removeErr = errors.New("denied")
	assert.ErrorContains(t, store.Remove(context.Background(), url), "denied")
}

func TestMinioStore_EnsureBucket(t *testing.T) {
	fake := newFakeBucket()
	store, err := newStore(fake, testStorageConfig())
	require.NoError(t, err)

	require.NoError(t, store.EnsureBucket(context.Background()))
	assert.Equal(t, []string{"sellers"}, fake.made)

	fake.exists = true
	require.NoError(t, store.EnsureBucket(context.Background()))
	assert.Len(t, fake.made, 1)

	fake.existsErr = errors.New("denied")
	assert.Error(t, store.EnsureBucket(context.Background()))

	fake.existsErr = nil
	fake.exists = false
	fake.makeErr = errors.New("quota")
	assert.Error(t, store.EnsureBucket(context.Background()))
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com", publicBaseURL(config.StorageConfig{PublicURL: "https://cdn.example.com/"}))
	assert.Equal(t, "https://s3.local/b", publicBaseURL(config.StorageConfig{Endpoint: "s3.local", Bucket: "b", UseSSL: true}))
}

func TestNewMinioStore_ClientError(t *testing.T) {
	orig := newMinioClient
	t.Cleanup(func() { newMinioClient = orig })
	newMinioClient = func(config.StorageConfig) (bucketClient, error) {
		return nil, errors.New("bad endpoint")
	}

	_, err := NewMinioStore(testStorageConfig())
	assert.ErrorContains(t, err, "bad endpoint")
}
