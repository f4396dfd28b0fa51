package storage

import (
	"context"
	"testing"

	miniogo "github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/minio"
)

const testBucket = "tabled-test"

// setupArchive starts a MinIO container, creates the test bucket and returns
// a store pointed at it.
func setupArchive(t *testing.T) (ObjectStore, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := minio.Run(ctx,
		"minio/minio:RELEASE.2024-10-29T16-01-48Z",
		minio.WithUsername("minioadmin"),
		minio.WithPassword("minioadmin"),
	)
	require.NoError(t, err)

	endpoint, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	mc, err := miniogo.New(endpoint, &miniogo.Options{
		Creds:  miniocreds.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	require.NoError(t, err)
	require.NoError(t, mc.MakeBucket(ctx, testBucket, miniogo.MakeBucketOptions{}))

	store, err := NewS3Store(S3Config{
		Bucket:    testBucket,
		Endpoint:  endpoint,
		Region:    "us-east-1",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	require.NoError(t, err)

	cleanup := func() {
		require.NoError(t, container.Terminate(ctx))
	}
	return store, cleanup
}

func TestS3Store_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	store, cleanup := setupArchive(t)
	defer cleanup()

	ctx := context.Background()
	raw := []byte("ts,value\n0,1.5\n30,2.5\n")

	require.NoError(t, store.Upload(ctx, "datasets/test.csv", "text/csv", raw))

	got, err := store.Download(ctx, "datasets/test.csv")
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	require.NoError(t, store.Delete(ctx, "datasets/test.csv"))
	_, err = store.Download(ctx, "datasets/test.csv")
	assert.Error(t, err)
}

func TestNewS3StoreRequiresBucket(t *testing.T) {
	_, err := NewS3Store(S3Config{})
	assert.Error(t, err)
}
