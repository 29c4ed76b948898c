package repository_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/Manakin-Wraith/Cheap-Cheap/errors"
	"github.com/Manakin-Wraith/Cheap-Cheap/repository"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock S3 client ---

type mockObjectGetter struct {
	objects map[string]string
	err     error
	calls   int
}

func (m *mockObjectGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	body, ok := m.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

// --- File repository ---

func TestFileRepository_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"src":"a"}]`), 0o644))

	repo := repository.NewFileDatasetRepository(path)
	data, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `[{"src":"a"}]`, string(data))
	assert.Equal(t, path, repo.Location())
}

func TestFileRepository_RereadsOnEveryCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))
	repo := repository.NewFileDatasetRepository(path)

	first, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(`[{"src":"b"}]`), 0o644))
	second, err := repo.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, `[]`, string(first))
	assert.Equal(t, `[{"src":"b"}]`, string(second))
}

func TestFileRepository_Missing(t *testing.T) {
	repo := repository.NewFileDatasetRepository(filepath.Join(t.TempDir(), "missing.json"))
	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFileRepository_DirectoryIsIOFailure(t *testing.T) {
	repo := repository.NewFileDatasetRepository(t.TempDir())
	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsIOFailure(err))
}

// --- S3 repository ---

func TestS3Repository_Load(t *testing.T) {
	client := &mockObjectGetter{objects: map[string]string{"promos/pnp/output.json": `[{"src":"s3"}]`}}
	repo := repository.NewS3DatasetRepository(client, "promos", "pnp/output.json")

	data, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `[{"src":"s3"}]`, string(data))
	assert.Equal(t, "s3://promos/pnp/output.json", repo.Location())
	assert.Equal(t, 1, client.calls)
}

func TestS3Repository_NoSuchKey(t *testing.T) {
	repo := repository.NewS3DatasetRepository(&mockObjectGetter{}, "promos", "missing.json")
	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestS3Repository_NoSuchBucket(t *testing.T) {
	repo := repository.NewS3DatasetRepository(&mockObjectGetter{err: &types.NoSuchBucket{}}, "nope", "output.json")
	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestS3Repository_OtherError(t *testing.T) {
	repo := repository.NewS3DatasetRepository(&mockObjectGetter{err: errors.New("connection refused")}, "promos", "output.json")
	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsIOFailure(err))
	assert.Contains(t, err.Error(), "connection refused")
}

// --- Factory ---

func TestNew_FileLocation(t *testing.T) {
	repo, err := repository.New(context.Background(), "/srv/pnp_data/output.json")
	require.NoError(t, err)
	assert.IsType(t, &repository.FileDatasetRepository{}, repo)
}

func TestNew_S3Location(t *testing.T) {
	t.Setenv("AWS_REGION", "us-east-1")
	repo, err := repository.New(context.Background(), "s3://promos/output.json")
	require.NoError(t, err)
	assert.IsType(t, &repository.S3DatasetRepository{}, repo)
	assert.Equal(t, "s3://promos/output.json", repo.Location())
}

func TestNew_InvalidS3Location(t *testing.T) {
	_, err := repository.New(context.Background(), "s3://promos")
	assert.Error(t, err)
}
