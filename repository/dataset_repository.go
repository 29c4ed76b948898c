package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	apperrors "github.com/Manakin-Wraith/Cheap-Cheap/errors"
	aws_pkg "github.com/Manakin-Wraith/Cheap-Cheap/pkg/aws"
	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// DatasetRepository reads the raw bytes of the promotions dataset.
type DatasetRepository interface {
	Load(ctx context.Context) ([]byte, error)
	// Location describes where the dataset is read from, for logs.
	Location() string
}

// New returns the repository for location: an S3 repository for s3://bucket/key,
// a file repository for anything else.
func New(ctx context.Context, location string) (DatasetRepository, error) {
	if bucket, key, ok := aws_pkg.ParseS3URI(location); ok {
		awsCfg, err := aws_pkg.LoadAWSConfig(ctx)
		if err != nil {
			return nil, err
		}
		return NewS3DatasetRepository(aws_pkg.NewS3Client(awsCfg), bucket, key), nil
	}
	if strings.HasPrefix(location, aws_pkg.S3Scheme) {
		return nil, fmt.Errorf("invalid dataset location %q: expected s3://bucket/key", location)
	}
	return NewFileDatasetRepository(location), nil
}

// FileDatasetRepository reads the dataset from a local file on every call.
type FileDatasetRepository struct {
	path string
}

func NewFileDatasetRepository(path string) *FileDatasetRepository {
	return &FileDatasetRepository{path: path}
}

func (r *FileDatasetRepository) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, apperrors.ClassifyRead("read", r.path, err)
	}
	return data, nil
}

func (r *FileDatasetRepository) Location() string {
	return r.path
}

// S3DatasetRepository reads the dataset from an S3 object on every call.
type S3DatasetRepository struct {
	client aws_pkg.ObjectGetter
	bucket string
	key    string
}

func NewS3DatasetRepository(client aws_pkg.ObjectGetter, bucket, key string) *S3DatasetRepository {
	return &S3DatasetRepository{client: client, bucket: bucket, key: key}
}

func (r *S3DatasetRepository) Load(ctx context.Context) ([]byte, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, apperrors.NotFound("get object", r.Location(), err)
		}
		return nil, apperrors.IOFailure("get object", r.Location(), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, apperrors.IOFailure("read object", r.Location(), err)
	}
	return data, nil
}

func (r *S3DatasetRepository) Location() string {
	return aws_pkg.S3Scheme + r.bucket + "/" + r.key
}

func isS3NotFound(err error) bool {
	var noKey *types.NoSuchKey
	if stderrors.As(err, &noKey) {
		return true
	}
	var noBucket *types.NoSuchBucket
	if stderrors.As(err, &noBucket) {
		return true
	}
	var respErr *awshttp.ResponseError
	return stderrors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound
}
