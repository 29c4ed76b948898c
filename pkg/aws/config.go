package aws

import (
	"context"
	"fmt"
	"os"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// Endpoint returns the custom endpoint configured for S3, if any. The
// service-specific AWS_S3_ENDPOINT wins over the generic AWS_ENDPOINT.
func Endpoint() string {
	if endpoint := os.Getenv("AWS_S3_ENDPOINT"); endpoint != "" {
		return endpoint
	}
	return os.Getenv("AWS_ENDPOINT")
}

// LoadAWSConfig loads AWS config from the environment and applies the custom
// endpoint from Endpoint so clients can target LocalStack instead of AWS.
func LoadAWSConfig(ctx context.Context) (sdkaws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if endpoint := Endpoint(); endpoint != "" {
		opts = append(opts, config.WithBaseEndpoint(endpoint))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return cfg, fmt.Errorf("failed to load aws config: %w", err)
	}
	return cfg, nil
}
