package utils

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

// LoadAWSConfig resolves credentials the standard way (env, shared config,
// instance role) for region.
func LoadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	if region == "" {
		return aws.Config{}, errors.New("AWS_REGION not set")
	}
	return awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
}
