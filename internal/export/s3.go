package export

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the part of the S3 client the sink needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config holds S3 sink parameters. Endpoint and static credentials are
// optional; without them the default AWS chain applies.
type S3Config struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string // optional, for MinIO or R2
	AccessKeyID     string
	SecretAccessKey string
	PathStyle       bool
}

// S3Sink uploads files as objects in one bucket.
type S3Sink struct {
	client ObjectPutter
	bucket string
	prefix string
}

// NewS3Sink loads AWS configuration and builds a client for cfg.
func NewS3Sink(ctx context.Context, cfg S3Config) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewS3SinkWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewS3SinkWithClient wraps an existing client.
func NewS3SinkWithClient(client ObjectPutter, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix}
}

// Put uploads body as text/csv under prefix/name.
func (s *S3Sink) Put(ctx context.Context, name string, body []byte) (string, error) {
	key, err := sanitizeKey(name)
	if err != nil {
		return "", err
	}
	if s.prefix != "" {
		key = path.Join(s.prefix, key)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
