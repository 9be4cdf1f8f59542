package target

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/reconciler/pkg/fiber"
)

// S3API is the subset of *s3.Client used by the S3 target.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3 stores the latest snapshot of every live fiber as an object named
// <prefix><fiber>.bin and deletes it when the fiber is destroyed.
//
// Example usage:
//
//	client := target.NewS3Client(target.S3Config{Region: "us-east-1"})
//	t := target.NewS3(client, "my-bucket", "renders/")
type S3 struct {
	client S3API
	bucket string
	prefix string
}

// NewS3 creates an S3 target.
func NewS3(client S3API, bucket, prefix string) *S3 {
	return &S3{client: client, bucket: bucket, prefix: prefix}
}

// S3Config holds the settings for NewS3Client.
type S3Config struct {
	Region          string
	Endpoint        string // Optional, for S3-compatible stores
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// NewS3Client builds an S3 client from static settings.
func NewS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.UsePathStyle,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKeyID != "" {
		creds := aws.Credentials{
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			Source:          "reconciler",
		}
		opts.Credentials = aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return creds, nil
		})
	}
	return s3.New(opts)
}

// Key returns the object key of a fiber's snapshot.
func (s *S3) Key(id fiber.ID) string {
	return s.prefix + strconv.FormatUint(uint64(id), 10) + ".bin"
}

// Open implements fiber.Target.
func (s *S3) Open(context.Context) error {
	if s.bucket == "" {
		return fmt.Errorf("target: s3 bucket not set")
	}
	return nil
}

// Commit implements fiber.Target.
func (s *S3) Commit(ctx context.Context, c fiber.Commit) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.Key(c.Fiber)),
		Body:        bytes.NewReader(Encode(c)),
		ContentType: aws.String("application/octet-stream"),
		Metadata: map[string]string{
			"component": c.Component,
			"seq":       strconv.FormatUint(c.Seq, 10),
		},
	})
	if err != nil {
		return fmt.Errorf("target: s3 put %s: %w", c.Fiber, err)
	}
	return nil
}

// Unmount implements fiber.Unmounter.
func (s *S3) Unmount(ctx context.Context, id fiber.ID) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.Key(id)),
	})
	if err != nil {
		return fmt.Errorf("target: s3 delete %s: %w", id, err)
	}
	return nil
}
