// Package archive keeps a copy of every delivered document in object storage
// so support can resend it.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/config"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/logctx"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/tool"
)

// Archiver stores a rendered document under key.
type Archiver interface {
	Put(ctx context.Context, key string, html []byte) error
}

// Nop discards documents. It is used when no bucket is configured.
type Nop struct{}

func (Nop) Put(context.Context, string, []byte) error { return nil }

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 writes documents to a bucket. Any S3-compatible endpoint works.
type S3 struct {
	client putObjectAPI
	bucket string
	log    *zap.SugaredLogger
}

// NewS3 builds the client from cfg. Static credentials are used when both
// keys are set, otherwise the default AWS credential chain applies.
func NewS3(ctx context.Context, cfg config.ArchiveConfig, log *zap.SugaredLogger) (*S3, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3{client: client, bucket: cfg.Bucket, log: log}, nil
}

func (s *S3) Put(ctx context.Context, key string, html []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(html),
		ContentType: aws.String("text/html; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}
	logctx.FromCtx(ctx, s.log).Infow("combo_archived", "bucket", s.bucket, "key", key, "bytes", len(html))
	return nil
}

// Key names the object for one document. The email is hashed so keys can be
// listed without exposing customers.
func Key(prefix, email string, at time.Time) string {
	name := fmt.Sprintf("%s-%s.html", tool.Digest(email), tool.GenerateUUIDV7())
	return path.Join(prefix, at.UTC().Format("2006/01/02"), name)
}
