package capture

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/vango-dev/netsync/internal/errors"
)

// PutObjectAPI is the part of the S3 client the uploader uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// UploaderConfig configures an Uploader.
type UploaderConfig struct {
	Client PutObjectAPI
	Bucket string

	// Prefix is prepended to every object key.
	// Default: "captures/".
	Prefix string

	// MaxSize rejects larger files. 0 means no limit.
	MaxSize int64

	// NewID names uploaded objects.
	// Default: uuid.NewString.
	NewID func() string

	Clock  clock.Clock
	Logger *slog.Logger
}

// Uploader stores capture files in S3.
//
//	client := capture.NewS3Client("eu-west-1")
//	up, err := capture.NewUploader(capture.UploaderConfig{Client: client, Bucket: "match-captures"})
//	key, err := up.Upload(ctx, "session.nscap")
type Uploader struct {
	cfg UploaderConfig
}

// NewUploader validates cfg and fills in defaults.
func NewUploader(cfg UploaderConfig) (*Uploader, error) {
	if cfg.Client == nil {
		return nil, errors.New(errors.CodeUploadFailed).WithReason("no S3 client")
	}
	if cfg.Bucket == "" {
		return nil, errors.New(errors.CodeUploadFailed).WithReason("no bucket configured")
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "captures/"
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Uploader{cfg: cfg}, nil
}

// Upload checks that path is a readable capture and stores it under a new
// key, which it returns.
func (u *Uploader) Upload(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.New(errors.CodeCaptureOpen).WithField("path", path).Wrap(err)
	}
	if u.cfg.MaxSize > 0 && int64(len(data)) > u.cfg.MaxSize {
		return "", errors.New(errors.CodeUploadFailed).
			WithReason(fmt.Sprintf("capture is %d bytes, limit is %d", len(data), u.cfg.MaxSize)).
			WithField("path", path)
	}

	r, err := NewReader(data)
	if err != nil {
		return "", errors.FromError(err, errors.CodeCaptureCorrupt).WithField("path", path)
	}
	records, err := r.All()
	if err != nil {
		return "", errors.FromError(err, errors.CodeCaptureCorrupt).WithField("path", path)
	}

	key := u.cfg.Prefix + u.cfg.NewID() + FileExt
	_, err = u.cfg.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/octet-stream"),
		Metadata: map[string]string{
			"original-filename": filepath.Base(path),
			"records":           strconv.Itoa(len(records)),
			"upload-time":       u.cfg.Clock.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", errors.New(errors.CodeUploadFailed).
			WithField("bucket", u.cfg.Bucket).
			WithField("key", key).
			Wrap(err)
	}

	u.cfg.Logger.Info("capture uploaded",
		"path", path,
		"bucket", u.cfg.Bucket,
		"key", key,
		"bytes", len(data),
		"records", len(records))
	return key, nil
}

// NewS3Client builds an S3 client for region with credentials from the
// standard AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN
// variables. An empty region falls back to AWS_REGION.
func NewS3Client(region string) *s3.Client {
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	return s3.New(s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials)),
	})
}

func envCredentials(context.Context) (aws.Credentials, error) {
	creds := aws.Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "EnvironmentVariables",
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return aws.Credentials{}, fmt.Errorf("capture: AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}
	return creds, nil
}
