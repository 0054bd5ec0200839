// Package upload copies finished artifacts to S3 or an S3-compatible store.
package upload

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"github.com/teranos/crunch/errors"
	"github.com/teranos/crunch/logger"
	"github.com/teranos/crunch/sink"
)

// ErrUploadFailed wraps every failed transfer.
var ErrUploadFailed = errors.New("upload failed")

// Client is the subset of the S3 API the uploader needs.
type Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config describes the target bucket.
type Config struct {
	Bucket         string `mapstructure:"bucket" toml:"bucket" yaml:"bucket" json:"bucket"`
	Region         string `mapstructure:"region" toml:"region" yaml:"region" json:"region"`
	Endpoint       string `mapstructure:"endpoint" toml:"endpoint,omitempty" yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	Prefix         string `mapstructure:"prefix" toml:"prefix,omitempty" yaml:"prefix,omitempty" json:"prefix,omitempty"`
	AccessKeyID    string `mapstructure:"access_key_id" toml:"access_key_id,omitempty" yaml:"access_key_id,omitempty" json:"-"`
	SecretKey      string `mapstructure:"secret_key" toml:"secret_key,omitempty" yaml:"secret_key,omitempty" json:"-"`
	ForcePathStyle bool   `mapstructure:"force_path_style" toml:"force_path_style" yaml:"force_path_style" json:"force_path_style"`
}

// Enabled reports whether a bucket is configured.
func (c Config) Enabled() bool { return c.Bucket != "" }

// Option configures an Uploader.
type Option func(*options)

type options struct {
	client        Client
	configOptions []func(*config.LoadOptions) error
	clientOptions []func(*s3.Options)
	timeout       time.Duration
}

// WithClient uses a pre-configured client instead of loading AWS config.
func WithClient(client Client) Option {
	return func(o *options) { o.client = client }
}

// WithConfigOption adds an AWS config load option.
func WithConfigOption(opt func(*config.LoadOptions) error) Option {
	return func(o *options) { o.configOptions = append(o.configOptions, opt) }
}

// WithClientOption adds an S3 client option.
func WithClientOption(opt func(*s3.Options)) Option {
	return func(o *options) { o.clientOptions = append(o.clientOptions, opt) }
}

// WithTimeout bounds each upload.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// Uploader puts artifacts into a bucket. It is a sink.Finalizer.
type Uploader struct {
	client  Client
	bucket  string
	prefix  string
	timeout time.Duration
	log     *zap.SugaredLogger
}

// New builds an uploader. Static credentials are used when both keys are
// set; otherwise the default AWS credential chain applies.
func New(ctx context.Context, cfg Config, opts ...Option) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, errors.NewInvalidConfigError("upload.s3.bucket is required")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		var awsOptions []func(*config.LoadOptions) error
		if cfg.Region != "" {
			awsOptions = append(awsOptions, config.WithRegion(cfg.Region))
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, "")))
		}
		awsOptions = append(awsOptions, o.configOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load AWS config")
		}

		client = s3.NewFromConfig(awsConfig, func(so *s3.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
			for _, opt := range o.clientOptions {
				opt(so)
			}
		})
	}

	return &Uploader{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  strings.Trim(cfg.Prefix, "/"),
		timeout: o.timeout,
		log:     logger.ComponentLogger("upload"),
	}, nil
}

// Key returns the object key for a local file.
func (u *Uploader) Key(localPath string) string {
	name := filepath.Base(localPath)
	if u.prefix == "" {
		return name
	}
	return path.Join(u.prefix, name)
}

// Upload puts the file at localPath and returns its s3:// URI.
func (u *Uploader) Upload(ctx context.Context, localPath string) (string, error) {
	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open %s", localPath)
	}
	defer f.Close()

	key := u.Key(localPath)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType(localPath)),
	})
	if err != nil {
		return "", classifyError(err, key)
	}
	return fmt.Sprintf("s3://%s/%s", u.bucket, key), nil
}

// Finalize uploads a and records the remote URI on it.
func (u *Uploader) Finalize(ctx context.Context, a *sink.Artifact) error {
	began := time.Now()
	uri, err := u.Upload(ctx, a.Path)
	if err != nil {
		return err
	}
	a.Remote = uri
	u.log.Infow("Uploaded",
		logger.FieldPath, a.Path,
		logger.FieldRemote, uri,
		logger.FieldDurationMS, time.Since(began).Milliseconds())
	return nil
}

func contentType(name string) string {
	switch filepath.Ext(name) {
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".gz":
		return "application/gzip"
	case ".bz2":
		return "application/x-bzip2"
	case ".xz":
		return "application/x-xz"
	case ".zst":
		return "application/zstd"
	default:
		return "application/octet-stream"
	}
}

func classifyError(err error, key string) error {
	if errors.IsAny(err, context.Canceled, context.DeadlineExceeded) {
		return errors.Wrapf(err, "upload of %s interrupted", key)
	}

	wrapped := errors.Wrapf(ErrUploadFailed, "%s: %v", key, err)

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return errors.WithHint(wrapped, "check upload.s3.bucket and upload.s3.region")
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return errors.WithHint(wrapped, "check upload.s3.access_key_id and upload.s3.secret_key, or the AWS credential chain")
		case "NoSuchBucket":
			return errors.WithHint(wrapped, "check upload.s3.bucket and upload.s3.region")
		case "SlowDown", "ServiceUnavailable", "RequestTimeout":
			return errors.WithHint(wrapped, "the service is throttling; retry later or lower --rate")
		}
	}
	return wrapped
}
