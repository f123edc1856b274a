package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-cms-backend/errs"
)

const (
	// MaxUploadSize is the per-file limit for uploaded media.
	MaxUploadSize int64 = 50 << 20
	cacheControl        = "max-age=3600"
)

var allowedMediaTypes = []string{"image/*", "video/*"}

// ObjectStorage is the subset of the S3 API the uploader uses. *s3.Client
// satisfies it, so does Supabase Storage through its S3 endpoint.
type ObjectStorage interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutBucketPolicy(ctx context.Context, params *s3.PutBucketPolicyInput, optFns ...func(*s3.Options)) (*s3.PutBucketPolicyOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// FileUploader stores a file and returns its public URL.
type FileUploader interface {
	Upload(ctx context.Context, f File, bucket, key string) (string, error)
}

// File is an upload payload.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadSeeker
}

// StorageConfig points the uploader at an S3-compatible endpoint.
type StorageConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string // base of public object URLs, bucket and key are appended
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// NewS3Uploader builds an uploader backed by an S3 client with static credentials.
func NewS3Uploader(ctx context.Context, cfg StorageConfig) (*Uploader, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading storage config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})
	return NewUploader(client, cfg.PublicURL), nil
}

// Uploader writes media to object storage.
type Uploader struct {
	client    ObjectStorage
	publicURL string
	maxSize   int64
}

func NewUploader(client ObjectStorage, publicURL string) *Uploader {
	return &Uploader{
		client:    client,
		publicURL: strings.TrimRight(publicURL, "/"),
		maxSize:   MaxUploadSize,
	}
}

// Upload stores f under bucket/key, overwriting any existing object, and
// returns the public URL. The bucket is created as public when missing.
func (u *Uploader) Upload(ctx context.Context, f File, bucket, key string) (string, error) {
	key = strings.TrimLeft(key, "/")
	if bucket == "" {
		return "", errs.NewMissingRequiredFieldError("bucket")
	}
	if key == "" {
		return "", errs.NewMissingRequiredFieldError("path")
	}

	contentType, err := detectContentType(f)
	if err != nil {
		return "", errs.NewUploadError(bucket, key, err)
	}
	if !mediaTypeAllowed(contentType) {
		return "", errs.NewFileTypeNotAllowedError(contentType)
	}
	if f.Size > u.maxSize {
		return "", errs.NewFileTooLargeError(f.Size, u.maxSize)
	}

	u.ensureBucket(ctx, bucket)

	input := &s3.PutObjectInput{
		Bucket:       aws.String(bucket),
		Key:          aws.String(key),
		Body:         f.Body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(cacheControl),
	}
	if f.Size > 0 {
		input.ContentLength = aws.Int64(f.Size)
	}
	if _, err := u.client.PutObject(ctx, input); err != nil {
		log.Error().Err(err).Str("bucket", bucket).Str("key", key).Msg("Upload failed")
		return "", errs.NewUploadError(bucket, key, err)
	}

	return u.PublicURL(bucket, key), nil
}

// PublicURL returns the URL an uploaded object is served from.
func (u *Uploader) PublicURL(bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/%s/%s", u.publicURL, url.PathEscape(bucket), strings.Join(segments, "/"))
}

// ensureBucket creates a missing bucket with a public-read policy. Failures
// are logged only: the bucket may exist without being visible to these
// credentials, in which case the upload itself still succeeds.
func (u *Uploader) ensureBucket(ctx context.Context, bucket string) {
	if _, err := u.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err == nil {
		return
	}

	if _, err := u.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)}); err != nil {
		log.Warn().Err(err).Str("bucket", bucket).Msg("Failed to create bucket, continuing with upload")
		return
	}
	if _, err := u.client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(bucket),
		Policy: aws.String(publicReadPolicy(bucket)),
	}); err != nil {
		log.Warn().Err(err).Str("bucket", bucket).Msg("Failed to make bucket public")
	}
}

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Sid":"PublicRead","Effect":"Allow","Principal":"*","Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
}

// detectContentType trusts the declared type, then the extension, then sniffs
// the first bytes of the body.
func detectContentType(f File) (string, error) {
	if ct := strings.TrimSpace(f.ContentType); ct != "" && ct != "application/octet-stream" {
		return ct, nil
	}
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(f.Name))); ct != "" {
		return ct, nil
	}
	if f.Body == nil {
		return "", errors.New("empty file body")
	}
	head := make([]byte, 512)
	n, err := io.ReadFull(f.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	if _, err := f.Body.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}

func mediaTypeAllowed(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	for _, allowed := range allowedMediaTypes {
		if strings.HasPrefix(mediaType, strings.TrimSuffix(allowed, "*")) {
			return true
		}
	}
	return false
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ObjectKey builds a unique key such as "projects/images/<xid>-cover.png".
func ObjectKey(prefix, filename string) string {
	name := unsafeKeyChars.ReplaceAllString(path.Base(filename), "-")
	name = strings.Trim(name, "-")
	if name == "" || strings.Trim(name, ".") == "" {
		name = "file"
	}
	key := xid.New().String() + "-" + name
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		key = prefix + "/" + key
	}
	return key
}
