package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dmitrijs2005/jrnl/internal/client/models"
	"github.com/dmitrijs2005/jrnl/internal/common"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3API is the subset of the S3 client used by S3Client.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Options configures the S3-compatible remote store.
type S3Options struct {
	Bucket       string
	Region       string
	BaseEndpoint string // MINIO_* style override; empty means AWS proper
	AccessKey    string
	SecretKey    string
	FolderName   string
}

// S3Client implements RemoteStore against any S3-compatible endpoint.
// The collection lives as one object, <folder>/journal-entries.json,
// inside one bucket. Same contract as DriveClient: full-document
// replacement, absent object reads as an empty list.
type S3Client struct {
	api    S3API
	bucket string
	key    string
}

// NewS3Client builds the S3-backed remote store from options.
func NewS3Client(ctx context.Context, opts S3Options) (*S3Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	api := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	folder := opts.FolderName
	if folder == "" {
		folder = common.DefaultFolderName
	}

	return &S3Client{
		api:    api,
		bucket: opts.Bucket,
		key:    folder + "/" + common.DataFileName,
	}, nil
}

func (c *S3Client) SaveEntries(ctx context.Context, entries []models.Entry) error {
	content, err := models.MarshalEntries(entries)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	_, err = c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &c.bucket,
		Key:         &c.key,
		Body:        bytes.NewReader(content),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	return nil
}

func (c *S3Client) LoadEntries(ctx context.Context) ([]models.Entry, error) {
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &c.bucket,
		Key:    &c.key,
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return []models.Entry{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	entries, err := models.ParseEntries(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return entries, nil
}

// DeleteAllData removes the collection object. S3 delete of a missing key
// already succeeds, which matches the silent no-op contract.
func (c *S3Client) DeleteAllData(ctx context.Context) error {
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &c.bucket,
		Key:    &c.key,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	return nil
}
