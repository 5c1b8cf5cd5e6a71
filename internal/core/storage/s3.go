package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type Options struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	PublicBaseURL   string // 为空时回退为 endpoint/bucket
}

// Client S3 兼容对象存储客户端（MinIO / Supabase Storage）
type Client struct {
	s3         *s3.Client
	uploader   *manager.Uploader
	bucket     string
	publicBase string
}

func New(ctx context.Context, o Options) (*Client, error) {
	if o.Endpoint == "" || o.AccessKeyID == "" || o.SecretAccessKey == "" || o.Bucket == "" {
		return nil, errors.New("storage: endpoint, access key, secret key and bucket must be set")
	}

	scheme := "http"
	if o.UseSSL {
		scheme = "https"
	}
	endpoint := fmt.Sprintf("%s://%s", scheme, o.Endpoint)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(o.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKeyID, o.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	cli := s3.NewFromConfig(awsCfg, func(opt *s3.Options) {
		opt.BaseEndpoint = aws.String(endpoint)
		opt.UsePathStyle = true
	})

	if err := ensureBucket(ctx, cli, o.Bucket, o.Region); err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(o.PublicBaseURL, "/")
	if base == "" {
		base = endpoint + "/" + o.Bucket
	}

	return &Client{
		s3:         cli,
		uploader:   manager.NewUploader(cli),
		bucket:     o.Bucket,
		publicBase: base,
	}, nil
}

func ensureBucket(ctx context.Context, cli *s3.Client, bucket, region string) error {
	hctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := cli.HeadBucket(hctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return nil
	}

	_, err = cli.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
		CreateBucketConfiguration: &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		},
	})
	if err != nil {
		return fmt.Errorf("storage: create bucket %s: %w", bucket, err)
	}

	waiter := s3.NewBucketExistsWaiter(cli)
	if err := waiter.Wait(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}, 30*time.Second); err != nil {
		return fmt.Errorf("storage: wait for bucket %s: %w", bucket, err)
	}
	return nil
}

// Upload 上传对象并返回公开访问 URL
func (c *Client) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s to bucket %s: %w", key, c.bucket, err)
	}
	return c.PublicURL(key), nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s from bucket %s: %w", key, c.bucket, err)
	}
	return nil
}

func (c *Client) PublicURL(key string) string {
	return c.publicBase + "/" + key
}

// KeyFromURL 从公开 URL 反推对象 key（path-style：/bucket/key）
func (c *Client) KeyFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	p := strings.TrimPrefix(u.Path, "/")
	if rest, ok := strings.CutPrefix(p, c.bucket+"/"); ok {
		return rest
	}
	if i := strings.Index(p, "products/"); i >= 0 {
		return p[i:]
	}
	return p
}
