package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"
	"strings"

	appconfig "boutique-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader stores product images in an S3 bucket. Keys are derived from
// the file contents, so uploading the same photo twice yields the same
// key and URL.
type Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewUploader(ctx context.Context, cfg *appconfig.Config) (*Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3.Region),
	}
	if cfg.S3.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKey, cfg.S3.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to configure S3 client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
		}
	})

	return &Uploader{
		client:    client,
		bucket:    cfg.S3.Bucket,
		publicURL: strings.TrimRight(cfg.S3.PublicURL, "/"),
	}, nil
}

// Upload writes the image under products/<content-hash><ext> and
// returns its public URL.
func (u *Uploader) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	sum := sha256.Sum256(data)
	key := "products/" + hex.EncodeToString(sum[:16]) + strings.ToLower(path.Ext(filename))

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return u.publicURL + "/" + key, nil
}

// Delete removes an object by its public URL. Unknown URLs are ignored.
func (u *Uploader) Delete(ctx context.Context, imageURL string) error {
	if u.publicURL == "" || !strings.HasPrefix(imageURL, u.publicURL+"/") {
		return nil
	}
	key := strings.TrimPrefix(imageURL, u.publicURL+"/")

	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	return err
}
