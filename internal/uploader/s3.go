package uploader

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/hireloop/jobboard-service/internal/config"
)

// S3Uploader stores payloads in an S3-compatible bucket. Objects are public
// through the configured base URL; the uploader itself never issues reads.
type S3Uploader struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

func NewS3Uploader(ctx context.Context, cfg config.S3Config) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicBase := cfg.PublicBaseURL
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Uploader{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(publicBase, "/"),
	}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, data []byte, filename string) (*Result, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file payload")
	}

	key := storageKey(filename)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(detectContentType(data, filename)),
	})
	if err != nil {
		return nil, fmt.Errorf("uploading %q: %w", filename, err)
	}

	return &Result{
		URL: u.publicBaseURL + "/" + key,
		Key: key,
	}, nil
}

// storageKey spreads objects by date and keeps the original extension so the
// serving side can infer types from the URL.
func storageKey(filename string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("media/%d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.New(), strings.ToLower(path.Ext(filename)))
}

// detectContentType sniffs the payload, falling back to the extension for
// document formats the sniffer only reports generically (docx is a zip
// container, plain .doc sniffs as octet-stream).
func detectContentType(data []byte, filename string) string {
	contentType := http.DetectContentType(data)
	if contentType != "application/octet-stream" && contentType != "application/zip" {
		return contentType
	}
	switch strings.ToLower(path.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return contentType
	}
}
