package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/rohits-web03/minitracker/internal/models"
)

const archiveURLExpiry = 15 * time.Minute

type R2Options struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Region          string
	// Endpoint overrides the account endpoint derived from AccountID.
	Endpoint string
}

// ActivityArchive exports activity logs as JSON objects to an
// S3-compatible bucket (Cloudflare R2).
type ActivityArchive struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	now       func() time.Time
}

type ArchiveResult struct {
	Key     string `json:"key"`
	Records int    `json:"records"`
	URL     string `json:"url"`
}

// NewActivityArchive builds an R2 client using static credentials and a
// custom endpoint.
func NewActivityArchive(opts R2Options) (*ActivityArchive, error) {
	if opts.Bucket == "" {
		return nil, errors.New("r2: bucket name required")
	}
	endpoint := opts.Endpoint
	if endpoint == "" {
		if opts.AccountID == "" {
			return nil, errors.New("r2: account id or endpoint required")
		}
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", opts.AccountID)
	}
	region := opts.Region
	if region == "" {
		region = "auto"
	}

	cfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Region:      region,
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &ActivityArchive{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    opts.Bucket,
		now:       time.Now,
	}, nil
}

// Archive uploads the given activity records of one file and returns a
// presigned download URL for the object.
func (a *ActivityArchive) Archive(ctx context.Context, fileID uuid.UUID, acts []models.Activity) (ArchiveResult, error) {
	if acts == nil {
		acts = []models.Activity{}
	}
	body, err := json.Marshal(acts)
	if err != nil {
		return ArchiveResult{}, err
	}

	key := fmt.Sprintf("activity/%s/%d.json", fileID, a.now().UTC().Unix())
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return ArchiveResult{}, fmt.Errorf("upload %s: %w", key, err)
	}

	req, err := a.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(archiveURLExpiry))
	if err != nil {
		return ArchiveResult{}, err
	}
	return ArchiveResult{Key: key, Records: len(acts), URL: req.URL}, nil
}

// Exists reports whether an archive object is present in the bucket.
func (a *ActivityArchive) Exists(ctx context.Context, key string) (bool, error) {
	_, err := a.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *s3types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
