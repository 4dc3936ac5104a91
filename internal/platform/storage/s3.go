// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Options configures an S3-compatible provider (AWS, R2, MinIO, Arvan).
type S3Options struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string

	// PublicBaseURL serves public objects; defaults to "<endpoint>/<bucket>".
	PublicBaseURL string
}

// S3Store implements [Store] on a single S3 bucket.
//
// Logical buckets become key prefixes: "audiobook-covers/<id>.jpg".
type S3Store struct {
	client        *s3.Client
	presign       *s3.PresignClient
	bucket        string
	publicBaseURL string
}

// NewS3 loads AWS configuration with static credentials and builds the client.
func NewS3(context context.Context, options S3Options) (*S3Store, error) {
	region := options.Region
	if region == "" {
		region = "auto"
	}

	cfg, err := awsconfig.LoadDefaultConfig(context,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			options.AccessKeyID,
			options.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("s3: load config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if options.Endpoint != "" {
			o.BaseEndpoint = aws.String(options.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicBaseURL := options.PublicBaseURL
	if publicBaseURL == "" {
		if options.Endpoint != "" {
			publicBaseURL = strings.TrimRight(options.Endpoint, "/") + "/" + options.Bucket
		} else {
			publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", options.Bucket, region)
		}
	}

	return &S3Store{
		client:        client,
		presign:       s3.NewPresignClient(client),
		bucket:        options.Bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func objectKey(bucket, objectPath string) string {
	return bucket + "/" + strings.TrimLeft(objectPath, "/")
}

// Upload puts the object. Non-seekable bodies are buffered so the SDK can sign them.
func (store *S3Store) Upload(context context.Context, bucket, objectPath string, body io.Reader, contentType string) error {
	seeker, ok := body.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(body)
		if err != nil {
			return fmt.Errorf("s3: read body: %w", err)
		}
		seeker = bytes.NewReader(data)
	}

	_, err := store.client.PutObject(context, &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String(objectKey(bucket, objectPath)),
		Body:        seeker,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3: upload %s/%s: %w", bucket, objectPath, err)
	}
	return nil
}

// Remove deletes the objects with one DeleteObjects call.
func (store *S3Store) Remove(context context.Context, bucket string, objectPaths ...string) error {
	if len(objectPaths) == 0 {
		return nil
	}

	identifiers := make([]types.ObjectIdentifier, 0, len(objectPaths))
	for _, objectPath := range objectPaths {
		identifiers = append(identifiers, types.ObjectIdentifier{Key: aws.String(objectKey(bucket, objectPath))})
	}

	output, err := store.client.DeleteObjects(context, &s3.DeleteObjectsInput{
		Bucket: aws.String(store.bucket),
		Delete: &types.Delete{Objects: identifiers, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("s3: remove from %s: %w", bucket, err)
	}
	if len(output.Errors) > 0 {
		first := output.Errors[0]
		return fmt.Errorf("s3: remove %s: %s", aws.ToString(first.Key), aws.ToString(first.Message))
	}
	return nil
}

// PublicURL joins the public base URL with the prefixed key.
func (store *S3Store) PublicURL(bucket, objectPath string) string {
	return store.publicBaseURL + "/" + objectKey(bucket, objectPath)
}

// SignedURL presigns a GET request.
func (store *S3Store) SignedURL(context context.Context, bucket, objectPath string, ttl time.Duration) (string, error) {
	request, err := store.presign.PresignGetObject(context, &s3.GetObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(objectKey(bucket, objectPath)),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("s3: sign %s/%s: %w", bucket, objectPath, err)
	}
	return request.URL, nil
}
