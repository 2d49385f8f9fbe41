package s3client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3api "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"github.com/joeydtaylor/sdrhunter/pkg/logschema"
)

// ErrObjectNotFound is returned by Get when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Get downloads the object at key.
func (a *S3Client) Get(ctx context.Context, key string) ([]byte, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	out, err := a.cli.GetObject(ctx, &s3api.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("s3://%s/%s: %w", a.bucket, key, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("get s3://%s/%s: %w", a.bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", a.bucket, key, err)
	}
	a.NotifyLoggers(types.DebugLevel, "object fetched",
		logschema.FieldComponent, a.componentMetadata,
		logschema.FieldEvent, "GetObject",
		logschema.FieldResult, logschema.ResultSuccess,
		"key", key,
		"bytes", len(data),
	)
	return data, nil
}

// Exists reports whether key is present in the bucket.
func (a *S3Client) Exists(ctx context.Context, key string) (bool, error) {
	if err := a.ready(); err != nil {
		return false, err
	}
	_, err := a.cli.HeadObject(ctx, &s3api.HeadObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("head s3://%s/%s: %w", a.bucket, key, err)
}

// Put uploads body under key, replacing any existing object.
func (a *S3Client) Put(ctx context.Context, key string, body []byte, contentType string) error {
	if err := a.ready(); err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	put := &s3api.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	}
	a.applySSE(put)

	dur, err := a.putWithRetry(ctx, put, key)
	if err != nil {
		a.NotifyLoggers(types.ErrorLevel, "object upload failed",
			logschema.FieldComponent, a.componentMetadata,
			logschema.FieldEvent, "PutObject",
			logschema.FieldResult, logschema.ResultFailure,
			"key", key,
			logschema.FieldError, err,
		)
		return fmt.Errorf("put s3://%s/%s: %w", a.bucket, key, err)
	}
	a.NotifyLoggers(types.InfoLevel, "object uploaded",
		logschema.FieldComponent, a.componentMetadata,
		logschema.FieldEvent, "PutObject",
		logschema.FieldResult, logschema.ResultSuccess,
		"key", key,
		"bytes", len(body),
		"duration", dur,
	)
	return nil
}

// Copy duplicates srcKey to dstKey inside the bucket.
func (a *S3Client) Copy(ctx context.Context, srcKey, dstKey string) error {
	if err := a.ready(); err != nil {
		return err
	}
	in := &s3api.CopyObjectInput{
		Bucket:     aws.String(a.bucket),
		CopySource: aws.String(a.bucket + "/" + escapeKey(srcKey)),
		Key:        aws.String(dstKey),
	}
	switch sseMode(a.sseMode) {
	case s3types.ServerSideEncryptionAes256:
		in.ServerSideEncryption = s3types.ServerSideEncryptionAes256
	case s3types.ServerSideEncryptionAwsKms:
		in.ServerSideEncryption = s3types.ServerSideEncryptionAwsKms
		if a.kmsKey != "" {
			in.SSEKMSKeyId = aws.String(a.kmsKey)
		}
	}
	if _, err := a.cli.CopyObject(ctx, in); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("s3://%s/%s: %w", a.bucket, srcKey, ErrObjectNotFound)
		}
		return fmt.Errorf("copy s3://%s/%s: %w", a.bucket, srcKey, err)
	}
	a.NotifyLoggers(types.DebugLevel, "object copied",
		logschema.FieldComponent, a.componentMetadata,
		logschema.FieldEvent, "CopyObject",
		logschema.FieldResult, logschema.ResultSuccess,
		"source", srcKey,
		"key", dstKey,
	)
	return nil
}

// RenderKey joins the rendered prefix template and name.
func (a *S3Client) RenderKey(now time.Time, vars map[string]string, name string) string {
	return renderKey(a.prefixTemplate, now, vars, name)
}

func (a *S3Client) ready() error {
	if a.cli == nil {
		return errors.New("s3 client is required")
	}
	if a.bucket == "" {
		return errors.New("bucket is required")
	}
	return nil
}
