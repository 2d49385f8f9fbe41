// Package s3client is the object-store adapter shared by the S3 catalog store and
// the export uploader. It reads, writes and copies whole objects, applying the
// configured server-side encryption and retrying transient PutObject failures.
package s3client

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

// ObjectAPI is the subset of *s3.Client used by the adapter.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3Client reads and writes whole objects in one bucket.
type S3Client struct {
	componentMetadata types.ComponentMetadata

	loggers     []types.Logger
	loggersLock sync.Mutex

	cli    ObjectAPI
	bucket string

	prefixTemplate string

	sseMode string // "" | "AES256" | "aws:kms"
	kmsKey  string

	maxAttempts int
}

// NewS3Client builds an adapter over deps.Client and deps.Bucket.
func NewS3Client(deps types.S3ClientDeps, options ...types.Option[*S3Client]) *S3Client {
	a := &S3Client{
		componentMetadata: types.ComponentMetadata{
			ID:   uuid.NewString(),
			Type: "S3_CLIENT",
		},
		bucket:         deps.Bucket,
		prefixTemplate: DefaultPrefixTemplate,
		maxAttempts:    defaultMaxAttempts,
	}
	if deps.Client != nil {
		a.cli = deps.Client
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	return a
}

// Bucket returns the target bucket.
func (a *S3Client) Bucket() string { return a.bucket }

// GetComponentMetadata returns the adapter metadata.
func (a *S3Client) GetComponentMetadata() types.ComponentMetadata { return a.componentMetadata }

// SetComponentMetadata overrides name and id while preserving the component type.
func (a *S3Client) SetComponentMetadata(name, id string) {
	a.componentMetadata = types.ComponentMetadata{
		Name: name,
		ID:   id,
		Type: a.componentMetadata.Type,
	}
}
