package types

import "github.com/aws/aws-sdk-go-v2/service/s3"

// S3ClientDeps carries the S3 wiring shared by the catalog store and the export uploader.
type S3ClientDeps struct {
	Client         *s3.Client // required; caller constructs (LocalStack, AWS, MinIO, etc.)
	Bucket         string     // required
	ForcePathStyle bool       // default true for emulators
}

// S3WriterConfig controls object layout and encryption for uploads.
type S3WriterConfig struct {
	// PrefixTemplate renders the key prefix, e.g. "sdrhunter/{scan}/{yyyy}/{MM}/{dd}/".
	// Supported placeholders: {scan}, {capture}, {yyyy}, {MM}, {dd}, {HH}.
	PrefixTemplate string

	// Server-side encryption
	SSEMode  string // "" | "AES256" | "aws:kms"
	KMSKeyID string // used when SSEMode=="aws:kms"
}
