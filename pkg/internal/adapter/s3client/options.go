package s3client

import (
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

// WithObjectAPI replaces the S3 client, e.g. with an emulator or a test double.
func WithObjectAPI(api ObjectAPI) types.Option[*S3Client] {
	return func(a *S3Client) {
		a.cli = api
	}
}

// WithWriterConfig applies the key layout and encryption settings.
func WithWriterConfig(cfg types.S3WriterConfig) types.Option[*S3Client] {
	return func(a *S3Client) {
		if cfg.PrefixTemplate != "" {
			a.prefixTemplate = cfg.PrefixTemplate
		}
		a.sseMode = cfg.SSEMode
		a.kmsKey = cfg.KMSKeyID
	}
}

// WithMaxAttempts bounds PutObject attempts. Values below one are ignored.
func WithMaxAttempts(n int) types.Option[*S3Client] {
	return func(a *S3Client) {
		if n >= 1 {
			a.maxAttempts = n
		}
	}
}

// WithLogger attaches loggers to the adapter.
func WithLogger(l ...types.Logger) types.Option[*S3Client] {
	return func(a *S3Client) {
		a.ConnectLogger(l...)
	}
}

// WithName sets the component name reported in logs.
func WithName(name string) types.Option[*S3Client] {
	return func(a *S3Client) {
		a.componentMetadata.Name = name
	}
}
