package s3client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/url"
	"path"
	"strings"
	"time"

	s3api "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"github.com/joeydtaylor/sdrhunter/pkg/logschema"
)

// DefaultPrefixTemplate lays objects out per scan and day.
const DefaultPrefixTemplate = "sdrhunter/{scan}/{yyyy}/{MM}/{dd}/"

const (
	defaultMaxAttempts = 5
	defaultBaseBackoff = 100 * time.Millisecond
	defaultMaxBackoff  = 3 * time.Second
)

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

func backoffDuration(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := defaultBaseBackoff << (attempt - 1)
	if d > defaultMaxBackoff {
		d = defaultMaxBackoff
	}
	return time.Duration(rng.Int63n(int64(d) + 1))
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "throttl"),
		strings.Contains(msg, "slowdown"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "tempor"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "eof"),
		strings.Contains(msg, "internalerror"),
		strings.Contains(msg, "service unavailable"),
		strings.Contains(msg, "503"),
		strings.Contains(msg, "500"):
		return true
	default:
		return false
	}
}

func isNotFound(err error) bool {
	var noKey *s3types.NoSuchKey
	var notFound *s3types.NotFound
	return errors.As(err, &noKey) || errors.As(err, &notFound)
}

func sseMode(mode string) s3types.ServerSideEncryption {
	switch strings.ToLower(mode) {
	case "aes256":
		return s3types.ServerSideEncryptionAes256
	case "aws:kms":
		return s3types.ServerSideEncryptionAwsKms
	default:
		return ""
	}
}

func (a *S3Client) applySSE(put *s3api.PutObjectInput) {
	switch sseMode(a.sseMode) {
	case s3types.ServerSideEncryptionAes256:
		put.ServerSideEncryption = s3types.ServerSideEncryptionAes256
	case s3types.ServerSideEncryptionAwsKms:
		put.ServerSideEncryption = s3types.ServerSideEncryptionAwsKms
		if a.kmsKey != "" {
			put.SSEKMSKeyId = &a.kmsKey
		}
	}
}

func (a *S3Client) putWithRetry(ctx context.Context, put *s3api.PutObjectInput, key string) (time.Duration, error) {
	rs, ok := put.Body.(io.ReadSeeker)
	if !ok {
		return 0, fmt.Errorf("putWithRetry requires io.ReadSeeker body")
	}

	var lastErr error
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return 0, err
		}

		start := time.Now()
		_, err := a.cli.PutObject(ctx, put)
		if err == nil {
			return time.Since(start), nil
		}

		lastErr = err
		if !isRetryable(err) || attempt == a.maxAttempts || ctx.Err() != nil {
			return 0, err
		}
		a.NotifyLoggers(types.WarnLevel, "PutObject retry",
			logschema.FieldComponent, a.componentMetadata,
			logschema.FieldEvent, "PutObject",
			"attempt", attempt,
			"max_attempts", a.maxAttempts,
			"key", key,
			logschema.FieldError, err,
		)

		select {
		case <-time.After(backoffDuration(attempt)):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return 0, lastErr
}

// renderKey substitutes {yyyy} {MM} {dd} {HH} {mm} {ts} from now and any
// caller-supplied placeholders (without braces) into tmpl, then appends name.
func renderKey(tmpl string, now time.Time, vars map[string]string, name string) string {
	ts := now.UTC()
	repl := map[string]string{
		"{yyyy}": ts.Format("2006"),
		"{MM}":   ts.Format("01"),
		"{dd}":   ts.Format("02"),
		"{HH}":   ts.Format("15"),
		"{mm}":   ts.Format("04"),
		"{ts}":   fmt.Sprintf("%d", ts.UnixMilli()),
	}
	for k, v := range vars {
		repl["{"+k+"}"] = v
	}

	prefix := tmpl
	for k, v := range repl {
		prefix = strings.ReplaceAll(prefix, k, v)
	}
	if name == "" {
		return strings.TrimPrefix(prefix, "/")
	}
	return strings.TrimPrefix(path.Join(prefix, name), "/")
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
