// Package s3test provides an in-memory ObjectAPI for tests.
package s3test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Memory stores objects by key, ignoring the bucket.
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte

	// Puts records every successful PutObject input, body excluded.
	Puts []s3.PutObjectInput
	// Copies records every successful CopyObject input.
	Copies []s3.CopyObjectInput

	// FailPuts makes the next n PutObject calls fail with FailErr.
	FailPuts int
	FailErr  error

	PutCalls int
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

// Object returns a copy of the object at key.
func (m *Memory) Object(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[key]
	return append([]byte(nil), b...), ok
}

// SetObject stores data at key.
func (m *Memory) SetObject(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), data...)
}

// Keys lists stored keys in lexical order.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *Memory) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := m.Object(aws.ToString(in.Key))
	if !ok {
		return nil, &s3types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *Memory) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	data, ok := m.Object(aws.ToString(in.Key))
	if !ok {
		return nil, &s3types.NotFound{Message: aws.String("Not Found")}
	}
	return &s3.HeadObjectOutput{ContentLength: aws.Int64(int64(len(data)))}, nil
}

func (m *Memory) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.mu.Lock()
	m.PutCalls++
	if m.FailPuts > 0 {
		m.FailPuts--
		err := m.FailErr
		m.mu.Unlock()
		if err == nil {
			err = errors.New("503 service unavailable")
		}
		return nil, err
	}
	m.mu.Unlock()

	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.SetObject(aws.ToString(in.Key), data)

	rec := *in
	rec.Body = nil
	m.mu.Lock()
	m.Puts = append(m.Puts, rec)
	m.mu.Unlock()
	return &s3.PutObjectOutput{}, nil
}

func (m *Memory) CopyObject(_ context.Context, in *s3.CopyObjectInput, _ ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
	src := aws.ToString(in.CopySource)
	if i := strings.Index(src, "/"); i >= 0 {
		src = src[i+1:]
	}
	src, err := url.PathUnescape(src)
	if err != nil {
		return nil, err
	}
	data, ok := m.Object(src)
	if !ok {
		return nil, &s3types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	m.SetObject(aws.ToString(in.Key), data)

	m.mu.Lock()
	m.Copies = append(m.Copies, *in)
	m.mu.Unlock()
	return &s3.CopyObjectOutput{}, nil
}
