package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/adapter/s3client"
)

// Sink stores named export files.
type Sink interface {
	Exists(ctx context.Context, name string) (bool, error)
	Put(ctx context.Context, name string, data []byte) error
	Location(name string) string
}

// DirSink writes export files into a local directory.
type DirSink struct {
	Dir string
}

// NewDirSink returns a sink rooted at dir.
func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

// Location returns the path name is written to.
func (d *DirSink) Location(name string) string {
	return filepath.Join(d.Dir, name)
}

// Exists reports whether name was already exported.
func (d *DirSink) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, err := os.Stat(d.Location(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// Put writes data to a temporary file and renames it over name.
func (d *DirSink) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(d.Dir, name+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), d.Location(name)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("export %s: %w", name, err)
	}
	return nil
}

// Uploader puts export files into S3 under the client's prefix template.
// Besides the time placeholders the template may use {scan} and {capture};
// {capture} is the file name up to its first dot.
type Uploader struct {
	client *s3client.S3Client
	scan   string
	now    func() time.Time
}

// NewUploader returns an S3 sink labelled with scan.
func NewUploader(client *s3client.S3Client, scan string) *Uploader {
	return &Uploader{client: client, scan: scan, now: time.Now}
}

// WithClock overrides the clock used to render time placeholders.
func (u *Uploader) WithClock(now func() time.Time) *Uploader {
	if now != nil {
		u.now = now
	}
	return u
}

// Key renders the object key for name.
func (u *Uploader) Key(name string) string {
	capture := name
	if i := strings.IndexByte(capture, '.'); i > 0 {
		capture = capture[:i]
	}
	return u.client.RenderKey(u.now(), map[string]string{
		"scan":    u.scan,
		"capture": capture,
	}, name)
}

// Location returns the s3:// URL name is uploaded to.
func (u *Uploader) Location(name string) string {
	return fmt.Sprintf("s3://%s/%s", u.client.Bucket(), u.Key(name))
}

// Exists reports whether name was already uploaded.
func (u *Uploader) Exists(ctx context.Context, name string) (bool, error) {
	return u.client.Exists(ctx, u.Key(name))
}

// Put uploads data as a Parquet object.
func (u *Uploader) Put(ctx context.Context, name string, data []byte) error {
	return u.client.Put(ctx, u.Key(name), data, "application/parquet")
}
