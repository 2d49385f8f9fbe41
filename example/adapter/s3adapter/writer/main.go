package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/joeydtaylor/sdrhunter/pkg/builder"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// LocalStack S3 client with static creds
	cli, err := builder.NewS3ClientStatic(ctx, "us-east-1", "test", "test", "", "http://localhost:4566", true)
	if err != nil {
		panic(err)
	}

	const bucket = "sdrhunter-dev"
	_, _ = cli.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)})

	dir, err := os.MkdirTemp("", "sdrhunter-s3-")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)
	capture := filepath.Join(dir, "88Mhz-91.2Mhz-3125-1i-50q.csv")
	f, err := os.Create(capture)
	if err != nil {
		panic(err)
	}
	if err := builder.SyntheticFMBand(1, 1.0).WriteCapture(f); err != nil {
		panic(err)
	}
	f.Close()

	log := builder.NewLogger(builder.LoggerWithDevelopment(true))

	// catalog: one JSON object, previous version kept as a zstd backup
	catalogClient := builder.NewS3Client(
		builder.S3ClientDeps{Client: cli, Bucket: bucket, ForcePathStyle: true},
		builder.S3ClientWithLogger(log),
	)
	backup, err := builder.StoreWithBackup("zstd")
	if err != nil {
		panic(err)
	}
	store := builder.NewS3Store(catalogClient, "catalogs/fm/scanresult.json", builder.StoreWithLogger(log), backup)

	// exports: parquet summaries and catalog under a dated prefix
	exportClient := builder.NewS3Client(
		builder.S3ClientDeps{Client: cli, Bucket: bucket, ForcePathStyle: true},
		builder.S3ClientWithLogger(log),
		builder.S3ClientWithPrefixTemplate("exports/{scan}/{yyyy}/{MM}/{dd}/"),
	)
	exporter := builder.NewExporter(builder.NewUploader(exportClient, "fm"),
		builder.ExporterWithLogger(log),
		builder.ExporterWithCompression("zstd"),
	)

	runner := builder.NewRunner(
		builder.NewDetector(builder.ScanParams{Name: "fm", BwMin: 3e3, BwMax: 50e3, MinRelativeDB: 6}),
		store,
		builder.RunnerWithLogger(log),
		builder.RunnerWithExporter(exporter),
		builder.RunnerWithSkipExisting(true),
	)
	report, err := runner.Run(ctx, capture)
	if err != nil {
		panic(err)
	}
	fmt.Printf("catalog %s: %d stations (saved=%v)\n", store.Name(), report.CatalogSize, report.Saved)
	for _, c := range report.Captures {
		fmt.Printf("summary of %s -> %s\n", c.Capture, c.Export)
	}
	if report.CatalogExport != "" {
		fmt.Printf("catalog export -> %s\n", report.CatalogExport)
	}
}
