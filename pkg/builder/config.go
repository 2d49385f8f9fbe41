package builder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	kafkaClientAdapter "github.com/joeydtaylor/sdrhunter/pkg/internal/adapter/kafkaclient"
	s3ClientAdapter "github.com/joeydtaylor/sdrhunter/pkg/internal/adapter/s3client"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/aggregator"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/config"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/detector"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/export"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/grid"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/meter"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/pipeline"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/sensor"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/store"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

type (
	Config          = config.Config
	ScanConfig      = config.ScanConfig
	S3Config        = config.S3Config
	PublisherConfig = config.PublisherConfig
)

// DefaultAssumeRoleDuration is the STS session length used for role_arn.
const DefaultAssumeRoleDuration = 15 * time.Minute

// LoadConfig reads the YAML configuration at path and applies environment
// overrides. An empty path yields the defaults.
func LoadConfig(path string) (*config.Config, error) {
	return config.Load(path)
}

// NewS3ClientFromConfig picks the credential flow from the section: web
// identity when a token file is set, assume-role when a role ARN is set,
// static keys when an access key is set, and the default chain otherwise.
func NewS3ClientFromConfig(ctx context.Context, c config.S3Config) (*s3.Client, error) {
	switch {
	case c.RoleARN != "" && c.TokenFile != "":
		return NewS3ClientWebIdentity(ctx, c.Region, c.RoleARN, c.SessionName, c.TokenFile, DefaultAssumeRoleDuration, c.Endpoint, c.ForcePathStyle)
	case c.RoleARN != "":
		var source aws.CredentialsProvider
		if c.AccessKey != "" {
			source = aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, c.SessionToken))
		}
		sessionName := c.SessionName
		if sessionName == "" {
			sessionName = "sdrhunter"
		}
		return NewS3ClientAssumeRole(ctx, c.Region, c.RoleARN, sessionName, DefaultAssumeRoleDuration, c.ExternalID, source, c.Endpoint, c.ForcePathStyle)
	case c.AccessKey != "":
		return NewS3ClientStatic(ctx, c.Region, c.AccessKey, c.SecretKey, c.SessionToken, c.Endpoint, c.ForcePathStyle)
	}

	var loaders []func(*awsconfig.LoadOptions) error
	if c.Region != "" {
		loaders = append(loaders, awsconfig.WithRegion(c.Region))
	}
	if c.Endpoint != "" {
		loaders = append(loaders, awsconfig.WithEndpointResolverWithOptions(sharedResolver(c.Endpoint)))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) { o.UsePathStyle = c.ForcePathStyle }), nil
}

// Session is everything needed to run one scan of a configuration.
type Session struct {
	Scan      config.ScanConfig
	Runner    *pipeline.Runner
	Store     types.CatalogStore
	Exporter  *export.Exporter
	Meter     *meter.Meter
	Logger    types.Logger
	publisher types.StationPublisher
}

// Close releases the publisher and flushes the logger.
func (s *Session) Close() error {
	var errs []error
	if s.publisher != nil {
		errs = append(errs, s.publisher.Close())
	}
	if s.Logger != nil {
		errs = append(errs, s.Logger.Flush())
	}
	return errors.Join(errs...)
}

type sessionSettings struct {
	logger    types.Logger
	objectAPI s3ClientAdapter.ObjectAPI
	writer    kafkaClientAdapter.MessageWriter
}

// SessionOption adjusts how NewSession wires components.
type SessionOption func(*sessionSettings)

// SessionWithLogger replaces the logger built from the log section.
func SessionWithLogger(l types.Logger) SessionOption {
	return func(s *sessionSettings) { s.logger = l }
}

// SessionWithObjectAPI replaces the AWS client behind every S3 section.
func SessionWithObjectAPI(api s3ClientAdapter.ObjectAPI) SessionOption {
	return func(s *sessionSettings) { s.objectAPI = api }
}

// SessionWithMessageWriter replaces the kafka-go writer of the publisher.
func SessionWithMessageWriter(w kafkaClientAdapter.MessageWriter) SessionOption {
	return func(s *sessionSettings) { s.writer = w }
}

// NewSession builds the runner of the named scan and every component the
// configuration enables: catalog store, exports, publisher and metrics.
func NewSession(ctx context.Context, cfg *config.Config, scanName string, options ...SessionOption) (*Session, error) {
	var settings sessionSettings
	for _, opt := range options {
		if opt != nil {
			opt(&settings)
		}
	}

	scan, err := cfg.Scan(scanName)
	if err != nil {
		return nil, err
	}
	params := scan.Params()
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", scan.Name, err)
	}

	logger := settings.logger
	if logger == nil {
		if logger, err = NewLoggerFromConfig(cfg.Log.Level, cfg.Log.Format, cfg.Log.File); err != nil {
			return nil, err
		}
	}
	sess := &Session{Scan: scan, Logger: logger}

	meterOpts := []types.Option[*meter.Meter]{
		meter.WithLogger(logger),
		meter.WithName(scan.Name),
		meter.WithGrouping("scan", scan.Name),
	}
	if cfg.Metrics.Pushgateway != "" {
		meterOpts = append(meterOpts, meter.WithPushgateway(cfg.Metrics.Pushgateway, cfg.Metrics.Job))
	}
	for k, v := range cfg.Metrics.Grouping {
		meterOpts = append(meterOpts, meter.WithGrouping(k, v))
	}
	sess.Meter = meter.NewMeter(meterOpts...)
	sn := sensor.NewSensor(sensor.WithName(scan.Name), sensor.WithMeter(sess.Meter))

	if sess.Store, err = newCatalogStore(ctx, cfg, scan.Name, logger, sn, settings.objectAPI); err != nil {
		return nil, err
	}
	if sess.Exporter, err = newExporter(ctx, cfg.Export, scan.Name, logger, settings.objectAPI); err != nil {
		return nil, err
	}

	runnerOpts := []types.Option[*pipeline.Runner]{
		pipeline.WithLogger(logger),
		pipeline.WithSensor(sn),
		pipeline.WithAssembler(grid.NewAssembler(grid.WithLogger(logger), grid.WithSensor(sn))),
		pipeline.WithAggregator(aggregator.NewAggregator(aggregator.WithLogger(logger), aggregator.WithSensor(sn))),
		pipeline.WithMeter(sess.Meter),
		pipeline.WithWorkers(cfg.Workers),
		pipeline.WithAlwaysSave(cfg.AlwaysSave),
		pipeline.WithSkipExisting(cfg.Export.SkipExisting),
	}
	if sess.Exporter != nil {
		runnerOpts = append(runnerOpts, pipeline.WithExporter(sess.Exporter))
	}
	if cfg.Publisher.Enabled() || settings.writer != nil {
		writer := settings.writer
		if writer == nil {
			if writer, err = kafkaClientAdapter.NewWriterFromConfig(cfg.Publisher.WriterConfig()); err != nil {
				return nil, err
			}
		}
		pubOpts := []types.Option[*kafkaClientAdapter.KafkaClient]{
			kafkaClientAdapter.WithLogger(logger),
			kafkaClientAdapter.WithScan(scan.Name),
			kafkaClientAdapter.WithHeaders(cfg.Publisher.Headers),
		}
		if cfg.Publisher.KeyTemplate != "" {
			pubOpts = append(pubOpts, kafkaClientAdapter.WithKeyTemplate(cfg.Publisher.KeyTemplate))
		}
		sess.publisher = kafkaClientAdapter.NewKafkaClient(writer, pubOpts...)
		runnerOpts = append(runnerOpts, pipeline.WithPublisher(sess.publisher))
	}

	det := detector.NewDetector(params, detector.WithLogger(logger), detector.WithSensor(sn))
	sess.Runner = pipeline.NewRunner(det, sess.Store, runnerOpts...)
	return sess, nil
}

func newCatalogStore(ctx context.Context, cfg *config.Config, scan string, logger types.Logger, sn types.Sensor, api s3ClientAdapter.ObjectAPI) (types.CatalogStore, error) {
	opts := []types.Option[store.Configurable]{
		store.WithLogger(logger),
		store.WithSensor(sn),
		store.WithName(scan),
	}
	if cfg.Catalog.Backup {
		backup, err := StoreWithBackup(cfg.Catalog.BackupCompression)
		if err != nil {
			return nil, fmt.Errorf("catalog backup: %w", err)
		}
		opts = append(opts, backup)
	}

	if s3cfg := cfg.Catalog.S3; s3cfg != nil && s3cfg.Bucket != "" {
		client, err := newObjectClient(ctx, *s3cfg, logger, api)
		if err != nil {
			return nil, fmt.Errorf("catalog s3 client: %w", err)
		}
		return store.NewS3Store(client, cfg.CatalogKey(scan), opts...), nil
	}
	return store.NewFileStore(cfg.CatalogPath(scan), opts...), nil
}

func newExporter(ctx context.Context, cfg config.ExportConfig, scan string, logger types.Logger, api s3ClientAdapter.ObjectAPI) (*export.Exporter, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	if _, err := export.ParquetCompression(cfg.Compression); err != nil {
		return nil, err
	}

	var sink export.Sink
	if s3cfg := cfg.S3; s3cfg != nil && s3cfg.Bucket != "" {
		client, err := newObjectClient(ctx, *s3cfg, logger, api)
		if err != nil {
			return nil, fmt.Errorf("export s3 client: %w", err)
		}
		sink = export.NewUploader(client, scan)
	} else {
		sink = export.NewDirSink(cfg.Dir)
	}
	return export.NewExporter(sink, export.WithLogger(logger), export.WithCompression(cfg.Compression)), nil
}

func newObjectClient(ctx context.Context, c config.S3Config, logger types.Logger, api s3ClientAdapter.ObjectAPI) (*s3ClientAdapter.S3Client, error) {
	deps := types.S3ClientDeps{Bucket: c.Bucket, ForcePathStyle: c.ForcePathStyle}
	opts := []types.Option[*s3ClientAdapter.S3Client]{
		s3ClientAdapter.WithLogger(logger),
		s3ClientAdapter.WithWriterConfig(c.WriterConfig()),
	}
	if api != nil {
		opts = append(opts, s3ClientAdapter.WithObjectAPI(api))
	} else {
		cli, err := NewS3ClientFromConfig(ctx, c)
		if err != nil {
			return nil, err
		}
		deps.Client = cli
	}
	return s3ClientAdapter.NewS3Client(deps, opts...), nil
}
