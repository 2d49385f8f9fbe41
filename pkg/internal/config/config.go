// Package config loads the YAML run configuration: logging, catalog storage,
// exports, the station publisher, metrics and the named scans.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/utils"
)

// Environment overrides applied after the file is parsed.
const (
	EnvLogLevel = "SDRHUNTER_LOG_LEVEL"
	EnvCatalog  = "SDRHUNTER_CATALOG"
	EnvWorkers  = "SDRHUNTER_WORKERS"
)

// Defaults for fields left out of the file.
const (
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	DefaultCatalogPath   = "scanresult.json"
	DefaultWorkers       = 4
	DefaultExportFormat  = "snappy"
	DefaultMetricsJob    = "sdrhunter"
	DefaultNbSamplesFreq = 1024
	DefaultNbSamplesLine = 60
	DefaultInterval      = 10.0
)

// ScanPlaceholder is replaced by the scan name in catalog paths and keys.
const ScanPlaceholder = "{scan}"

// Config is the resolved run configuration.
type Config struct {
	Log        LogConfig       `yaml:"log"`
	Catalog    CatalogConfig   `yaml:"catalog"`
	Export     ExportConfig    `yaml:"export"`
	Publisher  PublisherConfig `yaml:"publisher"`
	Metrics    MetricsConfig   `yaml:"metrics"`
	Workers    int             `yaml:"workers"`
	AlwaysSave bool            `yaml:"always_save"`
	Scans      []ScanConfig    `yaml:"scans"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
	File   string `yaml:"file"`   // stdout when empty
}

// S3Config addresses a bucket and the credentials used to reach it.
type S3Config struct {
	Bucket         string `yaml:"bucket"`
	Key            string `yaml:"key,omitempty"`
	PrefixTemplate string `yaml:"prefix_template,omitempty"`
	Region         string `yaml:"region"`
	Endpoint       string `yaml:"endpoint,omitempty"`
	AccessKey      string `yaml:"access_key,omitempty"`
	SecretKey      string `yaml:"secret_key,omitempty"`
	SessionToken   string `yaml:"session_token,omitempty"`
	RoleARN        string `yaml:"role_arn,omitempty"`
	ExternalID     string `yaml:"external_id,omitempty"`
	SessionName    string `yaml:"session_name,omitempty"`
	TokenFile      string `yaml:"web_identity_token_file,omitempty"`
	ForcePathStyle bool   `yaml:"force_path_style,omitempty"`
	SSEMode        string `yaml:"sse_mode,omitempty"`
	KMSKeyID       string `yaml:"kms_key_id,omitempty"`
}

// WriterConfig returns the key layout and encryption settings for uploads.
func (s S3Config) WriterConfig() types.S3WriterConfig {
	return types.S3WriterConfig{
		PrefixTemplate: s.PrefixTemplate,
		SSEMode:        s.SSEMode,
		KMSKeyID:       s.KMSKeyID,
	}
}

// CatalogConfig selects the file or S3 catalog store.
type CatalogConfig struct {
	Path              string    `yaml:"path"`
	Backup            bool      `yaml:"backup"`
	BackupCompression string    `yaml:"backup_compression,omitempty"`
	S3                *S3Config `yaml:"s3,omitempty"`
}

// ExportConfig enables parquet exports to a directory or an S3 prefix.
type ExportConfig struct {
	Dir          string    `yaml:"dir,omitempty"`
	Compression  string    `yaml:"compression"`
	SkipExisting bool      `yaml:"skip_existing"`
	S3           *S3Config `yaml:"s3,omitempty"`
}

// Enabled reports whether any export destination is configured.
func (e ExportConfig) Enabled() bool {
	return e.Dir != "" || (e.S3 != nil && e.S3.Bucket != "")
}

// PublisherConfig configures Kafka station announcements.
type PublisherConfig struct {
	Brokers           []string          `yaml:"brokers,omitempty"`
	Topic             string            `yaml:"topic,omitempty"`
	Acks              string            `yaml:"acks,omitempty"`
	Compression       string            `yaml:"compression,omitempty"`
	PartitionStrategy string            `yaml:"partition_strategy,omitempty"`
	BatchTimeout      time.Duration     `yaml:"batch_timeout,omitempty"`
	KeyTemplate       string            `yaml:"key_template,omitempty"`
	Headers           map[string]string `yaml:"headers,omitempty"`
	CAFiles           []string          `yaml:"ca_files,omitempty"`
	ServerName        string            `yaml:"server_name,omitempty"`
	SASLMechanism     string            `yaml:"sasl_mechanism,omitempty"`
	Username          string            `yaml:"username,omitempty"`
	Password          string            `yaml:"password,omitempty"`
	ClientID          string            `yaml:"client_id,omitempty"`
}

// WriterConfig maps the section onto the Kafka writer settings.
func (p PublisherConfig) WriterConfig() types.KafkaWriterConfig {
	return types.KafkaWriterConfig{
		Brokers:           p.Brokers,
		Topic:             p.Topic,
		Acks:              p.Acks,
		BatchTimeout:      p.BatchTimeout,
		PartitionStrategy: p.PartitionStrategy,
		Compression:       p.Compression,
		Headers:           p.Headers,
		Security: types.KafkaSecurity{
			CAFiles:       p.CAFiles,
			ServerName:    p.ServerName,
			SASLMechanism: p.SASLMechanism,
			Username:      p.Username,
			Password:      p.Password,
			ClientID:      p.ClientID,
		},
	}
}

// Enabled reports whether brokers and a topic are configured.
func (p PublisherConfig) Enabled() bool {
	return len(p.Brokers) > 0 && p.Topic != ""
}

type MetricsConfig struct {
	Pushgateway string            `yaml:"pushgateway,omitempty"`
	Job         string            `yaml:"job"`
	Grouping    map[string]string `yaml:"grouping,omitempty"`
}

// rawConfig mirrors the file layout. Scans stay untyped so the global
// defaults can be merged before unit strings are resolved.
type rawConfig struct {
	Log        LogConfig       `yaml:"log"`
	Catalog    CatalogConfig   `yaml:"catalog"`
	Export     ExportConfig    `yaml:"export"`
	Publisher  PublisherConfig `yaml:"publisher"`
	Metrics    MetricsConfig   `yaml:"metrics"`
	Workers    int             `yaml:"workers"`
	AlwaysSave bool            `yaml:"always_save"`
	Global     struct {
		Scans map[string]interface{} `yaml:"scans"`
	} `yaml:"global"`
	Scans []map[string]interface{} `yaml:"scans"`
}

// Load reads and parses a configuration file, then applies environment
// overrides. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		cfg.ApplyEnv()
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// Default returns a configuration with no scans and every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Parse decodes a YAML document and resolves every scan.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := &Config{
		Log:        raw.Log,
		Catalog:    raw.Catalog,
		Export:     raw.Export,
		Publisher:  raw.Publisher,
		Metrics:    raw.Metrics,
		Workers:    raw.Workers,
		AlwaysSave: raw.AlwaysSave,
	}
	cfg.applyDefaults()

	seen := make(map[string]struct{}, len(raw.Scans))
	for i, fields := range raw.Scans {
		merged := mergeDefaults(fields, raw.Global.Scans)
		scan, err := resolveScan(merged)
		if err != nil {
			return nil, fmt.Errorf("scans[%d]: %w", i, err)
		}
		if _, dup := seen[scan.Name]; dup {
			return nil, fmt.Errorf("scans[%d]: duplicate scan name %q", i, scan.Name)
		}
		seen[scan.Name] = struct{}{}
		cfg.Scans = append(cfg.Scans, scan)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Catalog.Path == "" && c.Catalog.S3 == nil {
		c.Catalog.Path = DefaultCatalogPath
	}
	if c.Export.Compression == "" {
		c.Export.Compression = DefaultExportFormat
	}
	if c.Metrics.Job == "" {
		c.Metrics.Job = DefaultMetricsJob
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
}

// ApplyEnv overrides the log level, catalog path and worker count from the
// environment.
func (c *Config) ApplyEnv() {
	c.Log.Level = utils.EnvOr(EnvLogLevel, c.Log.Level)
	c.Catalog.Path = utils.EnvOr(EnvCatalog, c.Catalog.Path)
	if n := utils.EnvIntOr(EnvWorkers, c.Workers); n > 0 {
		c.Workers = n
	}
}

// Scan returns the named scan. An empty name selects the only scan when
// exactly one is configured.
func (c *Config) Scan(name string) (ScanConfig, error) {
	if name == "" {
		switch len(c.Scans) {
		case 0:
			return ScanConfig{}, fmt.Errorf("no scans configured")
		case 1:
			return c.Scans[0], nil
		default:
			return ScanConfig{}, fmt.Errorf("%d scans configured, choose one of %s", len(c.Scans), strings.Join(c.ScanNames(), ", "))
		}
	}
	for _, s := range c.Scans {
		if s.Name == name {
			return s, nil
		}
	}
	return ScanConfig{}, fmt.Errorf("unknown scan %q", name)
}

// ScanNames lists the configured scans in name order.
func (c *Config) ScanNames() []string {
	names := make([]string, 0, len(c.Scans))
	for _, s := range c.Scans {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// CatalogPath is the catalog file path with the scan placeholder expanded.
func (c *Config) CatalogPath(scan string) string {
	return expandScan(c.Catalog.Path, scan)
}

// CatalogKey is the S3 catalog key with the scan placeholder expanded.
func (c *Config) CatalogKey(scan string) string {
	if c.Catalog.S3 == nil {
		return ""
	}
	key := c.Catalog.S3.Key
	if key == "" {
		key = DefaultCatalogPath
	}
	return expandScan(key, scan)
}

// Marshal renders the resolved configuration as YAML with secrets masked.
func (c *Config) Marshal() ([]byte, error) {
	out := *c
	out.Publisher.Password = redact(out.Publisher.Password)
	out.Catalog.S3 = redactS3(out.Catalog.S3)
	out.Export.S3 = redactS3(out.Export.S3)
	return yaml.Marshal(&out)
}

const redacted = "***"

func redact(s string) string {
	if s == "" {
		return ""
	}
	return redacted
}

func redactS3(s *S3Config) *S3Config {
	if s == nil {
		return nil
	}
	cp := *s
	cp.SecretKey = redact(cp.SecretKey)
	cp.SessionToken = redact(cp.SessionToken)
	return &cp
}

func expandScan(s, scan string) string {
	return strings.ReplaceAll(s, ScanPlaceholder, scan)
}

func mergeDefaults(fields, defaults map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(fields)+len(defaults))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}
