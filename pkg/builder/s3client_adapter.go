package builder

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	s3ClientAdapter "github.com/joeydtaylor/sdrhunter/pkg/internal/adapter/s3client"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

type S3ClientDeps = types.S3ClientDeps

type S3WriterConfig = types.S3WriterConfig

////////////////////////
// Adapter constructor +
////////////////////////

// NewS3Client creates the object-store adapter shared by the S3 catalog store
// and the export uploader.
func NewS3Client(deps types.S3ClientDeps, options ...types.Option[*s3ClientAdapter.S3Client]) *s3ClientAdapter.S3Client {
	return s3ClientAdapter.NewS3Client(deps, options...)
}

func S3ClientWithWriterConfig(cfg types.S3WriterConfig) types.Option[*s3ClientAdapter.S3Client] {
	return s3ClientAdapter.WithWriterConfig(cfg)
}

func S3ClientWithLogger(l ...types.Logger) types.Option[*s3ClientAdapter.S3Client] {
	return s3ClientAdapter.WithLogger(l...)
}

func S3ClientWithMaxAttempts(n int) types.Option[*s3ClientAdapter.S3Client] {
	return s3ClientAdapter.WithMaxAttempts(n)
}

func S3ClientWithName(name string) types.Option[*s3ClientAdapter.S3Client] {
	return s3ClientAdapter.WithName(name)
}

// S3ClientWithObjectAPI replaces the AWS client, e.g. with an in-memory fake.
func S3ClientWithObjectAPI(api s3ClientAdapter.ObjectAPI) types.Option[*s3ClientAdapter.S3Client] {
	return s3ClientAdapter.WithObjectAPI(api)
}

// Writer-only convenience: set prefix template without exposing internals.
func S3ClientWithPrefixTemplate(prefix string) types.Option[*s3ClientAdapter.S3Client] {
	return s3ClientAdapter.WithWriterConfig(types.S3WriterConfig{
		PrefixTemplate: prefix,
	})
}

/////////////////////////////////////////////
// Compliant S3 client constructors (no env)
/////////////////////////////////////////////

// sharedResolver returns an endpoint resolver that maps BOTH S3 and STS to the same override.
func sharedResolver(endpoint string) aws.EndpointResolverWithOptionsFunc {
	return aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
		switch service {
		case s3.ServiceID, sts.ServiceID:
			return aws.Endpoint{URL: endpoint, HostnameImmutable: true}, nil
		default:
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		}
	})
}

// NewS3ClientStatic creates an S3 client using static credentials.
// If endpoint != "", it's used (LocalStack/MinIO). forcePathStyle=true for emulators.
func NewS3ClientStatic(
	ctx context.Context,
	region string,
	accessKey string,
	secretKey string,
	sessionToken string, // "" if none
	endpoint string, // "" for AWS
	forcePathStyle bool,
) (*s3.Client, error) {
	var loaders []func(*config.LoadOptions) error
	if region != "" {
		loaders = append(loaders, config.WithRegion(region))
	}
	loaders = append(loaders, config.WithCredentialsProvider(
		credentials.NewStaticCredentialsProvider(accessKey, secretKey, sessionToken),
	))
	if endpoint != "" {
		loaders = append(loaders, config.WithEndpointResolverWithOptions(sharedResolver(endpoint)))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) { o.UsePathStyle = forcePathStyle }), nil
}

// NewS3ClientAssumeRole creates an S3 client by assuming an IAM role via STS.
// sourceCreds: underlying creds to call STS (static keys, SSO, etc.). If nil, default chain.
// externalID optional. duration capped by role MaxSessionDuration.
func NewS3ClientAssumeRole(
	ctx context.Context,
	region string,
	roleARN string,
	sessionName string,
	duration time.Duration,
	externalID string,
	sourceCreds aws.CredentialsProvider, // nil => default provider chain
	endpoint string, // optional S3/STS endpoint override
	forcePathStyle bool,
) (*s3.Client, error) {
	var loaders []func(*config.LoadOptions) error
	if region != "" {
		loaders = append(loaders, config.WithRegion(region))
	}
	if sourceCreds != nil {
		loaders = append(loaders, config.WithCredentialsProvider(sourceCreds))
	}
	if endpoint != "" {
		loaders = append(loaders, config.WithEndpointResolverWithOptions(sharedResolver(endpoint)))
	}
	baseCfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}

	// STS client also uses the same resolver (so it doesn't go to real AWS).
	stsClient := sts.NewFromConfig(baseCfg)

	provider := stscreds.NewAssumeRoleProvider(stsClient, roleARN, func(o *stscreds.AssumeRoleOptions) {
		if sessionName != "" {
			o.RoleSessionName = sessionName
		}
		if duration > 0 {
			o.Duration = duration
		}
		if externalID != "" {
			o.ExternalID = &externalID
		}
	})

	assumed := baseCfg
	assumed.Credentials = aws.NewCredentialsCache(provider)

	return s3.NewFromConfig(assumed, func(o *s3.Options) { o.UsePathStyle = forcePathStyle }), nil
}

// NewS3ClientWebIdentity assumes a role using an OIDC/WebIdentity token file (e.g., EKS IRSA).
func NewS3ClientWebIdentity(
	ctx context.Context,
	region string,
	roleARN string,
	sessionName string,
	tokenFile string,
	duration time.Duration,
	endpoint string, // optional S3/STS endpoint override
	forcePathStyle bool,
) (*s3.Client, error) {
	var loaders []func(*config.LoadOptions) error
	if region != "" {
		loaders = append(loaders, config.WithRegion(region))
	}
	if endpoint != "" {
		loaders = append(loaders, config.WithEndpointResolverWithOptions(sharedResolver(endpoint)))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}
	stsClient := sts.NewFromConfig(cfg)
	provider := stscreds.NewWebIdentityRoleProvider(
		stsClient,
		roleARN,
		stscreds.IdentityTokenFile(tokenFile),
		func(o *stscreds.WebIdentityRoleOptions) {
			if sessionName != "" {
				o.RoleSessionName = sessionName
			}
			if duration > 0 {
				o.Duration = duration
			}
		},
	)

	assumed := cfg
	assumed.Credentials = aws.NewCredentialsCache(provider)

	return s3.NewFromConfig(assumed, func(o *s3.Options) { o.UsePathStyle = forcePathStyle }), nil
}
