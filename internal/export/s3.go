package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3Scheme = "s3://"

// Environment overrides for workspaces that pin export credentials
// instead of relying on the default AWS chain.
const (
	envAccessKey = "ATELIER_S3_ACCESS_KEY"
	envSecretKey = "ATELIER_S3_SECRET_KEY"
)

type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Destination uploads documents under a bucket/prefix pair parsed from
// an s3:// target.
type S3Destination struct {
	bucket   string
	prefix   string
	uploader uploader
}

func NewS3Destination(ctx context.Context, target string) (*S3Destination, error) {
	bucket, prefix, err := parseS3Target(target)
	if err != nil {
		return nil, err
	}

	var opts []func(*awsconfig.LoadOptions) error
	if access, secret := os.Getenv(envAccessKey), os.Getenv(envSecretKey); access != "" && secret != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(access, secret, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return &S3Destination{
		bucket:   bucket,
		prefix:   prefix,
		uploader: manager.NewUploader(s3.NewFromConfig(cfg)),
	}, nil
}

func (d *S3Destination) Store(ctx context.Context, name string, body io.Reader) (string, error) {
	key := name
	if d.prefix != "" {
		key = d.prefix + "/" + name
	}

	_, err := d.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String("text/html"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return s3Scheme + d.bucket + "/" + key, nil
}

// parseS3Target splits s3://bucket/optional/prefix into its parts.
func parseS3Target(target string) (bucket, prefix string, err error) {
	rest := strings.TrimPrefix(target, s3Scheme)
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return "", "", fmt.Errorf("s3 target %q is missing a bucket", target)
	}

	parts := strings.SplitN(rest, "/", 2)
	bucket = parts[0]
	if len(parts) == 2 {
		prefix = strings.Trim(parts[1], "/")
	}
	return bucket, prefix, nil
}
