// Package s3 uploads asset blobs to an S3-compatible object storage.
package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
)

type Config struct {
	AccessKey string
	SecretKey string
	Bucket    string
	EndPoint  string
	Region    string
	URLPrefix string
	URLSuffix string
}

type Client struct {
	Client *s3.Client
	Config *Config
}

func NewClient(ctx context.Context, config *Config) (*Client, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...any) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: config.EndPoint,
		}, nil
	})
	awsConfig, err := s3config.LoadDefaultConfig(ctx,
		s3config.WithEndpointResolverWithOptions(resolver),
		s3config.WithRegion(config.Region),
		s3config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(config.AccessKey, config.SecretKey, "")),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load s3 config")
	}

	client := s3.NewFromConfig(awsConfig)
	return &Client{
		Client: client,
		Config: config,
	}, nil
}

// UploadFile uploads the file to the bucket and returns a publicly
// addressable link for it.
func (client *Client) UploadFile(ctx context.Context, filename string, fileType string, src io.Reader) (string, error) {
	uploader := manager.NewUploader(client.Client)
	resp, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(client.Config.Bucket),
		Key:         aws.String(filename),
		Body:        src,
		ContentType: aws.String(fileType),
		ACL:         types.ObjectCannedACL(*aws.String("public-read")),
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to upload file to s3")
	}

	link := resp.Location
	// URLPrefix overrides the raw bucket location, e.g. for a CDN domain.
	if client.Config.URLPrefix != "" {
		link = fmt.Sprintf("%s/%s%s", client.Config.URLPrefix, filename, client.Config.URLSuffix)
	}
	if link == "" {
		return "", errors.New("failed to get uploaded s3 file link")
	}
	// The uploader escapes the path; decode so the stored link stays readable.
	if decoded, err := url.QueryUnescape(link); err == nil {
		link = decoded
	}
	return strings.ReplaceAll(link, " ", "%20"), nil
}
