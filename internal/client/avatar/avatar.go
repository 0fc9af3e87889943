// Package avatar turns the avatar reference stored on a profile into a URL
// the UI can load, and uploads new avatar images.
//
// A reference that already is an absolute http(s) URL is returned as is.
// Anything else is treated as an object key in the configured S3 bucket and
// resolved to a time-limited presigned GET URL.
package avatar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/acadium/dashboard/internal/client/models"
	"github.com/acadium/dashboard/internal/netx"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultURLTTL is how long a presigned avatar URL stays valid.
const DefaultURLTTL = 15 * time.Minute

var ErrNotConfigured = errors.New("avatar storage is not configured")

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	putObject = netx.PutPresigned
)

type Config struct {
	Region       string
	Bucket       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	URLTTL       time.Duration
}

type Resolver struct {
	cfg  Config
	http *http.Client
	now  func() time.Time

	once    sync.Once
	presign *s3.PresignClient
	initErr error
}

func NewResolver(cfg Config) *Resolver {
	if cfg.URLTTL <= 0 {
		cfg.URLTTL = DefaultURLTTL
	}
	return &Resolver{cfg: cfg, http: http.DefaultClient, now: time.Now}
}

// Enabled reports whether a bucket is configured.
func (r *Resolver) Enabled() bool {
	return r.cfg.Bucket != ""
}

func (r *Resolver) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	r.once.Do(func() {
		opts := []func(*config.LoadOptions) error{config.WithRegion(r.cfg.Region)}
		if r.cfg.AccessKey != "" {
			opts = append(opts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(r.cfg.AccessKey, r.cfg.SecretKey, "")))
		}

		cfg, err := loadDefaultAWSConfig(ctx, opts...)
		if err != nil {
			r.initErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := s3.NewFromConfig(cfg, func(o *s3.Options) {
			if r.cfg.BaseEndpoint != "" {
				o.BaseEndpoint = aws.String(r.cfg.BaseEndpoint)
				o.UsePathStyle = true
			}
		})
		r.presign = s3.NewPresignClient(client)
	})
	return r.presign, r.initErr
}

func isAbsoluteURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// URL resolves the avatar of p. It returns "" when the profile has no
// avatar, and the raw reference when no bucket is configured.
func (r *Resolver) URL(ctx context.Context, p *models.Profile) (string, error) {
	if p == nil || p.AvatarURL == "" {
		return "", nil
	}
	ref := p.AvatarURL
	if isAbsoluteURL(ref) || !r.Enabled() {
		return ref, nil
	}

	pc, err := r.presignClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.cfg.Bucket),
		Key:    aws.String(strings.TrimPrefix(ref, "/")),
	}, s3.WithPresignExpires(r.cfg.URLTTL))
	if err != nil {
		return "", fmt.Errorf("presign avatar: %w", err)
	}
	return req.URL, nil
}

// StorageKey returns a fresh object key for an avatar of userID.
func StorageKey(userID string, now time.Time) string {
	return fmt.Sprintf("avatars/%s/%d/%s", userID, now.Unix(), uuid.NewString())
}

// Upload stores data as a new avatar object for userID and returns its key,
// ready to be saved as the profile's avatar reference.
func (r *Resolver) Upload(ctx context.Context, userID, contentType string, data []byte) (string, error) {
	if !r.Enabled() {
		return "", ErrNotConfigured
	}

	pc, err := r.presignClient(ctx)
	if err != nil {
		return "", err
	}

	key := StorageKey(userID, r.now())
	in := &s3.PutObjectInput{
		Bucket: aws.String(r.cfg.Bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	req, err := presignPutObject(pc, ctx, in, s3.WithPresignExpires(r.cfg.URLTTL))
	if err != nil {
		return "", fmt.Errorf("presign upload: %w", err)
	}

	if err := putObject(ctx, r.http, req.URL, contentType, data); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	return key, nil
}
