package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/barberdesk/barbershop-api/internal/config"
	"github.com/barberdesk/barbershop-api/internal/httperr"
)

const (
	maxPictureWidth = 800
	webpQuality     = 80
)

// Uploader stores profile pictures as WebP in an S3-compatible bucket.
type Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewUploader(cfg *config.Config) *Uploader {
	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	baseURL := strings.TrimSuffix(cfg.S3PublicURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &Uploader{
		client:  s3.New(opts),
		bucket:  cfg.S3Bucket,
		baseURL: baseURL,
	}
}

// Enabled reports whether a bucket is configured. Picture uploads are
// rejected when storage is not set up.
func (u *Uploader) Enabled() bool {
	return u != nil && u.bucket != ""
}

// UploadProfilePicture decodes a JPEG/PNG, downscales it to at most
// maxPictureWidth, re-encodes as WebP and stores it under a random key.
// Returns the public URL.
func (u *Uploader) UploadProfilePicture(ctx context.Context, r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", httperr.Validation(
			"invalid_image",
			"Arquivo inválido. Envie uma imagem JPEG ou PNG.",
		)
	}

	img := downscale(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	key := "profiles/" + uuid.NewString() + ".webp"

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return u.baseURL + "/" + key, nil
}

func downscale(src image.Image) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxPictureWidth {
		return src
	}

	h := b.Dy() * maxPictureWidth / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxPictureWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
