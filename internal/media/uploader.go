package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/BrunoVenuto/saas-barber-sub000/internal/config"
)

// Uploader converte o logo enviado (PNG/JPEG) para webp reduzido e
// publica no bucket. URL pública = S3_BASE_URL + chave.
type Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

const maxLogoSide = 512

func NewUploader(cfg *config.Config) *Uploader {
	if cfg.S3Bucket == "" {
		return nil
	}

	awsCfg := aws.Config{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Uploader{
		client:  client,
		bucket:  cfg.S3Bucket,
		baseURL: cfg.S3BaseURL,
	}
}

func (u *Uploader) Enabled() bool {
	return u != nil
}

func (u *Uploader) UploadLogo(ctx context.Context, barbershopID uint, r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode logo: %w", err)
	}

	dst := shrink(src, maxLogoSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	key := fmt.Sprintf("barbershops/%d/logo.webp", barbershopID)

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("put logo: %w", err)
	}

	return u.baseURL + "/" + key, nil
}

// shrink reduz mantendo proporção; nunca amplia.
func shrink(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if w <= maxSide && h <= maxSide {
		return src
	}

	if w >= h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
