package services

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"

	"github.com/ecomdev/electronics-shop-api/internal/config"
)

var allowedImageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// StorageService uploads product images to S3.
type StorageService struct {
	cfg      *config.Config
	uploader *s3manager.Uploader
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	awsConfig := &aws.Config{Region: aws.String(cfg.AWS.Region)}
	if cfg.AWS.AccessKeyID != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID, cfg.AWS.SecretAccessKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		cfg:      cfg,
		uploader: s3manager.NewUploader(sess),
	}, nil
}

// UploadProductImage stores an image under products/<productID>/ and returns
// its public URL.
func (s *StorageService) UploadProductImage(productID uuid.UUID, filename string, body io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowedImageExtensions[ext]
	if !ok {
		return "", NewDomainError("unsupported image type %q", ext)
	}

	key := fmt.Sprintf("products/%s/%s%s", productID, uuid.New().String(), ext)

	result, err := s.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(s.cfg.AWS.S3Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return result.Location, nil
}
