package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/kudakan/kudakan-api/utils"
)

// allowedImageTypes is the MIME allow-list for menu images. Anything else is
// rejected before any byte reaches the bucket.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// AllowedImageType reports whether contentType may be stored as a menu
// image.
func AllowedImageType(contentType string) bool {
	return allowedImageTypes[contentType]
}

// ImageStorage is the object-storage boundary for menu images. Upload
// returns the public URL of the stored object; Delete takes that URL back.
type ImageStorage interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, imageURL string) error
}

// S3ImageStore stores menu images in a single S3 bucket under random UUID
// keys. One instance is created at startup and shared by all requests.
type S3ImageStore struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	baseURL  string
}

func NewS3ImageStore(ctx context.Context, region, bucket, baseURL string) (*S3ImageStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3ImageStore{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *S3ImageStore) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if !AllowedImageType(contentType) {
		return "", utils.NewAppError(utils.KindValidation,
			"file type %s not allowed, allowed types: jpeg, png, webp", contentType)
	}

	f, err := file.Open()
	if err != nil {
		return "", utils.NewAppError(utils.KindStorageFailure, "error reading upload: %v", err)
	}
	defer f.Close()

	ext := path.Ext(file.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := uuid.NewString() + ext

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", utils.NewAppError(utils.KindStorageFailure, "error uploading image: %v", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, key), nil
}

func (s *S3ImageStore) Delete(ctx context.Context, imageURL string) error {
	key := imageURL[strings.LastIndex(imageURL, "/")+1:]
	if key == "" {
		return utils.NewAppError(utils.KindStorageFailure, "invalid image url %q", imageURL)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return utils.NewAppError(utils.KindStorageFailure, "error deleting image: %v", err)
	}
	return nil
}
