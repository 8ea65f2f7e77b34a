package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BenHowl/ReceiptChef/internal/utils"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// ErrObjectNotFound distinguishes a missing object from other storage
// failures so handlers can answer 404 instead of 500.
var ErrObjectNotFound = errors.New("object not found")

var AllowImage = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

type (
	AwsS3 interface {
		PresignUploadURL(ctx context.Context, contentType string) (uploadURL string, objectKey string, err error)
		UploadBase64(ctx context.Context, base64Data string, contentType string, prefix string) (objectKey string, err error)
		GetObject(ctx context.Context, objectKey string) (data []byte, contentType string, err error)
		GetObjectBase64(ctx context.Context, objectKey string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client    *s3.Client
		presigner *s3.PresignClient
		bucket    string
		region    string
	}
)

func NewAwsS3() (AwsS3, error) {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfig("AWS_S3_REGION")
	accessKey := utils.GetConfig("AWS_ACCESS_KEY")
	secretKey := utils.GetConfig("AWS_SECRET_KEY")

	if bucket == "" || region == "" || accessKey == "" || secretKey == "" {
		return nil, errors.New("AWS S3 credentials not configured")
	}

	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg)
	return &awsS3{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		region:    region,
	}, nil
}

func (s *awsS3) PresignUploadURL(ctx context.Context, contentType string) (string, string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	objectKey := fmt.Sprintf("receipts/%s%s", uuid.New().String(), extensionFor(contentType))

	presigned, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	return presigned.URL, objectKey, nil
}

func (s *awsS3) UploadBase64(ctx context.Context, base64Data string, contentType string, prefix string) (string, error) {
	// Accept both bare base64 and full data URIs.
	if strings.HasPrefix(base64Data, "data:") {
		parts := strings.SplitN(base64Data, ",", 2)
		if len(parts) != 2 {
			return "", errors.New("invalid base64 image")
		}
		meta := strings.TrimPrefix(parts[0], "data:")
		contentType = strings.SplitN(meta, ";", 2)[0]
		base64Data = parts[1]
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}
	if !allowedImage(contentType) {
		return "", fmt.Errorf("unsupported image type %s", contentType)
	}

	imageData, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	objectKey := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), extensionFor(contentType))

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return objectKey, nil
}

func (s *awsS3) GetObject(ctx context.Context, objectKey string) ([]byte, string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, "", ErrObjectNotFound
		}
		return nil, "", err
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", err
	}

	contentType := "application/octet-stream"
	if out.ContentType != nil {
		contentType = *out.ContentType
	}
	return data, contentType, nil
}

func (s *awsS3) GetObjectBase64(ctx context.Context, objectKey string) (string, error) {
	data, _, err := s.GetObject(ctx, objectKey)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func (s *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (s *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, objectKey)
}

func (s *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}

func allowedImage(contentType string) bool {
	for _, allowed := range AllowImage {
		if allowed == contentType {
			return true
		}
	}
	return false
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
