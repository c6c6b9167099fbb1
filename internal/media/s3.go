// Package media работает с медиа-файлами историй в S3-совместимом
// объектном хранилище.
package media

import (
	"context"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
)

type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

type S3Storage struct {
	client *s3.S3
	bucket string
}

func NewS3Storage(conf S3Config) (*S3Storage, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(conf.Region),
		Endpoint:    aws.String(conf.Endpoint),
		Credentials: credentials.NewStaticCredentials(conf.AccessKey, conf.SecretKey, ""),
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating s3 session")
	}
	return &S3Storage{
		client: s3.New(sess),
		bucket: conf.Bucket,
	}, nil
}

// DeleteByURL удаляет объект по публичному URL медиа. Ключ объекта — путь
// URL без ведущего слеша (и без имени бакета, если URL path-style).
func (s *S3Storage) DeleteByURL(ctx context.Context, mediaURL string) error {
	key, keyErr := s.objectKey(mediaURL)
	if keyErr != nil {
		return keyErr
	}

	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return errors.Wrapf(err, "deleting s3 object %s", key)
	}
	return nil
}

func (s *S3Storage) objectKey(mediaURL string) (string, error) {
	parsed, err := url.Parse(mediaURL)
	if err != nil {
		return "", errors.Wrapf(err, "parsing media url %s", mediaURL)
	}
	key := strings.TrimPrefix(parsed.Path, "/")
	key = strings.TrimPrefix(key, s.bucket+"/")
	if key == "" {
		return "", errors.Errorf("media url %s has empty object key", mediaURL)
	}
	return key, nil
}
