package storage

import (
	"bytes"
	"fmt"
	"log"
	"net/url"
	"server/config"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3Store struct {
	s3Client *s3.S3
	uploader *s3manager.Uploader
	bucket   string
}

func NewS3Store() *S3Store {
	awsConfig := aws.Config{
		Region:      aws.String(config.S3_REGION),
		Credentials: credentials.NewStaticCredentials(config.S3_KEY, config.S3_SECRET, ""),
	}
	if config.S3_ENDPOINT != "" {
		awsConfig.Endpoint = aws.String(config.S3_ENDPOINT)
	}
	if config.S3_FORCE_PATH_STYLE {
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	sess := session.Must(session.NewSession(&awsConfig))
	svc := s3.New(sess)
	return &S3Store{
		s3Client: svc,
		uploader: s3manager.NewUploaderWithClient(svc),
		bucket:   config.S3_BUCKET,
	}
}

func (s *S3Store) Put(buf []byte, key, contentType string) (string, error) {
	result, err := s.uploader.Upload(&s3manager.UploadInput{
		Bucket:      &s.bucket,
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        bytes.NewReader(buf),
	})
	if err != nil {
		return "", err
	}
	return result.Location, nil
}

// Delete fans out over the given URLs. The first failure is reported after
// all deletes are attempted, so one bad key cannot skip the others.
func (s *S3Store) Delete(urls ...string) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, u := range urls {
		wg.Add(1)
		go func(objectURL string) {
			defer wg.Done()
			key, err := s.keyFromURL(objectURL)
			if err == nil {
				_, err = s.s3Client.DeleteObject(&s3.DeleteObjectInput{
					Bucket: &s.bucket,
					Key:    aws.String(key),
				})
			}
			if err != nil {
				log.Printf("S3 delete failed for %s: %v", objectURL, err)
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(u)
	}
	wg.Wait()
	return firstErr
}

func (s *S3Store) Sign(objectURL string, ttl time.Duration) (string, error) {
	key, err := s.keyFromURL(objectURL)
	if err != nil {
		return "", err
	}
	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    aws.String(key),
	})
	return req.Presign(ttl)
}

// keyFromURL derives the object key from the path component of the URL.
// Both virtual-host style (bucket.s3.region.amazonaws.com/key) and path
// style (endpoint/bucket/key) URLs are handled.
func (s *S3Store) keyFromURL(objectURL string) (string, error) {
	parsed, err := url.Parse(objectURL)
	if err != nil {
		return "", fmt.Errorf("invalid object URL %q: %w", objectURL, err)
	}
	key := strings.TrimPrefix(parsed.Path, "/")
	key = strings.TrimPrefix(key, s.bucket+"/")
	if key == "" {
		return "", fmt.Errorf("no object key in URL %q", objectURL)
	}
	return key, nil
}
