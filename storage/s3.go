//go:generate go run go.uber.org/mock/mockgen -source=s3.go -destination=../mocks/mock_recording_store.go -package=mocks
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// IRecordingStore persists a recording file and returns its location.
type IRecordingStore interface {
	Upload(ctx context.Context, path, contentType string) (string, error)
}

// S3Client is the subset of the S3 API used for uploads.
// *s3.Client satisfies it.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads recordings to a bucket under timestamped keys.
//
// The client is expected to draw its credentials from the given
// TokenManager (see TokenManager.Provider), so a routine refresh happens
// transparently; the store itself only steps in when S3 rejects a request
// with an expired-token error.
type S3Store struct {
	log    *slog.Logger
	client S3Client
	tokens *TokenManager
	bucket string
	region string
	now    func() time.Time
}

func NewS3Store(log *slog.Logger, client S3Client, tokens *TokenManager, bucket, region string) *S3Store {
	return &S3Store{
		log:    log,
		client: client,
		tokens: tokens,
		bucket: bucket,
		region: region,
		now:    time.Now,
	}
}

// Upload stores the file under a generated recording key and returns the
// object's public URL. An expired-token rejection triggers one credential
// refresh and a single retry; any other failure is final.
func (s *S3Store) Upload(ctx context.Context, path, contentType string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening upload source: %w", err)
	}
	defer f.Close()

	key := recordingKey(s.now())
	if err := s.put(ctx, f, key, contentType); err != nil {
		if !isExpiredToken(err) {
			return "", fmt.Errorf("uploading %s: %w", key, err)
		}
		s.log.Warn("upload rejected with expired token, refreshing", "key", key)
		if _, err := s.tokens.ForceRefresh(ctx); err != nil {
			return "", err
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return "", fmt.Errorf("rewinding upload source: %w", err)
		}
		if err := s.put(ctx, f, key, contentType); err != nil {
			return "", fmt.Errorf("uploading %s after refresh: %w", key, err)
		}
	}

	location := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	s.log.Info("recording uploaded", "key", key, "location", location)
	return location, nil
}

func (s *S3Store) put(ctx context.Context, body io.Reader, key, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	return err
}

// recordingKey names an object after its upload instant, with the
// timestamp mangled so the key carries no ':' or '.' characters.
func recordingKey(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("recording_%s-%06d", t.Format("2006-01-02_15-04-05"), t.Nanosecond()/1000)
}

// isExpiredToken reports whether err is S3 rejecting the session token.
func isExpiredToken(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ExpiredToken", "ExpiredTokenException":
			return true
		}
	}
	return false
}

// Compile-time interface check.
var _ IRecordingStore = (*S3Store)(nil)
