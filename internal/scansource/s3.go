package scansource

import (
	"context"
	"fmt"
)

// S3Source would stream an archive feed from an object store. Unlike
// NetworkSource, the original gives this driver a RetryOnError toggle:
// when set, a block-decode failure is retried against the same archive
// item rather than treated as fatal for that block (§7). The toggle is
// preserved here even though the object-store protocol itself is out of
// scope.
type S3Source struct {
	bucket      string
	retryOnError bool
}

// NewS3Source records the bucket a real driver would read from and the
// retry policy for per-block decode failures.
func NewS3Source(bucket string, retryOnError bool) *S3Source {
	return &S3Source{bucket: bucket, retryOnError: retryOnError}
}

func (s *S3Source) Next(ctx context.Context) (BlockEvent, error) {
	return BlockEvent{}, fmt.Errorf("scansource: s3 driver not implemented (bucket=%s, retry_on_error=%t); out of scope", s.bucket, s.retryOnError)
}

func (s *S3Source) Close() error { return nil }
