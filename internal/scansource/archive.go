package scansource

import (
	"context"
	"fmt"
)

// ArchiveSource would replay blocks from a local archive listing. Like
// NetworkSource, the archive format/layout is out of scope here; this is
// the labeled placeholder for that driver's contract.
type ArchiveSource struct {
	path string
}

// NewArchiveSource records the archive path a real driver would read.
func NewArchiveSource(path string) *ArchiveSource {
	return &ArchiveSource{path: path}
}

func (s *ArchiveSource) Next(ctx context.Context) (BlockEvent, error) {
	return BlockEvent{}, fmt.Errorf("scansource: archive driver not implemented (path=%s); out of scope", s.path)
}

func (s *ArchiveSource) Close() error { return nil }
