package producer

import (
	"context"
	"io"
	"sync"
)

// stdioFrameOpen and stdioFrameClose delimit each datum written to the
// stdio sink.
const (
	stdioFrameOpen  = "-----\n"
	stdioFrameClose = "\n-----\n"
)

// StdioProducer writes each datum synchronously to an underlying writer
// (standard output in production), framed as "-----\n" || data ||
// "\n-----\n".
type StdioProducer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStdioProducer constructs a producer writing to w.
func NewStdioProducer(w io.Writer) *StdioProducer {
	return &StdioProducer{w: w}
}

// Send delegates to the synchronous write path; it only suspends for the
// duration of the underlying Write calls.
func (p *StdioProducer) Send(ctx context.Context, data []byte) error {
	return p.writeFramed(data)
}

func (p *StdioProducer) writeFramed(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := io.WriteString(p.w, stdioFrameOpen); err != nil {
		return err
	}
	if _, err := p.w.Write(data); err != nil {
		return err
	}
	if _, err := io.WriteString(p.w, stdioFrameClose); err != nil {
		return err
	}
	return nil
}
