// Package producer implements the Egress Producer: the pluggable
// transport that accepts serialized byte buffers and publishes them,
// either as an HTTP/2 broadcast-fanout stream or a framed stdio sink.
package producer

import (
	"context"
	"fmt"
	"io"
)

// Producer accepts a serialized buffer and publishes it.
type Producer interface {
	Send(ctx context.Context, data []byte) error
}

// Kind selects the transport variant.
type Kind string

const (
	KindHTTP2 Kind = "http2"
	KindStdio Kind = "stdio"
)

// DefaultListenAddress is used when a Config omits ListenAddress for an
// http2 transport.
const DefaultListenAddress = "127.0.0.1:3000"

// Config is the transport's configuration surface.
type Config struct {
	Kind          Kind   `yaml:"kind"`
	Capacity      int    `yaml:"capacity"`
	ListenAddress string `yaml:"listen_address"`
}

// New constructs the Producer cfg.Kind names. stdout is only consulted for
// the stdio transport.
func New(cfg Config, stdout io.Writer) (Producer, error) {
	switch cfg.Kind {
	case KindHTTP2:
		capacity := cfg.Capacity
		if capacity <= 0 {
			capacity = 1024
		}
		return NewHTTP2Producer(capacity, cfg.ListenAddress), nil
	case KindStdio:
		return NewStdioProducer(stdout), nil
	default:
		return nil, fmt.Errorf("producer: unknown kind %q", cfg.Kind)
	}
}
