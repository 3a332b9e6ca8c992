package producer

import (
	"bytes"
	"context"
	"testing"
)

func TestStdioProducer_Send_FramesExactBytes(t *testing.T) {
	var buf bytes.Buffer
	p := NewStdioProducer(&buf)

	if err := p.Send(context.Background(), []byte("hello")); err != nil {
		t.Fatalf("Send: %v", err)
	}

	want := "-----\nhello\n-----\n"
	if buf.String() != want {
		t.Fatalf("buf = %q, want %q", buf.String(), want)
	}
}

func TestStdioProducer_Send_MultipleFramesConcatenate(t *testing.T) {
	var buf bytes.Buffer
	p := NewStdioProducer(&buf)

	if err := p.Send(context.Background(), []byte("a")); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := p.Send(context.Background(), []byte("b")); err != nil {
		t.Fatalf("Send: %v", err)
	}

	want := "-----\na\n-----\n-----\nb\n-----\n"
	if buf.String() != want {
		t.Fatalf("buf = %q, want %q", buf.String(), want)
	}
}
