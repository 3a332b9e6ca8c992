package producer

import (
	"context"
	"testing"
	"time"
)

func TestBroadcaster_CursorObservesOnlyFutureFrames(t *testing.T) {
	b := newBroadcaster(4)
	b.push([]byte("before"))

	seq := b.cursor()
	b.push([]byte("after"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	data, next, err := b.next(ctx, seq)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if string(data) != "after" {
		t.Fatalf("data = %q, want %q", data, "after")
	}
	if next != seq+1 {
		t.Fatalf("next seq = %d, want %d", next, seq+1)
	}
}

func TestBroadcaster_LossyCursorClamping(t *testing.T) {
	b := newBroadcaster(2)
	seq := b.cursor()
	b.push([]byte("1"))
	b.push([]byte("2"))
	b.push([]byte("3")) // overwrites slot used by "1"

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	data, next, err := b.next(ctx, seq)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	// seq fell 3 frames behind a capacity-2 ring: the oldest frame is lost
	// and next() clamps forward to the oldest still-available frame.
	if string(data) != "2" {
		t.Fatalf("data = %q, want %q (clamped past lost frame)", data, "2")
	}
	if next != 2 {
		t.Fatalf("next seq = %d, want 2", next)
	}
}

func TestBroadcaster_NextBlocksUntilPush(t *testing.T) {
	b := newBroadcaster(4)
	seq := b.cursor()

	done := make(chan struct{})
	var gotData []byte
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		data, _, err := b.next(ctx, seq)
		if err == nil {
			gotData = data
		}
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	b.push([]byte("woken"))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("next() did not unblock after push")
	}
	if string(gotData) != "woken" {
		t.Fatalf("gotData = %q, want %q", gotData, "woken")
	}
}

func TestBroadcaster_NextReturnsContextError(t *testing.T) {
	b := newBroadcaster(4)
	seq := b.cursor()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, _, err := b.next(ctx, seq)
	if err == nil {
		t.Fatalf("expected context deadline error")
	}
}
