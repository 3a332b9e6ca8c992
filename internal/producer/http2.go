package producer

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// broadcaster is a lossy, many-producer/many-consumer ring buffer. Each
// subscriber holds an independent cursor; a subscriber that falls more
// than capacity frames behind loses the oldest pending frames rather than
// blocking the writer.
type broadcaster struct {
	mu       sync.Mutex
	buf      [][]byte
	capacity int
	total    uint64
	notify   chan struct{}
}

func newBroadcaster(capacity int) *broadcaster {
	return &broadcaster{
		buf:      make([][]byte, capacity),
		capacity: capacity,
		notify:   make(chan struct{}),
	}
}

// push appends data to the ring. It never blocks and never reports
// failure: a send with no subscribers still succeeds (drop-on-empty).
func (b *broadcaster) push(data []byte) {
	b.mu.Lock()
	b.buf[int(b.total%uint64(b.capacity))] = data
	b.total++
	old := b.notify
	b.notify = make(chan struct{})
	b.mu.Unlock()
	close(old)
}

// cursor returns a starting position that observes only frames pushed
// after this call, matching "a subscriber connecting at t0 receives
// exactly the frames sent after t0".
func (b *broadcaster) cursor() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}

// next blocks until frame seq is available, clamping seq forward if the
// caller fell behind the ring's capacity, or returns ctx.Err() if ctx is
// cancelled first.
func (b *broadcaster) next(ctx context.Context, seq uint64) ([]byte, uint64, error) {
	for {
		b.mu.Lock()
		if b.total > seq {
			if b.total-seq > uint64(b.capacity) {
				seq = b.total - uint64(b.capacity)
			}
			data := b.buf[int(seq%uint64(b.capacity))]
			b.mu.Unlock()
			return data, seq + 1, nil
		}
		ch := b.notify
		b.mu.Unlock()
		select {
		case <-ch:
			continue
		case <-ctx.Done():
			return nil, seq, ctx.Err()
		}
	}
}

// HTTP2Producer is the broadcast-fanout egress transport: an HTTP/2-only
// server (plaintext, via h2c) whose /messages/data route streams the
// broadcast ring to each connected subscriber.
type HTTP2Producer struct {
	broadcaster *broadcaster
	server      *http.Server
}

// NewHTTP2Producer constructs a producer with the given ring capacity,
// binding to listenAddr (DefaultListenAddress if empty).
func NewHTTP2Producer(capacity int, listenAddr string) *HTTP2Producer {
	if listenAddr == "" {
		listenAddr = DefaultListenAddress
	}
	p := &HTTP2Producer{broadcaster: newBroadcaster(capacity)}

	mux := http.NewServeMux()
	mux.HandleFunc("/", p.handleRoot)
	mux.HandleFunc("/messages/data", p.handleMessagesData)

	// h2c passes plain HTTP/1.x requests through to the handler; refuse
	// them so only HTTP/2 clients are served.
	http2Only := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ProtoMajor != 2 {
			http.Error(w, "HTTP/2 required", http.StatusHTTPVersionNotSupported)
			return
		}
		mux.ServeHTTP(w, r)
	})

	h2s := &http2.Server{}
	p.server = &http.Server{
		Addr:    listenAddr,
		Handler: h2c.NewHandler(http2Only, h2s),
	}
	return p
}

// ListenAndServe runs the HTTP/2 server until it is shut down or fails.
func (p *HTTP2Producer) ListenAndServe() error {
	return p.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (p *HTTP2Producer) Shutdown(ctx context.Context) error {
	return p.server.Shutdown(ctx)
}

// Send pushes data to the broadcast ring. It only blocks long enough to
// take the ring's mutex.
func (p *HTTP2Producer) Send(ctx context.Context, data []byte) error {
	p.broadcaster.push(data)
	return nil
}

func (p *HTTP2Producer) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	fmt.Fprint(w, "Subscribe to one of the streams")
}

func (p *HTTP2Producer) handleMessagesData(w http.ResponseWriter, r *http.Request) {
	flusher, canFlush := w.(http.Flusher)
	ctx := r.Context()
	seq := p.broadcaster.cursor()
	for {
		data, next, err := p.broadcaster.next(ctx, seq)
		if err != nil {
			return
		}
		seq = next
		if _, err := w.Write(data); err != nil {
			return
		}
		if canFlush {
			flusher.Flush()
		}
	}
}
