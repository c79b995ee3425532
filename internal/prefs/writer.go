package prefs

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// writeTimeout bounds a single background write.
const writeTimeout = 5 * time.Second

// Writer persists preference lists in the background. Put never blocks on
// storage: values are coalesced per key (latest wins) and written by a single
// goroutine. Failed writes are logged and dropped; the caller's in-memory
// state stays authoritative.
type Writer struct {
	kv  KV
	log *zap.Logger

	mu      sync.Mutex
	pending map[string]string
	order   []string
	closed  bool

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
	once sync.Once
}

// NewWriter starts a background writer on kv.
func NewWriter(kv KV, log *zap.Logger) *Writer {
	if log == nil {
		log = zap.NewNop()
	}
	w := &Writer{
		kv:      kv,
		log:     log,
		pending: map[string]string{},
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

// Put schedules value to be written as JSON under key.
func (w *Writer) Put(key string, value any) {
	b, err := json.Marshal(value)
	if err != nil {
		w.log.Warn("encode pref", zap.String("key", key), zap.Error(err))
		return
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.log.Warn("pref writer closed, dropping write", zap.String("key", key))
		return
	}
	if _, ok := w.pending[key]; !ok {
		w.order = append(w.order, key)
	}
	w.pending[key] = string(b)
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Close flushes pending writes and stops the writer. It is safe to call more
// than once.
func (w *Writer) Close() error {
	w.once.Do(func() {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		close(w.quit)
	})
	<-w.done
	return nil
}

func (w *Writer) run() {
	defer close(w.done)
	for {
		select {
		case <-w.wake:
			w.flush()
		case <-w.quit:
			w.flush()
			return
		}
	}
}

func (w *Writer) flush() {
	w.mu.Lock()
	batch, order := w.pending, w.order
	w.pending, w.order = map[string]string{}, nil
	w.mu.Unlock()

	for _, key := range order {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := w.kv.SetPref(ctx, key, batch[key])
		cancel()
		if err != nil {
			w.log.Warn("persist pref failed", zap.String("key", key), zap.Error(err))
			continue
		}
		w.log.Debug("persisted pref", zap.String("key", key))
	}
}
